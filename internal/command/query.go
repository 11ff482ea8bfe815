package command

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"syscall"

	"github.com/lucasew/fdb/internal/item"
	"github.com/lucasew/fdb/internal/rank"
)

// JoinPattern combines pattern fragments so that each may match anywhere
// after the previous one.
func JoinPattern(fragments []string) string {
	return strings.Join(fragments, ".*")
}

// Query writes the path of every item matching pattern to w, one per line,
// in the order given by s. The items slice is left untouched.
//
// A reader that stops early (broken pipe) ends the output without error.
func Query(w io.Writer, items []item.Item, pattern string, s rank.Strategy, now int64) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return &PatternError{Pattern: pattern, Err: err}
	}

	sorted := slices.Clone(items)
	s.Sort(sorted, now)

	bw := bufio.NewWriter(w)
	for _, it := range sorted {
		if !re.MatchString(it.Path) {
			continue
		}
		if _, err := bw.WriteString(it.Path + "\n"); err != nil {
			return outputErr(err)
		}
	}
	return outputErr(bw.Flush())
}

func outputErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.EPIPE) {
		slog.Debug("Output closed early, stopping query")
		return nil
	}
	return &OutputError{Err: err}
}
