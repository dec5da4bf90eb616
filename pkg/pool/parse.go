package pool

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/bingoforge/pkg/errors"
)

// tagSeparator splits a column label from a value on a tagged line.
const tagSeparator = "::"

// Option configures value-file parsing.
type Option func(*settings)

type settings struct {
	warnf func(format string, args ...any)
}

// WithWarnf sets the sink for non-fatal parse warnings, such as
// duplicate lines being dropped. The default discards warnings.
func WithWarnf(fn func(format string, args ...any)) Option {
	return func(s *settings) { s.warnf = fn }
}

// Load reads a value file from path and parses it into a Pool.
// It fails with IO_ERROR when the file cannot be opened.
func Load(path string, opts ...Option) (*Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read value file %s", path)
	}
	defer f.Close()
	return Parse(f, path, opts...)
}

// Parse reads a value file from r into a Pool. name is used in error
// messages, typically the file path.
//
// Each non-blank line is either a bare value or COLUMN::VALUE; the first
// content line decides which form the whole file must use. The literal
// two-character sequence \n inside a value becomes a real line break so
// values can span multiple lines of a card space. Exact duplicates are
// dropped with a warning.
func Parse(r io.Reader, name string, opts ...Option) (*Pool, error) {
	s := settings{warnf: func(string, ...any) {}}
	for _, opt := range opts {
		opt(&s)
	}

	var (
		tagged  bool
		first   = true
		labels  []string
		columns = map[string][]string{}
		flat    []string
		seen    = map[string]struct{}{}
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		label, value, isTagged := cutTag(line)
		if first {
			tagged = isTagged
			first = false
		} else if isTagged != tagged {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"%s:%d: mixing tagged (COLUMN::VALUE) and untagged lines is not allowed", name, lineNo)
		}

		if isTagged && (label == "" || value == "") {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"%s:%d: tagged line needs both a column label and a value", name, lineNo)
		}

		key := label + "\x00" + value
		if _, dup := seen[key]; dup {
			s.warnf("%s:%d: duplicate value %q dropped", name, lineNo, line)
			continue
		}
		seen[key] = struct{}{}

		if isTagged {
			if _, ok := columns[label]; !ok {
				labels = append(labels, label)
			}
			columns[label] = append(columns[label], value)
		} else {
			flat = append(flat, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read value file %s", name)
	}

	if first {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no values found in %s", name)
	}
	if tagged {
		return newTagged(labels, columns), nil
	}
	return newFlat(flat), nil
}

// cutTag splits line at the first tag separator and unescapes the value.
// Everything after the first separator belongs to the value, so values
// themselves may contain "::".
func cutTag(line string) (label, value string, tagged bool) {
	before, after, found := strings.Cut(line, tagSeparator)
	if !found {
		return "", unescape(line), false
	}
	return strings.TrimSpace(before), unescape(strings.TrimSpace(after)), true
}

// unescape turns the literal sequence \n into a real newline.
func unescape(v string) string {
	return strings.ReplaceAll(v, `\n`, "\n")
}
