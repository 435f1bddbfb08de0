package properties

import (
	"regexp"
	"strings"
)

// LineKind is the classification of one definitions file line.
type LineKind int

const (
	// KindUnrecognized is a line that is neither a comment nor a definition, usually blank.
	KindUnrecognized LineKind = iota
	// KindComment is a line starting with '#' or '!' after optional whitespace.
	KindComment
	// KindContinuationStart is a line ending in a continuation backslash outside a continuation.
	KindContinuationStart
	// KindContinuationRow is a line ending in a continuation backslash inside a continuation.
	KindContinuationRow
	// KindContinuationEnd is the last row of a multi-line value.
	KindContinuationEnd
	// KindProperty is a key/value line.
	KindProperty
)

func (k LineKind) String() string {
	switch k {
	case KindComment:
		return "comment"
	case KindContinuationStart:
		return "continuation-start"
	case KindContinuationRow:
		return "continuation-row"
	case KindContinuationEnd:
		return "continuation-end"
	case KindProperty:
		return "property"
	default:
		return "unrecognized"
	}
}

var (
	commentLineRe = regexp.MustCompile(`^\s*[#!]`)
	simpleLineRe  = regexp.MustCompile(`^\s*([^=:]+)[=:](.*)$`)
	looseLineRe   = regexp.MustCompile(`^\s*(\S+)\s*(.*)$`)
)

// Line is the result of classifying a single line. Key and Value are set only for KindProperty.
type Line struct {
	Kind  LineKind
	Key   string
	Value string
}

// Classifier classifies the lines of one definitions file in order.
// It carries whether the previous line opened or continued a multi-line value.
//
// Multi-line values are skipped as a whole: the opening line, the continued rows and the
// closing row never produce a definition. Comment lines stay comments even inside a
// multi-line value.
type Classifier struct {
	inContinuation bool
}

// Classify classifies the next line of the file.
func (c *Classifier) Classify(line string) Line {
	if commentLineRe.MatchString(line) {
		return Line{Kind: KindComment}
	}

	if endsWithContinuation(line) {
		if c.inContinuation {
			return Line{Kind: KindContinuationRow}
		}
		c.inContinuation = true
		return Line{Kind: KindContinuationStart}
	}
	if c.inContinuation {
		c.inContinuation = false
		return Line{Kind: KindContinuationEnd}
	}

	if m := simpleLineRe.FindStringSubmatch(line); m != nil {
		key := strings.TrimSpace(m[1])
		if key == "" {
			return Line{Kind: KindUnrecognized}
		}
		return Line{Kind: KindProperty, Key: key, Value: strings.TrimSpace(m[2])}
	}
	if m := looseLineRe.FindStringSubmatch(line); m != nil {
		return Line{Kind: KindProperty, Key: strings.TrimSpace(m[1]), Value: strings.TrimSpace(m[2])}
	}
	return Line{Kind: KindUnrecognized}
}

// endsWithContinuation reports whether the line ends in an odd number of backslashes,
// ignoring trailing whitespace. An even count is a run of escaped backslashes.
func endsWithContinuation(line string) bool {
	trimmed := strings.TrimRight(line, " \t\f\v\r\n")
	n := 0
	for i := len(trimmed) - 1; i >= 0 && trimmed[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// ParseLines classifies lines of one file and returns its definitions with 1-based line numbers.
func ParseLines(file string, lines []string) []Definition {
	var (
		c    Classifier
		defs []Definition
	)
	for i, raw := range lines {
		line := c.Classify(raw)
		if line.Kind != KindProperty {
			continue
		}
		defs = append(defs, Definition{Key: line.Key, Value: line.Value, File: file, Line: i + 1})
	}
	return defs
}
