package files

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultCharset is used when no charset is configured.
const DefaultCharset = "UTF-8"

// ResolveCharset looks up an IANA charset name such as "UTF-8" or "ISO-8859-1".
// Labels IANA does not register, such as "utf8", are looked up in the WHATWG index.
func ResolveCharset(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultCharset
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		alias, aliasErr := htmlindex.Get(name)
		if aliasErr != nil {
			return nil, fmt.Errorf("unknown charset %q: %w", name, err)
		}
		enc, err = alias, nil
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q is not supported", name)
	}
	return enc, nil
}

// ReadLines reads the whole file decoded with enc and splits it into lines.
// Line terminators are "\n", "\r\n" and "\r"; they are not part of the returned lines.
// A UTF-8 file containing invalid byte sequences is rejected instead of being silently repaired.
func ReadLines(path string, enc encoding.Encoding) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var data []byte
	if enc == nil || enc == unicode.UTF8 {
		data, err = io.ReadAll(file)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("malformed input for charset %s", DefaultCharset)
		}
	} else {
		data, err = io.ReadAll(transform.NewReader(file, enc.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("failed to decode: %w", err)
		}
	}

	return SplitLines(string(data)), nil
}

// SplitLines splits text on "\n", "\r\n" and "\r". A trailing terminator does not produce an empty last line.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
