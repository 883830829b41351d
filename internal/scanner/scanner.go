// Package scanner provides the content-scanning primitives of the
// exploration engine: bounded file reads, keyword matching with
// line-accurate context windows, and binary-file detection.
//
// Everything here is a pure function over file contents — no caching,
// no concurrency, no state.
package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// binarySniffLen is how many leading bytes are sampled for binary detection.
const binarySniffLen = 8192

// smallFileThreshold is the size below which ReadSnippet loads the whole
// file and slices it instead of streaming line by line.
const smallFileThreshold = 256 * 1024

// Snippet is a bounded excerpt of file content surrounding a keyword match.
// Line numbers are 1-indexed and inclusive.
type Snippet struct {
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Text      string `json:"text"`
}

// Scan tests every line of content for case-insensitive containment of any
// keyword and returns one Snippet per matching line, spanning radius lines
// of context on each side, clipped to file bounds. Windows from adjacent
// matches are deliberately not merged — the consumer tolerates duplicated
// context and keeps per-match line ranges precise.
//
// Keywords must already be lowercase.
func Scan(content string, keywords []string, radius int) []Snippet {
	if content == "" || len(keywords) == 0 {
		return nil
	}

	lines := strings.Split(content, "\n")
	// A trailing newline produces a phantom empty last line — drop it so
	// context windows never report a line past the real end of file.
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	var snippets []Snippet
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !containsAny(lower, keywords) {
			continue
		}
		start := max(0, i-radius)
		end := min(len(lines)-1, i+radius)
		snippets = append(snippets, Snippet{
			StartLine: start + 1,
			EndLine:   end + 1,
			Text:      strings.Join(lines[start:end+1], "\n"),
		})
	}
	return snippets
}

func containsAny(line string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

// ReadContent reads up to maxBytes of the file at path. If the file is
// larger, the prefix is returned with truncated=true. At most maxBytes+1
// bytes are ever held in memory, regardless of actual file size.
func ReadContent(path string, maxBytes int64) (content string, truncated bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, fmt.Errorf("scanner: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return "", false, fmt.Errorf("scanner: read %s: %w", path, err)
	}
	if int64(len(data)) > maxBytes {
		return string(data[:maxBytes]), true, nil
	}
	return string(data), false, nil
}

// ReadSnippet reads the lines surrounding startLine (1-indexed) with radius
// lines of context on each side. Small files are read whole and sliced;
// larger files are streamed so only the window is kept. A startLine past
// end-of-file yields an empty block, not an error — only an unreadable
// path fails.
func ReadSnippet(path string, startLine, radius int) (string, error) {
	if startLine < 1 {
		startLine = 1
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("scanner: stat %s: %w", path, err)
	}

	if info.Size() <= smallFileThreshold {
		content, _, err := ReadContent(path, smallFileThreshold)
		if err != nil {
			return "", err
		}
		return sliceWindow(content, startLine, radius), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("scanner: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	first := max(1, startLine-radius)
	last := startLine + radius

	var window []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for line := 1; sc.Scan(); line++ {
		if line > last {
			break
		}
		if line >= first {
			window = append(window, sc.Text())
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("scanner: read %s: %w", path, err)
	}
	if len(window) == 0 || startLine > first-1+len(window) {
		// The requested line itself is past end-of-file.
		return "", nil
	}
	return strings.Join(window, "\n"), nil
}

func sliceWindow(content string, startLine, radius int) string {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if startLine > len(lines) {
		return ""
	}
	first := max(0, startLine-1-radius)
	last := min(len(lines)-1, startLine-1+radius)
	return strings.Join(lines[first:last+1], "\n")
}

// IsBinary reports whether a sampled file prefix looks binary: it contains
// a null byte or is not valid UTF-8. A multi-byte rune cut off at the
// sample boundary is tolerated.
func IsBinary(sample []byte) bool {
	if bytes.IndexByte(sample, 0) != -1 {
		return true
	}
	for trim := 0; trim < utf8.UTFMax && trim < len(sample); trim++ {
		if utf8.Valid(sample[:len(sample)-trim]) {
			return false
		}
	}
	return len(sample) > 0
}

// SniffBinary samples the file's leading bytes and applies IsBinary.
func SniffBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("scanner: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sample := make([]byte, binarySniffLen)
	n, err := io.ReadFull(f, sample)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, fmt.Errorf("scanner: sample %s: %w", path, err)
	}
	return IsBinary(sample[:n]), nil
}
