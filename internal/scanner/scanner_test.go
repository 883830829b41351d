package scanner_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/overtimepog/traycer-internship/internal/scanner"
)

// writeFile creates a file with the given content in a temp directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// ─── Scan ────────────────────────────────────────────────────────────────────

func TestScan_BasicMatch(t *testing.T) {
	content := "line one\nline two\nauthentication logic here\nline four\nline five\n"
	snippets := scanner.Scan(content, []string{"authentication"}, 2)

	if len(snippets) != 1 {
		t.Fatalf("snippets = %d, want 1", len(snippets))
	}
	sn := snippets[0]
	if sn.StartLine != 1 || sn.EndLine != 5 {
		t.Errorf("window = [%d, %d], want [1, 5]", sn.StartLine, sn.EndLine)
	}
	if !strings.Contains(sn.Text, "authentication logic here") {
		t.Errorf("snippet text missing matched line: %q", sn.Text)
	}
}

func TestScan_CaseInsensitive(t *testing.T) {
	snippets := scanner.Scan("HANDLE LOGIN HERE\n", []string{"login"}, 0)
	if len(snippets) != 1 {
		t.Fatalf("snippets = %d, want 1 (match should ignore case)", len(snippets))
	}
	if snippets[0].Text != "HANDLE LOGIN HERE" {
		t.Errorf("snippet text = %q, keeps original casing", snippets[0].Text)
	}
}

func TestScan_WindowClippedAtBounds(t *testing.T) {
	content := "match on first line\nsecond\nthird\n"
	snippets := scanner.Scan(content, []string{"match"}, 2)

	if len(snippets) != 1 {
		t.Fatalf("snippets = %d, want 1", len(snippets))
	}
	if snippets[0].StartLine != 1 {
		t.Errorf("StartLine = %d, want 1 (clipped at start)", snippets[0].StartLine)
	}
	if snippets[0].EndLine != 3 {
		t.Errorf("EndLine = %d, want 3 (clipped at end)", snippets[0].EndLine)
	}
}

func TestScan_TrailingNewlineNotPhantomLine(t *testing.T) {
	// A match on the last real line must not report a window past EOF.
	content := "first\nsecond\nlast line match\n"
	snippets := scanner.Scan(content, []string{"match"}, 2)

	if len(snippets) != 1 {
		t.Fatalf("snippets = %d, want 1", len(snippets))
	}
	if snippets[0].EndLine != 3 {
		t.Errorf("EndLine = %d, want 3 — trailing newline counted as a line", snippets[0].EndLine)
	}
}

func TestScan_AdjacentMatchesNotMerged(t *testing.T) {
	content := "match a\nmatch b\nplain\n"
	snippets := scanner.Scan(content, []string{"match"}, 1)

	if len(snippets) != 2 {
		t.Fatalf("snippets = %d, want 2 — overlapping windows must stay separate", len(snippets))
	}
	if snippets[0].StartLine != 1 || snippets[0].EndLine != 2 {
		t.Errorf("first window = [%d, %d], want [1, 2]", snippets[0].StartLine, snippets[0].EndLine)
	}
	if snippets[1].StartLine != 1 || snippets[1].EndLine != 3 {
		t.Errorf("second window = [%d, %d], want [1, 3]", snippets[1].StartLine, snippets[1].EndLine)
	}
}

func TestScan_MultipleKeywordsOneLineIsOneSnippet(t *testing.T) {
	snippets := scanner.Scan("login and logout handling\n", []string{"login", "logout"}, 0)
	if len(snippets) != 1 {
		t.Errorf("snippets = %d, want 1 per matching line regardless of keyword count", len(snippets))
	}
}

func TestScan_EmptyInputs(t *testing.T) {
	if got := scanner.Scan("", []string{"kw"}, 2); got != nil {
		t.Errorf("Scan on empty content = %v, want nil", got)
	}
	if got := scanner.Scan("some content\n", nil, 2); got != nil {
		t.Errorf("Scan with no keywords = %v, want nil", got)
	}
}

func TestScan_ZeroRadius(t *testing.T) {
	snippets := scanner.Scan("a\nmatch here\nb\n", []string{"match"}, 0)
	if len(snippets) != 1 {
		t.Fatalf("snippets = %d, want 1", len(snippets))
	}
	if snippets[0].StartLine != 2 || snippets[0].EndLine != 2 {
		t.Errorf("window = [%d, %d], want [2, 2]", snippets[0].StartLine, snippets[0].EndLine)
	}
	if snippets[0].Text != "match here" {
		t.Errorf("Text = %q, want just the matching line", snippets[0].Text)
	}
}

// ─── ReadContent ─────────────────────────────────────────────────────────────

func TestReadContent_SmallFile(t *testing.T) {
	path := writeFile(t, "small.txt", "hello world")

	content, truncated, err := scanner.ReadContent(path, 1024)
	if err != nil {
		t.Fatalf("ReadContent: %v", err)
	}
	if truncated {
		t.Error("small file reported as truncated")
	}
	if content != "hello world" {
		t.Errorf("content = %q, want %q", content, "hello world")
	}
}

func TestReadContent_ExactlyAtLimit(t *testing.T) {
	path := writeFile(t, "exact.txt", strings.Repeat("x", 100))

	content, truncated, err := scanner.ReadContent(path, 100)
	if err != nil {
		t.Fatalf("ReadContent: %v", err)
	}
	if truncated {
		t.Error("file exactly at the limit reported as truncated")
	}
	if len(content) != 100 {
		t.Errorf("len(content) = %d, want 100", len(content))
	}
}

func TestReadContent_TruncatesOverLimit(t *testing.T) {
	path := writeFile(t, "big.txt", strings.Repeat("x", 101))

	content, truncated, err := scanner.ReadContent(path, 100)
	if err != nil {
		t.Fatalf("ReadContent: %v", err)
	}
	if !truncated {
		t.Error("oversize file not reported as truncated")
	}
	if len(content) != 100 {
		t.Errorf("len(content) = %d, want the 100-byte prefix", len(content))
	}
}

func TestReadContent_MissingFile(t *testing.T) {
	if _, _, err := scanner.ReadContent(filepath.Join(t.TempDir(), "absent"), 100); err == nil {
		t.Error("ReadContent on missing file: want error")
	}
}

// ─── ReadSnippet ─────────────────────────────────────────────────────────────

func TestReadSnippet_SmallFile(t *testing.T) {
	path := writeFile(t, "f.txt", "l1\nl2\nl3\nl4\nl5\n")

	got, err := scanner.ReadSnippet(path, 3, 1)
	if err != nil {
		t.Fatalf("ReadSnippet: %v", err)
	}
	if got != "l2\nl3\nl4" {
		t.Errorf("snippet = %q, want %q", got, "l2\nl3\nl4")
	}
}

func TestReadSnippet_ClipsAtFileStart(t *testing.T) {
	path := writeFile(t, "f.txt", "l1\nl2\nl3\n")

	got, err := scanner.ReadSnippet(path, 1, 2)
	if err != nil {
		t.Fatalf("ReadSnippet: %v", err)
	}
	if got != "l1\nl2\nl3" {
		t.Errorf("snippet = %q, want %q", got, "l1\nl2\nl3")
	}
}

func TestReadSnippet_PastEOF(t *testing.T) {
	path := writeFile(t, "f.txt", "l1\nl2\n")

	got, err := scanner.ReadSnippet(path, 50, 2)
	if err != nil {
		t.Fatalf("ReadSnippet past EOF: %v", err)
	}
	if got != "" {
		t.Errorf("snippet = %q, want empty for a line past end of file", got)
	}
}

func TestReadSnippet_LargeFileStreams(t *testing.T) {
	// Over the whole-file threshold so the streaming path runs.
	var sb strings.Builder
	for i := 1; i <= 20000; i++ {
		sb.WriteString(strings.Repeat("padding ", 4))
		sb.WriteString("\n")
	}
	path := writeFile(t, "big.txt", sb.String())

	got, err := scanner.ReadSnippet(path, 10000, 1)
	if err != nil {
		t.Fatalf("ReadSnippet: %v", err)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Errorf("window lines = %d, want 3", len(lines))
	}
}

// ─── Binary detection ────────────────────────────────────────────────────────

func TestIsBinary(t *testing.T) {
	cases := []struct {
		name   string
		sample []byte
		want   bool
	}{
		{"empty", nil, false},
		{"plain text", []byte("package main\n"), false},
		{"utf8 text", []byte("héllo wörld"), false},
		{"null byte", []byte("abc\x00def"), true},
		{"invalid utf8", []byte{0xff, 0xfe, 0x01}, true},
		{"rune cut at boundary", append([]byte("ok "), []byte("é")[:1]...), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scanner.IsBinary(tc.sample); got != tc.want {
				t.Errorf("IsBinary(%q) = %v, want %v", tc.sample, got, tc.want)
			}
		})
	}
}

func TestSniffBinary_TextFile(t *testing.T) {
	path := writeFile(t, "f.go", "package main\n\nfunc main() {}\n")
	binary, err := scanner.SniffBinary(path)
	if err != nil {
		t.Fatalf("SniffBinary: %v", err)
	}
	if binary {
		t.Error("text file sniffed as binary")
	}
}

func TestSniffBinary_BinaryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.bin")
	if err := os.WriteFile(path, []byte{0x7f, 'E', 'L', 'F', 0x00, 0x01, 0x02}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	binary, err := scanner.SniffBinary(path)
	if err != nil {
		t.Fatalf("SniffBinary: %v", err)
	}
	if !binary {
		t.Error("ELF-like file sniffed as text")
	}
}

func TestSniffBinary_MissingFile(t *testing.T) {
	if _, err := scanner.SniffBinary(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("SniffBinary on missing file: want error")
	}
}
