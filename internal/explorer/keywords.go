package explorer

import (
	"regexp"
	"strings"
)

// minKeywordLen filters out short, noisy tokens ("a", "the", "fix").
const minKeywordLen = 4

var (
	wordRe       = regexp.MustCompile(`\b\w+\b`)
	fileTokenRe  = regexp.MustCompile(`\b\w+\.[a-zA-Z]+\b`)
	fileSuffixRe = regexp.MustCompile(`\b(\w+)\s+(?:file|changes)\b`)
)

// DeriveKeywords tokenizes a task description into the lowercase keyword
// set used for content scanning. Tokens shorter than four characters are
// dropped. Order follows first appearance; duplicates are removed.
func DeriveKeywords(taskDescription string) []string {
	seen := make(map[string]struct{})
	var keywords []string
	for _, word := range wordRe.FindAllString(strings.ToLower(taskDescription), -1) {
		if len(word) < minKeywordLen {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}
	return keywords
}

// DeriveFilePatterns extracts filename-looking tokens from a task
// description: explicit names with an extension ("config.go") and bare
// names referenced as "<name> file" or "<name> changes". Files whose name
// matches one of these patterns are treated as targets and included in the
// summary regardless of keyword matches.
func DeriveFilePatterns(taskDescription string) []string {
	lower := strings.ToLower(taskDescription)

	seen := make(map[string]struct{})
	var patterns []string
	add := func(p string) {
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		patterns = append(patterns, p)
	}

	for _, m := range fileTokenRe.FindAllString(lower, -1) {
		add(m)
	}
	for _, m := range fileSuffixRe.FindAllStringSubmatch(lower, -1) {
		add(m[1])
	}
	return patterns
}

// matchesTarget reports whether a file name matches any derived pattern,
// either as a substring of the full name or exactly as the name without
// its extension.
func matchesTarget(fileName string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	name := strings.ToLower(fileName)
	noExt := name
	if i := strings.LastIndex(name, "."); i > 0 {
		noExt = name[:i]
	}
	for _, p := range patterns {
		if strings.Contains(name, p) || p == noExt {
			return true
		}
	}
	return false
}
