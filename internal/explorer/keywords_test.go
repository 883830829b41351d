package explorer

import (
	"reflect"
	"testing"
)

func TestDeriveKeywords(t *testing.T) {
	cases := []struct {
		name string
		task string
		want []string
	}{
		{
			"drops short tokens",
			"fix the bug in auth flow",
			[]string{"auth", "flow"},
		},
		{
			"lowercases",
			"Update LOGIN Handling",
			[]string{"update", "login", "handling"},
		},
		{
			"dedupes in first-appearance order",
			"cache the cache layer cache",
			[]string{"cache", "layer"},
		},
		{
			"empty task",
			"",
			nil,
		},
		{
			"splits on punctuation",
			"rename user-service endpoints",
			[]string{"rename", "user", "service", "endpoints"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveKeywords(tc.task); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("DeriveKeywords(%q) = %v, want %v", tc.task, got, tc.want)
			}
		})
	}
}

func TestDeriveFilePatterns(t *testing.T) {
	cases := []struct {
		name string
		task string
		want []string
	}{
		{
			"explicit file name",
			"update config.json with new defaults",
			[]string{"config.json"},
		},
		{
			"name referenced as file",
			"look at the router file for the bug",
			[]string{"router"},
		},
		{
			"name referenced as changes",
			"review the middleware changes",
			[]string{"middleware"},
		},
		{
			"mixed and deduped",
			"sync main.go with the main file",
			[]string{"main.go", "main"},
		},
		{
			"no patterns",
			"improve error messages",
			nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveFilePatterns(tc.task); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("DeriveFilePatterns(%q) = %v, want %v", tc.task, got, tc.want)
			}
		})
	}
}

func TestMatchesTarget(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
		patterns []string
		want     bool
	}{
		{"exact file name", "config.json", []string{"config.json"}, true},
		{"substring of name", "auth_handler.go", []string{"auth"}, true},
		{"name without extension", "router.go", []string{"router"}, true},
		{"case insensitive", "Config.JSON", []string{"config.json"}, true},
		{"no match", "main.go", []string{"router"}, false},
		{"no patterns", "main.go", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := matchesTarget(tc.fileName, tc.patterns); got != tc.want {
				t.Errorf("matchesTarget(%q, %v) = %v, want %v", tc.fileName, tc.patterns, got, tc.want)
			}
		})
	}
}
