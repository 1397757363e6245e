package report

import (
	"regexp"
	"strings"

	"github.com/platinummonkey/quill/pkg/posts"
)

var nonWord = regexp.MustCompile(`\W`)

// Report summarizes a post's content
type Report struct {
	WordCount     int            `json:"word_count"`
	WordHistogram map[string]int `json:"word_histogram"`
}

// Generate builds a report from the post's content. Words are whitespace
// separated and stripped of non-word characters; the histogram additionally
// lowercases so "Hello" and "hello" count together.
func Generate(post *posts.Post) Report {
	words := strings.Fields(post.Content)

	histogram := make(map[string]int)
	for _, word := range words {
		cleaned := strings.ToLower(nonWord.ReplaceAllString(word, ""))
		if cleaned == "" {
			continue
		}
		histogram[cleaned]++
	}

	return Report{
		WordCount:     len(words),
		WordHistogram: histogram,
	}
}
