package blogservice

import (
	"fmt"
	"strings"
)

const wordsPerMinute = 200

// WordCount counts whitespace separated tokens.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// ReadTime formats max(1, ceil(words/200)) as "N min read".
func ReadTime(content string) string {
	minutes := (WordCount(content) + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	return fmt.Sprintf("%d min read", minutes)
}
