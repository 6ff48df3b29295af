// Package textsplit cuts transcripts into token-bounded pieces that fit a
// language model's context.
//
// A token is a maximal run of Unicode letters and digits. Everything else,
// punctuation included, only separates tokens and is not kept. Pieces are cut
// at exactly maxTokens with no regard for sentence boundaries, which keeps
// the output deterministic for a given transcript.
package textsplit

import (
	"strings"
	"unicode"
)

// DefaultMaxTokens is the piece size used when none is configured.
const DefaultMaxTokens = 2000

// Tokenize returns the word tokens of text in order.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, isSeparator)
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Chunk groups tokens into consecutive slices of at most maxTokens. The last
// group may be shorter. maxTokens <= 0 puts everything in one group.
func Chunk(tokens []string, maxTokens int) [][]string {
	if len(tokens) == 0 {
		return nil
	}
	if maxTokens <= 0 || maxTokens >= len(tokens) {
		return [][]string{tokens}
	}

	groups := make([][]string, 0, (len(tokens)+maxTokens-1)/maxTokens)
	for start := 0; start < len(tokens); start += maxTokens {
		end := start + maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		groups = append(groups, tokens[start:end:end])
	}
	return groups
}

// Split tokenizes text and returns pieces of at most maxTokens tokens, each
// joined with single spaces. Empty or punctuation-only input yields nil.
func Split(text string, maxTokens int) []string {
	groups := Chunk(Tokenize(text), maxTokens)
	if len(groups) == 0 {
		return nil
	}

	pieces := make([]string, len(groups))
	for i, g := range groups {
		pieces[i] = strings.Join(g, " ")
	}
	return pieces
}
