package shell

import (
	"strings"
	"unicode/utf8"
)

const (
	// Delimiters separate tokens. They are never part of a token.
	Delimiters = " \t\n"

	// Sentinel marks an empty or removed slot in a TokenList.
	Sentinel = ""

	DefaultMaxLineLength  = 255
	DefaultMaxTokens      = 11
	DefaultMaxTokenLength = 255
)

// TokenList is the ordered result of splitting one command line.
type TokenList []string

// Empty reports whether there is no command in the list.
func (tl TokenList) Empty() bool {
	return len(tl) == 0 || tl[0] == Sentinel
}

// Args returns the tokens up to, but not including, the first sentinel.
func (tl TokenList) Args() []string {
	for i, tok := range tl {
		if tok == Sentinel {
			return tl[:i:i]
		}
	}
	return tl
}

// Tokenizer splits raw command lines on whitespace. It has no notion of
// quoting, escaping or expansion.
type Tokenizer struct {
	// MaxTokens caps the number of slots produced. Input past the cap is
	// dropped. Zero means no cap.
	MaxTokens int

	// MaxTokenLength truncates each token to at most this many bytes without
	// splitting a valid UTF-8 sequence. Zero means no cap.
	MaxTokenLength int

	// PreserveGaps keeps the empty token between two adjacent delimiters as a
	// Sentinel slot instead of dropping it. Because Args stops at the first
	// Sentinel, a gap hides every token after it. Gaps count towards
	// MaxTokens.
	PreserveGaps bool
}

// DefaultTokenizer returns a compacting tokenizer with the default caps.
func DefaultTokenizer() Tokenizer {
	return Tokenizer{
		MaxTokens:      DefaultMaxTokens,
		MaxTokenLength: DefaultMaxTokenLength,
	}
}

// Tokenize splits line into a TokenList.
func (t Tokenizer) Tokenize(line string) TokenList {
	tokens := TokenList{}
	rest := line
	for t.MaxTokens <= 0 || len(tokens) < t.MaxTokens {
		var field string
		i := strings.IndexAny(rest, Delimiters)
		if i < 0 {
			field, rest = rest, ""
		} else {
			field, rest = rest[:i], rest[i+1:]
		}

		field = truncate(field, t.MaxTokenLength)
		if field != Sentinel || t.PreserveGaps {
			tokens = append(tokens, field)
		}

		if i < 0 {
			break
		}
	}
	return tokens
}

// truncate shortens s to at most n bytes, backing off to a rune boundary.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}

	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	// Invalid UTF-8 has no boundary worth keeping; cut at the byte limit.
	if cut == 0 || !utf8.ValidString(s[:cut]) {
		cut = n
	}
	return s[:cut]
}
