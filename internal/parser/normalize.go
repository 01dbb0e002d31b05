package parser

import (
	"unicode"
	"unicode/utf8"
)

// normalize applies the end-of-field trim rules to a raw field buffer.
//
// AlwaysQuoteOutput: optional whitespace trim, then wrap in quotes.
// Otherwise, without RetainOuterQuotes: optional trim, strip one exact
// outer quote pair, optional trim again (removes whitespace that sat
// inside the quotes). With RetainOuterQuotes only the optional trim runs.
func (c *Config) normalize(tok string) string {
	if c.AlwaysQuoteOutput {
		if c.TrimWhitespace {
			tok = trimSpaces(tok)
		}
		return c.ensureQuoted(tok)
	}
	if !c.RetainOuterQuotes {
		if c.TrimWhitespace {
			tok = trimSpaces(tok)
			tok = c.trimEdgeQuotes(tok)
			return trimSpaces(tok)
		}
		return c.trimEdgeQuotes(tok)
	}
	if c.TrimWhitespace {
		return trimSpaces(tok)
	}
	return tok
}

// trimSpaces trims leading and trailing whitespace. Tokens shorter than
// two characters and tokens that are entirely whitespace are returned
// unchanged.
func trimSpaces(s string) string {
	if utf8.RuneCountInString(s) < 2 {
		return s
	}
	left := -1
	for i, r := range s {
		if !unicode.IsSpace(r) {
			left = i
			break
		}
	}
	if left < 0 {
		// all whitespace
		return s
	}
	right := len(s)
	for right > left {
		r, w := utf8.DecodeLastRuneInString(s[:right])
		if !unicode.IsSpace(r) {
			break
		}
		right -= w
	}
	return s[left:right]
}

// trimEdgeQuotes strips exactly one outer quote pair, and only when both
// the first and last characters are the quote character. No whitespace
// is skipped to find them.
func (c *Config) trimEdgeQuotes(s string) string {
	if !c.HasQuote || utf8.RuneCountInString(s) < 2 {
		return s
	}
	first, fw := utf8.DecodeRuneInString(s)
	last, lw := utf8.DecodeLastRuneInString(s)
	if first == c.Quote && last == c.Quote {
		return s[fw : len(s)-lw]
	}
	return s
}

// ensureQuoted wraps the token in quote characters unless it already
// carries an exact outer quote pair.
func (c *Config) ensureQuoted(s string) string {
	if utf8.RuneCountInString(s) >= 2 {
		first, _ := utf8.DecodeRuneInString(s)
		last, _ := utf8.DecodeLastRuneInString(s)
		if first == c.Quote && last == c.Quote {
			return s
		}
	}
	q := string(c.Quote)
	return q + s + q
}
