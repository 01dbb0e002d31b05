package parser

import "errors"

// Config is the immutable dialect a Parser is constructed with.
// Quote and Escape are optional: when HasQuote/HasEscape is false the
// corresponding character is undefined and never matches input, so data
// equal to the zero rune is not accidentally treated as a control
// character.
type Config struct {
	// Separator is the field delimiter. It must always be defined.
	Separator rune

	// Quote is the quote character; only meaningful when HasQuote is true.
	Quote    rune
	HasQuote bool

	// Escape is the escape character; only meaningful when HasEscape is true.
	Escape    rune
	HasEscape bool

	// StrictQuotes discards any character that appears outside quotes
	// within a quoted field. Fields with no quoting are kept verbatim.
	StrictQuotes bool

	// TrimWhitespace trims leading and trailing whitespace from each
	// field before it is returned.
	TrimWhitespace bool

	// AllowUnbalancedQuotes accepts a record that ends while still
	// inside quotes instead of failing.
	AllowUnbalancedQuotes bool

	// RetainOuterQuotes keeps the outer quote pair on quoted fields.
	RetainOuterQuotes bool

	// RetainEscapeChars keeps escape characters in the output. When
	// false, escape characters are removed and the standard sequences
	// \n \t \r \b \f are substituted.
	RetainEscapeChars bool

	// AlwaysQuoteOutput wraps every returned field in quote characters.
	// Requires a defined quote character.
	AlwaysQuoteOutput bool

	// AllowDoubledEscapedQuotes treats two adjacent quote characters
	// inside a quoted field as one literal quote.
	AllowDoubledEscapedQuotes bool
}

// Construction-time invariant violations.
var (
	ErrSeparatorUndefined = errors.New("the separator character must be defined")
	ErrSameCharacters     = errors.New("the separator, quote, and escape characters must be different")
	ErrQuoteRequired      = errors.New("the quote character must be defined to set AlwaysQuoteOutput")
)

func (c Config) Validate() error {
	if c.Separator == 0 {
		return ErrSeparatorUndefined
	}
	if c.HasQuote && c.Separator == c.Quote {
		return ErrSameCharacters
	}
	if c.HasEscape && c.Separator == c.Escape {
		return ErrSameCharacters
	}
	if c.HasQuote && c.HasEscape && c.Quote == c.Escape {
		return ErrSameCharacters
	}
	if c.AlwaysQuoteOutput && !c.HasQuote {
		return ErrQuoteRequired
	}
	return nil
}

// isQuote reports whether r is the configured quote character.
func (c *Config) isQuote(r rune) bool {
	return c.HasQuote && r == c.Quote
}

// isEscape reports whether r is the configured escape character.
func (c *Config) isEscape(r rune) bool {
	return c.HasEscape && r == c.Escape
}
