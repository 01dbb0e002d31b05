// Package csv options: the dialect a parser is constructed with.
package csv

import "github.com/shapestone/simplecsv/internal/parser"

// Char is an optional dialect character. The zero value is "unset":
// an unset quote means no quoting and an unset escape means no escaping.
// Using an explicit optional avoids reserving a sentinel character that
// could collide with real data.
type Char struct {
	r   rune
	set bool
}

// NewChar returns a set Char holding r.
func NewChar(r rune) Char {
	return Char{r: r, set: true}
}

// NoChar is the unset Char.
var NoChar = Char{}

// Rune returns the character; only meaningful when IsSet reports true.
func (c Char) Rune() rune { return c.r }

// IsSet reports whether the character is defined.
func (c Char) IsSet() bool { return c.set }

// Options configures the parsing dialect.
// The zero value is not usable; start from DefaultOptions.
type Options struct {
	// Separator is the field delimiter. It must always be defined.
	// Default: ','
	Separator rune

	// Quote is the quote character. Unset means no quoting.
	// Default: '"'
	Quote Char

	// Escape is the escape character. Unset means no escaping.
	// Default: unset
	Escape Char

	// StrictQuotes keeps only characters that appear between quote
	// characters in fields where quoting occurs; a field containing no
	// quotes at all is kept verbatim.
	// Default: false
	StrictQuotes bool

	// TrimWhitespace trims leading and trailing whitespace from each
	// field before it is returned.
	// Default: false
	TrimWhitespace bool

	// AllowUnbalancedQuotes accepts records that end while still inside
	// quotes instead of returning ErrUnterminatedQuote.
	// Default: false
	AllowUnbalancedQuotes bool

	// RetainOuterQuotes keeps the outer quote pair on quoted fields
	// instead of stripping it.
	// Default: false
	RetainOuterQuotes bool

	// RetainEscapeChars keeps escape characters in returned fields. When
	// false they are removed and the sequences \n \t \r \b \f are
	// substituted.
	// Default: false
	RetainEscapeChars bool

	// AlwaysQuoteOutput wraps every returned field in quote characters.
	// Requires Quote to be set.
	// Default: false
	AlwaysQuoteOutput bool

	// AllowDoubledEscapedQuotes treats two adjacent quote characters
	// inside a quoted field as one literal quote, independent of the
	// escape character.
	// Default: false
	AllowDoubledEscapedQuotes bool
}

// DefaultOptions returns the default dialect: comma-separated,
// double-quoted, no escape character, all behavioral flags off.
func DefaultOptions() Options {
	return Options{
		Separator: ',',
		Quote:     NewChar('"'),
	}
}

// Validate checks the dialect invariants: the separator must be defined,
// separator/quote/escape must be pairwise distinct where defined, and
// AlwaysQuoteOutput requires a defined quote.
func (o Options) Validate() error {
	if err := o.config().Validate(); err != nil {
		return &OptionsError{Err: err}
	}
	return nil
}

// config maps the public Options onto the internal parser Config.
func (o Options) config() parser.Config {
	return parser.Config{
		Separator:                 o.Separator,
		Quote:                     o.Quote.Rune(),
		HasQuote:                  o.Quote.IsSet(),
		Escape:                    o.Escape.Rune(),
		HasEscape:                 o.Escape.IsSet(),
		StrictQuotes:              o.StrictQuotes,
		TrimWhitespace:            o.TrimWhitespace,
		AllowUnbalancedQuotes:     o.AllowUnbalancedQuotes,
		RetainOuterQuotes:         o.RetainOuterQuotes,
		RetainEscapeChars:         o.RetainEscapeChars,
		AlwaysQuoteOutput:         o.AlwaysQuoteOutput,
		AllowDoubledEscapedQuotes: o.AllowDoubledEscapedQuotes,
	}
}
