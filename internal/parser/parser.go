// Package parser implements the character-level finite-state CSV
// tokenizer.
//
// The tokenizer walks the input one character at a time and dispatches
// on it in priority order: doubled quote lookahead, quote, escape, then
// (outside quotes) separator and record terminators, and finally regular
// data. A two-flag state (inQuotes, inEscape) decides how each character
// is interpreted; the interesting interactions are escaped quotes, which
// do not toggle quoting, and consecutive escape characters, which cancel
// each other.
//
// Two entry points exist. ParseLine consumes one pre-delimited record
// string and never treats CR or LF specially. ParseNext pulls characters
// from an io.RuneScanner and detects LF/CRLF record boundaries itself,
// which lets a quoted field span physical lines. io.RuneScanner supplies
// the one-character pushback both lookaheads (CRLF, doubled quote) need.
package parser

import (
	"errors"
	"io"
	"unicode/utf8"
)

// ErrUnterminatedQuote is returned when a record ends while still inside
// quotes and the dialect does not allow unbalanced quotes. The Parser
// remains usable after the failed call.
var ErrUnterminatedQuote = errors.New("unterminated quoted field at end of record")

// Parser tokenizes delimited text under one immutable Config.
//
// A Parser holds no mutable state: every call allocates its own parse
// state and field buffer, so a single Parser is safe for unsynchronized
// concurrent use from any number of goroutines.
type Parser struct {
	cfg Config
}

// New validates the dialect and returns a Parser. The returned error is
// one of the Err* invariant violations from this package.
func New(cfg Config) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Parser{cfg: cfg}, nil
}

// Config returns the dialect the Parser was built with.
func (p *Parser) Config() Config {
	return p.cfg
}

// fieldScan is the per-record scratch: the two-flag state, the raw field
// buffer, and the fields emitted so far. It lives for exactly one
// ParseLine/ParseNext call and is never aliased outside it.
type fieldScan struct {
	cfg  *Config
	st   parseState
	buf  []byte
	toks []string

	// sawQuote records whether quoting occurred in the current field.
	// Strict-quote mode discards outside-quote characters only in fields
	// that are quoted; a field with no quotes at all is kept verbatim.
	sawQuote bool
}

func newFieldScan(cfg *Config) *fieldScan {
	return &fieldScan{
		cfg:  cfg,
		buf:  getBuffer(),
		toks: make([]string, 0, 8),
	}
}

// release returns the buffer to the pool. The emitted field strings are
// copies, so recycling the buffer cannot corrupt returned records.
func (s *fieldScan) release() {
	putBuffer(s.buf)
	s.buf = nil
}

func (s *fieldScan) append(r rune) {
	s.buf = utf8.AppendRune(s.buf, r)
}

// handleQuote processes a quote character. In strict-quote mode outer
// quotes are written lazily: the first opening quote discards any
// unquoted prefix and goes into the buffer, later quoted runs reopen
// without a second opening quote, an escaped quote is plain data, and
// the closing quote is deferred to endField. Outside strict mode the
// quote is kept verbatim and stripped later by normalization if
// configured.
func (s *fieldScan) handleQuote() {
	if s.cfg.StrictQuotes {
		switch {
		case s.st.inQuotes:
			if s.st.inEscape {
				s.append(s.cfg.Quote)
			}
		case s.st.inEscape:
			if !s.sawQuote {
				s.append(s.cfg.Quote)
			}
		case !s.sawQuote:
			s.buf = s.buf[:0]
			s.sawQuote = true
			s.append(s.cfg.Quote)
		}
	} else {
		s.append(s.cfg.Quote)
	}
	s.st.quoteFound()
	s.st.escapeFound(false)
}

// handleEscape processes an escape character. The character itself is
// kept only when the dialect retains escape characters, and in
// strict-quote mode only where data survives (inside quotes, or in a
// field with no quoting).
func (s *fieldScan) handleEscape() {
	s.st.escapeFound(true)
	if s.cfg.RetainEscapeChars && (!s.cfg.StrictQuotes || s.st.inQuotes || !s.sawQuote) {
		s.append(s.cfg.Escape)
	}
}

// handleRegular processes a data character. In strict-quote mode a
// character between quoted runs of a quoted field is dropped.
func (s *fieldScan) handleRegular(r rune) {
	if s.cfg.StrictQuotes && !s.st.inQuotes && s.sawQuote {
		s.st.escapeFound(false)
		return
	}
	s.appendRegular(r)
}

// appendRegular appends a data character, substituting the standard
// escape sequences when the previous character was an escape that is not
// being retained. The escape character itself was already dropped in
// that case.
func (s *fieldScan) appendRegular(r rune) {
	if s.st.inEscape && !s.cfg.RetainEscapeChars {
		switch r {
		case 'n':
			s.append('\n')
		case 't':
			s.append('\t')
		case 'r':
			s.append('\r')
		case 'b':
			s.append('\b')
		case 'f':
			s.append('\f')
		default:
			s.append(r)
		}
	} else {
		s.append(r)
	}
	s.st.escapeFound(false)
}

// endField finishes the current field: in strict-quote mode the deferred
// closing quote is appended first when the field was quoted, then the
// buffer is normalized, emitted, and cleared.
func (s *fieldScan) endField() {
	if s.cfg.StrictQuotes && s.sawQuote {
		s.append(s.cfg.Quote)
	}
	tok := s.cfg.normalize(string(s.buf))
	s.st.escapeFound(false)
	s.sawQuote = false
	s.buf = s.buf[:0]
	s.toks = append(s.toks, tok)
}

// isBoundary reports whether a separator just read ends the current
// field. A separator inside quotes is data; a separator immediately
// after an escape character is also data and flows through the regular
// path, where the escape substitution applies.
func (s *fieldScan) isBoundary(r rune) bool {
	return r == s.cfg.Separator && !s.st.inQuotes && !s.st.inEscape
}

// ParseLine tokenizes one pre-delimited record. CR and LF have no
// special meaning here; the input is assumed to already be exactly one
// record. A nil error and at least one field are returned for any input,
// including the empty string.
func (p *Parser) ParseLine(line string) ([]string, error) {
	s := newFieldScan(&p.cfg)
	defer s.release()

	for i := 0; i < len(line); {
		r, w := utf8.DecodeRuneInString(line[i:])
		i += w

		switch {
		case p.cfg.isQuote(r):
			if p.cfg.AllowDoubledEscapedQuotes && s.st.inQuotes {
				if nr, nw := utf8.DecodeRuneInString(line[i:]); nw > 0 && p.cfg.isQuote(nr) {
					// two adjacent quotes inside quotes: one literal quote
					s.append(nr)
					i += nw
					continue
				}
			}
			s.handleQuote()
		case p.cfg.isEscape(r):
			s.handleEscape()
		case s.isBoundary(r):
			s.endField()
		default:
			s.handleRegular(r)
		}
	}

	if s.st.inQuotes && !p.cfg.AllowUnbalancedQuotes {
		return nil, ErrUnterminatedQuote
	}
	s.endField()
	return s.toks, nil
}

// ParseNext tokenizes the next record from src, consuming characters up
// to and including the record terminator. LF and CRLF end a record only
// outside quotes, so quoted fields may contain raw line breaks. A lone
// CR is data. At end of input with no characters read, ParseNext returns
// io.EOF; otherwise whatever was read is finalized as the last record
// even without a trailing terminator. Any other read error aborts the
// call without returning a partial record.
func (p *Parser) ParseNext(src io.RuneScanner) ([]string, error) {
	r, _, err := src.ReadRune()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, err
	}

	s := newFieldScan(&p.cfg)
	defer s.release()

scan:
	for {
		switch {
		case p.cfg.isQuote(r):
			if p.cfg.AllowDoubledEscapedQuotes && s.st.inQuotes {
				nr, _, nerr := src.ReadRune()
				switch {
				case nerr == io.EOF:
					s.handleQuote()
					break scan
				case nerr != nil:
					return nil, nerr
				case p.cfg.isQuote(nr):
					// two adjacent quotes inside quotes: one literal quote
					s.append(nr)
				default:
					// the quote closed the field; re-dispatch the
					// character we looked at
					s.handleQuote()
					r = nr
					continue scan
				}
			} else {
				s.handleQuote()
			}

		case p.cfg.isEscape(r):
			s.handleEscape()

		case !s.st.inQuotes:
			switch {
			case s.isBoundary(r):
				s.endField()
			case r == '\n':
				break scan
			case r == '\r':
				nr, _, nerr := src.ReadRune()
				switch {
				case nerr == io.EOF:
					s.handleRegular('\r')
					break scan
				case nerr != nil:
					return nil, nerr
				case nr == '\n':
					break scan
				default:
					// bare CR is data; re-dispatch the lookahead
					s.handleRegular('\r')
					r = nr
					continue scan
				}
			default:
				s.handleRegular(r)
			}

		default:
			s.handleRegular(r)
		}

		r, _, err = src.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if s.st.inQuotes && !p.cfg.AllowUnbalancedQuotes {
		return nil, ErrUnterminatedQuote
	}
	s.endField()
	return s.toks, nil
}
