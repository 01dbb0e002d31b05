// Package csv parses delimited text into records of field strings under
// a configurable dialect.
//
// The dialect (Options) controls the separator, an optional quote
// character, an optional escape character, and the behavioral flags
// strict quotes, whitespace trimming, unbalanced-quote tolerance,
// outer-quote retention, escape-character retention, forced output
// quoting, and doubled-quote escaping. It is validated once when the
// Parser is constructed and immutable afterwards.
//
// Two input shapes are supported:
//
//   - Parse takes one pre-delimited record as a string. Line breaks have
//     no special meaning there.
//   - ParseNext pulls the next record from a streaming character source
//     and itself detects LF/CRLF record boundaries, so a quoted field
//     may span multiple physical lines. It returns io.EOF when the
//     source is drained.
//
// # Thread Safety
//
// A Parser holds only its immutable dialect; all per-record state is
// allocated per call. One Parser may be shared by any number of
// goroutines. A Scanner owns its reader and must be confined to one
// caller at a time.
//
// Example:
//
//	p := csv.NewDefault()
//	record, err := p.Parse(`"a,b",c`)
//	// record == []string{"a,b", "c"}
package csv

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shapestone/simplecsv/internal/parser"
)

// Parser tokenizes delimited text under one immutable dialect.
type Parser struct {
	inner *parser.Parser
	opts  Options
}

// New validates the dialect and returns a Parser. On an invariant
// violation the returned error is a *OptionsError and no Parser is
// created.
func New(opts Options) (*Parser, error) {
	inner, err := parser.New(opts.config())
	if err != nil {
		return nil, &OptionsError{Err: err}
	}
	return &Parser{inner: inner, opts: opts}, nil
}

// NewDefault returns a Parser for the default dialect. The default
// dialect always satisfies the invariants, so no error is possible.
func NewDefault() *Parser {
	p, err := New(DefaultOptions())
	if err != nil {
		panic(err) // unreachable: the default dialect is valid
	}
	return p
}

// Options returns the dialect the Parser was built with.
func (p *Parser) Options() Options {
	return p.opts
}

// Parse tokenizes one pre-delimited record and returns its fields. CR
// and LF are ordinary data here; use ParseNext for input where line
// breaks separate records. Every record has at least one field, so
// Parse("") returns []string{""}.
//
// If the record ends inside quotes and the dialect does not allow
// unbalanced quotes, Parse returns ErrUnterminatedQuote.
func (p *Parser) Parse(line string) ([]string, error) {
	return p.inner.ParseLine(line)
}

// ParseNext returns the next record from src, or io.EOF once the source
// is drained. Call it repeatedly to consume all records. Read errors
// from src propagate unchanged and abort the in-progress record.
func (p *Parser) ParseNext(src io.RuneScanner) ([]string, error) {
	return p.inner.ParseNext(src)
}

// ParseFirstRecord returns the first record of data, or io.EOF if data
// holds no records.
func (p *Parser) ParseFirstRecord(data string) ([]string, error) {
	return p.ParseNthRecord(data, 1)
}

// ParseNthRecord returns the n-th record of data, counting from 1. It
// returns ErrRecordNumber (wrapped) if n is not positive and io.EOF if
// data holds fewer than n records.
func (p *Parser) ParseNthRecord(data string, n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrRecordNumber, n)
	}
	src := strings.NewReader(data)
	for ; n > 1; n-- {
		if _, err := p.inner.ParseNext(src); err != nil {
			return nil, err
		}
	}
	return p.inner.ParseNext(src)
}

// ReadAll drains every record from r.
func (p *Parser) ReadAll(r io.Reader) ([][]string, error) {
	src := runeScanner(r)
	records := make([][]string, 0, 16)
	for {
		record, err := p.inner.ParseNext(src)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// Parse tokenizes one pre-delimited record under the default dialect.
//
// Example:
//
//	record, err := csv.Parse("a,b,c")
//	// record == []string{"a", "b", "c"}
func Parse(line string) ([]string, error) {
	return NewDefault().Parse(line)
}

// runeScanner adapts an io.Reader to the pushback-capable source the
// tokenizer needs, reusing the reader's own lookahead when it has one.
func runeScanner(r io.Reader) io.RuneScanner {
	if rs, ok := r.(io.RuneScanner); ok {
		return rs
	}
	return bufio.NewReader(r)
}
