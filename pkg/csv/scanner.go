package csv

import "io"

// Scanner provides a streaming interface for reading records one at a
// time from an io.Reader. Records are parsed incrementally, so memory
// use stays constant however large the input is.
//
// Example usage:
//
//	file, _ := os.Open("data.csv")
//	defer file.Close()
//
//	scanner := csv.NewScanner(file)
//	for scanner.Scan() {
//		record := scanner.Record()
//		fmt.Println(record)
//	}
//	if err := scanner.Err(); err != nil {
//		// handle error
//	}
type Scanner struct {
	parser *Parser
	src    io.RuneScanner
	record []string
	err    error
}

// NewScanner returns a Scanner reading records from r under the default
// dialect.
func NewScanner(r io.Reader) *Scanner {
	return NewDefault().NewScanner(r)
}

// NewScanner returns a Scanner reading records from r under the Parser's
// dialect. The Scanner takes over the reader; it must not be read from
// elsewhere while scanning.
func (p *Parser) NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		parser: p,
		src:    runeScanner(r),
	}
}

// Scan advances to the next record. It returns false at end of input or
// on error; afterwards Err reports the error, if any.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	record, err := s.parser.ParseNext(s.src)
	if err == io.EOF {
		s.record = nil
		return false
	}
	if err != nil {
		s.err = err
		s.record = nil
		return false
	}
	s.record = record
	return true
}

// Record returns the record read by the last successful Scan. The slice
// is owned by the caller; the Scanner does not reuse it.
func (s *Scanner) Record() []string {
	return s.record
}

// Err returns the first error encountered while scanning. It returns
// nil at a clean end of input.
func (s *Scanner) Err() error {
	return s.err
}

// Skip discards the next n records. It stops early without error if the
// input ends first.
func (s *Scanner) Skip(n int) error {
	for ; n > 0; n-- {
		if _, err := s.parser.ParseNext(s.src); err != nil {
			if err == io.EOF {
				return nil
			}
			s.err = err
			return err
		}
	}
	return nil
}
