package parser

// parseState is the two-flag finite state driving a single record parse.
// It is created fresh for every record and discarded at record end.
type parseState struct {
	inQuotes bool
	inEscape bool
}

// quoteFound records that a quote character was read. An escaped quote
// does not open or close quoting.
func (st *parseState) quoteFound() {
	if !st.inEscape {
		st.inQuotes = !st.inQuotes
	}
}

// escapeFound records whether the character just read was an escape
// character. Two consecutive escape characters cancel each other, so a
// seen escape toggles rather than sets the flag; anything else clears it.
func (st *parseState) escapeFound(seen bool) {
	if seen {
		st.inEscape = !st.inEscape
	} else {
		st.inEscape = false
	}
}
