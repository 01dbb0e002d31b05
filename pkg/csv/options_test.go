package csv

import (
	"errors"
	"testing"
)

func TestChar(t *testing.T) {
	if NoChar.IsSet() {
		t.Error("NoChar reports set")
	}
	c := NewChar('|')
	if !c.IsSet() || c.Rune() != '|' {
		t.Errorf("NewChar('|') = %+v", c)
	}
	var zero Char
	if zero.IsSet() {
		t.Error("zero Char reports set")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Separator != ',' {
		t.Errorf("Separator = %q, want ','", opts.Separator)
	}
	if !opts.Quote.IsSet() || opts.Quote.Rune() != '"' {
		t.Errorf("Quote = %+v, want set '\"'", opts.Quote)
	}
	if opts.Escape.IsSet() {
		t.Errorf("Escape = %+v, want unset", opts.Escape)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("default options invalid: %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr error
	}{
		{"default ok", func(o *Options) {}, nil},
		{"undefined separator", func(o *Options) { o.Separator = 0 }, ErrSeparatorUndefined},
		{"separator equals quote", func(o *Options) { o.Separator = '"' }, ErrSameCharacters},
		{"quote equals escape", func(o *Options) { o.Escape = NewChar('"') }, ErrSameCharacters},
		{"separator equals escape", func(o *Options) { o.Escape = NewChar(',') }, ErrSameCharacters},
		{"always quote without quote", func(o *Options) { o.Quote = NoChar; o.AlwaysQuoteOutput = true }, ErrQuoteRequired},
		{"no quote no escape ok", func(o *Options) { o.Quote = NoChar }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
			var optsErr *OptionsError
			if !errors.As(err, &optsErr) {
				t.Fatalf("Validate() error type %T, want *OptionsError", err)
			}
		})
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Separator = '"'
	p, err := New(opts)
	if p != nil {
		t.Fatal("New returned a parser for invalid options")
	}
	var optsErr *OptionsError
	if !errors.As(err, &optsErr) {
		t.Fatalf("New error type %T, want *OptionsError", err)
	}
	if !errors.Is(err, ErrSameCharacters) {
		t.Fatalf("New error = %v, want ErrSameCharacters", err)
	}
}
