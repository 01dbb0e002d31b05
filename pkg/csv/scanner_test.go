package csv

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestScanner_AllRecords(t *testing.T) {
	sc := NewScanner(strings.NewReader("a,b\nc,d\ne,f\n"))

	var got [][]string
	for sc.Scan() {
		got = append(got, sc.Record())
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"a", "b"}, {"c", "d"}, {"e", "f"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("scanned %q, want %q", got, want)
	}
}

func TestScanner_MultiLineRecord(t *testing.T) {
	sc := NewScanner(strings.NewReader("\"line one\nline two\",x\ny,z"))

	if !sc.Scan() {
		t.Fatal("Scan() = false, want true")
	}
	if want := []string{"line one\nline two", "x"}; !reflect.DeepEqual(sc.Record(), want) {
		t.Errorf("Record() = %q, want %q", sc.Record(), want)
	}
	if !sc.Scan() {
		t.Fatal("second Scan() = false, want true")
	}
	if sc.Scan() {
		t.Error("Scan() past end = true, want false")
	}
	if err := sc.Err(); err != nil {
		t.Errorf("Err() = %v after clean end", err)
	}
}

func TestScanner_CustomDialect(t *testing.T) {
	opts := DefaultOptions()
	opts.Separator = '|'
	p, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}

	sc := p.NewScanner(strings.NewReader("a|b\nc|d"))
	if !sc.Scan() {
		t.Fatal("Scan() = false, want true")
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(sc.Record(), want) {
		t.Errorf("Record() = %q, want %q", sc.Record(), want)
	}
}

func TestScanner_Error(t *testing.T) {
	sc := NewScanner(strings.NewReader("a,b\n\"unterminated"))

	if !sc.Scan() {
		t.Fatal("first Scan() = false, want true")
	}
	if sc.Scan() {
		t.Fatal("Scan() on bad record = true, want false")
	}
	if err := sc.Err(); !errors.Is(err, ErrUnterminatedQuote) {
		t.Errorf("Err() = %v, want ErrUnterminatedQuote", err)
	}
	if sc.Record() != nil {
		t.Errorf("Record() after failure = %q, want nil", sc.Record())
	}
	if sc.Scan() {
		t.Error("Scan() after failure = true, want false")
	}
}

func TestScanner_Skip(t *testing.T) {
	sc := NewScanner(strings.NewReader("a,b\nc,d\ne,f"))

	if err := sc.Skip(2); err != nil {
		t.Fatal(err)
	}
	if !sc.Scan() {
		t.Fatal("Scan() after Skip = false, want true")
	}
	if want := []string{"e", "f"}; !reflect.DeepEqual(sc.Record(), want) {
		t.Errorf("Record() = %q, want %q", sc.Record(), want)
	}
}

func TestScanner_SkipPastEnd(t *testing.T) {
	sc := NewScanner(strings.NewReader("a,b"))

	if err := sc.Skip(10); err != nil {
		t.Fatalf("Skip past end err = %v, want nil", err)
	}
	if sc.Scan() {
		t.Error("Scan() after exhausted Skip = true, want false")
	}
	if err := sc.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}
