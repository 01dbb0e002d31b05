// Dialect flag plumbing: maps command-line flags and YAML presets onto
// csv.Options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/shapestone/simplecsv/pkg/csv"
)

// runeValue is a pflag.Value holding exactly one character.
type runeValue struct {
	r *rune
}

func (v runeValue) String() string {
	if v.r == nil || *v.r == 0 {
		return ""
	}
	return string(*v.r)
}

func (v runeValue) Set(s string) error {
	rs := []rune(s)
	if len(rs) != 1 {
		return fmt.Errorf("expected exactly one character, got %q", s)
	}
	*v.r = rs[0]
	return nil
}

func (v runeValue) Type() string { return "char" }

// dialectFlags collects the dialect-related persistent flags.
type dialectFlags struct {
	separator rune
	quote     rune
	escape    rune
	noQuote   bool

	strictQuotes    bool
	trim            bool
	allowUnbalanced bool
	retainQuotes    bool
	retainEscapes   bool
	alwaysQuote     bool
	doubledQuotes   bool

	preset      string
	presetsFile string
}

func newDialectFlags() *dialectFlags {
	return &dialectFlags{
		separator: ',',
		quote:     '"',
	}
}

func (d *dialectFlags) register(fs *pflag.FlagSet) {
	fs.Var(runeValue{&d.separator}, "separator", "field separator character")
	fs.Var(runeValue{&d.quote}, "quote", "quote character")
	fs.BoolVar(&d.noQuote, "no-quote", false, "disable quoting entirely")
	fs.Var(runeValue{&d.escape}, "escape", "escape character (unset by default)")
	fs.BoolVar(&d.strictQuotes, "strict-quotes", false, "discard characters outside quotes")
	fs.BoolVar(&d.trim, "trim", false, "trim leading/trailing whitespace from fields")
	fs.BoolVar(&d.allowUnbalanced, "allow-unbalanced", false, "accept records with unbalanced quotes")
	fs.BoolVar(&d.retainQuotes, "retain-quotes", false, "keep outer quotes on quoted fields")
	fs.BoolVar(&d.retainEscapes, "retain-escapes", false, "keep escape characters in fields")
	fs.BoolVar(&d.alwaysQuote, "always-quote", false, "wrap every output field in quotes")
	fs.BoolVar(&d.doubledQuotes, "doubled-quotes", false, "treat doubled quotes inside quotes as one literal quote")
	fs.StringVar(&d.preset, "preset", "", "named dialect preset from the presets file")
	fs.StringVar(&d.presetsFile, "presets", "", "YAML file of named dialect presets")
}

// parser builds the csv.Parser for the effective dialect: defaults,
// overlaid with the chosen preset, overlaid with any flag the user set
// explicitly.
func (d *dialectFlags) parser(cmd *cobra.Command) (*csv.Parser, error) {
	opts := csv.DefaultOptions()

	if d.preset != "" {
		if d.presetsFile == "" {
			return nil, fmt.Errorf("--preset %q given without --presets file", d.preset)
		}
		preset, err := loadPreset(d.presetsFile, d.preset)
		if err != nil {
			return nil, err
		}
		opts = preset
	}

	flags := cmd.Flags()
	if flags.Changed("separator") {
		opts.Separator = d.separator
	}
	if flags.Changed("quote") {
		opts.Quote = csv.NewChar(d.quote)
	}
	if d.noQuote {
		opts.Quote = csv.NoChar
	}
	if flags.Changed("escape") {
		opts.Escape = csv.NewChar(d.escape)
	}
	if flags.Changed("strict-quotes") {
		opts.StrictQuotes = d.strictQuotes
	}
	if flags.Changed("trim") {
		opts.TrimWhitespace = d.trim
	}
	if flags.Changed("allow-unbalanced") {
		opts.AllowUnbalancedQuotes = d.allowUnbalanced
	}
	if flags.Changed("retain-quotes") {
		opts.RetainOuterQuotes = d.retainQuotes
	}
	if flags.Changed("retain-escapes") {
		opts.RetainEscapeChars = d.retainEscapes
	}
	if flags.Changed("always-quote") {
		opts.AlwaysQuoteOutput = d.alwaysQuote
	}
	if flags.Changed("doubled-quotes") {
		opts.AllowDoubledEscapedQuotes = d.doubledQuotes
	}

	return csv.New(opts)
}

// presetSpec is one named dialect in a presets file. Characters are
// one-character strings; an empty quote/escape string means unset.
type presetSpec struct {
	Separator                 string `yaml:"separator"`
	Quote                     string `yaml:"quote"`
	Escape                    string `yaml:"escape"`
	StrictQuotes              bool   `yaml:"strictQuotes"`
	TrimWhitespace            bool   `yaml:"trimWhitespace"`
	AllowUnbalancedQuotes     bool   `yaml:"allowUnbalancedQuotes"`
	RetainOuterQuotes         bool   `yaml:"retainOuterQuotes"`
	RetainEscapeChars         bool   `yaml:"retainEscapeChars"`
	AlwaysQuoteOutput         bool   `yaml:"alwaysQuoteOutput"`
	AllowDoubledEscapedQuotes bool   `yaml:"allowDoubledEscapedQuotes"`
}

type presetFile struct {
	Presets map[string]presetSpec `yaml:"presets"`
}

func loadPreset(path, name string) (csv.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return csv.Options{}, err
	}
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return csv.Options{}, fmt.Errorf("parsing presets file %s: %w", path, err)
	}
	spec, ok := file.Presets[name]
	if !ok {
		return csv.Options{}, fmt.Errorf("presets file %s has no preset %q", path, name)
	}
	return spec.options()
}

func (s presetSpec) options() (csv.Options, error) {
	opts := csv.DefaultOptions()

	parseChar := func(field, val string) (csv.Char, error) {
		rs := []rune(val)
		if len(rs) != 1 {
			return csv.NoChar, fmt.Errorf("preset %s must be exactly one character, got %q", field, val)
		}
		return csv.NewChar(rs[0]), nil
	}

	if s.Separator != "" {
		c, err := parseChar("separator", s.Separator)
		if err != nil {
			return csv.Options{}, err
		}
		opts.Separator = c.Rune()
	}
	if s.Quote != "" {
		c, err := parseChar("quote", s.Quote)
		if err != nil {
			return csv.Options{}, err
		}
		opts.Quote = c
	} else {
		opts.Quote = csv.NoChar
	}
	if s.Escape != "" {
		c, err := parseChar("escape", s.Escape)
		if err != nil {
			return csv.Options{}, err
		}
		opts.Escape = c
	}

	opts.StrictQuotes = s.StrictQuotes
	opts.TrimWhitespace = s.TrimWhitespace
	opts.AllowUnbalancedQuotes = s.AllowUnbalancedQuotes
	opts.RetainOuterQuotes = s.RetainOuterQuotes
	opts.RetainEscapeChars = s.RetainEscapeChars
	opts.AlwaysQuoteOutput = s.AlwaysQuoteOutput
	opts.AllowDoubledEscapedQuotes = s.AllowDoubledEscapedQuotes
	return opts, nil
}
