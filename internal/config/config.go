package config

// Default option values. The output defaults match the tool's historical
// behavior of writing next to the working directory.
const (
	DefaultOutputTextFile = "./html_text.txt"
	DefaultOutputDir      = "./rest"
	DefaultWidth          = 80
	DefaultFormat         = "trivial"
)

// Formats are the recognized text decoration styles, in help-text order.
var Formats = []string{"trivial", "plain", "rich"}

// Options holds all CLI options for a ziptext run. It is populated once
// during argument parsing and never mutated after the pipeline starts.
type Options struct {
	InputFile      string
	OutputTextFile string
	OutputDir      string
	Width          int    // wrap column for rendered text; 0 disables wrapping
	Artifacts      bool   // wrap each rendered entry in begin/end marker lines
	Format         string // one of Formats
	Sniff          bool   // classify with file(1) instead of by extension
	ConfigFile     string // explicit YAML defaults file; empty = search
	Verbose        bool
}

// Validate checks the option values that flags alone cannot constrain.
func (o *Options) Validate() error {
	if o.Width < 0 {
		return ErrInvalidWidth
	}
	for _, f := range Formats {
		if o.Format == f {
			return nil
		}
	}
	return ErrInvalidFormat
}
