package cmd

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"bytesize/pkg/bytesize"
	"bytesize/pkg/configutil"
	"bytesize/pkg/textalign"
)

// sizeValue is a pflag.Value accepting "10MiB", "1.5 GB" or plain byte counts.
type sizeValue struct {
	size bytesize.ByteSize
	set  bool
}

func (v *sizeValue) String() string {
	if v == nil || !v.set {
		return ""
	}
	return v.size.String()
}

func (v *sizeValue) Set(raw string) error {
	size, err := configutil.ParseByteSize(raw)
	if err != nil {
		return err
	}
	v.size, v.set = size, true
	return nil
}

func (v *sizeValue) Type() string { return "size" }

// formatValue is a pflag.Value over bytesize.Format names.
type formatValue struct {
	format bytesize.Format
	set    bool
}

func (v *formatValue) String() string {
	if v == nil || !v.set {
		return ""
	}
	return v.format.String()
}

func (v *formatValue) Set(raw string) error {
	f, err := bytesize.ParseFormat(raw)
	if err != nil {
		return err
	}
	v.format, v.set = f, true
	return nil
}

func (v *formatValue) Type() string { return "format" }

// displayFlags are the rendering options shared by render, parse and du.
type displayFlags struct {
	format    formatValue
	precision int
	width     int
	align     string
	fill      string
}

func (f *displayFlags) bind(fs *pflag.FlagSet, withAlign bool) {
	fs.VarP(&f.format, "format", "f", "Output format: iec, iec-short, si, si-short, iec-bits, si-bits (default from config)")
	fs.IntVarP(&f.precision, "precision", "p", -1, "Fractional digits (default from config)")
	if withAlign {
		fs.IntVarP(&f.width, "width", "w", 0, "Pad output to this many columns")
		fs.StringVar(&f.align, "align", "left", "Alignment within --width: left, right, center")
		fs.StringVar(&f.fill, "fill", " ", "Single fill character for --width")
	}
}

// renderer resolves the flags against the configured display defaults.
func (f *displayFlags) renderer(st *state) (func(bytesize.ByteSize) string, error) {
	format := st.cfg.Display.Format
	if f.format.set {
		format = f.format.format
	}
	precision := st.cfg.Display.Precision
	if f.precision >= 0 {
		precision = f.precision
	}
	var spec textalign.Spec
	if f.width > 0 {
		align, err := textalign.ParseAlignment(f.align)
		if err != nil {
			return nil, err
		}
		fill, n := utf8.DecodeRuneInString(f.fill)
		if fill == utf8.RuneError || n != len(f.fill) {
			return nil, fmt.Errorf("--fill must be a single character, got %q", f.fill)
		}
		spec = textalign.Spec{Width: f.width, Align: align, Fill: fill}
	}
	return func(size bytesize.ByteSize) string {
		return size.Display().As(format).Precision(precision).Align(spec).String()
	}, nil
}
