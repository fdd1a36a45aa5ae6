package bytesize

import (
	"fmt"
	"io"
	"strconv"

	"bytesize/pkg/textalign"
)

// DefaultPrecision is the number of fractional digits rendered when none is
// requested.
const DefaultPrecision = 1

// Display renders a ByteSize. The zero Display renders 0 B in IEC style; use
// ByteSize.Display to start from a value.
//
//	bytesize.Mebibytes(1).Display().String()          // "1.0 MiB"
//	bytesize.Kilobytes(42).Display().SIShort().String() // "42.0k"
//
// Fractional values are rounded correctly from the exact binary value with
// exact decimal ties going to even, as strconv.FormatFloat does.
type Display struct {
	size      ByteSize
	format    Format
	precision int
	selector  Selector
	align     textalign.Spec
}

// Display returns a renderer for s using IEC units and DefaultPrecision.
func (s ByteSize) Display() Display {
	return Display{size: s, format: IEC, precision: DefaultPrecision}
}

// String renders s with IEC units, e.g. "1.5 KiB".
func (s ByteSize) String() string {
	return s.Display().String()
}

// Format implements fmt.Formatter; see Display.Format.
func (s ByteSize) Format(st fmt.State, verb rune) {
	s.Display().Format(st, verb)
}

// IEC selects binary units, e.g. "11.8 MiB".
func (d Display) IEC() Display { return d.As(IEC) }

// IECShort selects binary units in short style, e.g. "11.8M".
func (d Display) IECShort() Display { return d.As(IECShort) }

// SI selects decimal units, e.g. "12.3 MB".
func (d Display) SI() Display { return d.As(SI) }

// SIShort selects decimal units in short style, e.g. "12.3M".
func (d Display) SIShort() Display { return d.As(SIShort) }

// IECBits renders the bit count with binary units, e.g. "12.3 Mib".
func (d Display) IECBits() Display { return d.As(IECBits) }

// SIBits renders the bit count with decimal units, e.g. "12.3 Mb".
func (d Display) SIBits() Display { return d.As(SIBits) }

// As selects the format.
func (d Display) As(f Format) Display {
	d.format = f
	return d
}

// Precision sets the number of fractional digits. Negative values restore
// DefaultPrecision. Values below the first prefix are always whole numbers.
func (d Display) Precision(n int) Display {
	if n < 0 {
		n = DefaultPrecision
	}
	d.precision = n
	return d
}

// WithSelector overrides DefaultSelector.
func (d Display) WithSelector(sel Selector) Display {
	d.selector = sel
	return d
}

// Align pads the rendered text according to spec.
func (d Display) Align(spec textalign.Spec) Display {
	d.align = spec
	return d
}

// Size returns the value being rendered.
func (d Display) Size() ByteSize { return d.size }

func (d Display) String() string {
	var buf [32]byte
	return d.align.Apply(string(d.appendTo(buf[:0])))
}

// Format implements fmt.Formatter. The v and s verbs render the value; a
// precision ("%.3v") overrides the configured precision and a width
// right-aligns the result, or left-aligns it with the '-' flag. The d verb
// prints the raw byte count.
func (d Display) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v', 's':
		if p, ok := st.Precision(); ok {
			d = d.Precision(p)
		}
		if w, ok := st.Width(); ok {
			d.align.Width = w
			d.align.Align = textalign.Right
			if st.Flag('-') {
				d.align.Align = textalign.Left
			}
		}
		io.WriteString(st, d.String())
	case 'd':
		fmt.Fprintf(st, fmt.FormatString(st, verb), uint64(d.size))
	default:
		fmt.Fprintf(st, "%%!%c(bytesize.ByteSize=%d)", verb, uint64(d.size))
	}
}

func (d Display) appendTo(dst []byte) []byte {
	u := d.format.units()
	n := uint64(d.size)

	// n*scale < base, checked without multiplying so bit formats cannot overflow.
	if n < u.base/u.scale {
		dst = strconv.AppendUint(dst, n*u.scale, 10)
		dst = append(dst, u.separator...)
		return append(dst, u.symbol()...)
	}

	sel := d.selector
	if sel == nil {
		sel = DefaultSelector
	}
	size := float64(n) * float64(u.scale)
	tier := min(max(sel.Tier(size, u.base, u.lnBase), 1), maxTier)

	dst = strconv.AppendFloat(dst, size/u.powers[tier], 'f', d.precision, 64)
	dst = append(dst, u.separator...)
	dst = append(dst, u.prefix(tier))
	return append(dst, u.suffix...)
}
