package bytesize

import (
	"fmt"
	"math/bits"
	"testing"
	"testing/quick"

	"bytesize/pkg/textalign"
)

func TestDisplayFormats(t *testing.T) {
	tests := []struct {
		size   ByteSize
		format Format
		want   string
	}{
		{Bytes(215), IEC, "215 B"},
		{Bytes(215), SI, "215 B"},
		{Kibibytes(1), IEC, "1.0 KiB"},
		{Kibibytes(1), SI, "1.0 kB"},
		{Kilobytes(1), SI, "1.0 kB"},
		{Kilobytes(301), IEC, "293.9 KiB"},
		{Kilobytes(301), SI, "301.0 kB"},
		{Mebibytes(1), IEC, "1.0 MiB"},
		{Mebibytes(1), SI, "1.0 MB"},
		{Mebibytes(1907), IEC, "1.9 GiB"},
		{Mebibytes(1908), SI, "2.0 GB"},
		{Megabytes(419), IEC, "399.6 MiB"},
		{Megabytes(419), SI, "419.0 MB"},
		{Gigabytes(518), IEC, "482.4 GiB"},
		{Gigabytes(518), SI, "518.0 GB"},
		{Terabytes(815), IEC, "741.2 TiB"},
		{Terabytes(815), SI, "815.0 TB"},
		{Petabytes(609), IEC, "540.9 PiB"},
		{Petabytes(609), SI, "609.0 PB"},
		{Gibibytes(1), IEC, "1.0 GiB"},
		{Gigabytes(1), IEC, "953.7 MiB"},
		{Gibibytes(1), SI, "1.1 GB"},
		{Gigabytes(1), SI, "1.0 GB"},
		{Gibibytes(1), IECShort, "1.0G"},
		{Gigabytes(1), IECShort, "953.7M"},
		{Kilobytes(42), SIShort, "42.0k"},
		{Bytes(215), IECShort, "215B"},
		{Bytes(1), IECBits, "8 b"},
		{Bytes(1), SIBits, "8 b"},
		{Bytes(8555), IECBits, "8.4 Kib"},
		{Bytes(8555), SIBits, "8.6 kb"},
		{Bytes(0), IEC, "0 B"},
		{Bytes(1023), IEC, "1023 B"},
		{Bytes(999), SI, "999 B"},
		{Exbibytes(15), IEC, "15.0 EiB"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%s", tt.size.Uint64(), tt.format), func(t *testing.T) {
			if got := tt.size.Display().As(tt.format).String(); got != tt.want {
				t.Fatalf("Display(%d).As(%s) = %q, want %q", tt.size.Uint64(), tt.format, got, tt.want)
			}
		})
	}
}

func TestDisplayBuilders(t *testing.T) {
	d := Mebibytes(1).Display()
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"iec", d.SI().IEC().String(), "1.0 MiB"},
		{"iec short", d.IECShort().String(), "1.0M"},
		{"si", d.SI().String(), "1.0 MB"},
		{"si short", d.SIShort().String(), "1.0M"},
		{"iec bits", d.IECBits().String(), "1024.0 Kib"},
		{"si bits", d.SIBits().String(), "1048.6 kb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestDisplayPrecision(t *testing.T) {
	size := Mebibytes(1908)
	if got := size.String(); got != "1.9 GiB" {
		t.Fatalf("String() = %q, want %q", got, "1.9 GiB")
	}
	if got := size.Display().Precision(0).String(); got != "2 GiB" {
		t.Fatalf("Precision(0) = %q, want %q", got, "2 GiB")
	}
	if got := size.Display().Precision(5).String(); got != "1.86328 GiB" {
		t.Fatalf("Precision(5) = %q, want %q", got, "1.86328 GiB")
	}
	if got := size.Display().Precision(-3).String(); got != "1.9 GiB" {
		t.Fatalf("Precision(-3) = %q, want %q", got, "1.9 GiB")
	}
	if got := Bytes(215).Display().Precision(3).String(); got != "215 B" {
		t.Fatalf("Precision(3) below base = %q, want %q", got, "215 B")
	}
}

func TestDisplayFmtVerbs(t *testing.T) {
	size := Mebibytes(1908)
	tests := []struct {
		format string
		arg    any
		want   string
	}{
		{"%v", size, "1.9 GiB"},
		{"%s", size, "1.9 GiB"},
		{"%.0v", size, "2 GiB"},
		{"%.5v", size, "1.86328 GiB"},
		{"%10v", size, "   1.9 GiB"},
		{"%-10v|", size, "1.9 GiB   |"},
		{"%d", size, "2000683008"},
		{"%12d", Bytes(42), "          42"},
		{"%x", Bytes(42), "%!x(bytesize.ByteSize=42)"},
		{"%v", size.Display().SI(), "2.0 GB"},
		{"%.2v", size.Display().SI(), "2.00 GB"},
		{"%v", []ByteSize{KiB, MiB}, "[1.0 KiB 1.0 MiB]"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := fmt.Sprintf(tt.format, tt.arg); got != tt.want {
				t.Fatalf("Sprintf(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestDisplayAlign(t *testing.T) {
	d := Kibibytes(1).Display()
	tests := []struct {
		name string
		spec textalign.Spec
		want string
	}{
		{"none", textalign.Spec{}, "1.0 KiB"},
		{"left", textalign.Spec{Width: 10, Align: textalign.Left}, "1.0 KiB   "},
		{"right", textalign.Spec{Width: 10, Align: textalign.Right}, "   1.0 KiB"},
		{"center", textalign.Spec{Width: 10, Align: textalign.Center, Fill: '*'}, "*1.0 KiB**"},
		{"narrow", textalign.Spec{Width: 3, Align: textalign.Right}, "1.0 KiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Align(tt.spec).String(); got != tt.want {
				t.Fatalf("Align(%+v) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestDisplayExactBoundaries(t *testing.T) {
	for _, f := range Formats() {
		u := f.units()
		for tier := 1; tier <= maxTier; tier++ {
			// base^tier counted in the format's own unit, converted back to bytes.
			hi, power := bits.Mul64(1, 1)
			for i := 0; i < tier; i++ {
				if hi != 0 {
					break
				}
				hi, power = bits.Mul64(power, u.base)
			}
			if hi != 0 || power%u.scale != 0 {
				continue
			}
			size := ByteSize(power / u.scale)
			want := fmt.Sprintf("1.0%s%c%s", u.separator, u.prefix(tier), u.suffix)
			for _, sel := range []Selector{IterativeSelector{}, LogSelector{}} {
				if got := size.Display().As(f).WithSelector(sel).String(); got != want {
					t.Fatalf("%s tier %d with %T = %q, want %q", f, tier, sel, got, want)
				}
			}
		}
	}
}

func TestDisplayLength(t *testing.T) {
	check := func(n uint64) bool {
		for _, f := range Formats() {
			got := Bytes(n).Display().As(f).String()
			limit := 10
			if f == SI || f == SIShort || f == IECShort || f == SIBits {
				limit = 9
			}
			if len(got) > limit {
				t.Logf("%s render of %d = %q exceeds %d", f, n, got, limit)
				return false
			}
		}
		return true
	}
	for _, n := range sampleMagnitudes() {
		if !check(n) {
			t.Fatalf("length bound violated for %d", n)
		}
	}
	if err := quick.Check(check, nil); err != nil {
		t.Fatal(err)
	}
}

// sampleMagnitudes covers every power of two and ten with its neighbours,
// plus the values just below each rounding edge of the binary tiers.
func sampleMagnitudes() []uint64 {
	var out []uint64
	for shift := 0; shift < 64; shift++ {
		v := uint64(1) << shift
		out = append(out, v-1, v, v+1)
	}
	for v := uint64(1); v <= 1e19; v *= 10 {
		out = append(out, v-1, v, v+1, v/2*3)
		if v > 1e18 {
			break
		}
	}
	for shift := 10; shift <= 60; shift += 10 {
		edge := uint64(1) << shift
		out = append(out, edge-edge/20480, edge-edge/10240-1)
	}
	out = append(out, ^uint64(0), ^uint64(0)-1)
	return out
}
