package bytesize

import (
	"fmt"
	"strings"
)

// Decimal (SI) sizes.
const (
	B  ByteSize = 1
	KB ByteSize = 1000 * B
	MB ByteSize = 1000 * KB
	GB ByteSize = 1000 * MB
	TB ByteSize = 1000 * GB
	PB ByteSize = 1000 * TB
	EB ByteSize = 1000 * PB
)

// Binary (IEC) sizes.
const (
	KiB ByteSize = 1 << (10 * (iota + 1))
	MiB
	GiB
	TiB
	PiB
	EiB
)

const (
	bitsPerByte = 8
	maxTier     = 6

	lnKiB     = 6.931471805599453 // ln(1024)
	lnKB      = 6.907755278982137 // ln(1000)
	lnKiBBits = 9.010913347279289 // ln(8192)
	lnKBBits  = 8.987196820661973 // ln(8000)

	prefixesIEC = "KMGTPE"
	prefixesSI  = "kMGTPE"
)

// Format selects the unit system and style used to render a ByteSize.
type Format int

const (
	// IEC renders binary units, e.g. "11.8 MiB".
	IEC Format = iota
	// IECShort renders binary units without separator or suffix, e.g. "11.8M".
	// The output sorts correctly with `sort -h`.
	IECShort
	// SI renders decimal units, e.g. "12.3 MB".
	SI
	// SIShort renders decimal units without separator or suffix, e.g. "12.3M".
	SIShort
	// IECBits renders the equivalent bit count in binary units, e.g. "12.3 Mib".
	IECBits
	// SIBits renders the equivalent bit count in decimal units, e.g. "12.3 Mb".
	SIBits
)

var formatNames = [...]string{
	IEC:      "iec",
	IECShort: "iec-short",
	SI:       "si",
	SIShort:  "si-short",
	IECBits:  "iec-bits",
	SIBits:   "si-bits",
}

// Formats lists every supported format in declaration order.
func Formats() []Format {
	return []Format{IEC, IECShort, SI, SIShort, IECBits, SIBits}
}

func (f Format) valid() bool {
	return f >= IEC && f <= SIBits
}

func (f Format) String() string {
	if !f.valid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat resolves a format name such as "iec", "si-short" or "iec_bits".
// Matching is case-insensitive and accepts "_" in place of "-".
func ParseFormat(name string) (Format, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	switch key {
	case "binary":
		return IEC, nil
	case "decimal":
		return SI, nil
	}
	for i, n := range formatNames {
		if n == key {
			return Format(i), nil
		}
	}
	return IEC, fmt.Errorf("unknown format %q (valid: %s)", name, strings.Join(formatNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("unknown format %d", int(f))
	}
	return []byte(formatNames[f]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Bits reports whether the format renders bits rather than bytes.
func (f Format) Bits() bool {
	return f == IECBits || f == SIBits
}

// unitSystem is one row of the unit table.
type unitSystem struct {
	base      uint64
	lnBase    float64
	prefixes  string
	suffix    string
	separator string
	scale     uint64 // 8 for bit formats
	powers    [maxTier + 1]float64
}

// symbol is the unprefixed tier 0 unit.
func (u *unitSystem) symbol() string {
	if u.scale == bitsPerByte {
		return "b"
	}
	return "B"
}

func (u *unitSystem) prefix(tier int) byte {
	return u.prefixes[tier-1]
}

func powers(base uint64) [maxTier + 1]float64 {
	var p [maxTier + 1]float64
	p[0] = 1
	for i := 1; i <= maxTier; i++ {
		p[i] = p[i-1] * float64(base)
	}
	return p
}

var unitTable = [...]unitSystem{
	IEC: {
		base: uint64(KiB), lnBase: lnKiB, prefixes: prefixesIEC,
		suffix: "iB", separator: " ", scale: 1, powers: powers(uint64(KiB)),
	},
	IECShort: {
		base: uint64(KiB), lnBase: lnKiB, prefixes: prefixesIEC,
		suffix: "", separator: "", scale: 1, powers: powers(uint64(KiB)),
	},
	SI: {
		base: uint64(KB), lnBase: lnKB, prefixes: prefixesSI,
		suffix: "B", separator: " ", scale: 1, powers: powers(uint64(KB)),
	},
	SIShort: {
		base: uint64(KB), lnBase: lnKB, prefixes: prefixesSI,
		suffix: "", separator: "", scale: 1, powers: powers(uint64(KB)),
	},
	IECBits: {
		base: uint64(KiB) * bitsPerByte, lnBase: lnKiBBits, prefixes: prefixesIEC,
		suffix: "ib", separator: " ", scale: bitsPerByte, powers: powers(uint64(KiB) * bitsPerByte),
	},
	SIBits: {
		base: uint64(KB) * bitsPerByte, lnBase: lnKBBits, prefixes: prefixesSI,
		suffix: "b", separator: " ", scale: bitsPerByte, powers: powers(uint64(KB) * bitsPerByte),
	},
}

func (f Format) units() *unitSystem {
	if !f.valid() {
		f = IEC
	}
	return &unitTable[f]
}
