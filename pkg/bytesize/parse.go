package bytesize

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

var (
	// ErrEmptyInput is reported for empty or whitespace-only input.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidNumber is reported when the input does not start with a number.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrInvalidUnit is reported when the text after the number is not a known unit.
	ErrInvalidUnit = errors.New("invalid unit")
	// ErrOverflow is reported when the value does not fit in 64 bits.
	ErrOverflow = errors.New("value out of range")
)

// ParseError records a failed Parse. Err is one of ErrEmptyInput,
// ErrInvalidNumber, ErrInvalidUnit or ErrOverflow.
type ParseError struct {
	Input string
	Unit  string // offending unit token, set with ErrInvalidUnit
	Err   error
}

func (e *ParseError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("bytesize: parse %q: %v %q", e.Input, e.Err, e.Unit)
	}
	return fmt.Sprintf("bytesize: parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// maxFloat is 2^64, the first float64 that does not fit in a uint64.
const maxFloat = float64(1 << 64)

// unitToken is a decoded unit suffix.
type unitToken struct {
	tier   int
	binary bool
	bits   bool
}

func (t unitToken) multiplier() uint64 {
	base := uint64(KB)
	if t.binary {
		base = uint64(KiB)
	}
	m := uint64(1)
	for i := 0; i < t.tier; i++ {
		m *= base
	}
	return m
}

// Parse converts text such as "1.5KiB", "301.0 kB", "42" or "8 Mb" into a
// ByteSize.
//
// The number is a decimal literal, digits with an optional fraction. It may
// be followed by whitespace and a unit: "B", or a prefix letter (K, M, G, T,
// P, E in either case) optionally followed by "i" and then "B" or "b". Unit
// letters are case-insensitive except the last one: a lowercase "b" counts
// bits, which are divided by 8 and rounded. With "i" the prefix is binary
// (1024); with "B"/"b" but no "i" it is decimal (1000); a bare prefix letter,
// as produced by the short formats, is binary like `sort -h` reads it.
// Results are rounded half away from zero.
func Parse(s string) (ByteSize, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return 0, &ParseError{Input: s, Err: ErrEmptyInput}
	}

	i := scanDigits(text, 0)
	if i == 0 {
		return 0, &ParseError{Input: s, Err: ErrInvalidNumber}
	}
	whole := i
	if i < len(text) && text[i] == '.' {
		i = scanDigits(text, i+1)
	}
	number, rest := text[:i], strings.TrimSpace(text[i:])

	unit, ok := lookupUnit(rest)
	if !ok {
		return 0, &ParseError{Input: s, Unit: rest, Err: ErrInvalidUnit}
	}

	var (
		n   uint64
		err error
	)
	if whole == len(number) {
		n, err = exact(number, unit)
	} else {
		n, err = approximate(number, unit)
	}
	if err != nil {
		return 0, &ParseError{Input: s, Err: err}
	}
	return ByteSize(n), nil
}

func scanDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func lookupUnit(token string) (unitToken, bool) {
	var u unitToken
	if token == "" {
		return u, true
	}
	symbol := true
	switch token[len(token)-1] {
	case 'B':
	case 'b':
		u.bits = true
	default:
		symbol = false
	}
	if symbol {
		token = token[:len(token)-1]
		if token == "" {
			return u, true
		}
	}
	if last := token[len(token)-1]; last == 'i' || last == 'I' {
		u.binary = true
		token = token[:len(token)-1]
	} else if !symbol {
		// "1.5K" from the short formats.
		u.binary = true
	}
	if len(token) != 1 {
		return u, false
	}
	idx := strings.IndexByte(prefixesIEC, upper(token[0]))
	if idx < 0 {
		return u, false
	}
	u.tier = idx + 1
	return u, true
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// exact handles integer literals without going through float64, keeping a
// 128-bit intermediate so bit counts above 2^64 still divide down exactly.
func exact(number string, u unitToken) (uint64, error) {
	var n uint128
	for i := 0; i < len(number); i++ {
		var ok bool
		if n, ok = n.mulAdd(10, uint64(number[i]-'0')); !ok {
			return 0, ErrOverflow
		}
	}
	n, ok := n.mulAdd(u.multiplier(), 0)
	if !ok {
		return 0, ErrOverflow
	}
	if !u.bits {
		if n.hi != 0 {
			return 0, ErrOverflow
		}
		return n.lo, nil
	}
	if n.hi >= bitsPerByte {
		return 0, ErrOverflow
	}
	q, r := bits.Div64(n.hi, n.lo, bitsPerByte)
	if r >= bitsPerByte/2 {
		if q == math.MaxUint64 {
			return 0, ErrOverflow
		}
		q++
	}
	return q, nil
}

type uint128 struct{ hi, lo uint64 }

// mulAdd returns n*m + a, reporting false if the result needs more than 128 bits.
func (n uint128) mulAdd(m, a uint64) (uint128, bool) {
	top, hi := bits.Mul64(n.hi, m)
	carry, lo := bits.Mul64(n.lo, m)
	hi, c1 := bits.Add64(hi, carry, 0)
	lo, c2 := bits.Add64(lo, a, 0)
	hi, c3 := bits.Add64(hi, 0, c2)
	if top != 0 || c1 != 0 || c3 != 0 {
		return uint128{}, false
	}
	return uint128{hi: hi, lo: lo}, true
}

func approximate(number string, u unitToken) (uint64, error) {
	mantissa, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, ErrOverflow
	}
	v := mantissa * float64(u.multiplier())
	if u.bits {
		v /= bitsPerByte
	}
	v = math.Round(v)
	if v >= maxFloat {
		return 0, ErrOverflow
	}
	return uint64(v), nil
}
