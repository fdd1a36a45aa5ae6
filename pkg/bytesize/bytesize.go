// Package bytesize represents byte counts as an unsigned 64-bit value and
// converts them to and from human-readable text such as "482.4 GiB",
// "1.5KiB" or "8.4 Kib".
//
// Arithmetic on ByteSize is checked: overflow and underflow panic instead of
// wrapping around. Rendering never fails; parsing reports one of four error
// kinds (see Parse).
package bytesize

import (
	"math"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// ByteSize is a count of bytes. The zero value is 0 B.
type ByteSize uint64

// Bytes returns a ByteSize of n bytes.
func Bytes(n uint64) ByteSize { return ByteSize(n) }

// Kilobytes returns n * 1000 bytes.
func Kilobytes(n uint64) ByteSize { return scale(n, KB) }

// Kibibytes returns n * 1024 bytes.
func Kibibytes(n uint64) ByteSize { return scale(n, KiB) }

// Megabytes returns n * 1000^2 bytes.
func Megabytes(n uint64) ByteSize { return scale(n, MB) }

// Mebibytes returns n * 1024^2 bytes.
func Mebibytes(n uint64) ByteSize { return scale(n, MiB) }

// Gigabytes returns n * 1000^3 bytes.
func Gigabytes(n uint64) ByteSize { return scale(n, GB) }

// Gibibytes returns n * 1024^3 bytes.
func Gibibytes(n uint64) ByteSize { return scale(n, GiB) }

// Terabytes returns n * 1000^4 bytes.
func Terabytes(n uint64) ByteSize { return scale(n, TB) }

// Tebibytes returns n * 1024^4 bytes.
func Tebibytes(n uint64) ByteSize { return scale(n, TiB) }

// Petabytes returns n * 1000^5 bytes.
func Petabytes(n uint64) ByteSize { return scale(n, PB) }

// Pebibytes returns n * 1024^5 bytes.
func Pebibytes(n uint64) ByteSize { return scale(n, PiB) }

// Exabytes returns n * 1000^6 bytes.
func Exabytes(n uint64) ByteSize { return scale(n, EB) }

// Exbibytes returns n * 1024^6 bytes.
func Exbibytes(n uint64) ByteSize { return scale(n, EiB) }

func scale(n uint64, unit ByteSize) ByteSize {
	return ByteSize(n).Mul(uint64(unit))
}

// Uint64 returns the raw byte count.
func (s ByteSize) Uint64() uint64 { return uint64(s) }

// Add returns s + o. It panics on overflow.
func (s ByteSize) Add(o ByteSize) ByteSize {
	sum, carry := bits.Add64(uint64(s), uint64(o), 0)
	if carry != 0 {
		panic("bytesize: addition overflows uint64")
	}
	return ByteSize(sum)
}

// AddChecked returns s + o and whether the sum fit in 64 bits. On overflow
// the result saturates at the largest ByteSize.
func (s ByteSize) AddChecked(o ByteSize) (ByteSize, bool) {
	sum, carry := bits.Add64(uint64(s), uint64(o), 0)
	if carry != 0 {
		return ByteSize(math.MaxUint64), false
	}
	return ByteSize(sum), true
}

// Sub returns s - o. It panics if o > s.
func (s ByteSize) Sub(o ByteSize) ByteSize {
	diff, borrow := bits.Sub64(uint64(s), uint64(o), 0)
	if borrow != 0 {
		panic("bytesize: subtraction underflows uint64")
	}
	return ByteSize(diff)
}

// Mul returns s * n. It panics on overflow.
func (s ByteSize) Mul(n uint64) ByteSize {
	hi, lo := bits.Mul64(uint64(s), n)
	if hi != 0 {
		panic("bytesize: multiplication overflows uint64")
	}
	return ByteSize(lo)
}

// Div returns s / n rounded down. It panics if n is zero.
func (s ByteSize) Div(n uint64) ByteSize {
	return ByteSize(uint64(s) / n)
}

// AddUint adds n bytes of any unsigned integer type to s.
func AddUint[T constraints.Unsigned](s ByteSize, n T) ByteSize {
	return s.Add(ByteSize(n))
}

// SubUint subtracts n bytes of any unsigned integer type from s.
func SubUint[T constraints.Unsigned](s ByteSize, n T) ByteSize {
	return s.Sub(ByteSize(n))
}

// MulUint multiplies s by a factor of any unsigned integer type.
func MulUint[T constraints.Unsigned](s ByteSize, n T) ByteSize {
	return s.Mul(uint64(n))
}

// DivUint divides s by a divisor of any unsigned integer type.
func DivUint[T constraints.Unsigned](s ByteSize, n T) ByteSize {
	return s.Div(uint64(n))
}
