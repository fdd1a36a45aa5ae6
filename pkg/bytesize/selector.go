package bytesize

import "math"

// Selector picks the prefix tier used to render a magnitude: 1 for kilo,
// 2 for mega and so on up to 6 for exa.
//
// Tier is only called with size >= base; smaller magnitudes are rendered
// without a prefix and never reach the selector. Tiers past exa saturate at 6.
type Selector interface {
	Tier(size float64, base uint64, lnBase float64) int
}

// IterativeSelector finds the tier by repeated scaling. It needs no
// transcendental functions.
type IterativeSelector struct{}

func (IterativeSelector) Tier(size float64, base uint64, _ float64) int {
	b := float64(base)
	if size < b {
		panic("bytesize: tier requested for size below base")
	}
	tier := 1
	// Powers of 1000, 1024, 8000 and 8192 up to the sixth are exact in float64.
	for next := b * b; tier < maxTier && size >= next; next *= b {
		tier++
	}
	return tier
}

// LogSelector estimates the tier as floor(ln(size) / ln(base)).
type LogSelector struct{}

func (LogSelector) Tier(size float64, base uint64, lnBase float64) int {
	b := float64(base)
	if size < b {
		panic("bytesize: tier requested for size below base")
	}
	tier := int(math.Log(size) / lnBase)
	if tier < 1 {
		tier = 1
	}
	if tier > maxTier {
		tier = maxTier
	}
	// The quotient can land one off at exact powers of base.
	if tier > 1 && size < pow(b, tier) {
		tier--
	} else if tier < maxTier && size >= pow(b, tier+1) {
		tier++
	}
	return tier
}

func pow(b float64, n int) float64 {
	p := 1.0
	for i := 0; i < n; i++ {
		p *= b
	}
	return p
}

// DefaultSelector is used by Display unless WithSelector overrides it. It is
// LogSelector, or IterativeSelector when built with the bytesize_nomath tag.
var DefaultSelector Selector = defaultSelector
