package numfmt

import "math"

const (
	// maxSigDigits is the number of significant decimal digits a float64 carries.
	maxSigDigits = 15
	// maxSigSingle is the same for a float32 source.
	maxSigSingle = 7
	// maxDirectExp is the largest exponent magnitude resolved by table lookup.
	maxDirectExp = 23
	// maxFixedDigits bounds integer plus fractional digits in fixed notation so
	// the scaled value stays well inside uint64.
	maxFixedDigits = 18
)

// pow10tab covers every digit count the Formatter scales by plus every
// exponent magnitude resolved without squaring.
var pow10tab = [maxSigDigits + maxDirectExp + 1]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9,
	1e10, 1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19,
	1e20, 1e21, 1e22, 1e23, 1e24, 1e25, 1e26, 1e27, 1e28, 1e29,
	1e30, 1e31, 1e32, 1e33, 1e34, 1e35, 1e36, 1e37, 1e38,
}

// pow10u holds exact integer powers of ten up to 10^19.
var pow10u = [20]uint64{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000,
	1e10, 1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19,
}

// squares[k] is 10^(2^k), built by repeated squaring. 10^256 is the last one
// that fits a float64.
var squares [9]float64

// decades[k] is the smallest exponent magnitude needing k+2 digits.
var decades = [...]int{10, 100, 1000}

func init() {
	p := 10.0
	for k := range squares {
		squares[k] = p
		p *= p
	}
}

// scalePow10 returns a * 10^k without forming 10^k when |k| is beyond the
// table: the largest squared powers are applied first so an intermediate
// result never overflows or sinks into the subnormal range before the
// remaining factors are applied.
func scalePow10(a float64, k int) float64 {
	switch {
	case k == 0:
		return a
	case k > 0 && k < len(pow10tab):
		return a * pow10tab[k]
	case k < 0 && -k < len(pow10tab):
		return a / pow10tab[-k]
	}
	n := k
	if n < 0 {
		n = -n
	}
	for i := len(squares) - 1; i >= 0; i-- {
		step := 1 << i
		for n >= step {
			if k < 0 {
				a /= squares[i]
			} else {
				a *= squares[i]
			}
			n -= step
		}
	}
	return a
}

// normalize splits a positive finite value into a mantissa in [1,10) and a
// base-10 exponent. log10 gives the first guess; the scaled mantissa is then
// corrected by one decade in either direction.
func normalize(a float64) (float64, int) {
	e := int(math.Floor(math.Log10(a)))
	m := scalePow10(a, -e)
	switch {
	case m >= 10:
		m /= 10
		e++
	case m < 1:
		m *= 10
		e--
	}
	return m, e
}

// expDigits returns the number of digits needed to print |e|.
func expDigits(e int) int {
	if e < 0 {
		e = -e
	}
	n := 1
	for _, d := range decades {
		if e < d {
			break
		}
		n++
	}
	return n
}

// intDigits returns the number of digits before the decimal point in fixed
// notation, counting the leading zero of values below one.
func intDigits(a float64) int {
	if a < 1 {
		return 1
	}
	_, e := normalize(a)
	return e + 1
}
