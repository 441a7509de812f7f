package flopsbench

import (
	"math"
	"strconv"
)

// siSuffixes holds one suffix per power of 1000 from 1e-18 to 1e18.
const siSuffixes = "afpnum KMGTPE"

const (
	siZero     = "   0  "
	siInfinity = "+inf   "
)

// FormatSI renders v with three significant digits and an SI suffix in six
// characters: "D.DD s", "DD.D s" or " DDD s".
//
// Values below 1e-18, zero, negative values and NaN render as "   0  ".
// Values of 1e21 and above render as "+inf   ".
func FormatSI(v float64) string {
	if !(v > 0) {
		return siZero
	}
	if math.IsInf(v, 1) {
		return siInfinity
	}

	exp := int(math.Floor(math.Log10(v)))
	sig := math.Round(v / math.Pow(10, float64(exp-2)))
	// Log10 can land one off near powers of ten.
	if sig < 100 {
		exp--
		sig = math.Round(v / math.Pow(10, float64(exp-2)))
	}
	if sig >= 1000 {
		exp++
		sig = math.Round(sig / 10)
	}

	e := exp + 18
	if e < 0 {
		return siZero
	}
	if e >= 3*len(siSuffixes) {
		return siInfinity
	}

	digits := strconv.Itoa(int(sig))
	var b [6]byte
	switch e % 3 {
	case 0:
		b = [6]byte{digits[0], '.', digits[1], digits[2], ' ', siSuffixes[e/3]}
	case 1:
		b = [6]byte{digits[0], digits[1], '.', digits[2], ' ', siSuffixes[e/3]}
	default:
		b = [6]byte{' ', digits[0], digits[1], digits[2], ' ', siSuffixes[e/3]}
	}
	return string(b[:])
}
