package flopsbench

import (
	"math"
	"testing"
)

func TestFormatSI(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{1.23, "1.23  "},
		{1230.0, "1.23 K"},
		{12300.0, "12.3 K"},
		{123000.0, " 123 K"},
		{0.00123, "1.23 m"},
		{0.0, "   0  "},
		{1e40, "+inf   "},

		{1, "1.00  "},
		{0.5, " 500 m"},
		{999.5, "1.00 K"},
		{3.4127e9, "3.41 G"},
		{45.66e12, "45.7 T"},
		{1e-18, "1.00 a"},
		{999e18, " 999 E"},
		{1e21, "+inf   "},
		{1e-19, "   0  "},
		{-5, "   0  "},
		{math.NaN(), "   0  "},
		{math.Inf(1), "+inf   "},
		{math.Inf(-1), "   0  "},
	}

	for _, tt := range tests {
		if got := FormatSI(tt.v); got != tt.want {
			t.Errorf("FormatSI(%g) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestFormatSIWidth(t *testing.T) {
	// 9.995e20 rounds up into the overflow range, so stop one decade short.
	for e := -18; e <= 19; e++ {
		for _, m := range []float64{1, 1.005, 2.5, 9.99, 9.995} {
			v := m * math.Pow(10, float64(e))
			if got := FormatSI(v); len(got) != 6 {
				t.Errorf("FormatSI(%g) = %q, want 6 characters", v, got)
			}
		}
	}
}

func TestFormatSIPowersOfTen(t *testing.T) {
	// Log10 is inexact near powers of ten; every one must still carry
	// its own prefix.
	suffix := "afpnum KMGTPE"
	for e := -18; e <= 20; e++ {
		got := FormatSI(math.Pow(10, float64(e)))
		want := suffix[(e+18)/3]
		if got[5] != want {
			t.Errorf("FormatSI(1e%d) = %q, want suffix %q", e, got, want)
		}
		if got[:4] != [3]string{"1.00", "10.0", " 100"}[(e+18)%3] {
			t.Errorf("FormatSI(1e%d) = %q", e, got)
		}
	}
}
