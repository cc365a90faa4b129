package dosing

import (
	"math"
	"math/big"
	"strings"
)

// half is the tie threshold of the fractional part.
//
//nolint:gochecknoglobals // Immutable constant value.
var half = big.NewFloat(0.5)

// fixedDecimal is v rounded to prec decimals, split for rendering.
type fixedDecimal struct {
	neg      bool
	intPart  *big.Int
	fraction string
}

// roundFixed rounds the exact binary value of v to prec decimals. Exact ties
// round away from zero, matching browser toFixed: 0.125 becomes 0.13 and
// -0.125 becomes -0.13. Negative values keep their sign even when they round
// to zero, so -0.001 renders as -0.00; -0 renders as 0.00. v must be finite.
func roundFixed(v float64, prec int) fixedDecimal {
	if prec < 0 {
		prec = 0
	}

	// 53 mantissa bits plus at most 4 bits per power of ten keeps the
	// scaling and the fraction exact.
	bits := uint(64 + 4*prec)
	scale := new(big.Float).SetPrec(bits).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(prec)), nil))
	scaled := new(big.Float).SetPrec(bits).SetFloat64(math.Abs(v))
	scaled.Mul(scaled, scale)

	n, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(bits).Sub(scaled, new(big.Float).SetPrec(bits).SetInt(n))
	if frac.Cmp(half) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	digits := n.String()
	if len(digits) <= prec {
		digits = strings.Repeat("0", prec-len(digits)+1) + digits
	}
	cut := len(digits) - prec

	intPart, _ := new(big.Int).SetString(digits[:cut], 10)
	return fixedDecimal{
		neg:      v < 0,
		intPart:  intPart,
		fraction: digits[cut:],
	}
}

// render joins the parts, with intText standing in for the integer digits.
func (d fixedDecimal) render(intText string) string {
	var b strings.Builder
	if d.neg {
		b.WriteByte('-')
	}
	b.WriteString(intText)
	if d.fraction != "" {
		b.WriteByte('.')
		b.WriteString(d.fraction)
	}
	return b.String()
}
