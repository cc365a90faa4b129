package dosing

import (
	"errors"
	"math"
	"strconv"
)

// parseFloatLiteral parses a literal already matched by numberPrefix.
// Out-of-range literals saturate to ±Inf or 0 like browser parsing does.
func parseFloatLiteral(lit string) (float64, error) {
	v, err := strconv.ParseFloat(lit, 64)
	if err == nil {
		return v, nil
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		// ParseFloat already returns ±Inf or ±0 alongside ErrRange.
		if math.IsInf(v, 0) || v == 0 {
			return v, nil
		}
	}
	return 0, err
}
