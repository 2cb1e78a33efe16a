package openlibrary

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// thicknessPerPageCM is a rough paperback average (~0.07 mm per page).
const thicknessPerPageCM = 0.007

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseDimensions parses a free-text dimension string like
// "20 x 13 x 2.5 centimeters" or "8.5 x 5.5 x 1.2 inches" into
// height, width and thickness in centimeters. The first three numeric
// tokens are taken in order; extra tokens are ignored. A string with fewer
// than three numbers, or an empty string, yields all nils.
func ParseDimensions(s string) (height, width, thickness *float64) {
	if s == "" {
		return nil, nil, nil
	}

	nums := numberPattern.FindAllString(s, -1)
	if len(nums) < 3 {
		return nil, nil, nil
	}

	values := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(nums[i], 64)
		if err != nil {
			return nil, nil, nil
		}
		values[i] = v
	}

	factor := unitFactor(s)
	h := values[0] * factor
	w := values[1] * factor
	t := values[2] * factor
	return &h, &w, &t
}

// unitFactor resolves the unit marker in a dimension string to a
// centimeter conversion factor. Unit words are searched in the whole
// string, not individual tokens. Unknown units are treated as already
// being centimeters, which keeps an unlabeled "19 x 13 x 2" usable.
func unitFactor(s string) float64 {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "inch"):
		return 2.54
	case strings.Contains(lower, "millimeter"),
		strings.Contains(lower, "millimetre"),
		strings.Contains(lower, "mm"):
		return 0.1
	case strings.Contains(lower, "centimeter"),
		strings.Contains(lower, "centimetre"),
		strings.Contains(lower, "cm"):
		return 1.0
	default:
		return 1.0
	}
}

// EstimateThickness estimates a book's thickness in centimeters from its
// page count, rounded to three decimals. It is only a fallback for
// editions without a measured thickness; a non-positive page count yields
// nil.
func EstimateThickness(pages int) *float64 {
	if pages <= 0 {
		return nil
	}
	t := math.Round(float64(pages)*thicknessPerPageCM*1000) / 1000
	return &t
}

// Volume returns the product of the three dimensions in cm³, or nil when
// any of them is unknown. Missing dimensions are never defaulted: a zero
// or one stand-in would silently distort volume rankings.
func Volume(heightCM, widthCM, thicknessCM *int) *int {
	if heightCM == nil || widthCM == nil || thicknessCM == nil {
		return nil
	}
	v := *heightCM * *widthCM * *thicknessCM
	return &v
}

// roundCM coerces a float dimension to the nearest whole centimeter,
// rounding half away from zero. Nil propagates as nil.
func roundCM(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}
