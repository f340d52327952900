package pricing

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// UnitScale converts model output (hundreds of thousands of dollars) to dollars
const UnitScale = 100000

// Round rounds a raw prediction to two decimals
func Round(prediction float64) float64 {
	return roundTo(prediction, 2)
}

// Dollars returns the prediction scaled to whole dollars
func Dollars(prediction float64) float64 {
	return roundTo(prediction*UnitScale, 0)
}

// Format renders a raw prediction as a dollar amount with thousands
// separators, e.g. 4.5 -> "$450,000". Negative amounts that round to zero
// keep their sign ("$-0").
func Format(prediction float64) string {
	d := Dollars(prediction)
	if math.Signbit(d) {
		return "$-" + humanize.Commaf(-d)
	}
	return "$" + humanize.Commaf(d)
}

// roundTo rounds through the shortest decimal representation so that
// half-way cases follow the printed value rather than binary noise.
func roundTo(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
