package render

import (
	"math"

	"github.com/dustin/go-humanize"
)

// FormatPrice renders a price with thousands separators and two decimals.
func FormatPrice(v float64) string { return humanize.CommafWithDigits(v, 2) }

// FormatVolume renders a volume with an SI suffix, e.g. 1.2M.
func FormatVolume(v float64) string { return humanize.SIWithDigits(v, 1, "") }

// FormatPercent renders a ratio as a percentage, e.g. 0.052 -> 5.2%.
func FormatPercent(v float64) string {
	p := v * 100
	if math.Abs(p) < 0.05 {
		p = 0
	}
	return humanize.FtoaWithDigits(p, 1) + "%"
}

// FormatValue renders an indicator reading.
func FormatValue(v float64) string { return humanize.FtoaWithDigits(v, 2) }
