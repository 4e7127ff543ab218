package calculator

import (
	"github.com/guregu/null/v6"

	"CandleScope/internal/model"
)

// EMA computes the exponential moving average of prices, seeded at index period-1
// with the simple average of the first period prices. Earlier entries are undefined.
func EMA(prices []float64, period int) (model.IndicatorSeries, error) {
	out := model.IndicatorSeries{
		ID:     model.IndicatorID(model.KindEMA, period),
		Kind:   model.KindEMA,
		Params: model.IndicatorParams{Period: period},
	}
	if err := checkInput(len(prices), period); err != nil {
		out.Values = make([]null.Float, len(prices))
		return out, err
	}
	out.Values = emaValues(prices, period)
	return out, nil
}

// emaValues is EMA over a dense slice; it is also used on the defined tail of MACD.
func emaValues(prices []float64, period int) []null.Float {
	values := make([]null.Float, len(prices))
	if len(prices) < period {
		return values
	}
	k := 2.0 / float64(period+1)

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += prices[i]
	}
	prev := seed / float64(period)
	values[period-1] = null.FloatFrom(prev)

	for i := period; i < len(prices); i++ {
		prev = prices[i]*k + prev*(1-k)
		values[i] = null.FloatFrom(prev)
	}
	return values
}
