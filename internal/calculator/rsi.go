package calculator

import (
	"github.com/guregu/null/v6"

	"CandleScope/internal/model"
)

// RSI computes the Wilder-smoothed relative strength index over period.
// Values are undefined for i < period. The first value averages the first period
// changes; later values apply Wilder smoothing. A window with no losses reads 100.
func RSI(prices []float64, period int) (model.IndicatorSeries, error) {
	out := model.IndicatorSeries{
		ID:     model.IndicatorID(model.KindRSI, period),
		Kind:   model.KindRSI,
		Params: model.IndicatorParams{Period: period},
		Values: make([]null.Float, len(prices)),
	}
	if err := checkInput(len(prices), period); err != nil {
		return out, err
	}
	if len(prices) < period+1 {
		return out, nil
	}

	// Initial average gain/loss over the first `period` changes
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out.Values[period] = null.FloatFrom(rsiValue(avgGain, avgLoss))

	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out.Values[i] = null.FloatFrom(rsiValue(avgGain, avgLoss))
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
