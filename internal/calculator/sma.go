package calculator

import (
	"fmt"

	"github.com/guregu/null/v6"

	"CandleScope/internal/model"
)

func checkInput(n, period int) error {
	if n == 0 {
		return model.ErrInsufficientData
	}
	if period <= 0 {
		return fmt.Errorf("period must be positive, got %d: %w", period, model.ErrInvalidConfiguration)
	}
	return nil
}

// SMA computes the simple moving average of prices. value[i] is the mean of
// prices[i-period+1..i] and is undefined for i < period-1.
func SMA(prices []float64, period int) (model.IndicatorSeries, error) {
	out := model.IndicatorSeries{
		ID:     model.IndicatorID(model.KindSMA, period),
		Kind:   model.KindSMA,
		Params: model.IndicatorParams{Period: period},
		Values: make([]null.Float, len(prices)),
	}
	if err := checkInput(len(prices), period); err != nil {
		return out, err
	}

	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= period {
			sum -= prices[i-period]
		}
		if i >= period-1 {
			out.Values[i] = null.FloatFrom(sum / float64(period))
		}
	}
	return out, nil
}
