package calculator

import (
	"fmt"

	"github.com/guregu/null/v6"

	"CandleScope/internal/model"
)

// MACDResult groups the three aligned MACD outputs.
type MACDResult struct {
	Line      model.IndicatorSeries
	Signal    model.IndicatorSeries
	Histogram model.IndicatorSeries
}

// MACD computes line = EMA(fast) - EMA(slow), signal = EMA(signal) of the line and
// histogram = line - signal. Each output is undefined until its inputs are defined,
// so with 12/26/9 the line starts at index 25 and signal and histogram at 33.
func MACD(prices []float64, fast, slow, signal int) (MACDResult, error) {
	params := model.IndicatorParams{Fast: fast, Slow: slow, Signal: signal}
	mk := func(id string) model.IndicatorSeries {
		return model.IndicatorSeries{
			ID:     id,
			Kind:   model.KindMACD,
			Params: params,
			Values: make([]null.Float, len(prices)),
		}
	}
	res := MACDResult{Line: mk("macd"), Signal: mk("macd-signal"), Histogram: mk("macd-hist")}

	if len(prices) == 0 {
		return res, model.ErrInsufficientData
	}
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return res, fmt.Errorf("macd periods must be positive (%d/%d/%d): %w", fast, slow, signal, model.ErrInvalidConfiguration)
	}

	fastEMA := emaValues(prices, fast)
	slowEMA := emaValues(prices, slow)

	start := -1
	var line []float64
	for i := range prices {
		if !fastEMA[i].Valid || !slowEMA[i].Valid {
			continue
		}
		if start < 0 {
			start = i
		}
		v := fastEMA[i].Float64 - slowEMA[i].Float64
		res.Line.Values[i] = null.FloatFrom(v)
		line = append(line, v)
	}
	if start < 0 {
		return res, nil
	}

	sig := emaValues(line, signal)
	for j, s := range sig {
		if !s.Valid {
			continue
		}
		i := start + j
		res.Signal.Values[i] = s
		res.Histogram.Values[i] = null.FloatFrom(line[j] - s.Float64)
	}
	return res, nil
}
