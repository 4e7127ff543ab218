package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/guregu/null/v6"
	"github.com/markcheno/go-talib"

	"CandleScope/internal/model"
)

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.8f, want %.8f (diff %.2e)", label, got, want, math.Abs(got-want))
	}
}

// walk is a deterministic price path with both gains and losses.
func walk(n int) []float64 {
	out := make([]float64, n)
	p := 100.0
	for i := range out {
		p += math.Sin(float64(i)*0.7)*2 + math.Cos(float64(i)*0.31)
		out[i] = p
	}
	return out
}

func undefinedPrefix(t *testing.T, label string, vs []null.Float, n int) {
	t.Helper()
	for i := 0; i < n && i < len(vs); i++ {
		if vs[i].Valid {
			t.Errorf("%s[%d] should be undefined", label, i)
		}
	}
}

func TestSMA_Basic(t *testing.T) {
	got, err := SMA([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Values[0].Valid || got.Values[1].Valid {
		t.Fatal("first two values must be undefined")
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		v := got.Values[i+2]
		if !v.Valid || v.Float64 != w {
			t.Errorf("value[%d] = %v, want %v", i+2, v, w)
		}
	}
	if got.ID != "sma-3" {
		t.Errorf("unexpected id %q", got.ID)
	}
}

func TestSMA_MatchesTalib(t *testing.T) {
	prices := walk(200)
	for _, period := range []int{3, 10, 20, 50} {
		got, err := SMA(prices, period)
		if err != nil {
			t.Fatal(err)
		}
		ref := talib.Sma(prices, period)
		undefinedPrefix(t, "sma", got.Values, period-1)
		for i := period - 1; i < len(prices); i++ {
			assertClose(t, "sma", got.Values[i].Float64, ref[i], 1e-9)
		}
	}
}

func TestEMA_SeededBySMA(t *testing.T) {
	prices := []float64{2, 4, 6, 8, 10}
	got, err := EMA(prices, 3)
	if err != nil {
		t.Fatal(err)
	}
	undefinedPrefix(t, "ema", got.Values, 2)
	assertClose(t, "seed", got.Values[2].Float64, 4, 1e-12)
	// k = 0.5
	assertClose(t, "ema[3]", got.Values[3].Float64, 6, 1e-12)
	assertClose(t, "ema[4]", got.Values[4].Float64, 8, 1e-12)
}

func TestEMA_MatchesTalib(t *testing.T) {
	prices := walk(200)
	for _, period := range []int{5, 12, 26, 50} {
		got, err := EMA(prices, period)
		if err != nil {
			t.Fatal(err)
		}
		ref := talib.Ema(prices, period)
		undefinedPrefix(t, "ema", got.Values, period-1)
		for i := period - 1; i < len(prices); i++ {
			assertClose(t, "ema", got.Values[i].Float64, ref[i], 1e-9)
		}
	}
}

func TestRSI_MonotonicSaturates(t *testing.T) {
	prices := make([]float64, 40)
	for i := range prices {
		prices[i] = float64(i + 1)
	}
	got, err := RSI(prices, 14)
	if err != nil {
		t.Fatal(err)
	}
	undefinedPrefix(t, "rsi", got.Values, 14)
	for i := 14; i < len(prices); i++ {
		if !got.Values[i].Valid || got.Values[i].Float64 != 100 {
			t.Errorf("rsi[%d] = %v, want 100", i, got.Values[i])
		}
	}
}

func TestRSI_MatchesTalib(t *testing.T) {
	prices := walk(300)
	got, err := RSI(prices, 14)
	if err != nil {
		t.Fatal(err)
	}
	ref := talib.Rsi(prices, 14)
	for i := 14; i < len(prices); i++ {
		assertClose(t, "rsi", got.Values[i].Float64, ref[i], 1e-6)
	}
}

func TestRSI_ShortInputIsUndefined(t *testing.T) {
	got, err := RSI([]float64{1, 2, 3}, 14)
	if err != nil {
		t.Fatalf("short input is not an error: %v", err)
	}
	if got.FirstDefined() != -1 {
		t.Error("expected no defined values")
	}
}

func TestMACD_WarmUp(t *testing.T) {
	prices := walk(120)
	res, err := MACD(prices, 12, 26, 9)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Line.FirstDefined(); got != 25 {
		t.Errorf("macd line starts at %d, want 25", got)
	}
	if got := res.Signal.FirstDefined(); got != 33 {
		t.Errorf("signal starts at %d, want 33", got)
	}
	if got := res.Histogram.FirstDefined(); got != 33 {
		t.Errorf("histogram starts at %d, want 33", got)
	}

	fast := talib.Ema(prices, 12)
	slow := talib.Ema(prices, 26)
	for i := 25; i < len(prices); i++ {
		assertClose(t, "macd", res.Line.Values[i].Float64, fast[i]-slow[i], 1e-9)
	}
	for i := 33; i < len(prices); i++ {
		h := res.Line.Values[i].Float64 - res.Signal.Values[i].Float64
		assertClose(t, "hist", res.Histogram.Values[i].Float64, h, 1e-12)
	}
}

func TestEmptyInputIsInsufficientData(t *testing.T) {
	cases := map[string]func() error{
		"sma":  func() error { _, err := SMA(nil, 3); return err },
		"ema":  func() error { _, err := EMA(nil, 3); return err },
		"rsi":  func() error { _, err := RSI(nil, 14); return err },
		"macd": func() error { _, err := MACD(nil, 12, 26, 9); return err },
	}
	for name, fn := range cases {
		if err := fn(); !errors.Is(err, model.ErrInsufficientData) {
			t.Errorf("%s: expected ErrInsufficientData, got %v", name, err)
		}
	}
}

func TestInvalidPeriod(t *testing.T) {
	got, err := SMA([]float64{1, 2, 3}, 0)
	if !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	if got.Len() != 3 || got.FirstDefined() != -1 {
		t.Error("invalid period must yield an aligned, all-undefined series")
	}
}

func TestCompute(t *testing.T) {
	bars := make([]model.OHLCV, 60)
	for i, p := range walk(60) {
		bars[i] = model.OHLCV{Open: p, High: p + 1, Low: p - 1, Close: p, Volume: 10}
	}
	out, err := Compute(model.NewSeries(bars), DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Overlays) != 3 || out.MACD == nil || out.RSI == nil {
		t.Fatalf("unexpected outputs: %+v", out)
	}
	for _, id := range []string{"sma-10", "sma-20", "ema-50", "macd", "macd-signal", "macd-hist", "rsi"} {
		s, ok := out.Find(id)
		if !ok {
			t.Errorf("missing %s", id)
			continue
		}
		if s.Len() != 60 {
			t.Errorf("%s not aligned: len %d", id, s.Len())
		}
	}

	empty, err := Compute(model.NewSeries(nil), DefaultParams())
	if !errors.Is(err, model.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
	if len(empty.Overlays) != 3 || empty.Overlays[0].Len() != 0 {
		t.Error("empty input still yields empty indicator series")
	}
}

func TestExtent(t *testing.T) {
	s := model.NewSeries([]model.OHLCV{
		{Open: 10, High: 12, Low: 9, Close: 11, Volume: 5},
		{Open: 11, High: 15, Low: 8, Close: 14, Volume: 0},
	})
	lo, hi, err := PriceExtent(s)
	if err != nil || lo != 8 || hi != 15 {
		t.Errorf("PriceExtent = %v %v %v", lo, hi, err)
	}
	lo, hi, _ = Extent(s, model.FieldVolume)
	if lo != 0 || hi != 5 {
		t.Errorf("volume extent = %v %v", lo, hi)
	}
	if _, _, err := Extent(model.NewSeries(nil), model.FieldClose); !errors.Is(err, model.ErrEmptySeries) {
		t.Errorf("expected ErrEmptySeries, got %v", err)
	}
	if _, _, ok := DefinedExtent([]null.Float{{}, {}}); ok {
		t.Error("all-undefined input has no extent")
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{15, 10, 20, 0.5},
		{5, 10, 20, 0},
		{25, 10, 20, 1},
		{10, 10, 10, 0.5},
	}
	for _, tt := range tests {
		if got := Position(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Position(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
