package collector

import (
	"context"
	"math"
	"strconv"
	"time"

	"CandleScope/internal/series"
)

// MockFetcher returns a deterministic daily series for development and testing.
type MockFetcher struct {
	Start time.Time
	Price float64
	Count int
	Rows  []series.Row // returned verbatim when set
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchRows(_ context.Context) ([]series.Row, error) {
	if m.Rows != nil {
		return m.Rows, nil
	}
	return generateMockRows(m.Start, m.Price, m.Count), nil
}

func generateMockRows(start time.Time, basePrice float64, count int) []series.Row {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	rows := make([]series.Row, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + 0.05*math.Sin(float64(i)/9) + float64(i-count/2)*0.001)
		open := p * (1 + 0.004*math.Cos(float64(i)))
		hi := math.Max(open, p) * 1.005
		lo := math.Min(open, p) * 0.995
		rows[i] = series.Row{
			Line:   i + 1,
			Date:   start.AddDate(0, 0, i).Format("2006-01-02"),
			Open:   f(open),
			High:   f(hi),
			Low:    f(lo),
			Close:  f(p),
			Volume: strconv.Itoa(1000000 + 2500*(i%40)),
		}
	}
	return rows
}
