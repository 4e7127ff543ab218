package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"CandleScope/internal/series"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	Client    *http.Client
	BaseURL   string
	Symbol    string
	Interval  string
	Range     string
	Limit     int
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a daily-bar fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL:  yahooBaseURL,
		Interval: "1d",
		Range:    "1y",
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
// Cells are pointers because the API sends null for missing quotes.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func cell(vs []*float64, i int) string {
	if i >= len(vs) || vs[i] == nil {
		return ""
	}
	return strconv.FormatFloat(*vs[i], 'f', -1, 64)
}

// FetchRows downloads the configured range and returns one row per timestamp.
// Bars with every price null (holidays) are skipped; partially null bars are kept
// so the build reports them.
func (f *YahooFetcher) FetchRows(ctx context.Context) ([]series.Row, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(f.Symbol)), url.QueryEscape(f.Interval), url.QueryEscape(f.Range))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	rows := make([]series.Row, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		r := series.Row{
			Line:   i + 1,
			Date:   strconv.FormatInt(ts, 10),
			Open:   cell(quote.Open, i),
			High:   cell(quote.High, i),
			Low:    cell(quote.Low, i),
			Close:  cell(quote.Close, i),
			Volume: cell(quote.Volume, i),
		}
		if r.Open == "" && r.High == "" && r.Low == "" && r.Close == "" {
			continue
		}
		rows = append(rows, r)
	}

	if f.Limit > 0 && len(rows) > f.Limit {
		rows = rows[len(rows)-f.Limit:]
	}
	return rows, nil
}
