package news

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Item is one news entry with its computed sentiment.
type Item struct {
	Title     string    `json:"title"`
	Publisher string    `json:"publisher"`
	Link      string    `json:"link"`
	Published string    `json:"published"`
	Sentiment Sentiment `json:"sentiment"`
}

// Report aggregates the latest news for one symbol.
type Report struct {
	Symbol           string  `json:"symbol"`
	News             []Item  `json:"news"`
	OverallSentiment string  `json:"overall_sentiment"`
	OverallScore     float64 `json:"overall_score"`
}

// feedItem is the raw shape returned by the news feed.
type feedItem struct {
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Link      string `json:"link"`
	Published string `json:"published"`
	Summary   string `json:"summary"`
}

// Client fetches headlines from a JSON news feed.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient creates a news client with optional proxy support.
func NewClient(baseURL, proxyURL string) *Client {
	c := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("User-Agent", "Mozilla/5.0")
	if proxyURL != "" {
		c.SetProxy(proxyURL)
	}
	return &Client{http: c, baseURL: baseURL}
}

// Fetch returns up to limit headlines for the symbol, each scored, plus the
// average sentiment across them.
func (c *Client) Fetch(ctx context.Context, symbol string, limit int) (*Report, error) {
	if limit <= 0 {
		limit = 5
	}

	var items []feedItem
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("symbol", symbol).
		SetResult(&items).
		Get(c.baseURL + "/v1/news")
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", symbol, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("news feed: status %d", resp.StatusCode())
	}

	if len(items) > limit {
		items = items[:limit]
	}

	report := &Report{Symbol: symbol, News: make([]Item, 0, len(items)), OverallSentiment: "neutral"}
	var sum float64
	for _, raw := range items {
		text := raw.Title
		if raw.Summary != "" {
			text += " " + raw.Summary
		}
		s := Analyze(text)
		sum += s.Score
		report.News = append(report.News, Item{
			Title:     raw.Title,
			Publisher: raw.Publisher,
			Link:      raw.Link,
			Published: raw.Published,
			Sentiment: s,
		})
	}

	if len(report.News) > 0 {
		avg := sum / float64(len(report.News))
		report.OverallScore = round2(avg)
		report.OverallSentiment = labelFor(avg)
	}
	return report, nil
}
