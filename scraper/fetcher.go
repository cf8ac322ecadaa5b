package scraper

import (
	"context"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"fundascraper/config"
)

// Fetcher performs one blocking GET and returns the response body.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) ([]byte, error)
}

// CollyFetcher fetches pages through a shared colly collector. The
// collector is configured once; every Fetch works on a Clone so per-request
// handlers never leak between calls.
type CollyFetcher struct {
	collector *colly.Collector
	headers   map[string]string
	logger    *zap.Logger
}

func NewCollyFetcher(cfg *config.Config, logger *zap.Logger) *CollyFetcher {
	c := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	)
	c.SetRequestTimeout(cfg.RequestTimeout.Std())

	return &CollyFetcher{
		collector: c,
		headers:   cfg.Headers,
		logger:    logger,
	}
}

func (f *CollyFetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	collector := f.collector.Clone()

	var body []byte
	var fetchErr error

	collector.OnRequest(func(r *colly.Request) {
		for k, v := range f.headers {
			r.Headers.Set(k, v)
		}
	})
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = &FetchError{URL: pageURL, StatusCode: r.StatusCode, Err: err}
	})

	if err := collector.Visit(pageURL); err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	collector.Wait()

	if fetchErr != nil {
		f.logger.Warn("fetch failed", zap.String("url", pageURL), zap.Error(fetchErr))
		return nil, fetchErr
	}
	return body, nil
}
