package scraper

import (
	"context"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"fundascraper/config"
)

// BrowserFetcher fetches pages through headless Chrome. Funda serves an
// anti-bot interstitial to plain HTTP clients on some networks; a rendered
// fetch gets past it at the cost of a browser dependency.
type BrowserFetcher struct {
	logger *zap.Logger
	opts   []chromedp.ExecAllocatorOption
}

func NewBrowserFetcher(cfg *config.Config, logger *zap.Logger) *BrowserFetcher {
	return &BrowserFetcher{
		logger: logger,
		opts: append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.DisableGPU,
			chromedp.NoSandbox,
			chromedp.Headless,
			chromedp.UserAgent(cfg.UserAgent),
			chromedp.Flag("accept-language", "en-US,en;q=0.9"),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.Flag("exclude-switches", "enable-automation"),
		),
	}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, f.opts...)
	defer allocCancel()
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	f.logger.Debug("rendering page", zap.String("url", pageURL))

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	return []byte(html), nil
}
