package scraper

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"fundascraper/config"
	"fundascraper/storage"
)

// Scraper drives one scrape run: list pages first, sequential and paced so
// the search endpoint never sees a burst, then detail pages across a worker
// pool. Every page fetched in a run is stored under the run id minted at
// construction.
type Scraper struct {
	req     *SearchRequest
	fetcher Fetcher
	repo    storage.PageRepository
	ledger  *storage.RunLedger
	logger  *zap.Logger
	limiter *rate.Limiter
	baseURL string
	runID   string
	workers int
}

func New(req *SearchRequest, fetcher Fetcher, repo storage.PageRepository, ledger *storage.RunLedger, cfg *config.Config, logger *zap.Logger) *Scraper {
	workers := cfg.Parallelism
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scraper{
		req:     req,
		fetcher: fetcher,
		repo:    repo,
		ledger:  ledger,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(cfg.ListPageDelay.Std()), 1),
		baseURL: cfg.BaseURL,
		runID:   uuid.NewString(),
		workers: workers,
	}
}

func (s *Scraper) RunID() string { return s.runID }

// Run executes the full pipeline. Any failure aborts the run; pages already
// written by the repository stay on disk.
func (s *Scraper) Run(ctx context.Context) error {
	s.logger.Info("starting scrape run",
		zap.String("run_id", s.runID),
		zap.String("area", s.req.Area()),
		zap.String("want_to", s.req.WantTo()))

	if s.ledger != nil {
		if err := s.ledger.Start(s.runID, s.req.Area(), s.req.WantTo()); err != nil {
			return err
		}
	}

	if err := s.FetchListPages(ctx); err != nil {
		return err
	}
	stored, err := s.FetchDetailPages(ctx)
	if err != nil {
		return err
	}

	if s.ledger != nil {
		if err := s.ledger.Finish(s.runID, s.req.NumberOfPages(), stored); err != nil {
			return err
		}
	}

	s.logger.Info("scrape run complete",
		zap.String("run_id", s.runID),
		zap.Int("detail_pages", stored))
	return nil
}

// FetchListPages fetches pages PageStart..PageStart+NumberOfPages-1 of the
// search results, one at a time, and stores each body under its page index.
func (s *Scraper) FetchListPages(ctx context.Context) error {
	searchURL := SearchURL(s.baseURL, s.req)
	s.logger.Info("main search URL", zap.String("url", searchURL))

	start := s.req.PageStart()
	for i := start; i < start+s.req.NumberOfPages(); i++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		pageURL := fmt.Sprintf("%s&search_result=%d", searchURL, i)
		body, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return err
		}
		if err := s.repo.SaveListPage(body, i, s.runID); err != nil {
			return err
		}
		s.logger.Debug("stored list page", zap.Int("index", i))
	}
	return nil
}

// FetchDetailPages reads the stored list pages, extracts and canonicalizes
// the listing URLs, fetches every one of them over the worker pool and
// stores the bodies indexed 0..n-1 in URL order. Returns the number of
// pages stored.
func (s *Scraper) FetchDetailPages(ctx context.Context) (int, error) {
	pages, err := s.repo.GetListPages(s.runID)
	if err != nil {
		return 0, err
	}

	urls, err := ListingURLs(pages)
	if err != nil {
		return 0, err
	}
	urls = RemoveDuplicates(urls)

	canonical := make([]string, len(urls))
	for i, u := range urls {
		c, err := CanonicalURL(u)
		if err != nil {
			return 0, err
		}
		canonical[i] = c
	}

	s.logger.Info("fetching detail pages",
		zap.Int("count", len(canonical)),
		zap.Int("workers", s.workers))

	bodies, err := s.fetchAll(ctx, canonical)
	if err != nil {
		return 0, err
	}

	for i, body := range bodies {
		if err := s.repo.SaveDetailPage(body, i, s.runID); err != nil {
			return 0, err
		}
	}
	return len(bodies), nil
}

// fetchAll runs one fetch per URL over the pool, preserving input order in
// the returned slice. The first failure wins: fetches already in flight
// finish, no new work is handed out, and nothing is returned for storage.
func (s *Scraper) fetchAll(ctx context.Context, urls []string) ([][]byte, error) {
	bodies := make([][]byte, len(urls))
	jobs := make(chan int)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if failed() {
					continue
				}
				body, err := s.fetcher.Fetch(ctx, urls[i])
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				bodies[i] = body
			}
		}()
	}

	for i := range urls {
		if failed() {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return bodies, nil
}
