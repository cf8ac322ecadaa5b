package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"fundascraper/config"
	"fundascraper/extract"
	"fundascraper/scraper"
	"fundascraper/storage"
)

func main() {
	// =========
	// Flags
	// =========
	area := flag.String("area", "amsterdam", "area to search in")
	wantTo := flag.String("want-to", "rent", "'buy' or 'rent'")
	findSold := flag.Bool("find-sold", false, "search sold/unavailable listings")
	pageStart := flag.Int("page-start", 1, "first result page to fetch")
	numberOfPages := flag.Int("number-of-pages", 1, "how many result pages to fetch")
	minPrice := flag.Int("min-price", -1, "minimum price (-1 = unset)")
	maxPrice := flag.Int("max-price", -1, "maximum price (-1 = unset)")
	minFloorArea := flag.Int("min-floor-area", -1, "minimum floor area in m2 (-1 = unset)")
	maxFloorArea := flag.Int("max-floor-area", -1, "maximum floor area in m2 (-1 = unset)")
	daysSince := flag.Int("days-since", -1, "days since publication: 1, 3, 5, 10 or 30 (-1 = unset)")
	sortKey := flag.String("sort", "", "sort order: "+strings.Join(scraper.SortKeys, ", "))
	propertyType := flag.String("property-type", "", "comma-separated property types")
	raw := flag.Bool("raw", false, "keep extracted fields as scraped, skip cleaning")
	save := flag.Bool("save", false, "save the extracted listings as CSV")
	out := flag.String("out", "", "CSV output path (default funda_data_<run id>.csv)")
	configPath := flag.String("config", "", "path to a YAML config file")
	listRuns := flag.Bool("runs", false, "list recorded runs and exit")
	flag.Parse()

	// =========
	// Config
	// =========
	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Storage
	// =========
	repo := storage.NewFileRepository(cfg.DataDir)
	ledger, err := storage.OpenRunLedger(cfg.LedgerPath)
	if err != nil {
		logger.Fatal("failed to open run ledger", zap.Error(err))
	}
	defer ledger.Close()

	if *listRuns {
		printRuns(ledger)
		return
	}

	// =========
	// Search request
	// =========
	req, err := scraper.NewSearchRequest(scraper.Params{
		Area:          *area,
		WantTo:        *wantTo,
		FindSold:      *findSold,
		PageStart:     *pageStart,
		NumberOfPages: *numberOfPages,
		MinPrice:      optional(*minPrice),
		MaxPrice:      optional(*maxPrice),
		MinFloorArea:  optional(*minFloorArea),
		MaxFloorArea:  optional(*maxFloorArea),
		DaysSince:     optional(*daysSince),
		Sort:          *sortKey,
		PropertyType:  *propertyType,
	})
	if err != nil {
		logger.Fatal("invalid search parameters", zap.Error(err))
	}

	// =========
	// Fetcher
	// =========
	var fetcher scraper.Fetcher = scraper.NewCollyFetcher(cfg, logger)
	if cfg.Render {
		fetcher = scraper.NewBrowserFetcher(cfg, logger)
	}

	// =========
	// Scrape
	// =========
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := scraper.New(req, fetcher, repo, ledger, cfg, logger)
	if err := s.Run(ctx); err != nil {
		logger.Fatal("scrape run failed", zap.Error(err))
	}

	// =========
	// Extract
	// =========
	extractor := extract.NewDataExtractor(repo, logger)
	listings, err := extractor.ExtractRun(s.RunID(), !*raw)
	if err != nil {
		logger.Fatal("extraction failed", zap.Error(err))
	}

	if *save {
		path := *out
		if path == "" {
			path = fmt.Sprintf("funda_data_%s.csv", s.RunID())
		}
		if err := extract.SaveCSV(path, listings); err != nil {
			logger.Fatal("failed to save CSV", zap.Error(err))
		}
		logger.Info("saved CSV", zap.String("path", path), zap.Int("listings", len(listings)))
	}

	printHead(listings)
}

// optional maps the -1 flag sentinel to an unset filter.
func optional(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}

func printRuns(ledger *storage.RunLedger) {
	runs, err := ledger.Runs()
	if err != nil {
		log.Fatalf("failed to read run ledger: %v", err)
	}
	for _, rec := range runs {
		fmt.Printf("%s  %-7s %-5s %s  list=%d detail=%d\n",
			rec.RunID, rec.Status, rec.WantTo, rec.Area, rec.ListPages, rec.DetailPages)
	}
}

func printHead(listings []extract.Listing) {
	fmt.Printf("%d listings\n", len(listings))
	for i, l := range listings {
		if i == 5 {
			break
		}
		row, _ := json.Marshal(l)
		fmt.Println(string(row))
	}
}
