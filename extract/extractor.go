package extract

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"fundascraper/storage"
)

// DataExtractor turns the stored detail pages of a run into Listing
// records. Extraction is field mapping, not pipeline logic: a page that
// cannot be parsed is logged and skipped rather than failing the run.
type DataExtractor struct {
	repo   storage.PageRepository
	logger *zap.Logger
}

func NewDataExtractor(repo storage.PageRepository, logger *zap.Logger) *DataExtractor {
	return &DataExtractor{repo: repo, logger: logger}
}

// detailJSONLD covers the fields funda puts in the detail page's JSON-LD
// block.
type detailJSONLD struct {
	URL     string `json:"url"`
	Address struct {
		StreetAddress string `json:"streetAddress"`
		PostalCode    string `json:"postalCode"`
		Locality      string `json:"addressLocality"`
	} `json:"address"`
}

// Dutch feature labels on the detail page's kenmerken list.
var featureFields = map[string]func(*Listing, string){
	"Vraagprijs":       func(l *Listing, v string) { l.Price = v },
	"Huurprijs":        func(l *Listing, v string) { l.Price = v },
	"Wonen":            func(l *Listing, v string) { l.LivingArea = v },
	"Perceel":          func(l *Listing, v string) { l.PlotArea = v },
	"Aantal kamers":    func(l *Listing, v string) { l.Rooms = v },
	"Bouwjaar":         func(l *Listing, v string) { l.YearBuilt = v },
	"Energielabel":     func(l *Listing, v string) { l.EnergyLabel = v },
	"Aangeboden sinds": func(l *Listing, v string) { l.ListedSince = v },
}

// ExtractRun parses every stored detail page of the run. With clean set,
// numeric fields are reduced to bare numbers.
func (e *DataExtractor) ExtractRun(runID string, clean bool) ([]Listing, error) {
	pages, err := e.repo.GetDetailPages(runID)
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(pages))
	for i, page := range pages {
		listing, err := parseDetailPage(page)
		if err != nil {
			e.logger.Warn("skipping unparseable detail page",
				zap.Int("index", i),
				zap.String("run_id", runID),
				zap.Error(err))
			continue
		}
		if clean {
			cleanListing(&listing)
		}
		listings = append(listings, listing)
	}

	e.logger.Info("extracted listings",
		zap.String("run_id", runID),
		zap.Int("pages", len(pages)),
		zap.Int("listings", len(listings)))
	return listings, nil
}

func parseDetailPage(page []byte) (Listing, error) {
	var listing Listing

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return listing, err
	}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var block detailJSONLD
		if err := json.Unmarshal([]byte(s.Text()), &block); err != nil {
			return true
		}
		if block.Address.StreetAddress == "" {
			return true
		}
		listing.URL = block.URL
		listing.Address = block.Address.StreetAddress
		listing.PostalCode = block.Address.PostalCode
		listing.City = block.Address.Locality
		return false
	})

	if listing.Address == "" {
		listing.Address = text(doc, ".object-header__title")
	}
	if listing.Price == "" {
		listing.Price = text(doc, ".object-header__price")
	}
	listing.Description = text(doc, ".object-description-body")

	doc.Find("dl dt").Each(func(_ int, dt *goquery.Selection) {
		label := strings.TrimSpace(dt.Text())
		set, ok := featureFields[label]
		if !ok {
			return
		}
		value := strings.TrimSpace(dt.NextFiltered("dd").Text())
		if value != "" {
			set(&listing, value)
		}
	})

	return listing, nil
}

func text(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

var leadingNumber = regexp.MustCompile(`\d[\d.]*`)

// cleanListing reduces scraped text like "€ 425.000 k.k." or "86 m²" to a
// bare number.
func cleanListing(l *Listing) {
	l.Price = numeric(l.Price)
	l.LivingArea = numeric(l.LivingArea)
	l.PlotArea = numeric(l.PlotArea)
	l.Rooms = numeric(l.Rooms)
	l.YearBuilt = numeric(l.YearBuilt)
}

func numeric(v string) string {
	match := leadingNumber.FindString(v)
	if match == "" {
		return v
	}
	return strings.ReplaceAll(match, ".", "")
}
