package scraper

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func listPage(urls ...string) []byte {
	items := ""
	for i, u := range urls {
		if i > 0 {
			items += ","
		}
		items += fmt.Sprintf(`{"@type":"ListItem","position":%d,"url":"%s"}`, i+1, u)
	}
	return []byte(fmt.Sprintf(`<html><head>
		<script type="application/ld+json">{"@type":"ItemList","itemListElement":[%s]}</script>
		</head><body></body></html>`, items))
}

func TestListingURLsPageOrder(t *testing.T) {
	pages := [][]byte{
		listPage("https://x/a", "https://x/b"),
		listPage("https://x/c"),
	}

	got, err := ListingURLs(pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"https://x/a", "https://x/b", "https://x/c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestListingURLsMissingBlock(t *testing.T) {
	pages := [][]byte{[]byte("<html><body><p>no structured data</p></body></html>")}

	_, err := ListingURLs(pages)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestListingURLsMalformedBlock(t *testing.T) {
	pages := [][]byte{[]byte(`<html><head>
		<script type="application/ld+json">{not json</script>
		</head></html>`)}

	_, err := ListingURLs(pages)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestRemoveDuplicatesKeepsFirstOccurrenceOrder(t *testing.T) {
	got := RemoveDuplicates([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCanonicalURL(t *testing.T) {
	raw := "https://www.funda.nl/detail/koop/utrecht/appartement-domplein-5/43210987/?navigateSource=resultlist"

	got, err := CanonicalURL(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://www.funda.nl/koop/utrecht/appartement-43210987-domplein-5/?old_ldp=true"
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestCanonicalURLDeterministic(t *testing.T) {
	raw := "https://www.funda.nl/detail/huur/amsterdam/huis-keizersgracht-12/89001234/"

	first, err := CanonicalURL(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := CanonicalURL(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("not deterministic: %s vs %s", first, second)
	}
}

func TestCanonicalURLShortPath(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{"NoPath", "https://www.funda.nl/"},
		{"TooFewSegments", "https://www.funda.nl/koop/utrecht/appartement-domplein-5/"},
		// A canonical URL has only four path segments left, so feeding the
		// output back in must fail loudly, not produce garbage.
		{"AlreadyCanonical", "https://www.funda.nl/koop/utrecht/appartement-43210987-domplein-5/?old_ldp=true"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CanonicalURL(tc.raw)
			var lerr *LinkFormatError
			if !errors.As(err, &lerr) {
				t.Fatalf("expected LinkFormatError, got %v", err)
			}
		})
	}
}

// Dedup runs on raw URLs before canonicalization. Two raw URLs that differ
// only in their query string both survive dedup even though they map to the
// same canonical detail URL, so that detail page is fetched twice. This
// documents the current pipeline order.
func TestDedupRunsBeforeCanonicalization(t *testing.T) {
	rawA := "https://www.funda.nl/detail/koop/utrecht/appartement-domplein-5/43210987/?src=list"
	rawB := "https://www.funda.nl/detail/koop/utrecht/appartement-domplein-5/43210987/?src=map"

	deduped := RemoveDuplicates([]string{rawA, rawB})
	if len(deduped) != 2 {
		t.Fatalf("raw dedup collapsed distinct raw URLs: %v", deduped)
	}

	canonA, err := CanonicalURL(rawA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	canonB, err := CanonicalURL(rawB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if canonA != canonB {
		t.Fatalf("expected identical canonical URLs, got %s and %s", canonA, canonB)
	}
}
