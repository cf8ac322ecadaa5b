package scraper

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// itemList mirrors the schema.org ItemList block funda embeds on every
// search-results page.
type itemList struct {
	ItemListElement []struct {
		URL string `json:"url"`
	} `json:"itemListElement"`
}

// ListingURLs returns the listing URLs found in the JSON-LD block of each
// list page, in document order, concatenated in page order. A page without
// a well-formed block fails with *ParseError.
func ListingURLs(pages [][]byte) ([]string, error) {
	var urls []string
	for i, page := range pages {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
		if err != nil {
			return nil, &ParseError{Page: i, Err: err}
		}

		script := doc.Find(`script[type="application/ld+json"]`).First()
		if script.Length() == 0 {
			return nil, &ParseError{Page: i, Err: errors.New("no application/ld+json script block")}
		}

		var list itemList
		if err := json.Unmarshal([]byte(script.Text()), &list); err != nil {
			return nil, &ParseError{Page: i, Err: err}
		}

		for _, item := range list.ItemListElement {
			urls = append(urls, item.URL)
		}
	}
	return urls, nil
}

// RemoveDuplicates drops repeated URLs, keeping the first occurrence and its
// position. Dedup runs on the raw URLs, before canonicalization; two raw
// URLs that only collide after canonicalization both survive.
func RemoveDuplicates(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// CanonicalURL rewrites a search-result listing URL into the detail-page
// form funda currently routes, e.g.
//
//	https://www.funda.nl/detail/koop/utrecht/appartement-domplein-5/43210987/
//
// becomes
//
//	https://www.funda.nl/koop/utrecht/appartement-43210987-domplein-5/?old_ldp=true
//
// The property id (path segment 5) moves into the address segment (path
// segment 4) right after its first token; only path segments 2 and 3
// survive in front of it. Query and fragment are dropped. A path with fewer
// segments fails with *LinkFormatError.
func CanonicalURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", &LinkFormatError{URL: raw}
	}

	segments := strings.Split(u.Path, "/")
	if len(segments) < 6 {
		return "", &LinkFormatError{URL: raw}
	}

	propertyID := segments[5]
	addressTokens := strings.Split(segments[4], "-")

	address := make([]string, 0, len(addressTokens)+1)
	address = append(address, addressTokens[0], propertyID)
	address = append(address, addressTokens[1:]...)

	path := []string{segments[2], segments[3], strings.Join(address, "-"), "?old_ldp=true"}
	return u.Scheme + "://" + u.Host + "/" + strings.Join(path, "/"), nil
}
