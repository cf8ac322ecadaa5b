package scraper

import "fmt"

// ValidationError reports a search parameter that failed validation. It is
// raised eagerly, at construction or reset, never mid-run.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid search parameter %q: %s", e.Field, e.Reason)
}

// ParseError reports a list page whose embedded JSON-LD block is missing or
// malformed.
type ParseError struct {
	Page int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse list page %d: %v", e.Page, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LinkFormatError reports a listing URL whose path does not have the layout
// the canonicalizer expects. It means funda changed their URL scheme and the
// canonicalizer needs updating, so it is never swallowed.
type LinkFormatError struct {
	URL string
}

func (e *LinkFormatError) Error() string {
	return fmt.Sprintf("listing URL has unexpected path layout: %s", e.URL)
}

// FetchError reports a failed HTTP fetch. StatusCode is zero when the
// request never produced a response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
