package models

import (
	"fmt"
	"strings"
	"time"
)

// Category identifies a kind of disclosure document attached to an event.
type Category string

const (
	CategorySlides     Category = "slides"
	CategoryReport     Category = "report"
	CategoryTranscript Category = "transcript"
)

// Categories lists all known categories in canonical order.
var Categories = []Category{CategorySlides, CategoryReport, CategoryTranscript}

// ParseCategory converts a user-supplied name into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategorySlides:
		return CategorySlides, nil
	case CategoryReport:
		return CategoryReport, nil
	case CategoryTranscript:
		return CategoryTranscript, nil
	}
	return "", fmt.Errorf("unknown document category %q", s)
}

// ParseCategories converts a list of names, preserving the caller's order.
func ParseCategories(names []string) ([]Category, error) {
	cats := make([]Category, 0, len(names))
	for _, n := range names {
		c, err := ParseCategory(n)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, nil
}

// Company is a company record as returned by the remote catalog. It is
// fetched fresh per run and immutable afterwards.
type Company struct {
	Identifier  string
	DisplayName string
	Events      []Event
}

// Event is a single disclosure occasion (earnings call, report release).
// Date carries calendar-date precision only; any time-of-day component from
// the catalog payload is dropped at the decode boundary.
type Event struct {
	Date      time.Time
	Title     string
	Documents map[Category]string
}

// DocumentRef is one selected unit of work: a document attached to an event,
// scheduled for archival. It exists only while a run iterates.
type DocumentRef struct {
	CompanyName string
	EventTitle  string
	EventDate   time.Time
	Category    Category
	URL         string
}
