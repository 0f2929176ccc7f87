package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-labs/disclosureflow/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSelectDocumentsBoundaryInclusive(t *testing.T) {
	company := &models.Company{
		DisplayName: "Acme Corp",
		Events: []models.Event{
			{Date: day(2024, 1, 31), Title: "Before", Documents: map[models.Category]string{models.CategorySlides: "https://cdn/before.pdf"}},
			{Date: day(2024, 2, 1), Title: "Start", Documents: map[models.Category]string{models.CategorySlides: "https://cdn/start.pdf"}},
			{Date: day(2024, 2, 15), Title: "Middle", Documents: map[models.Category]string{models.CategorySlides: "https://cdn/middle.pdf"}},
			{Date: day(2024, 2, 29), Title: "End", Documents: map[models.Category]string{models.CategorySlides: "https://cdn/end.pdf"}},
			{Date: day(2024, 3, 1), Title: "After", Documents: map[models.Category]string{models.CategorySlides: "https://cdn/after.pdf"}},
		},
	}

	refs := SelectDocuments(company, day(2024, 2, 1), day(2024, 2, 29), []models.Category{models.CategorySlides})

	require.Len(t, refs, 3)
	assert.Equal(t, "Start", refs[0].EventTitle)
	assert.Equal(t, "Middle", refs[1].EventTitle)
	assert.Equal(t, "End", refs[2].EventTitle)
}

func TestSelectDocumentsIgnoresTimeOfDay(t *testing.T) {
	company := &models.Company{
		DisplayName: "Acme Corp",
		Events: []models.Event{
			{
				Date:      time.Date(2024, 2, 29, 23, 30, 0, 0, time.UTC),
				Title:     "Late call",
				Documents: map[models.Category]string{models.CategoryReport: "https://cdn/report.pdf"},
			},
		},
	}

	refs := SelectDocuments(company, day(2024, 2, 1), day(2024, 2, 29), []models.Category{models.CategoryReport})

	require.Len(t, refs, 1)
	assert.Equal(t, day(2024, 2, 29), refs[0].EventDate)
}

func TestSelectDocumentsSkipsMissingURLs(t *testing.T) {
	company := &models.Company{
		DisplayName: "Acme Corp",
		Events: []models.Event{
			{
				Date:  day(2024, 2, 10),
				Title: "Q4 Call",
				Documents: map[models.Category]string{
					models.CategorySlides:     "https://cdn/slides.pdf",
					models.CategoryTranscript: "",
				},
			},
		},
	}

	refs := SelectDocuments(company, day(2024, 1, 1), day(2024, 12, 31),
		[]models.Category{models.CategorySlides, models.CategoryReport, models.CategoryTranscript})

	require.Len(t, refs, 1)
	assert.Equal(t, models.CategorySlides, refs[0].Category)
}

func TestSelectDocumentsOrdering(t *testing.T) {
	company := &models.Company{
		DisplayName: "Acme Corp",
		Events: []models.Event{
			{
				Date:  day(2024, 2, 10),
				Title: "First",
				Documents: map[models.Category]string{
					models.CategorySlides:     "https://cdn/1-slides.pdf",
					models.CategoryReport:     "https://cdn/1-report.pdf",
					models.CategoryTranscript: "https://cdn/1-transcript",
				},
			},
			{
				Date:  day(2024, 2, 20),
				Title: "Second",
				Documents: map[models.Category]string{
					models.CategorySlides: "https://cdn/2-slides.pdf",
				},
			},
		},
	}

	// Caller's category order, not canonical order.
	refs := SelectDocuments(company, day(2024, 1, 1), day(2024, 12, 31),
		[]models.Category{models.CategoryTranscript, models.CategorySlides})

	require.Len(t, refs, 3)
	assert.Equal(t, models.CategoryTranscript, refs[0].Category)
	assert.Equal(t, "First", refs[0].EventTitle)
	assert.Equal(t, models.CategorySlides, refs[1].Category)
	assert.Equal(t, "First", refs[1].EventTitle)
	assert.Equal(t, models.CategorySlides, refs[2].Category)
	assert.Equal(t, "Second", refs[2].EventTitle)
}
