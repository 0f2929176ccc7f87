package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finsight-labs/disclosureflow/internal/models"
)

func TestFormatArchiveKey(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	key := FormatArchiveKey("Acme Corp", date, models.CategorySlides, "Q1 Slides.pdf")
	assert.Equal(t, "acme_corp/2024-03-05/slides/q1_slides.pdf", key)
}

func TestFormatArchiveKeyDeterministic(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	first := FormatArchiveKey("Acme Corp", date, models.CategoryReport, "annual.pdf")
	second := FormatArchiveKey("Acme Corp", date, models.CategoryReport, "annual.pdf")
	assert.Equal(t, first, second)
}

func TestFormatArchiveKeyStripsUnsafeRunes(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	key := FormatArchiveKey("Smith & Sons (Holdings)", date, models.CategoryReport, "report.pdf")
	assert.Equal(t, "smith__sons_holdings/2024-06-01/report/report.pdf", key)
}

func TestTranscriptFilename(t *testing.T) {
	assert.Equal(t, "q4_2023_earnings_call_transcript.pdf", TranscriptFilename("Q4 2023 Earnings Call"))
}

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain", "https://cdn.example.com/docs/slides.pdf", "slides.pdf"},
		{"with query", "https://cdn.example.com/docs/report.pdf?X-Amz-Signature=abc", "report.pdf"},
		{"no path", "https://cdn.example.com", "document.pdf"},
		{"root path only", "https://cdn.example.com/", "document.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilenameFromURL(tt.url))
		})
	}
}
