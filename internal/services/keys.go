package services

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/finsight-labs/disclosureflow/internal/models"
)

// companySanitizer strips runes that are unsafe in a storage key segment.
// Applied after lower-casing and space replacement.
var companySanitizer = regexp.MustCompile(`[^a-z0-9._-]`)

// FormatArchiveKey maps a document to its canonical storage key:
// {company}/{date}/{category}/{filename}. The mapping is a pure function of
// its inputs, so re-running an identical selection overwrites in place.
func FormatArchiveKey(company string, date time.Time, category models.Category, filename string) string {
	return fmt.Sprintf("%s/%s/%s/%s",
		sanitizeSegment(company),
		date.Format("2006-01-02"),
		category,
		strings.ToLower(strings.ReplaceAll(filename, " ", "_")),
	)
}

// TranscriptFilename derives the archive filename for a rendered transcript
// from its event title.
func TranscriptFilename(eventTitle string) string {
	return strings.ToLower(strings.ReplaceAll(eventTitle, " ", "_")) + "_transcript.pdf"
}

// FilenameFromURL returns the trailing path segment of a document URL with
// any query string dropped. Falls back to "document.pdf" when the URL has no
// usable path.
func FilenameFromURL(rawURL string) string {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		name = u.Path
	}
	name = path.Base(name)
	if name == "." || name == "/" || name == "" {
		return "document.pdf"
	}
	return name
}

func sanitizeSegment(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	return companySanitizer.ReplaceAllString(s, "")
}
