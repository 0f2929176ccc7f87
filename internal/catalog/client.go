// Package catalog is the HTTP client for the remote disclosure catalog. It
// covers company metadata lookup, raw-transcript resolution and binary
// document download.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/finsight-labs/disclosureflow/internal/config"
	"github.com/finsight-labs/disclosureflow/internal/models"
)

const apiKeyHeader = "X-Api-Key"

// Client talks to the disclosure catalog. BaseURL is a field so tests can
// point it at an httptest server.
type Client struct {
	BaseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a catalog client from configuration. The transport's own
// timeout is the only timeout layer.
func NewClient(cfg config.CatalogConfig) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// companyPayload mirrors the catalog's company+events JSON document.
type companyPayload struct {
	DisplayName string         `json:"displayName"`
	Events      []eventPayload `json:"events"`
}

type eventPayload struct {
	EventDate     string `json:"eventDate"`
	EventTitle    string `json:"eventTitle"`
	SlidesURL     string `json:"slidesUrl"`
	ReportURL     string `json:"reportUrl"`
	TranscriptURL string `json:"transcriptUrl"`
}

type transcriptsPayload struct {
	Transcripts struct {
		TranscriptURL string `json:"transcriptUrl"`
	} `json:"transcripts"`
}

type transcriptPayload struct {
	Transcript struct {
		Text string `json:"text"`
	} `json:"transcript"`
}

// GetCompany fetches the company record for one identifier. A non-success
// response or a malformed payload is an error; the orchestrator treats it as
// a dropped identifier, never as a failed document.
func (c *Client) GetCompany(ctx context.Context, identifier string) (*models.Company, error) {
	url := fmt.Sprintf("%s/companies/identifier/%s", c.BaseURL, identifier)
	body, _, err := c.get(ctx, url, true)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var payload companyPayload
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding company payload for %s: %w", identifier, err)
	}
	if payload.DisplayName == "" {
		return nil, fmt.Errorf("company payload for %s has no displayName", identifier)
	}

	company := &models.Company{
		Identifier:  identifier,
		DisplayName: payload.DisplayName,
		Events:      make([]models.Event, 0, len(payload.Events)),
	}
	for _, ev := range payload.Events {
		date, err := parseEventDate(ev.EventDate)
		if err != nil {
			return nil, fmt.Errorf("event %q of %s: %w", ev.EventTitle, identifier, err)
		}
		docs := make(map[models.Category]string)
		if ev.SlidesURL != "" {
			docs[models.CategorySlides] = ev.SlidesURL
		}
		if ev.ReportURL != "" {
			docs[models.CategoryReport] = ev.ReportURL
		}
		if ev.TranscriptURL != "" {
			docs[models.CategoryTranscript] = ev.TranscriptURL
		}
		company.Events = append(company.Events, models.Event{
			Date:      date,
			Title:     ev.EventTitle,
			Documents: docs,
		})
	}
	return company, nil
}

// ResolveTranscriptURL maps a transcript document URL to the raw-transcript
// resource. URLs that already point at a raw transcript pass through; for
// everything else one indirection request against the event's transcripts
// resource supplies the real URL.
func (c *Client) ResolveTranscriptURL(ctx context.Context, transcriptURL string) (string, error) {
	if strings.Contains(transcriptURL, "raw-transcripts") {
		return transcriptURL, nil
	}

	base, _, _ := strings.Cut(transcriptURL, "/transcript")
	infoURL := base + "/transcripts"
	body, _, err := c.get(ctx, infoURL, true)
	if err != nil {
		return "", fmt.Errorf("transcript lookup at %s: %w", infoURL, err)
	}
	defer body.Close()

	var payload transcriptsPayload
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding transcripts payload from %s: %w", infoURL, err)
	}
	if payload.Transcripts.TranscriptURL == "" {
		return "", fmt.Errorf("no raw transcript URL found for %s", base)
	}
	return payload.Transcripts.TranscriptURL, nil
}

// TranscriptText fetches a resolved transcript URL and extracts the plain
// text. The response must be 200 with a JSON content type.
func (c *Client) TranscriptText(ctx context.Context, transcriptURL string) (string, error) {
	body, contentType, err := c.get(ctx, transcriptURL, false)
	if err != nil {
		return "", err
	}
	defer body.Close()

	if !strings.Contains(contentType, "application/json") {
		return "", fmt.Errorf("unexpected content type %q for transcript %s", contentType, transcriptURL)
	}
	var payload transcriptPayload
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding transcript JSON from %s: %w", transcriptURL, err)
	}
	return payload.Transcript.Text, nil
}

// Download fetches a binary document (slides, report). It returns the body
// bytes and the declared content type, defaulting to application/pdf when
// the header is absent.
func (c *Client) Download(ctx context.Context, url string) ([]byte, string, error) {
	body, contentType, err := c.get(ctx, url, false)
	if err != nil {
		return nil, "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("reading document body from %s: %w", url, err)
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	return data, contentType, nil
}

// Fetch retrieves an arbitrary resource without the API key header. Used for
// the watermark logo, which lives outside the catalog.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, _, err := c.get(ctx, url, false)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (c *Client) get(ctx context.Context, url string, withAuth bool) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request for %s: %w", url, err)
	}
	if withAuth {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request to %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("%s returned HTTP %d", url, resp.StatusCode)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// parseEventDate accepts the date formats the catalog emits and truncates
// them to calendar-date precision.
func parseEventDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("event has no eventDate")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable eventDate %q", raw)
}
