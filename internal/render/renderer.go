// Package render turns earnings-call transcript text into a paginated PDF
// with a centered header block and an optional per-page logo watermark.
package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/finsight-labs/disclosureflow/internal/config"
)

const (
	pageMargin    = 72 // 1in, letter layout
	bodyLineH     = 14
	paragraphGap  = 8
	speakerTopGap = 10
)

var paragraphSplitter = regexp.MustCompile(`\r?\n\s*\r?\n`)

// Renderer produces archived transcript PDFs. The logo URL and opacity come
// from configuration; an empty URL disables watermarking.
type Renderer struct {
	logoURL    string
	opacity    float64
	httpClient *http.Client
}

// NewRenderer creates a renderer with the configured watermark settings.
func NewRenderer(cfg config.WatermarkConfig) *Renderer {
	return &Renderer{
		logoURL:    cfg.LogoURL,
		opacity:    cfg.Opacity,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Render lays the transcript out as a paginated document and stamps the
// watermark on every page. A failed logo fetch degrades soft: the document
// is produced without a watermark and a warning is logged.
func (r *Renderer) Render(ctx context.Context, companyName, eventTitle string, eventDate time.Time, text string) ([]byte, error) {
	doc, err := layoutTranscript(companyName, eventTitle, eventDate, text)
	if err != nil {
		return nil, err
	}

	if r.logoURL == "" {
		return doc, nil
	}
	logo, err := r.fetchLogo(ctx)
	if err != nil {
		slog.Warn("Failed to fetch watermark logo. Rendering without watermark.", "url", r.logoURL, "error", err)
		return doc, nil
	}
	stamped, err := stampLogo(doc, logo, r.opacity)
	if err != nil {
		return nil, fmt.Errorf("failed to stamp watermark: %w", err)
	}
	return stamped, nil
}

func (r *Renderer) fetchLogo(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.logoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating logo request: %w", err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("logo request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("logo URL returned HTTP %d", resp.StatusCode)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("reading logo body: %w", err)
	}
	return buf.Bytes(), nil
}

// layoutTranscript builds the unwatermarked document: header block, then one
// styled block per paragraph with a fixed spacer after each.
func layoutTranscript(companyName, eventTitle string, eventDate time.Time, text string) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 20, tr(companyName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 18, tr(eventTitle), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 16, eventDate.Format("2006-01-02"), "", 1, "C", false, 0, "")
	pdf.Ln(18)

	for _, para := range SplitParagraphs(text) {
		if IsSpeakerLabel(para) {
			pdf.Ln(speakerTopGap)
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetTextColor(96, 96, 96)
			pdf.MultiCell(0, bodyLineH, tr(para), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		} else {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, bodyLineH, tr(para), "", "L", false)
		}
		pdf.Ln(paragraphGap)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// SplitParagraphs breaks transcript text on blank-line boundaries, dropping
// empty units. Output order matches input order.
func SplitParagraphs(text string) []string {
	var paras []string
	for _, p := range paragraphSplitter.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}

// IsSpeakerLabel reports whether a paragraph renders in the speaker style.
// Transcripts mark speaker turns with a leading bracket.
func IsSpeakerLabel(para string) bool {
	return strings.HasPrefix(para, "[")
}
