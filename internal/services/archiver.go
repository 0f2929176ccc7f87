// Package services holds the pipeline core: document selection, archive key
// derivation and the run orchestrator.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/finsight-labs/disclosureflow/internal/models"
	"github.com/finsight-labs/disclosureflow/internal/storage"
)

// Catalog is the slice of the catalog client the orchestrator needs.
type Catalog interface {
	GetCompany(ctx context.Context, identifier string) (*models.Company, error)
	ResolveTranscriptURL(ctx context.Context, transcriptURL string) (string, error)
	TranscriptText(ctx context.Context, transcriptURL string) (string, error)
	Download(ctx context.Context, url string) ([]byte, string, error)
}

// Renderer produces the archived PDF for a transcript.
type Renderer interface {
	Render(ctx context.Context, companyName, eventTitle string, eventDate time.Time, text string) ([]byte, error)
}

// Archiver runs the retrieval-and-archival pipeline: concurrent metadata
// fetch, selection, then a strictly sequential unit loop with per-unit
// failure containment.
type Archiver struct {
	catalog  Catalog
	renderer Renderer
	store    storage.ObjectStore
	limiter  *rate.Limiter

	// OnProgress, when set, receives a snapshot after every processed unit,
	// in processing order.
	OnProgress func(models.RunProgress)
}

// NewArchiver wires the pipeline. pacing is the minimum spacing between
// processed units; zero disables pacing.
func NewArchiver(catalog Catalog, renderer Renderer, store storage.ObjectStore, pacing time.Duration) *Archiver {
	limit := rate.Inf
	if pacing > 0 {
		limit = rate.Every(pacing)
	}
	return &Archiver{
		catalog:  catalog,
		renderer: renderer,
		store:    store,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Run executes one end-to-end archival run. Unit failures are contained and
// counted; the returned error is non-nil only when the run itself aborts
// (context cancellation being the usual cause).
func (a *Archiver) Run(ctx context.Context, req models.RunRequest) (*models.RunResult, error) {
	logCtx := slog.With("runId", uuid.NewString())
	logCtx.Info("Starting archival run.",
		"identifiers", len(req.Identifiers),
		"start", req.StartDate.Format("2006-01-02"),
		"end", req.EndDate.Format("2006-01-02"),
		"bucket", req.Bucket,
	)

	companies := a.fetchCompanies(ctx, logCtx, req.Identifiers)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run aborted during metadata fetch: %w", err)
	}
	if len(companies) == 0 {
		logCtx.Warn("No valid identifiers. Nothing to do.")
		return &models.RunResult{Outcome: models.OutcomeNoValidIdentifiers}, nil
	}

	var units []models.DocumentRef
	for _, company := range companies {
		units = append(units, SelectDocuments(company, req.StartDate, req.EndDate, req.Categories)...)
	}
	if len(units) == 0 {
		logCtx.Info("No matching documents for the specified criteria.")
		return &models.RunResult{Outcome: models.OutcomeNoDocuments}, nil
	}

	result := &models.RunResult{
		Outcome: models.OutcomeCompleted,
		Total:   len(units),
		Units:   make([]models.UnitOutcome, 0, len(units)),
	}
	logCtx.Info("Selection complete. Processing units.", "total", result.Total)

	for _, ref := range units {
		outcome := a.processUnit(ctx, ref, req.Bucket)
		result.Processed++
		if outcome.Err != nil {
			result.Failed++
			logCtx.Warn("Unit failed.",
				"company", ref.CompanyName,
				"event", ref.EventTitle,
				"category", ref.Category,
				"kind", outcome.Err.Kind,
				"error", outcome.Err.Err,
			)
		} else {
			result.Succeeded++
			logCtx.Info("Unit archived.", "key", outcome.Key)
		}
		result.Units = append(result.Units, outcome)

		if a.OnProgress != nil {
			a.OnProgress(models.RunProgress{
				Total:     result.Total,
				Processed: result.Processed,
				Succeeded: result.Succeeded,
				Failed:    result.Failed,
			})
		}

		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("run aborted: %w", err)
		}
	}

	logCtx.Info("Run complete.", "summary", result.Summary())
	return result, nil
}

// fetchCompanies fans out one metadata fetch per identifier and collects the
// results in input order. A failed fetch drops the identifier with a warning
// and does not count against any unit.
func (a *Archiver) fetchCompanies(ctx context.Context, logCtx *slog.Logger, identifiers []string) []*models.Company {
	fetched := make([]*models.Company, len(identifiers))
	eg, gctx := errgroup.WithContext(ctx)
	for i, id := range identifiers {
		eg.Go(func() error {
			company, err := a.catalog.GetCompany(gctx, id)
			if err != nil {
				logCtx.Warn("Skipping unrecognized identifier.", "identifier", id, "error", err)
				return nil
			}
			fetched[i] = company
			return nil
		})
	}
	_ = eg.Wait()

	companies := make([]*models.Company, 0, len(fetched))
	for _, c := range fetched {
		if c != nil {
			companies = append(companies, c)
		}
	}
	return companies
}

// processUnit pushes one document reference through its path: transcript
// units resolve, render and upload; binary units download and upload. All
// failures stay inside the returned outcome.
func (a *Archiver) processUnit(ctx context.Context, ref models.DocumentRef, bucket string) models.UnitOutcome {
	out := models.UnitOutcome{Ref: ref}

	if ref.Category == models.CategoryTranscript {
		rawURL, err := a.catalog.ResolveTranscriptURL(ctx, ref.URL)
		if err != nil {
			out.Err = &models.UnitError{Kind: models.FailureResolve, Err: err}
			return out
		}
		text, err := a.catalog.TranscriptText(ctx, rawURL)
		if err != nil {
			out.Err = &models.UnitError{Kind: models.FailureDecode, Err: err}
			return out
		}
		if text == "" {
			out.Err = &models.UnitError{Kind: models.FailureDecode, Err: errors.New("transcript has no text")}
			return out
		}
		doc, err := a.renderer.Render(ctx, ref.CompanyName, ref.EventTitle, ref.EventDate, text)
		if err != nil {
			out.Err = &models.UnitError{Kind: models.FailureRender, Err: err}
			return out
		}
		out.Key = FormatArchiveKey(ref.CompanyName, ref.EventDate, ref.Category, TranscriptFilename(ref.EventTitle))
		if err := a.store.Put(ctx, bucket, out.Key, doc, "application/pdf"); err != nil {
			out.Err = &models.UnitError{Kind: models.FailureUpload, Err: err}
		}
		return out
	}

	data, contentType, err := a.catalog.Download(ctx, ref.URL)
	if err != nil {
		out.Err = &models.UnitError{Kind: models.FailureFetch, Err: err}
		return out
	}
	out.Key = FormatArchiveKey(ref.CompanyName, ref.EventDate, ref.Category, FilenameFromURL(ref.URL))
	if err := a.store.Put(ctx, bucket, out.Key, data, contentType); err != nil {
		out.Err = &models.UnitError{Kind: models.FailureUpload, Err: err}
	}
	return out
}
