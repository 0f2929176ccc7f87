package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/finsight-labs/disclosureflow/internal/catalog"
	"github.com/finsight-labs/disclosureflow/internal/config"
	"github.com/finsight-labs/disclosureflow/internal/models"
	"github.com/finsight-labs/disclosureflow/internal/render"
	"github.com/finsight-labs/disclosureflow/internal/services"
	"github.com/finsight-labs/disclosureflow/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("Command failed.", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "disclosureflow",
		Short:         "Retrieve financial-disclosure documents and archive them to object storage",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newArchiveCmd())
	return root
}

func newArchiveCmd() *cobra.Command {
	var (
		identifiersFile string
		startStr        string
		endStr          string
		typeNames       []string
		bucket          string
	)

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Run one retrieval-and-archival pass for a list of company identifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			identifiers, err := readIdentifiers(identifiersFile)
			if err != nil {
				return err
			}
			if len(identifiers) == 0 {
				return fmt.Errorf("no identifiers supplied")
			}

			start, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return fmt.Errorf("invalid --start date %q: %w", startStr, err)
			}
			end, err := time.Parse("2006-01-02", endStr)
			if err != nil {
				return fmt.Errorf("invalid --end date %q: %w", endStr, err)
			}
			if start.After(end) {
				return fmt.Errorf("start date %s is after end date %s", startStr, endStr)
			}

			categories, err := models.ParseCategories(typeNames)
			if err != nil {
				return err
			}

			if bucket == "" {
				bucket = cfg.Storage.DefaultBucket
			}
			if bucket == "" {
				return fmt.Errorf("no bucket supplied and no default bucket configured")
			}

			ctx := cmd.Context()
			store, err := storage.New(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			archiver := services.NewArchiver(
				catalog.NewClient(cfg.Catalog),
				render.NewRenderer(cfg.Watermark),
				store,
				cfg.PacingInterval,
			)
			archiver.OnProgress = func(p models.RunProgress) {
				slog.Info("Progress.",
					"status", p.Status(),
					"fraction", fmt.Sprintf("%.2f", p.Fraction()),
					"succeeded", p.Succeeded,
					"failed", p.Failed,
				)
			}

			result, err := archiver.Run(ctx, models.RunRequest{
				Identifiers: identifiers,
				StartDate:   start,
				EndDate:     end,
				Categories:  categories,
				Bucket:      bucket,
			})
			if err != nil {
				return err
			}

			switch result.Outcome {
			case models.OutcomeNoValidIdentifiers:
				fmt.Fprintln(cmd.OutOrStdout(), "No valid identifiers found.")
			case models.OutcomeNoDocuments:
				fmt.Fprintln(cmd.OutOrStdout(), "No matching documents found for the specified criteria.")
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Processing complete. %s\n", result.Summary())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&identifiersFile, "identifiers", "i", "-", "file with one identifier per line, or - for stdin")
	cmd.Flags().StringVar(&startStr, "start", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&endStr, "end", "", "end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringSliceVar(&typeNames, "types", defaultTypeNames(), "document categories to archive")
	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "destination bucket (defaults to the configured bucket)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

// defaultTypeNames lists every known category, in canonical order.
func defaultTypeNames() []string {
	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		names = append(names, string(c))
	}
	return names
}

// readIdentifiers loads the identifier list: one per line, trimmed, blank
// lines dropped.
func readIdentifiers(source string) ([]string, error) {
	var r io.Reader
	if source == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open identifiers file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var identifiers []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			identifiers = append(identifiers, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read identifiers: %w", err)
	}
	return identifiers, nil
}
