package main

import (
	"fmt"
	"io"

	"github.com/efkobus/antifraud-system/internal/pkg/dataset"
	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/spf13/cobra"
)

func loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [csv]",
		Short: "Load historical transactions and apply their chargebacks",
		Long: `Load historical transactions without running the rules.

Rows are inserted as they are; ids already stored are left untouched. Every
row marked has_cbk is then applied as a chargeback, which flags its user.

Example:
  antifraudctl load data/transactional-sample.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readDataset(args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			ctx := cliContext(cmd)
			uc, err := e.engine(ctx)
			if err != nil {
				return err
			}

			summary, err := uc.Ingest(ctx, records.records)
			if summary != nil {
				summary.Rows += records.unreadable
				summary.Skipped += records.unreadable
				printSummary(cmd.OutOrStdout(), summary)
			}
			if err != nil {
				e.logger.Error("Historical load failed", logger.Err(err))
				return err
			}
			return nil
		},
	}
}

type loadedDataset struct {
	records    []models.HistoricalRecord
	unreadable int
}

func readDataset(path string, w io.Writer) (*loadedDataset, error) {
	records, rowErrs, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}
	for _, rowErr := range rowErrs {
		fmt.Fprintf(w, "skipping %v\n", rowErr)
	}
	return &loadedDataset{records: records, unreadable: len(rowErrs)}, nil
}

func printSummary(w io.Writer, s *models.IngestSummary) {
	fmt.Fprintf(w, "rows:        %d\n", s.Rows)
	fmt.Fprintf(w, "inserted:    %d\n", s.Inserted)
	fmt.Fprintf(w, "duplicates:  %d\n", s.Duplicates)
	fmt.Fprintf(w, "skipped:     %d\n", s.Skipped)
	fmt.Fprintf(w, "chargebacks: %d\n", s.Chargebacks)
}
