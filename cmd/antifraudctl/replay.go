package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/spf13/cobra"
)

func replayCmd() *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "replay [csv]",
		Short: "Replay labelled history through the rules and score the verdicts",
		Long: `Replay labelled history through the rules and score the verdicts.

The store is emptied first, then rows are evaluated in timestamp order and
each verdict is compared with the row's has_cbk label. Chargebacks are applied
after scoring.

Example:
  antifraudctl replay data/transactional-sample.csv --reset`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !reset {
				return errors.New("replay deletes every stored transaction; pass --reset to confirm")
			}

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

			report, err := uc.Replay(ctx, records.records)
			if report != nil {
				report.Skipped += records.unreadable
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "confirm that the store may be emptied")
	return cmd
}

func printReport(w io.Writer, r *models.ReplayReport) {
	fmt.Fprintf(w, "processed:        %d\n", r.Processed)
	fmt.Fprintf(w, "skipped:          %d\n", r.Skipped)
	fmt.Fprintf(w, "correct deny:     %d\n", r.CorrectDeny)
	fmt.Fprintf(w, "correct approve:  %d\n", r.CorrectApprove)
	fmt.Fprintf(w, "false positive:   %d\n", r.FalsePositive)
	fmt.Fprintf(w, "false negative:   %d\n", r.FalseNegative)
	fmt.Fprintf(w, "precision:        %.2f%%\n", r.Precision()*100)
	fmt.Fprintf(w, "recall:           %.2f%%\n", r.Recall()*100)
	fmt.Fprintf(w, "specificity:      %.2f%%\n", r.Specificity()*100)
	fmt.Fprintf(w, "f1:               %.4f\n", r.F1())
	fmt.Fprintf(w, "accuracy:         %.2f%%\n", r.Accuracy()*100)
	fmt.Fprintf(w, "fraud caught:     %s\n", r.CaughtAmount.StringFixed(2))
	fmt.Fprintf(w, "fraud missed:     %s\n", r.MissedAmount.StringFixed(2))
}
