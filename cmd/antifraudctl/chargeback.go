package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func chargebackCmd() *cobra.Command {
	var notCharged bool
	cmd := &cobra.Command{
		Use:   "chargeback [transaction-id]",
		Short: "Mark a stored transaction as charged back",
		Long: `Mark a stored transaction as charged back and flag its user.

A recorded chargeback is never cleared; --clear only records a negative
report and changes nothing already flagged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid transaction id %q", args[0])
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

			result, err := uc.ApplyChargeback(ctx, id, !notCharged)
			if err != nil {
				return err
			}
			if !result.Found {
				fmt.Fprintf(cmd.OutOrStdout(), "transaction %d is not stored, nothing changed\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "transaction %d (user %d) updated, user flagged: %t\n",
				id, result.UserID, result.UserFlagged)
			return nil
		},
	}
	cmd.Flags().BoolVar(&notCharged, "clear", false, "report the transaction as not charged back")
	return cmd
}
