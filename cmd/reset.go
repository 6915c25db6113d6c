package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every question in the bank",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			printWarn(out, "This deletes all stored questions. Re-run with --yes to confirm.")
			return nil
		}

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.QuestionRepo().Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset question bank: %w", err)
		}
		printOK(out, "Question bank cleared")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
