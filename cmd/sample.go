package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/questify/internal/render"
)

var sampleSyllabusCmd = &cobra.Command{
	Use:   "sample-syllabus",
	Short: "Write a small demo syllabus with three units",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if text, _ := cmd.Flags().GetBool("text"); text {
			fmt.Fprint(cmd.OutOrStdout(), render.SampleSyllabusText())
			return nil
		}

		var buf bytes.Buffer
		if err := render.SampleSyllabusPDF(&buf); err != nil {
			return fmt.Errorf("render sample syllabus: %w", err)
		}
		path, _ := cmd.Flags().GetString("out")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printOK(cmd.OutOrStdout(), "Saved %s", path)
		return nil
	},
}

func init() {
	sampleSyllabusCmd.Flags().StringP("out", "o", "sample_syllabus.pdf", "Output PDF file")
	sampleSyllabusCmd.Flags().Bool("text", false, "Print the syllabus as plain text instead")
}
