package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/questify/internal/config"
	"github.com/abhisek/questify/internal/render"
	"github.com/abhisek/questify/internal/store"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect and export the question bank",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored questions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		filter, err := questionFilter(cmd)
		if err != nil {
			return err
		}
		qs, err := s.QuestionRepo().Query(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("query questions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(qs) == 0 {
			fmt.Fprintln(out, "No questions found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-16s  %-5s  %-6s  %s\n", "ID", "Unit", "Marks", "Level", "Question")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, q := range qs {
			fmt.Fprintf(out, "%-5d  %-16s  %-5d  %-6s  %s\n",
				q.ID, truncate(q.Unit, 16), q.Marks, q.Difficulty, q.Text)
		}
		return nil
	},
}

var questionsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count stored questions per unit and marks value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.QuestionRepo().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "The question bank is empty.")
			return nil
		}

		fmt.Fprintf(out, "%-24s  %6s  %9s\n", "Unit", "Marks", "Questions")
		fmt.Fprintln(out, strings.Repeat("─", 43))
		var total, marks int
		for _, st := range stats {
			fmt.Fprintf(out, "%-24s  %6d  %9d\n", truncate(st.Unit, 24), st.Marks, st.Count)
			total += st.Count
			marks += st.Marks * st.Count
		}
		fmt.Fprintln(out, strings.Repeat("─", 43))
		fmt.Fprintf(out, "%-24s  %6d  %9d\n", "TOTAL", marks, total)
		return nil
	},
}

var questionsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the question bank to an Excel workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		filter, err := questionFilter(cmd)
		if err != nil {
			return err
		}
		qs, err := s.QuestionRepo().Query(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("query questions: %w", err)
		}

		var buf bytes.Buffer
		if err := render.ExportXLSX(&buf, qs); err != nil {
			return fmt.Errorf("export questions: %w", err)
		}
		path, _ := cmd.Flags().GetString("out")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printOK(cmd.OutOrStdout(), "Exported %d questions to %s", len(qs), path)
		return nil
	},
}

// questionFilter builds a store filter from the --unit, --marks and
// --difficulty flags.
func questionFilter(cmd *cobra.Command) (store.Filter, error) {
	var f store.Filter
	f.Units, _ = cmd.Flags().GetStringSlice("unit")

	if raw, _ := cmd.Flags().GetString("marks"); raw != "" {
		marks, err := config.ParseMarksList(raw)
		if err != nil {
			return f, fmt.Errorf("--marks: %w", err)
		}
		f.Marks = marks
	}

	if raw, _ := cmd.Flags().GetString("difficulty"); raw != "" {
		d, err := config.Paper{Difficulty: raw}.Difficulties()
		if err != nil {
			return f, err
		}
		f.Difficulties = d
	}
	return f, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("unit", "u", nil, "Only these units (repeatable)")
	cmd.Flags().String("marks", "", "Only these marks values, comma separated")
	cmd.Flags().StringP("difficulty", "d", "", "All, Easy, Medium or Hard")
}

func init() {
	addFilterFlags(questionsListCmd)
	addFilterFlags(questionsExportCmd)
	questionsExportCmd.Flags().StringP("out", "o", "question_bank.xlsx", "Output workbook")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsStatsCmd)
	questionsCmd.AddCommand(questionsExportCmd)
}

