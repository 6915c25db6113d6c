package cmd

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/questify/internal/config"
	"github.com/abhisek/questify/internal/logger"
	"github.com/abhisek/questify/internal/paper"
	"github.com/abhisek/questify/internal/render"
	"github.com/abhisek/questify/internal/store"
)

var paperCmd = &cobra.Command{
	Use:   "paper",
	Short: "Assemble a question paper from the bank",
	Args:  cobra.NoArgs,
	RunE:  runPaper,
}

func init() {
	f := paperCmd.Flags()
	f.IntP("total", "t", 0, fmt.Sprintf("Target total marks (%d-%d, default from config)", config.MinTotalMarks, config.MaxTotalMarks))
	f.String("marks", "", "Allowed marks values, comma separated (e.g. 4,6)")
	f.StringP("difficulty", "d", "", "All, Easy, Medium or Hard")
	f.StringSliceP("unit", "u", nil, "Units to draw from (repeatable, default all)")
	f.StringP("format", "f", "", "Output format: pdf or docx")
	f.StringP("out", "o", "", "Output file (default question_paper.<format>)")
	f.String("title", "", "Paper title")
	f.Uint64("seed", 0, "Random seed for reproducible papers (0 = random)")
}

// applyPaperFlags copies explicitly set flags onto the paper settings.
func applyPaperFlags(cmd *cobra.Command, p *config.Paper) error {
	f := cmd.Flags()
	if f.Changed("total") {
		p.TotalMarks, _ = f.GetInt("total")
	}
	if f.Changed("marks") {
		raw, _ := f.GetString("marks")
		marks, err := config.ParseMarksList(raw)
		if err != nil {
			return fmt.Errorf("--marks: %w", err)
		}
		p.AllowedMarks = marks
	}
	if f.Changed("difficulty") {
		p.Difficulty, _ = f.GetString("difficulty")
	}
	if f.Changed("format") {
		p.Format, _ = f.GetString("format")
	}
	if f.Changed("title") {
		p.Title, _ = f.GetString("title")
	}
	return nil
}

func runPaper(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := applyPaperFlags(cmd, &cfg.Paper); err != nil {
		return err
	}
	if err := cfg.Paper.Validate(); err != nil {
		return fmt.Errorf("invalid paper settings: %w", err)
	}
	difficulties, _ := cfg.Paper.Difficulties()
	format, _ := render.ParseFormat(cfg.Paper.Format)

	repo := s.QuestionRepo()
	units, _ := cmd.Flags().GetStringSlice("unit")
	if len(units) == 0 {
		if units, err = repo.Units(ctx); err != nil {
			return fmt.Errorf("list units: %w", err)
		}
	}
	if len(units) == 0 {
		printWarn(out, "The question bank is empty. Run `questify generate <syllabus>` first.")
		return nil
	}

	allowed := cfg.Paper.AllowedMarks
	if len(allowed) == 0 {
		allowed = paper.DefaultAllowedMarks
	}

	pool, err := repo.Query(ctx, store.Filter{Units: units, Difficulties: difficulties, Marks: allowed})
	if err != nil {
		return fmt.Errorf("query questions: %w", err)
	}
	logger.Debug("pool: %d questions from %d units", len(pool), len(units))
	if len(pool) == 0 {
		printWarn(out, "No questions match the selected units, difficulty and marks.")
		return nil
	}

	var selected []paper.Question
	var achieved int
	if seed, _ := cmd.Flags().GetUint64("seed"); seed != 0 {
		sampler := paper.NewSampler(rand.New(rand.NewPCG(seed, seed)))
		selected, achieved = sampler.Sample(cfg.Paper.TotalMarks, allowed, pool)
	} else {
		selected, achieved = paper.Sample(cfg.Paper.TotalMarks, allowed, pool)
	}
	if len(selected) == 0 {
		printWarn(out, "Could not assemble a paper with the current settings.")
		return nil
	}

	renderer, err := render.NewRenderer(format)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, render.NewDocument(cfg.Paper.Title, selected)); err != nil {
		return fmt.Errorf("render paper: %w", err)
	}

	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		path = "question_paper" + format.Extension()
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write paper: %w", err)
	}

	printOK(out, "Assembled %d questions for ~%d marks (target %d)", len(selected), achieved, cfg.Paper.TotalMarks)
	printOK(out, "Saved %s", path)
	return nil
}
