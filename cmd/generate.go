package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/questify/internal/llm"
	"github.com/abhisek/questify/internal/logger"
	"github.com/abhisek/questify/internal/questiongen"
	"github.com/abhisek/questify/internal/syllabus"
	"github.com/abhisek/questify/internal/ui/progress"
)

var generateCmd = &cobra.Command{
	Use:   "generate <syllabus>",
	Short: "Generate questions for every unit of a syllabus and add them to the bank",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().IntP("concurrency", "c", 0, "Units to generate in parallel (default from config)")
	generateCmd.Flags().Float64("rps", 0, "Maximum LLM requests per second (0 = config value)")
	generateCmd.Flags().String("provider", "", "LLM provider: openai, ollama, anthropic, gemini, openrouter")
	generateCmd.Flags().Bool("tui", false, "Show an interactive progress view")
	generateCmd.Flags().Bool("dry-run", false, "Print the generated questions instead of storing them")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if f := cmd.Flags(); f.Changed("concurrency") {
		cfg.Generation.Concurrency, _ = f.GetInt("concurrency")
	}
	if f := cmd.Flags(); f.Changed("rps") {
		cfg.Generation.RequestsPerSecond, _ = f.GetFloat64("rps")
	}
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.LLM.Provider = p
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	units, err := loadUnits(ctx, args[0])
	if err != nil {
		return err
	}
	if len(units) == 0 {
		printWarn(out, "No units detected. Make sure the syllabus has headings like \"Unit 1\", \"Unit 2\".")
		return nil
	}
	printOK(out, "Detected %d units", len(units))

	provider, err := llm.NewProvider(ctx, cfg.LLMConfig(), s.EventRepo())
	if err != nil {
		return fmt.Errorf("set up LLM provider: %w", err)
	}
	logger.Info("using model %s", provider.ModelID())

	gen := questiongen.New(provider, cfg.Generation.QuestionConfig())
	tui, _ := cmd.Flags().GetBool("tui")

	var res questiongen.BatchResult
	if tui {
		res, err = generateWithTUI(ctx, gen, cfg.Generation.Concurrency, units)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	} else {
		batch := questiongen.NewBatch(gen,
			questiongen.WithConcurrency(cfg.Generation.Concurrency),
			questiongen.WithProgress(func(r questiongen.UnitResult) { reportUnit(out, r) }),
		)
		res = batch.Run(ctx, units)
	}

	reportFailures(out, res.Failures)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		for i, q := range res.Questions {
			fmt.Fprintln(out, q.Line(i+1))
		}
		printOK(out, "Generated %d questions (dry run, nothing stored)", len(res.Questions))
		return nil
	}

	if len(res.Questions) == 0 {
		printWarn(out, "No questions generated.")
		return nil
	}
	n, err := s.QuestionRepo().Insert(ctx, res.Questions)
	if err != nil {
		return fmt.Errorf("store questions: %w", err)
	}
	printOK(out, "Inserted %d questions (run %s)", n, res.RunID)
	return nil
}

func generateWithTUI(ctx context.Context, gen questiongen.Generator, concurrency int, units []syllabus.Unit) (questiongen.BatchResult, error) {
	titles := make([]string, len(units))
	for i, u := range units {
		titles[i] = u.Title
	}

	var res questiongen.BatchResult
	err := progress.Run(ctx, titles, func(ctx context.Context, report func(progress.ResultMsg)) {
		batch := questiongen.NewBatch(gen,
			questiongen.WithConcurrency(concurrency),
			questiongen.WithProgress(func(r questiongen.UnitResult) {
				report(progress.ResultMsg{
					Index:     r.Index,
					Title:     r.Unit.Title,
					Questions: len(r.Questions),
					Err:       r.Err,
				})
			}),
		)
		res = batch.Run(ctx, units)
	})
	return res, err
}

func reportUnit(w io.Writer, r questiongen.UnitResult) {
	if r.Err != nil {
		logger.Debug("unit %q failed: %v", r.Unit.Title, r.Err)
		return
	}
	printOK(w, "%s: %d questions", r.Unit.Title, len(r.Questions))
}

func reportFailures(w io.Writer, failures []*questiongen.GenerationError) {
	for _, f := range failures {
		switch {
		case errors.Is(f, questiongen.ErrNoQuestions):
			printWarn(w, "%s: the model returned no usable questions", f.Unit)
		case errors.Is(f, context.Canceled):
			printWarn(w, "%s: cancelled", f.Unit)
		default:
			printFail(w, "%s: %v", f.Unit, f.Err)
		}
	}
}
