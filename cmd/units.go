package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/questify/internal/logger"
	"github.com/abhisek/questify/internal/syllabus"
	"github.com/abhisek/questify/internal/ui/theme"
)

const previewChars = 200

var unitsCmd = &cobra.Command{
	Use:   "units <syllabus>",
	Short: "Detect the units in a syllabus (PDF, DOCX or text) without generating questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		units, err := loadUnits(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(units) == 0 {
			printWarn(out, "No units detected. Make sure the syllabus has headings like \"Unit 1\", \"Unit 2\".")
			return nil
		}

		printOK(out, "Detected %d units", len(units))
		for _, u := range units {
			fmt.Fprintln(out)
			printHeading(out, u.Title)
			preview := strings.Join(strings.Fields(u.Content), " ")
			if len([]rune(preview)) > previewChars {
				preview = truncate(preview, previewChars) + "..."
			}
			fmt.Fprintln(out, theme.Label.Render(preview))
		}
		return nil
	},
}

// loadUnits reads a syllabus file and splits it into units.
func loadUnits(ctx context.Context, path string) ([]syllabus.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read syllabus: %w", err)
	}

	logger.Section("Extract")
	text, err := syllabus.Extract(ctx, filepath.Base(path), data)
	if err != nil {
		return nil, fmt.Errorf("extract text from %s: %w", path, err)
	}
	logger.Debug("extracted %d characters from %s", len(text), path)

	units := syllabus.Segment(text)
	for _, u := range units {
		logger.Debug("unit %q: %d characters", u.Title, len(u.Content))
	}
	return units, nil
}
