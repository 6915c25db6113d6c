package cmd

import (
	"fmt"
	"io"

	"github.com/abhisek/questify/internal/ui/theme"
)

func printOK(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, theme.OK.Render("✓")+" "+fmt.Sprintf(format, args...))
}

func printWarn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, theme.Warning.Render("!")+" "+fmt.Sprintf(format, args...))
}

func printFail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, theme.Failure.Render("✗")+" "+fmt.Sprintf(format, args...))
}

func printHeading(w io.Writer, text string) {
	fmt.Fprintln(w, theme.Heading.Render(text))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
