package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/questify/internal/syllabus"
)

const systemPrompt = "You are an expert teacher. Generate concise, clear exam questions strictly based on the provided unit content. " +
	"Return ONLY valid JSON matching the required schema with no extra text."

// buildUserMessage asks for the configured mix of questions for one unit.
func buildUserMessage(unit syllabus.Unit, cfg Config) string {
	reqs := cfg.sortedRequirements()

	var b strings.Builder
	fmt.Fprintf(&b, "You are given a course unit titled %q with the following content. ", unit.Title)
	b.WriteString("Generate exam questions strictly based on this content.\n\n")

	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Exactly %d questions total\n", cfg.Total())
	fmt.Fprintf(&b, "- Exactly %s\n", describeRequirements(reqs))
	b.WriteString("- Balance concepts across the unit; avoid duplication\n")
	b.WriteString("- Difficulty: mix of Easy, Medium, Hard but ensure overall balance\n")
	b.WriteString("- Return ONLY JSON matching this schema:\n")
	b.WriteString("{\n  \"questions\": [\n")
	fmt.Fprintf(&b, "    {\"question\": str, \"marks\": %s, \"difficulty\": \"Easy\"|\"Medium\"|\"Hard\"},\n", marksAlternatives(reqs))
	fmt.Fprintf(&b, "    ... exactly %d entries ...\n  ]\n}\n\n", cfg.Total())

	b.WriteString("UNIT CONTENT:\n")
	b.WriteString(truncateContent(unit.Content, cfg.MaxContentChars))

	return b.String()
}

// describeRequirements renders e.g. "two questions of 4 marks and two
// questions of 6 marks".
func describeRequirements(reqs []MarkRequirement) string {
	parts := make([]string, len(reqs))
	for i, r := range reqs {
		noun := "questions"
		if r.Count == 1 {
			noun = "question"
		}
		parts[i] = fmt.Sprintf("%s %s of %d marks", countWord(r.Count), noun, r.Marks)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

func marksAlternatives(reqs []MarkRequirement) string {
	parts := make([]string, len(reqs))
	for i, r := range reqs {
		parts[i] = fmt.Sprint(r.Marks)
	}
	return strings.Join(parts, "|")
}

var countWords = []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}

func countWord(n int) string {
	if n >= 0 && n < len(countWords) {
		return countWords[n]
	}
	return fmt.Sprint(n)
}

// truncateContent trims content and cuts it to limit runes, marking the cut
// with "...".
func truncateContent(content string, limit int) string {
	content = strings.TrimSpace(content)
	if limit <= 0 {
		return content
	}
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit]) + "..."
}
