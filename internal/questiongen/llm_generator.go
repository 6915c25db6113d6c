package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/questify/internal/llm"
	"github.com/abhisek/questify/internal/logger"
	"github.com/abhisek/questify/internal/paper"
	"github.com/abhisek/questify/internal/syllabus"
)

// Purpose tags every generation request in the LLM event log.
const Purpose = "question-gen"

const variationSuffix = " (variation)"

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate asks the model for the unit's questions, then repairs the reply
// until it matches the configured marks requirements.
func (g *LLMGenerator) Generate(ctx context.Context, unit syllabus.Unit) ([]paper.Question, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(unit, g.config)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}
	if g.config.StructuredOutput {
		req.Schema = QuestionsSchema
	}

	content, err := g.complete(ctx, req)
	if err != nil {
		return nil, &GenerationError{Unit: unit.Title, Err: err}
	}

	items := parseQuestions(content, g.config)
	if len(items) == 0 {
		return nil, &GenerationError{Unit: unit.Title, Err: ErrNoQuestions}
	}

	questions := balance(items, g.config)
	for i := range questions {
		questions[i].Unit = unit.Title
	}
	return questions, nil
}

// complete returns the reply text. Replies that failed schema validation or
// were cut off at the token limit are handed back for best-effort recovery.
func (g *LLMGenerator) complete(ctx context.Context, req llm.Request) ([]byte, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err == nil {
		return resp.Content, nil
	}

	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) && len(invalid.Content) > 0 {
		logger.Debug("recovering questions from non-conforming reply: %v", invalid.Err)
		return invalid.Content, nil
	}
	var truncated *llm.ErrMaxTokensExceeded
	if errors.As(err, &truncated) && len(truncated.Content) > 0 {
		logger.Debug("recovering questions from truncated reply")
		return truncated.Content, nil
	}
	return nil, err
}

var fencedJSONRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// extractJSONBlock locates the JSON object in a reply that may carry prose
// or markdown fences around it. It returns "" when there is none.
func extractJSONBlock(text string) string {
	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return ""
}

// parseQuestions decodes the reply into questions with marks already
// coerced onto the configured values. Items without text or with marks
// that are not numbers are dropped.
func parseQuestions(content []byte, cfg Config) []paper.Question {
	text := string(content)

	// Some providers hand the reply back as a JSON string literal.
	var asString string
	if json.Unmarshal(content, &asString) == nil {
		text = asString
	}

	block := extractJSONBlock(text)
	if block == "" {
		return nil
	}

	var payload struct {
		Questions []map[string]any `json:"questions"`
	}
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		logger.Debug("discarding unparsable reply: %v", err)
		return nil
	}

	reqs := cfg.sortedRequirements()
	if len(reqs) == 0 {
		return nil
	}
	var out []paper.Question
	for _, item := range payload.Questions {
		qText := itemText(item)
		if qText == "" {
			continue
		}
		marks, ok := itemMarks(item, reqs[0].Marks)
		if !ok {
			continue
		}
		difficulty, _ := item["difficulty"].(string)
		out = append(out, paper.Question{
			Text:       qText,
			Marks:      nearestMarks(marks, reqs),
			Difficulty: paper.NormalizeDifficulty(difficulty),
		})
	}
	return out
}

func itemText(item map[string]any) string {
	for _, key := range []string{"question", "text"} {
		if s, ok := item[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// itemMarks reads the marks field. A missing field yields def; values that
// are neither numbers nor numeric strings are rejected.
func itemMarks(item map[string]any, def int) (int, bool) {
	v, present := item["marks"]
	if !present || v == nil {
		return def, true
	}
	switch m := v.(type) {
	case float64:
		return int(math.Round(m)), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
		if err != nil {
			return 0, false
		}
		return int(math.Round(f)), true
	default:
		return 0, false
	}
}

// nearestMarks maps m onto the closest configured value. reqs must be
// sorted ascending; ties go to the larger value.
func nearestMarks(m int, reqs []MarkRequirement) int {
	best := reqs[0].Marks
	bestDist := abs(m - best)
	for _, r := range reqs[1:] {
		if d := abs(m - r.Marks); d <= bestDist {
			best, bestDist = r.Marks, d
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// balance reshapes items so each configured marks value holds exactly its
// required count. Surplus items move into deficient buckets first; any gap
// left is filled with variations of existing questions. The result is
// ordered by ascending marks.
func balance(items []paper.Question, cfg Config) []paper.Question {
	reqs := cfg.sortedRequirements()

	buckets := make(map[int][]paper.Question, len(reqs))
	for _, q := range items {
		buckets[q.Marks] = append(buckets[q.Marks], q)
	}

	var surplus []paper.Question
	for _, r := range reqs {
		if b := buckets[r.Marks]; len(b) > r.Count {
			surplus = append(surplus, b[r.Count:]...)
			buckets[r.Marks] = b[:r.Count]
		}
	}

	for _, r := range reqs {
		for len(buckets[r.Marks]) < r.Count && len(surplus) > 0 {
			q := surplus[0]
			surplus = surplus[1:]
			q.Marks = r.Marks
			buckets[r.Marks] = append(buckets[r.Marks], q)
		}
	}

	out := make([]paper.Question, 0, cfg.Total())
	for _, r := range reqs {
		b := buckets[r.Marks]
		if missing := r.Count - len(b); missing > 0 {
			sources := b
			if len(sources) == 0 {
				sources = items
			}
			for i := range missing {
				q := sources[i%len(sources)]
				q.Text = strings.TrimSuffix(q.Text, variationSuffix) + variationSuffix
				q.Marks = r.Marks
				b = append(b, q)
			}
		}
		out = append(out, b...)
	}
	return out
}
