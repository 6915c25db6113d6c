package questiongen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/questify/internal/syllabus"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Total())
	assert.True(t, cfg.StructuredOutput)
	assert.Equal(t, 4000, cfg.MaxContentChars)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		reqs    []MarkRequirement
		wantErr string
	}{
		{"single value", []MarkRequirement{{Marks: 5, Count: 3}}, ""},
		{"three values", []MarkRequirement{{2, 1}, {4, 1}, {6, 1}}, ""},
		{"empty", nil, "at least one"},
		{"zero marks", []MarkRequirement{{0, 2}}, "marks must be positive"},
		{"negative count", []MarkRequirement{{4, -1}}, "count for 4-mark"},
		{"duplicate marks", []MarkRequirement{{4, 1}, {4, 2}}, "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Requirements = tt.reqs
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildUserMessage(t *testing.T) {
	unit := syllabus.Unit{Title: "Unit 1", Content: "  Operating system basics and system calls.  "}
	msg := buildUserMessage(unit, DefaultConfig())

	assert.Contains(t, msg, `titled "Unit 1"`)
	assert.Contains(t, msg, "Exactly 4 questions total")
	assert.Contains(t, msg, "two questions of 4 marks and two questions of 6 marks")
	assert.Contains(t, msg, `"marks": 4|6`)
	assert.True(t, strings.HasSuffix(msg, "UNIT CONTENT:\nOperating system basics and system calls."))
}

func TestBuildUserMessage_SortsRequirements(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Requirements = []MarkRequirement{{Marks: 10, Count: 1}, {Marks: 2, Count: 3}, {Marks: 5, Count: 12}}
	msg := buildUserMessage(syllabus.Unit{Title: "U", Content: "content"}, cfg)

	assert.Contains(t, msg, "three questions of 2 marks, 12 questions of 5 marks and one question of 10 marks")
	assert.Contains(t, msg, "Exactly 16 questions total")
	assert.Contains(t, msg, `"marks": 2|5|10`)
}

func TestTruncateContent(t *testing.T) {
	assert.Equal(t, "abc", truncateContent(" abc ", 10))
	assert.Equal(t, "abcde...", truncateContent("abcdefgh", 5))
	assert.Equal(t, "abcdefgh", truncateContent("abcdefgh", 0))
	assert.Equal(t, "äöü...", truncateContent("äöüß", 3))
}
