// Package config assembles Questify's settings from defaults, a TOML file,
// a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/questify/internal/llm"
	"github.com/abhisek/questify/internal/paper"
	"github.com/abhisek/questify/internal/questiongen"
	"github.com/abhisek/questify/internal/render"
)

// DifficultyAll disables the difficulty filter when assembling a paper.
const DifficultyAll = "All"

// Total marks accepted for a paper.
const (
	MinTotalMarks = 10
	MaxTotalMarks = 200
)

// Config is the complete application configuration. It is built once per
// command and passed down explicitly.
type Config struct {
	// DBPath overrides the default database location when set.
	DBPath string

	LLM        llm.Config
	Generation Generation
	Paper      Paper
}

// Generation controls question generation.
type Generation struct {
	Requirements []questiongen.MarkRequirement

	// Concurrency is the number of units generated in parallel.
	Concurrency int

	// RequestsPerSecond throttles LLM calls. Zero disables throttling.
	RequestsPerSecond float64

	MaxContentChars  int
	Temperature      float64
	MaxTokens        int
	StructuredOutput bool
}

// Paper holds the defaults for paper assembly.
type Paper struct {
	TotalMarks   int
	AllowedMarks []int

	// Difficulty is "All" or one of the question difficulties.
	Difficulty string

	// Format is "pdf" or "docx".
	Format string

	Title string
}

// Default returns the built-in configuration.
func Default() Config {
	gen := questiongen.DefaultConfig()
	return Config{
		LLM: llm.DefaultConfig(),
		Generation: Generation{
			Requirements:     gen.Requirements,
			Concurrency:      1,
			MaxContentChars:  gen.MaxContentChars,
			Temperature:      gen.Temperature,
			MaxTokens:        gen.MaxTokens,
			StructuredOutput: gen.StructuredOutput,
		},
		Paper: Paper{
			TotalMarks:   70,
			AllowedMarks: []int{4, 6},
			Difficulty:   DifficultyAll,
			Format:       string(render.FormatPDF),
			Title:        render.DefaultTitle,
		},
	}
}

// Validate checks every section, including the LLM provider settings.
func (c Config) Validate() error {
	return errors.Join(
		c.LLM.Validate(),
		c.Generation.Validate(),
		c.Paper.Validate(),
	)
}

// Validate checks the generation settings.
func (g Generation) Validate() error {
	var errs []error
	if err := g.QuestionConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("generation: %w", err))
	}
	if g.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("generation: concurrency must be at least 1, got %d", g.Concurrency))
	}
	if g.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("generation: requests per second must not be negative"))
	}
	if g.MaxContentChars < 0 {
		errs = append(errs, fmt.Errorf("generation: max content chars must not be negative"))
	}
	if g.Temperature < 0 || g.Temperature > 1 {
		errs = append(errs, fmt.Errorf("generation: temperature must be within 0-1, got %g", g.Temperature))
	}
	if g.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("generation: max tokens must be positive, got %d", g.MaxTokens))
	}
	return errors.Join(errs...)
}

// QuestionConfig converts the settings for questiongen.New.
func (g Generation) QuestionConfig() questiongen.Config {
	return questiongen.Config{
		Requirements:     g.Requirements,
		MaxTokens:        g.MaxTokens,
		Temperature:      g.Temperature,
		MaxContentChars:  g.MaxContentChars,
		StructuredOutput: g.StructuredOutput,
	}
}

// Validate checks the paper settings.
func (p Paper) Validate() error {
	var errs []error
	if p.TotalMarks < MinTotalMarks || p.TotalMarks > MaxTotalMarks {
		errs = append(errs, fmt.Errorf("paper: total marks must be within %d-%d, got %d", MinTotalMarks, MaxTotalMarks, p.TotalMarks))
	}
	for _, m := range p.AllowedMarks {
		if m <= 0 {
			errs = append(errs, fmt.Errorf("paper: allowed marks must be positive, got %d", m))
			break
		}
	}
	if _, err := p.Difficulties(); err != nil {
		errs = append(errs, err)
	}
	if _, err := render.ParseFormat(p.Format); err != nil {
		errs = append(errs, fmt.Errorf("paper: %w", err))
	}
	return errors.Join(errs...)
}

// Difficulties returns the difficulty filter for the question store. "All"
// yields nil, meaning no restriction.
func (p Paper) Difficulties() ([]paper.Difficulty, error) {
	if p.Difficulty == "" || strings.EqualFold(p.Difficulty, DifficultyAll) {
		return nil, nil
	}
	d, ok := paper.ParseDifficulty(p.Difficulty)
	if !ok {
		return nil, fmt.Errorf("paper: unknown difficulty %q (want All, Easy, Medium or Hard)", p.Difficulty)
	}
	return []paper.Difficulty{d}, nil
}

// LLMConfig returns the provider configuration with generation throttling
// applied.
func (c Config) LLMConfig() llm.Config {
	cfg := c.LLM
	if c.Generation.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = c.Generation.RequestsPerSecond
	}
	return cfg
}

// DefaultPath returns $XDG_CONFIG_HOME/questify/config.toml, falling back
// to ~/.config/questify/config.toml.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "questify", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "questify", "config.toml"), nil
}
