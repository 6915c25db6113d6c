package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/abhisek/questify/internal/questiongen"
)

// fileConfig mirrors the TOML layout. Pointers mark settings whose zero
// value is meaningful, so absence can be told apart from zero.
type fileConfig struct {
	DBPath     string         `toml:"db_path"`
	LLM        fileLLM        `toml:"llm"`
	Generation fileGeneration `toml:"generation"`
	Paper      filePaper      `toml:"paper"`
}

type fileLLM struct {
	Provider          string   `toml:"provider"`
	Timeout           string   `toml:"timeout"`
	RequestsPerSecond *float64 `toml:"requests_per_second"`

	OpenAI struct {
		APIKey  string `toml:"api_key"`
		Model   string `toml:"model"`
		BaseURL string `toml:"base_url"`
	} `toml:"openai"`

	Ollama struct {
		BaseURL string `toml:"base_url"`
		Model   string `toml:"model"`
	} `toml:"ollama"`

	Anthropic struct {
		APIKey string `toml:"api_key"`
		Model  string `toml:"model"`
	} `toml:"anthropic"`

	Gemini struct {
		APIKey string `toml:"api_key"`
		Model  string `toml:"model"`
	} `toml:"gemini"`

	OpenRouter struct {
		APIKey  string `toml:"api_key"`
		Model   string `toml:"model"`
		BaseURL string `toml:"base_url"`
	} `toml:"openrouter"`

	Retry struct {
		MaxAttempts int     `toml:"max_attempts"`
		InitialWait string  `toml:"initial_wait"`
		MaxWait     string  `toml:"max_wait"`
		Multiplier  float64 `toml:"multiplier"`
	} `toml:"retry"`
}

type fileGeneration struct {
	Requirements []struct {
		Marks int `toml:"marks"`
		Count int `toml:"count"`
	} `toml:"requirements"`
	Concurrency       int      `toml:"concurrency"`
	RequestsPerSecond *float64 `toml:"requests_per_second"`
	MaxContentChars   *int     `toml:"max_content_chars"`
	Temperature       *float64 `toml:"temperature"`
	MaxTokens         int      `toml:"max_tokens"`
	StructuredOutput  *bool    `toml:"structured_output"`
}

type filePaper struct {
	TotalMarks   int    `toml:"total_marks"`
	AllowedMarks []int  `toml:"allowed_marks"`
	Difficulty   string `toml:"difficulty"`
	Format       string `toml:"format"`
	Title        string `toml:"title"`
}

// loadFile overlays the TOML file at path onto cfg. A missing file is not
// an error unless required is set.
func loadFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc.apply(cfg)
}

func (fc fileConfig) apply(cfg *Config) error {
	setString(&cfg.DBPath, fc.DBPath)

	l := fc.LLM
	setString(&cfg.LLM.Provider, l.Provider)
	if err := setDuration(&cfg.LLM.Timeout, l.Timeout, "llm.timeout"); err != nil {
		return err
	}
	if l.RequestsPerSecond != nil {
		cfg.LLM.RequestsPerSecond = *l.RequestsPerSecond
	}
	setString(&cfg.LLM.OpenAI.APIKey, l.OpenAI.APIKey)
	setString(&cfg.LLM.OpenAI.Model, l.OpenAI.Model)
	setString(&cfg.LLM.OpenAI.BaseURL, l.OpenAI.BaseURL)
	setString(&cfg.LLM.Ollama.BaseURL, l.Ollama.BaseURL)
	setString(&cfg.LLM.Ollama.Model, l.Ollama.Model)
	setString(&cfg.LLM.Anthropic.APIKey, l.Anthropic.APIKey)
	setString(&cfg.LLM.Anthropic.Model, l.Anthropic.Model)
	setString(&cfg.LLM.Gemini.APIKey, l.Gemini.APIKey)
	setString(&cfg.LLM.Gemini.Model, l.Gemini.Model)
	setString(&cfg.LLM.OpenRouter.APIKey, l.OpenRouter.APIKey)
	setString(&cfg.LLM.OpenRouter.Model, l.OpenRouter.Model)
	setString(&cfg.LLM.OpenRouter.BaseURL, l.OpenRouter.BaseURL)
	setInt(&cfg.LLM.Retry.MaxAttempts, l.Retry.MaxAttempts)
	if err := setDuration(&cfg.LLM.Retry.InitialWait, l.Retry.InitialWait, "llm.retry.initial_wait"); err != nil {
		return err
	}
	if err := setDuration(&cfg.LLM.Retry.MaxWait, l.Retry.MaxWait, "llm.retry.max_wait"); err != nil {
		return err
	}
	if l.Retry.Multiplier != 0 {
		cfg.LLM.Retry.Multiplier = l.Retry.Multiplier
	}

	g := fc.Generation
	if len(g.Requirements) > 0 {
		cfg.Generation.Requirements = make([]questiongen.MarkRequirement, len(g.Requirements))
		for i, r := range g.Requirements {
			cfg.Generation.Requirements[i] = questiongen.MarkRequirement{Marks: r.Marks, Count: r.Count}
		}
	}
	setInt(&cfg.Generation.Concurrency, g.Concurrency)
	if g.RequestsPerSecond != nil {
		cfg.Generation.RequestsPerSecond = *g.RequestsPerSecond
	}
	if g.MaxContentChars != nil {
		cfg.Generation.MaxContentChars = *g.MaxContentChars
	}
	if g.Temperature != nil {
		cfg.Generation.Temperature = *g.Temperature
	}
	setInt(&cfg.Generation.MaxTokens, g.MaxTokens)
	if g.StructuredOutput != nil {
		cfg.Generation.StructuredOutput = *g.StructuredOutput
	}

	p := fc.Paper
	setInt(&cfg.Paper.TotalMarks, p.TotalMarks)
	if p.AllowedMarks != nil {
		cfg.Paper.AllowedMarks = p.AllowedMarks
	}
	setString(&cfg.Paper.Difficulty, p.Difficulty)
	setString(&cfg.Paper.Format, p.Format)
	setString(&cfg.Paper.Title, p.Title)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v, key string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
