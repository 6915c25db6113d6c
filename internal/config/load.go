package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadOptions says where to look for configuration files.
type LoadOptions struct {
	// File is an explicit config file path. It must exist when set.
	// Otherwise DefaultPath is used if the file is present.
	File string

	// EnvFile is the dotenv file to load. Defaults to ".env" in the
	// working directory; a missing file is ignored.
	EnvFile string
}

// Load builds the configuration: defaults, then the TOML file, then the
// environment (seeded from the .env file). CLI flags are applied by the
// caller on top of the result.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path, required := opts.File, true
	if path == "" {
		required = false
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	if err := loadFile(&cfg, path, required); err != nil {
		return cfg, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", envFile, err)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("QUESTIFY_DB_PATH", &cfg.DBPath)
	str("QUESTIFY_LLM_PROVIDER", &cfg.LLM.Provider)
	str("OPENAI_API_KEY", &cfg.LLM.OpenAI.APIKey)
	str("OPENAI_BASE_URL", &cfg.LLM.OpenAI.BaseURL)
	str("OPENAI_MODEL", &cfg.LLM.OpenAI.Model)
	str("OLLAMA_BASE_URL", &cfg.LLM.Ollama.BaseURL)
	str("OLLAMA_MODEL", &cfg.LLM.Ollama.Model)
	str("ANTHROPIC_API_KEY", &cfg.LLM.Anthropic.APIKey)
	str("ANTHROPIC_MODEL", &cfg.LLM.Anthropic.Model)
	str("GEMINI_API_KEY", &cfg.LLM.Gemini.APIKey)
	str("GEMINI_MODEL", &cfg.LLM.Gemini.Model)
	str("OPENROUTER_API_KEY", &cfg.LLM.OpenRouter.APIKey)
	str("OPENROUTER_MODEL", &cfg.LLM.OpenRouter.Model)
	str("QUESTIFY_PAPER_FORMAT", &cfg.Paper.Format)
	str("QUESTIFY_PAPER_DIFFICULTY", &cfg.Paper.Difficulty)
	str("QUESTIFY_PAPER_TITLE", &cfg.Paper.Title)

	var errs []error
	parse := func(key string, fn func(string) error) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		if err := fn(strings.TrimSpace(v)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	parse("QUESTIFY_LLM_TIMEOUT", func(v string) (err error) {
		cfg.LLM.Timeout, err = time.ParseDuration(v)
		return err
	})
	parse("QUESTIFY_CONCURRENCY", func(v string) (err error) {
		cfg.Generation.Concurrency, err = strconv.Atoi(v)
		return err
	})
	parse("QUESTIFY_REQUESTS_PER_SECOND", func(v string) (err error) {
		cfg.Generation.RequestsPerSecond, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse("QUESTIFY_TEMPERATURE", func(v string) (err error) {
		cfg.Generation.Temperature, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse("QUESTIFY_STRUCTURED_OUTPUT", func(v string) (err error) {
		cfg.Generation.StructuredOutput, err = strconv.ParseBool(v)
		return err
	})
	parse("QUESTIFY_PAPER_TOTAL_MARKS", func(v string) (err error) {
		cfg.Paper.TotalMarks, err = strconv.Atoi(v)
		return err
	})
	parse("QUESTIFY_PAPER_ALLOWED_MARKS", func(v string) (err error) {
		cfg.Paper.AllowedMarks, err = ParseMarksList(v)
		return err
	})

	return errors.Join(errs...)
}

// ParseMarksList parses a comma separated list such as "4,6".
func ParseMarksList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid marks value %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}
