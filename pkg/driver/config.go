package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"rinha/interpreter-go/pkg/interpreter"
)

// ConfigFileName is the project configuration searched for by FindConfig.
const ConfigFileName = "rinha.yml"

// Environment variables that override the config file.
const (
	EnvMaxDepth  = "RINHA_MAX_DEPTH"
	EnvLogLevel  = "RINHA_LOG_LEVEL"
	EnvColor     = "RINHA_COLOR"
	EnvCorpusDir = "RINHA_CORPUS_DIR"
)

// Config holds the settings shared by every rinha command.
type Config struct {
	// Path of the rinha.yml the values came from; empty when defaults were used.
	Path      string
	MaxDepth  int
	LogLevel  string
	Color     bool
	CorpusDir string
	Fixtures  string
	Corpora   []CorpusSpec
}

// CorpusSpec names a git repository of programs that `corpus fetch` can
// pull without repeating the URL on the command line.
type CorpusSpec struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Rev  string `yaml:"rev"`
	Tag  string `yaml:"tag"`
}

type configFile struct {
	MaxDepth  *int         `yaml:"max_depth"`
	LogLevel  string       `yaml:"log_level"`
	Color     *bool        `yaml:"color"`
	CorpusDir string       `yaml:"corpus_dir"`
	Fixtures  string       `yaml:"fixtures"`
	Corpora   []CorpusSpec `yaml:"corpora"`
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig returns the settings used when no rinha.yml exists.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:  interpreter.DefaultMaxDepth,
		LogLevel:  "warn",
		Color:     true,
		CorpusDir: filepath.Join(".rinha", "corpus"),
		Fixtures:  "fixtures",
	}
}

// LoadConfig parses a rinha.yml on top of DefaultConfig. Relative
// directories are resolved against the file's directory.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := DefaultConfig()
	cfg.Path = absPath
	if raw.MaxDepth != nil {
		cfg.MaxDepth = *raw.MaxDepth
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.Color != nil {
		cfg.Color = *raw.Color
	}
	if raw.CorpusDir != "" {
		cfg.CorpusDir = raw.CorpusDir
	}
	if raw.Fixtures != "" {
		cfg.Fixtures = raw.Fixtures
	}
	cfg.Corpora = raw.Corpora
	cfg.resolvePaths(filepath.Dir(absPath))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig walks upward from start looking for rinha.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config: %s not found from %s", ConfigFileName, start)
		}
		dir = parent
	}
}

// ResolveConfig builds the effective configuration: an explicit path or the
// nearest rinha.yml (defaults when none), then a .env file beside it, then
// RINHA_* variables from the process environment.
func ResolveConfig(explicitPath, workDir string) (*Config, error) {
	var cfg *Config
	switch {
	case explicitPath != "":
		loaded, err := LoadConfig(explicitPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		path, err := FindConfig(workDir)
		if err != nil {
			cfg = DefaultConfig()
			cfg.resolvePaths(workDir)
		} else {
			loaded, err := LoadConfig(path)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
	}

	envDir := workDir
	if cfg.Path != "" {
		envDir = filepath.Dir(cfg.Path)
	}
	dotenv := filepath.Join(envDir, ".env")
	if _, err := os.Stat(dotenv); err == nil {
		// Load never overrides variables already present in the process.
		if err := godotenv.Load(dotenv); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", dotenv, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays RINHA_* variables using lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs ValidationError
	if raw, ok := lookup(EnvMaxDepth); ok && raw != "" {
		depth, err := strconv.Atoi(raw)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s must be an integer, got %q", EnvMaxDepth, raw))
		} else {
			c.MaxDepth = depth
		}
	}
	if raw, ok := lookup(EnvLogLevel); ok && raw != "" {
		c.LogLevel = raw
	}
	if raw, ok := lookup(EnvColor); ok && raw != "" {
		color, err := strconv.ParseBool(raw)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s must be a boolean, got %q", EnvColor, raw))
		} else {
			c.Color = color
		}
	}
	if raw, ok := lookup(EnvCorpusDir); ok && raw != "" {
		c.CorpusDir = raw
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return c.Validate()
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs ValidationError
	if c.MaxDepth <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_depth must be positive, got %d", c.MaxDepth))
	} else if c.MaxDepth > interpreter.MaxDepthLimit {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_depth must be at most %d, got %d", interpreter.MaxDepthLimit, c.MaxDepth))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs.Issues = append(errs.Issues, err.Error())
	}
	seen := make(map[string]bool, len(c.Corpora))
	for idx, corpus := range c.Corpora {
		if corpus.Name == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("corpora[%d] missing name", idx))
		} else if seen[corpus.Name] {
			errs.Issues = append(errs.Issues, fmt.Sprintf("corpora[%d] duplicates name %q", idx, corpus.Name))
		}
		seen[corpus.Name] = true
		if corpus.URL == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("corpora[%d] missing url", idx))
		}
		if corpus.Rev != "" && corpus.Tag != "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("corpora[%d] sets both rev and tag", idx))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// FindCorpus looks up a configured corpus by name.
func (c *Config) FindCorpus(name string) (CorpusSpec, bool) {
	for _, corpus := range c.Corpora {
		if corpus.Name == name {
			return corpus, true
		}
	}
	return CorpusSpec{}, false
}

// Logger builds the stderr logger for the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLogLevel accepts debug, info, warn and error (case-insensitive).
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log_level %q is not one of debug, info, warn, error", name)
	}
}

func (c *Config) resolvePaths(base string) {
	if c.CorpusDir != "" && !filepath.IsAbs(c.CorpusDir) {
		c.CorpusDir = filepath.Join(base, c.CorpusDir)
	}
	if c.Fixtures != "" && !filepath.IsAbs(c.Fixtures) {
		c.Fixtures = filepath.Join(base, c.Fixtures)
	}
}
