package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/atomicstack/popup-combobox/internal/app"
	"github.com/atomicstack/popup-combobox/internal/backend"
)

// ErrMissingPage is returned by Validate when no page definition is set.
var ErrMissingPage = errors.New("a page definition is required (-page)")

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	File     string
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

// fileConfig is the TOML defaults file. Every key is optional.
type fileConfig struct {
	Page        string `toml:"page"`
	Values      string `toml:"values"`
	Poll        string `toml:"poll"`
	Width       *int   `toml:"width"`
	Height      *int   `toml:"height"`
	MaxRows     *int   `toml:"max_rows"`
	Footer      *bool  `toml:"footer"`
	Verbose     *bool  `toml:"verbose"`
	Trace       *bool  `toml:"trace"`
	LogFile     string `toml:"log_file"`
	Placeholder string `toml:"placeholder"`
	Output      string `toml:"output"`
}

const (
	envConfig      = "POPUP_COMBOBOX_CONFIG"
	envPage        = "POPUP_COMBOBOX_PAGE"
	envValues      = "POPUP_COMBOBOX_VALUES"
	envPoll        = "POPUP_COMBOBOX_POLL"
	envWidth       = "POPUP_COMBOBOX_WIDTH"
	envHeight      = "POPUP_COMBOBOX_HEIGHT"
	envMaxRows     = "POPUP_COMBOBOX_MAX_ROWS"
	envShowFooter  = "POPUP_COMBOBOX_FOOTER"
	envVerbose     = "POPUP_COMBOBOX_VERBOSE"
	envTrace       = "POPUP_COMBOBOX_TRACE"
	envLogFile     = "POPUP_COMBOBOX_LOG_FILE"
	envPlaceholder = "POPUP_COMBOBOX_PLACEHOLDER"
	envOutput      = "POPUP_COMBOBOX_OUTPUT"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values resolve
// in the order flag, environment, config file, built-in default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	configPath := envOrDefault(env, envConfig, "")
	if v, ok := scanFlag(args, "config"); ok {
		configPath = v
	}
	file, err := loadFile(configPath)
	if err != nil {
		return Config{}, err
	}

	pollDefault := backend.DefaultInterval
	if file.Poll != "" {
		d, err := time.ParseDuration(file.Poll)
		if err != nil {
			return Config{}, fmt.Errorf("poll in %q: %w", configPath, err)
		}
		pollDefault = d
	}

	fs := flag.NewFlagSet("popup-combobox", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", configPath, "path to a TOML file with default settings")
	pagePath := fs.String("page", envOrDefault(env, envPage, file.Page), "path to the YAML page definition")
	values := fs.String("values", envOrDefault(env, envValues, file.Values), "path to a YAML file of id: value pairs applied while running")
	poll := fs.Duration("poll", envOrDuration(env, envPoll, pollDefault), "how often the values file is re-read")
	width := fs.Int("width", envOrInt(env, envWidth, intOr(file.Width, 0)), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, intOr(file.Height, 0)), "desired viewport height in rows (0 uses terminal height)")
	maxRows := fs.Int("max-rows", envOrInt(env, envMaxRows, intOr(file.MaxRows, 0)), "rows shown per open listbox (0 uses the default)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, boolOr(file.Footer, false)), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, boolOr(file.Trace, false)), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, boolOr(file.Verbose, false)), "report every value change on the info line")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")
	placeholder := fs.String("placeholder", envOrDefault(env, envPlaceholder, file.Placeholder), "search hint for fields without their own placeholder")
	output := fs.String("output", envOrDefault(env, envOutput, stringOr(file.Output, app.OutputYAML)), "result format: yaml or table")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *maxRows < 0 {
		return Config{}, fmt.Errorf("max-rows must be >= 0 (got %d)", *maxRows)
	}
	if *poll <= 0 {
		return Config{}, fmt.Errorf("poll must be positive (got %s)", *poll)
	}

	cfg := Config{
		App: app.Config{
			PagePath:     *pagePath,
			ValuesPath:   *values,
			PollInterval: *poll,
			Width:        *width,
			Height:       *height,
			MaxRows:      *maxRows,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			Placeholder:  *placeholder,
			Output:       *output,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		File: configPath,
		Flags: map[string]string{
			"config":      configPath,
			"page":        *pagePath,
			"values":      *values,
			"poll":        poll.String(),
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"maxRows":     strconv.Itoa(*maxRows),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"verbose":     strconv.FormatBool(*verbose),
			"logFile":     *logFile,
			"placeholder": *placeholder,
			"output":      *output,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// scanFlag finds a flag value ahead of the real parse, accepting the same
// spellings as package flag.
func scanFlag(args []string, name string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		trimmed := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
		if trimmed == arg {
			continue
		}
		if trimmed == name && i+1 < len(args) {
			return args[i+1], true
		}
		if v, ok := strings.CutPrefix(trimmed, name+"="); ok {
			return v, true
		}
	}
	return "", false
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	if strings.TrimSpace(path) == "" {
		return fc, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fc, fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()
	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return fc, fmt.Errorf("parse config %q: %w", path, err)
	}
	return fc, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.PagePath) == "" {
		return ErrMissingPage
	}
	for _, format := range app.OutputFormats {
		if cfg.App.Output == format {
			return nil
		}
	}
	return fmt.Errorf("output must be one of %s (got %q)", strings.Join(app.OutputFormats, ", "), cfg.App.Output)
}
