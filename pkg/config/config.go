package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=Ops HTTP server configuration"`
	Database   DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Schedule   ScheduleConfig   `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`
	Feeds      FeedsConfig      `yaml:"feeds" json:"feeds" jsonschema:"description=Feed fetching configuration"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Full-text extraction for items without description"`
	LLM        LLMConfig        `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for dossier generation"`
	Pipeline   PipelineConfig   `yaml:"pipeline" json:"pipeline" jsonschema:"description=Distillation pipeline settings"`
	SMTP       SMTPConfig       `yaml:"smtp" json:"smtp" jsonschema:"description=Email delivery configuration"`

	Dossiers []DossierConfig `yaml:"dossiers" json:"dossiers,omitempty" jsonschema:"description=Dossiers synced into the database on startup"`
	Styles   []StyleConfig   `yaml:"styles" json:"styles,omitempty" jsonschema:"description=Additional or overridden styles"`
}

// ServerConfig holds ops server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:dossier.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ScheduleConfig holds scheduler settings
type ScheduleConfig struct {
	TickInterval     time.Duration `yaml:"tick_interval" json:"tick_interval" jsonschema:"default=1m,description=Trigger evaluation interval"`
	MaxWorkers       int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,minimum=1,description=Maximum dossiers generated concurrently"`
	PipelineTimeout  time.Duration `yaml:"pipeline_timeout" json:"pipeline_timeout" jsonschema:"default=10m,description=Deadline for one full generation and delivery run"`
	SummarizeTimeout time.Duration `yaml:"summarize_timeout" json:"summarize_timeout" jsonschema:"default=2m,description=Deadline for ad-hoc one-shot summaries"`
	DefaultTimezone  string        `yaml:"default_timezone" json:"default_timezone" jsonschema:"default=UTC,description=Zone used when a dossier timezone is invalid"`
	LockFile         string        `yaml:"lock_file" json:"lock_file" jsonschema:"default=dossier.lock,description=Lock file enforcing a single scheduler process"`
}

// FeedsConfig holds feed fetching settings
type FeedsConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Per-feed fetch timeout"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Dossier/1.0,description=User agent for feed requests"`
	MaxConcurrent int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=4,minimum=1,description=Feeds of one dossier fetched concurrently"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable content extraction"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for HTTP requests"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,description=Minimum text length to consider valid"`
}

// LLMConfig holds LLM settings
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=2000,description=Maximum tokens in response"`
	Retries      int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Attempts per request on rate limits and server errors"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the default profile (optional)"`
	Unrestricted ProfileConfig `yaml:"unrestricted" json:"unrestricted" jsonschema:"description=Profile used by the unrestricted style"`
}

// ProfileConfig holds settings of the alternate generation profile
type ProfileConfig struct {
	Style        string  `yaml:"style" json:"style" jsonschema:"default=unfiltered,description=Style name that switches to this profile"`
	Model        string  `yaml:"model" json:"model" jsonschema:"description=Model name, defaults to llm.model"`
	Temperature  float64 `yaml:"temperature" json:"temperature" jsonschema:"default=0.9,description=Temperature for this profile"`
	SystemPrompt string  `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=Permissive system prompt for this profile"`
}

// PipelineConfig holds distillation pipeline settings
type PipelineConfig struct {
	SelectionThreshold int    `yaml:"selection_threshold" json:"selection_threshold" jsonschema:"default=10,minimum=1,description=Item count above which the selection stage runs"`
	TargetCount        int    `yaml:"target_count" json:"target_count" jsonschema:"default=10,minimum=1,description=Items requested from the selection stage"`
	ExtractConcurrency int    `yaml:"extract_concurrency" json:"extract_concurrency" jsonschema:"default=1,minimum=1,description=Items cleaned concurrently in the extraction stage"`
	DefaultLanguage    string `yaml:"default_language" json:"default_language" jsonschema:"default=en,description=System language, no language directive is added for it"`
}

// SMTPConfig holds email delivery settings
type SMTPConfig struct {
	Host     string        `yaml:"host" json:"host" jsonschema:"required,description=SMTP server host"`
	Port     int           `yaml:"port" json:"port" jsonschema:"default=587,description=SMTP server port"`
	Username string        `yaml:"username" json:"username" jsonschema:"description=SMTP username"`
	Password string        `yaml:"password" json:"password" jsonschema:"description=SMTP password (can use environment variable)"`
	From     string        `yaml:"from" json:"from" jsonschema:"required,description=Sender address"`
	TLS      bool          `yaml:"tls" json:"tls" jsonschema:"default=false,description=Use implicit TLS"`
	StartTLS bool          `yaml:"starttls" json:"starttls" jsonschema:"default=false,description=Use STARTTLS"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=SMTP timeout"`
}

// DossierConfig describes a dossier defined in the config file
type DossierConfig struct {
	Name         string   `yaml:"name" json:"name" jsonschema:"required,description=Unique dossier name"`
	Recipient    string   `yaml:"recipient" json:"recipient" jsonschema:"required,description=Recipient email address"`
	Feeds        []string `yaml:"feeds" json:"feeds" jsonschema:"required,description=Feed URLs"`
	MaxItems     int      `yaml:"max_items" json:"max_items" jsonschema:"default=20,minimum=1,description=Maximum items aggregated per run"`
	Frequency    string   `yaml:"frequency" json:"frequency" jsonschema:"enum=daily,enum=weekly,enum=monthly,default=daily"`
	DeliveryTime string   `yaml:"delivery_time" json:"delivery_time" jsonschema:"default=08:00,description=Time of day in HH:MM"`
	Timezone     string   `yaml:"timezone" json:"timezone" jsonschema:"default=UTC,description=IANA timezone"`
	Style        string   `yaml:"style" json:"style" jsonschema:"default=neutral,description=Style name"`
	Language     string   `yaml:"language" json:"language" jsonschema:"description=Target language tag, e.g. de"`
	Instructions string   `yaml:"instructions" json:"instructions" jsonschema:"description=Free-text special instructions"`
	Disabled     bool     `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Keep the dossier but stop generating it"`
}

// StyleConfig describes a style defined in the config file
type StyleConfig struct {
	Name         string `yaml:"name" json:"name" jsonschema:"required"`
	Instructions string `yaml:"instructions" json:"instructions" jsonschema:"required"`
}

const defaultUnrestrictedPrompt = `You are a sharp, irreverent commentator. Blunt language, sarcasm and profanity are allowed ` +
	`when they fit the requested style. Never invent facts and never drop the links you are given.`

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:dossier.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Schedule.TickInterval == 0 {
		c.Schedule.TickInterval = time.Minute
	}
	if c.Schedule.MaxWorkers == 0 {
		c.Schedule.MaxWorkers = 5
	}
	if c.Schedule.PipelineTimeout == 0 {
		c.Schedule.PipelineTimeout = 10 * time.Minute
	}
	if c.Schedule.SummarizeTimeout == 0 {
		c.Schedule.SummarizeTimeout = 2 * time.Minute
	}
	if c.Schedule.DefaultTimezone == "" {
		c.Schedule.DefaultTimezone = "UTC"
	}
	if c.Schedule.LockFile == "" {
		c.Schedule.LockFile = "dossier.lock"
	}

	if c.Feeds.Timeout == 0 {
		c.Feeds.Timeout = 30 * time.Second
	}
	if c.Feeds.UserAgent == "" {
		c.Feeds.UserAgent = "Dossier/1.0"
	}
	if c.Feeds.MaxConcurrent == 0 {
		c.Feeds.MaxConcurrent = 4
	}

	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = 30 * time.Second
	}
	if c.Extraction.MinTextLength == 0 {
		c.Extraction.MinTextLength = 100
	}

	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2000
	}
	if c.LLM.Retries == 0 {
		c.LLM.Retries = 3
	}
	if c.LLM.Unrestricted.Style == "" {
		c.LLM.Unrestricted.Style = "unfiltered"
	}
	if c.LLM.Unrestricted.Model == "" {
		c.LLM.Unrestricted.Model = c.LLM.Model
	}
	if c.LLM.Unrestricted.Temperature == 0 {
		c.LLM.Unrestricted.Temperature = 0.9
	}
	if c.LLM.Unrestricted.SystemPrompt == "" {
		c.LLM.Unrestricted.SystemPrompt = defaultUnrestrictedPrompt
	}

	if c.Pipeline.SelectionThreshold == 0 {
		c.Pipeline.SelectionThreshold = 10
	}
	if c.Pipeline.TargetCount == 0 {
		c.Pipeline.TargetCount = 10
	}
	if c.Pipeline.ExtractConcurrency == 0 {
		c.Pipeline.ExtractConcurrency = 1
	}
	if c.Pipeline.DefaultLanguage == "" {
		c.Pipeline.DefaultLanguage = "en"
	}

	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.Timeout == 0 {
		c.SMTP.Timeout = 30 * time.Second
	}

	for i := range c.Dossiers {
		d := &c.Dossiers[i]
		if d.MaxItems == 0 {
			d.MaxItems = 20
		}
		if d.Frequency == "" {
			d.Frequency = "daily"
		}
		if d.DeliveryTime == "" {
			d.DeliveryTime = "08:00"
		}
		if d.Timezone == "" {
			d.Timezone = c.Schedule.DefaultTimezone
		}
		if d.Style == "" {
			d.Style = "neutral"
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.Retries < 1 {
		return fmt.Errorf("llm.retries must be at least 1")
	}

	if cfg.SMTP.Host == "" {
		return fmt.Errorf("smtp.host is required")
	}
	if cfg.SMTP.From == "" {
		return fmt.Errorf("smtp.from is required")
	}

	if cfg.Schedule.TickInterval < time.Second {
		return fmt.Errorf("schedule.tick_interval must be at least 1 second")
	}
	if cfg.Schedule.MaxWorkers < 1 {
		return fmt.Errorf("schedule.max_workers must be at least 1")
	}
	if _, err := time.LoadLocation(cfg.Schedule.DefaultTimezone); err != nil {
		return fmt.Errorf("schedule.default_timezone: %w", err)
	}

	if cfg.Pipeline.SelectionThreshold < 1 || cfg.Pipeline.TargetCount < 1 {
		return fmt.Errorf("pipeline.selection_threshold and pipeline.target_count must be at least 1")
	}
	if cfg.Pipeline.ExtractConcurrency < 1 {
		return fmt.Errorf("pipeline.extract_concurrency must be at least 1")
	}

	if cfg.Extraction.Enabled && cfg.Extraction.Timeout < time.Second {
		return fmt.Errorf("extraction timeout must be at least 1 second")
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	names := make(map[string]bool, len(cfg.Dossiers))
	for i, d := range cfg.Dossiers {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return fmt.Errorf("dossiers[%d].name is required", i)
		}
		if names[name] {
			return fmt.Errorf("duplicate dossier name %q", name)
		}
		names[name] = true
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}
