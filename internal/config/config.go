package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config contains runtime settings for the job feed server
type Config struct {
	LogLevel string
	Host     string `validate:"required"` // default 0.0.0.0
	Port     string `validate:"required,numeric"`
	Jobs     JobsConfig
	Fetch    FetchConfig
	Mongo    MongoConfig
	Neo4j    Neo4jConfig
	Sheets   SheetsConfig
}

// JobsConfig points at the upstream jobs API
type JobsConfig struct {
	BaseURL  string `validate:"omitempty,url"`
	PageSize int    `validate:"min=1,max=100"`
}

// FetchConfig controls retry, jitter and concurrency for upstream queries
type FetchConfig struct {
	MaxRetries        int           `validate:"min=1,max=10"`
	RetryDelay        time.Duration `validate:"min=0"`
	JitterMin         time.Duration `validate:"min=0"`
	JitterMax         time.Duration `validate:"gtefield=JitterMin"`
	Concurrency       int           `validate:"min=1,max=32"`
	RequestTimeout    time.Duration `validate:"min=0"`
	RequestsPerSecond float64       `validate:"min=0"`
}

// MongoConfig locates stored résumés
type MongoConfig struct {
	URI        string
	Database   string `validate:"required"`
	Collection string `validate:"required"`
	UserField  string `validate:"required"`
}

// Neo4jConfig enables keyword history when URI is set
type Neo4jConfig struct {
	URI      string
	Username string
	Password string
	Database string
}

// SheetsConfig enables spreadsheet export when CredentialsPath is set
type SheetsConfig struct {
	CredentialsPath string
}

// Enabled reports whether keyword history is configured
func (c Neo4jConfig) Enabled() bool {
	return c.URI != ""
}

// Enabled reports whether sheet export is configured
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != ""
}

// Addr returns the listen address
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		LogLevel: "info",
		Host:     "0.0.0.0",
		Port:     "8080",
		Jobs: JobsConfig{
			BaseURL:  "https://jobicy.com",
			PageSize: 20,
		},
		Fetch: FetchConfig{
			MaxRetries:     3,
			RetryDelay:     time.Second,
			JitterMin:      500 * time.Millisecond,
			JitterMax:      1500 * time.Millisecond,
			Concurrency:    1,
			RequestTimeout: 15 * time.Second,
		},
		Mongo: MongoConfig{
			Database:   "resumebuilder",
			Collection: "resumes",
			UserField:  "userId",
		},
	}
}

// Requirement names a backend whose settings Load insists on
type Requirement string

// RequireMongo is the résumé store; commands that never read résumés skip it.
const RequireMongo Requirement = "mongo"

// Load populates config from defaults, an optional YAML file named by
// CONFIG_FILE and then environment variables, in that order.
func Load() (Config, error) {
	return LoadWithout()
}

// LoadWithout behaves like Load but does not demand the settings of the
// skipped backends. Value validation still applies.
func LoadWithout(skip ...Requirement) (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if missingVars := cfg.missing(skip); len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c Config) missing(skip []Requirement) []string {
	var missingVars []string

	if c.Mongo.URI == "" && !slices.Contains(skip, RequireMongo) {
		missingVars = append(missingVars, "MONGO_URI")
	}

	if c.Neo4j.Enabled() {
		if c.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if c.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	}

	return missingVars
}

// Validate checks value ranges
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Host, "MCP_HOST")
	setString(&cfg.Port, "PORT")

	setString(&cfg.Jobs.BaseURL, "JOBS_API_BASE_URL")

	setString(&cfg.Mongo.URI, "MONGO_URI")
	setString(&cfg.Mongo.Database, "MONGO_DATABASE")
	setString(&cfg.Mongo.Collection, "MONGO_COLLECTION")
	setString(&cfg.Mongo.UserField, "MONGO_USER_FIELD")

	setString(&cfg.Neo4j.URI, "NEO4J_URI")
	setString(&cfg.Neo4j.Username, "NEO4J_USERNAME")
	setString(&cfg.Neo4j.Password, "NEO4J_PASSWORD")
	setString(&cfg.Neo4j.Database, "NEO4J_DATABASE")

	setString(&cfg.Sheets.CredentialsPath, "GOOGLE_SHEETS_CREDENTIALS_PATH")

	for _, err := range []error{
		setInt(&cfg.Jobs.PageSize, "JOBS_PAGE_SIZE"),
		setInt(&cfg.Fetch.MaxRetries, "FETCH_MAX_RETRIES"),
		setInt(&cfg.Fetch.Concurrency, "FETCH_CONCURRENCY"),
		setDuration(&cfg.Fetch.RetryDelay, "FETCH_RETRY_DELAY"),
		setDuration(&cfg.Fetch.JitterMin, "FETCH_JITTER_MIN"),
		setDuration(&cfg.Fetch.JitterMax, "FETCH_JITTER_MAX"),
		setDuration(&cfg.Fetch.RequestTimeout, "FETCH_REQUEST_TIMEOUT"),
		setFloat(&cfg.Fetch.RequestsPerSecond, "FETCH_RPS"),
	} {
		if err != nil {
			return err
		}
	}

	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = f
	return nil
}

// setDuration accepts Go durations ("750ms") or bare milliseconds ("750")
func setDuration(dst *time.Duration, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := parseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}

func parseDuration(v string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(v)
}
