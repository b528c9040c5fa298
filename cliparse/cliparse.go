package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/project-judge/db"
)

// RenderConfig carries the presentation settings handed to the entry table
type RenderConfig struct {
	RedactionMarker string `yaml:"redaction_marker" envconfig:"REDACTION_MARKER"`
	BadgePath       string `yaml:"badge_path" envconfig:"BADGE_PATH"`
	SliderMin       int64  `yaml:"slider_min" envconfig:"SLIDER_MIN"`
	SliderMax       int64  `yaml:"slider_max" envconfig:"SLIDER_MAX"`
	SliderDefault   int64  `yaml:"slider_default" envconfig:"SLIDER_DEFAULT"`
}

type Config struct {
	Port         int          `yaml:"port" envconfig:"PORT"`
	DatabaseURL  string       `yaml:"database_url" envconfig:"DATABASE_URL"`
	DatabaseType string       `yaml:"database_type" envconfig:"DATABASE_TYPE"`
	AdminKeySalt string       `yaml:"-" envconfig:"ADMIN_KEY_SALT"` // secrets stay out of files
	Render       RenderConfig `yaml:"render" envconfig:"RENDER"`

	// Vote submissions per second and burst, per client address. Zero
	// rate disables the limit.
	VoteRate  float64 `yaml:"vote_rate" envconfig:"VOTE_RATE"`
	VoteBurst int     `yaml:"vote_burst" envconfig:"VOTE_BURST"`

	// Charge votes to the X-Forwarded-For client. Only safe behind a proxy
	// that overwrites the header.
	TrustProxy bool `yaml:"trust_proxy" envconfig:"TRUST_PROXY"`
}

// DefaultConfig returns a Config with the built-in defaults
func DefaultConfig() Config {
	return Config{
		Port:         3318,
		DatabaseType: string(db.DialectSQLite),
		Render: RenderConfig{
			RedactionMarker: "Sensitive Project",
			BadgePath:       "/badges/",
			SliderMin:       -10,
			SliderMax:       10,
			SliderDefault:   0,
		},
		VoteRate:  1,
		VoteBurst: 5,
	}
}

// Load layers an optional YAML file and then the environment over the
// defaults. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings every binary needs
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if _, err := db.ParseDialect(c.DatabaseType); err != nil {
		return err
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	if c.VoteRate < 0 {
		return errors.New("vote_rate must not be negative")
	}
	if c.VoteRate > 0 && c.VoteBurst < 1 {
		return errors.New("vote_burst must be at least 1 when vote_rate is set")
	}
	r := c.Render
	if r.SliderMin >= r.SliderMax {
		return errors.New("render.slider_min must be below render.slider_max")
	}
	if r.SliderDefault < r.SliderMin || r.SliderDefault > r.SliderMax {
		return errors.New("render.slider_default must be within the slider range")
	}
	return nil
}

// Dialect returns the parsed database type
func (c Config) Dialect() db.Dialect {
	d, err := db.ParseDialect(c.DatabaseType)
	if err != nil {
		return db.DialectSQLite
	}
	return d
}

// ParseFlags builds the server configuration. Precedence, lowest first:
// defaults, config file (-c or CONFIG_FILE), environment, flags.
func ParseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("project-judge", flag.ContinueOnError)

	configFile := fs.String("c", "", "YAML config file")

	// Network config (can be CLI args or env)
	port := fs.Int("p", 0, "Server port")
	databaseURL := fs.String("d", "", "Database URL")
	databaseType := fs.String("t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	adminSalt := fs.String("admin-salt", "", "Admin key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	path := *configFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}

	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}

	// Flags that were actually given win over everything else
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = *port
		case "d":
			cfg.DatabaseURL = *databaseURL
		case "t":
			cfg.DatabaseType = *databaseType
		case "admin-salt":
			cfg.AdminKeySalt = *adminSalt
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	return cfg, nil
}

// Addr returns the listen address for the configured port
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
