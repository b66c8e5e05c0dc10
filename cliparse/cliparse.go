package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
)

// App names accepted by -a / APP
const (
	AppFyyur  = "fyyur"
	AppTrivia = "trivia"
	AppCoffee = "coffee"
	AppPybo   = "pybo"
)

// Database types accepted by -t / DATABASE_TYPE
const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

// Log modes accepted by -log / LOG_MODE
const (
	LogModeDev  = "dev"
	LogModeProd = "prod"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	App           string
	Auth0Domain   string
	APIAudience   string
	AllowedOrigin string
	LogMode       string
	SeedData      bool
}

// Issuer is the token issuer URL derived from the Auth0 domain
func (c Config) Issuer() string {
	return "https://" + c.Auth0Domain + "/"
}

// RequiresAuth reports whether the selected app has permission-gated routes
func (c Config) RequiresAuth() bool {
	return c.App == AppCoffee || c.App == AppPybo
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var seed string

	fs := flag.NewFlagSet("fsnd", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.App, "a", "", "App to serve (fyyur, trivia, coffee, pybo)")

	// Identity provider
	fs.StringVar(&cfg.Auth0Domain, "auth0-domain", "", "Auth0 tenant domain")
	fs.StringVar(&cfg.APIAudience, "audience", "", "API audience expected in tokens")

	fs.StringVar(&cfg.AllowedOrigin, "origin", "", "Allowed CORS origin")
	fs.StringVar(&cfg.LogMode, "log", "", "Log mode (dev or prod)")
	fs.StringVar(&seed, "seed", "", "Insert seed data into empty tables (true/false)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.App == "" {
		cfg.App = os.Getenv("APP")
	}
	switch cfg.App {
	case AppFyyur, AppTrivia, AppCoffee, AppPybo:
	case "":
		return Config{}, errors.New("app required (use -a or APP env)")
	default:
		return Config{}, fmt.Errorf("unknown app %q", cfg.App)
	}

	if cfg.Auth0Domain == "" {
		cfg.Auth0Domain = os.Getenv("AUTH0_DOMAIN")
	}
	if cfg.APIAudience == "" {
		cfg.APIAudience = os.Getenv("API_AUDIENCE")
	}
	if cfg.RequiresAuth() {
		if cfg.Auth0Domain == "" {
			return Config{}, errors.New("AUTH0_DOMAIN required for " + cfg.App)
		}
		if cfg.APIAudience == "" {
			return Config{}, errors.New("API_AUDIENCE required for " + cfg.App)
		}
	}

	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = os.Getenv("CORS_ORIGIN")
		if cfg.AllowedOrigin == "" {
			cfg.AllowedOrigin = "*"
		}
	}

	if cfg.LogMode == "" {
		cfg.LogMode = os.Getenv("LOG_MODE")
		if cfg.LogMode == "" {
			cfg.LogMode = LogModeDev
		}
	}
	if cfg.LogMode != LogModeDev && cfg.LogMode != LogModeProd {
		return Config{}, fmt.Errorf("unsupported log mode %q", cfg.LogMode)
	}

	if seed == "" {
		seed = os.Getenv("SEED_DATA")
	}
	if seed != "" {
		v, err := strconv.ParseBool(seed)
		if err != nil {
			return Config{}, errors.New("invalid SEED_DATA value")
		}
		cfg.SeedData = v
	}

	return cfg, nil
}
