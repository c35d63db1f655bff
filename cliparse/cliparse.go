package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

const defaultEnvFile = ".env"

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	RedisAddr     string
	AdminKeySalt  string
	SignerKeySalt string
	ProgramID     string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("voteledger", flag.ContinueOnError)

	fs.StringVar(&envFile, "env", "", "Path to a .env file (default: ./.env if present)")

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Store type (sqlite, postgres, redis or memory)")
	fs.StringVar(&cfg.RedisAddr, "redis", "", "Redis address host:port")
	fs.StringVar(&cfg.ProgramID, "program", "", "Program identity mixed into every derived address")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.SignerKeySalt, "signer-salt", "", "Signer key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
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

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = StoreSQLite
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	}

	switch cfg.DatabaseType {
	case StoreSQLite, StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case StoreRedis:
		if cfg.RedisAddr == "" {
			return Config{}, errors.New("redis address required (use -redis or REDIS_ADDR env)")
		}
	case StoreMemory:
	default:
		return Config{}, fmt.Errorf("unknown DATABASE_TYPE %q", cfg.DatabaseType)
	}

	if cfg.ProgramID == "" {
		cfg.ProgramID = os.Getenv("PROGRAM_ID")
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.SignerKeySalt == "" {
		cfg.SignerKeySalt = os.Getenv("SIGNER_KEY_SALT")
	}
	if cfg.SignerKeySalt == "" {
		return Config{}, errors.New("SIGNER_KEY_SALT required")
	}

	return cfg, nil
}

// loadEnvFile fills unset environment variables from a dotenv file.
// An explicit path must exist; the default ./.env is optional.
func loadEnvFile(path string) error {
	if path == "" {
		if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", defaultEnvFile, err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
