// Package config loads the splendor CLI configuration from a .env file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Store kinds.
const (
	StoreNone     = "none"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Commands.
const (
	CommandPlay   = "play"
	CommandReplay = "replay"
	CommandList   = "list"
)

// Config holds the splendor command configuration.
type Config struct {
	Agents       []string      `env:"SPLENDOR_AGENTS"        envSeparator:"," envDefault:"greedy,random"`
	Games        int           `env:"SPLENDOR_GAMES"         envDefault:"1"`
	Seed         uint64        `env:"SPLENDOR_SEED"`
	TimeLimit    time.Duration `env:"SPLENDOR_TIME_LIMIT"    envDefault:"1s"`
	WarmUp       time.Duration `env:"SPLENDOR_WARM_UP"       envDefault:"15s"`
	WarningLimit int           `env:"SPLENDOR_WARNING_LIMIT" envDefault:"3"`
	FinishRound  bool          `env:"SPLENDOR_FINISH_ROUND"`
	MaxTurns     int           `env:"SPLENDOR_MAX_TURNS"     envDefault:"1000"`
	Parallel     int           `env:"SPLENDOR_PARALLEL"      envDefault:"1"`
	Verbose      bool          `env:"SPLENDOR_VERBOSE"`

	Store       string `env:"SPLENDOR_STORE"         envDefault:"none"`
	SQLitePath  string `env:"SPLENDOR_SQLITE_PATH"   envDefault:"splendor.db"`
	PostgresDSN string `env:"SPLENDOR_POSTGRES_DSN"`
	RedisAddr   string `env:"SPLENDOR_REDIS_ADDR"    envDefault:"localhost:6379"`
	RedisDB     int    `env:"SPLENDOR_REDIS_DB"`

	LogLevel  string `env:"SPLENDOR_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"SPLENDOR_LOG_FORMAT" envDefault:"text"`

	// Command and Args are the positional arguments left after flags.
	Command string
	Args    []string
}

// LoadDotEnv loads variables from path into the environment without
// overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ParseConfig parses the environment and then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	agents := strings.Join(cfg.Agents, ",")
	fs.StringVar(&agents, "agents", agents, "comma-separated agent names, one per seat")
	fs.IntVar(&cfg.Games, "games", cfg.Games, "number of games to play")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed of the first game (0 picks one)")
	fs.DurationVar(&cfg.TimeLimit, "time-limit", cfg.TimeLimit, "time allowed per move")
	fs.DurationVar(&cfg.WarmUp, "warm-up", cfg.WarmUp, "time allowed for each agent's first move")
	fs.IntVar(&cfg.WarningLimit, "warning-limit", cfg.WarningLimit, "warnings before an agent forfeits")
	fs.BoolVar(&cfg.FinishRound, "finish-round", cfg.FinishRound, "finish the round after a winning score")
	fs.IntVar(&cfg.MaxTurns, "max-turns", cfg.MaxTurns, "actions after which a game is cut off (0 for no limit)")
	fs.IntVar(&cfg.Parallel, "parallel", cfg.Parallel, "games played concurrently")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "print every action of single-threaded games")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "record store: none, sqlite, postgres or redis")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "sqlite database path")
	fs.StringVar(&cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "postgres connection string")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Agents = splitList(agents)
	cfg.Command = CommandPlay
	if rest := fs.Args(); len(rest) > 0 {
		cfg.Command, cfg.Args = rest[0], rest[1:]
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and cross-field requirements.
func (c Config) Validate() error {
	if c.Command == CommandPlay && (len(c.Agents) < 2 || len(c.Agents) > 4) {
		return fmt.Errorf("need 2 to 4 agents, got %d", len(c.Agents))
	}
	switch c.Command {
	case CommandPlay, CommandList:
	case CommandReplay:
		if len(c.Args) != 1 {
			return fmt.Errorf("replay takes one game id or log file")
		}
	default:
		return fmt.Errorf("unknown command %q", c.Command)
	}
	if c.MaxTurns < 0 {
		return fmt.Errorf("max turns must not be negative")
	}
	if c.Games <= 0 {
		return fmt.Errorf("games must be greater than zero")
	}
	if c.Parallel <= 0 {
		return fmt.Errorf("parallel must be greater than zero")
	}
	if c.TimeLimit <= 0 || c.WarmUp <= 0 {
		return fmt.Errorf("time limits must be positive")
	}
	if c.WarningLimit <= 0 {
		return fmt.Errorf("warning limit must be greater than zero")
	}
	switch c.Store {
	case StoreNone, StoreSQLite, StoreRedis:
	case StorePostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return fmt.Errorf("postgres store requires a dsn")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// NewLogger returns a logrus logger writing to out with the configured level
// and format. Call after Validate.
func (c Config) NewLogger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
