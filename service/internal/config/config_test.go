package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("splendor", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return ParseConfig(fs, args)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)

	assert.Equal(t, []string{"greedy", "random"}, cfg.Agents)
	assert.Equal(t, 1, cfg.Games)
	assert.Equal(t, time.Second, cfg.TimeLimit)
	assert.Equal(t, 15*time.Second, cfg.WarmUp)
	assert.Equal(t, 3, cfg.WarningLimit)
	assert.Equal(t, 1000, cfg.MaxTurns)
	assert.Equal(t, StoreNone, cfg.Store)
	assert.Equal(t, CommandPlay, cfg.Command)
	assert.Empty(t, cfg.Args)
}

func TestParseConfigEnvThenFlags(t *testing.T) {
	t.Setenv("SPLENDOR_AGENTS", "random, random ,first")
	t.Setenv("SPLENDOR_GAMES", "4")
	t.Setenv("SPLENDOR_TIME_LIMIT", "250ms")

	cfg, err := parse(t, "-games", "9", "-finish-round", "replay", "abc")
	require.NoError(t, err)

	assert.Equal(t, []string{"random", "random", "first"}, cfg.Agents)
	assert.Equal(t, 9, cfg.Games, "flag overrides env")
	assert.Equal(t, 250*time.Millisecond, cfg.TimeLimit)
	assert.True(t, cfg.FinishRound)
	assert.Equal(t, CommandReplay, cfg.Command)
	assert.Equal(t, []string{"abc"}, cfg.Args)
}

func TestParseConfigRejects(t *testing.T) {
	cases := map[string][]string{
		"one agent":         {"-agents", "greedy"},
		"five agents":       {"-agents", "a,b,c,d,e"},
		"zero games":        {"-games", "0"},
		"zero parallel":     {"-parallel", "0"},
		"negative limit":    {"-time-limit", "-1s"},
		"zero warnings":     {"-warning-limit", "0"},
		"unknown store":     {"-store", "mongo"},
		"postgres no dsn":   {"-store", "postgres"},
		"bad level":         {"-log-level", "loud"},
		"bad format":        {"-log-format", "xml"},
		"unknown command":   {"dance"},
		"replay without id": {"replay"},
		"unknown flag":      {"-colour", "red"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parse(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestListIgnoresAgentCount(t *testing.T) {
	cfg, err := parse(t, "-agents", "solo", "list")
	require.NoError(t, err)
	assert.Equal(t, CommandList, cfg.Command)
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(""))
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SPLENDOR_TEST_DOTENV=from-file\n"), 0o600))
	t.Setenv("SPLENDOR_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("SPLENDOR_TEST_DOTENV"))
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("SPLENDOR_TEST_DOTENV"))
}

func TestNewLogger(t *testing.T) {
	cfg, err := parse(t, "-log-level", "debug", "-log-format", "json")
	require.NoError(t, err)
	log := cfg.NewLogger(os.Stderr)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}
