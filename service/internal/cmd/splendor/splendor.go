// Package splendor implements the splendor command: it plays games between
// agents, replays stored games and lists what a store holds.
package splendor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/splendor/engine"
	"github.com/jason-s-yu/splendor/engine/agent"
	"github.com/jason-s-yu/splendor/service/internal/config"
	"github.com/jason-s-yu/splendor/service/internal/game"
	"github.com/jason-s-yu/splendor/service/internal/storage"
	"github.com/jason-s-yu/splendor/service/internal/storage/postgres"
	"github.com/jason-s-yu/splendor/service/internal/storage/redis"
	"github.com/jason-s-yu/splendor/service/internal/storage/sqlite"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Run executes the configured command.
func Run(ctx context.Context, cfg config.Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	log := cfg.NewLogger(errOut)

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				log.WithError(err).Warn("close store")
			}
		}()
	}

	switch cfg.Command {
	case config.CommandPlay:
		return play(ctx, cfg, store, log, out)
	case config.CommandReplay:
		return replay(ctx, cfg.Args[0], store, out)
	case config.CommandList:
		return list(ctx, store, out)
	}
	return fmt.Errorf("unknown command %q", cfg.Command)
}

// OpenStore opens the configured record store, or returns nil for "none".
func OpenStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreNone, "":
		return nil, nil
	case config.StoreSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StorePostgres:
		s, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreRedis:
		s, err := redis.Open(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// play runs cfg.Games games, cfg.Parallel at a time. Game i uses seed
// cfg.Seed+i, so a batch is reproducible from its first seed.
func play(ctx context.Context, cfg config.Config, store storage.Store, log logrus.FieldLogger, out io.Writer) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	// Agents are checked up front so a typo fails before any game starts.
	for _, name := range cfg.Agents {
		if _, err := agent.New(name, 0, 0); err != nil {
			return err
		}
	}
	rules := engine.HouseRules{FinishRound: cfg.FinishRound}
	verbose := cfg.Verbose && cfg.Parallel == 1

	results := make([]game.Result, cfg.Games)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)
	for i := range cfg.Games {
		gameSeed := seed + uint64(i)
		g.Go(func() error {
			r, err := newRunner(cfg, rules, gameSeed, log)
			if err != nil {
				return err
			}
			if verbose {
				r.OnEvent = func(ev game.Event) {
					if ev.Text != "" {
						fmt.Fprintln(out, ev.Text)
					}
				}
			}
			res, err := r.Run(gctx)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, gameSeed, err)
			}
			if store != nil {
				if err := store.SaveRecord(gctx, res.Record(cfg.Agents)); err != nil {
					return fmt.Errorf("save game %s: %w", res.ID, err)
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, res := range results {
		fmt.Fprintf(out, "game %s seed %d: %s\n", res.ID, seed+uint64(i), describe(res, cfg.Agents))
	}
	if cfg.Games > 1 {
		printTally(out, results, cfg.Agents)
	}
	return nil
}

func newRunner(cfg config.Config, rules engine.HouseRules, seed uint64, log logrus.FieldLogger) (*game.Runner, error) {
	agents := make([]agent.Agent, len(cfg.Agents))
	for seat, name := range cfg.Agents {
		a, err := agent.New(name, seat, seed+uint64(seat)+1)
		if err != nil {
			return nil, err
		}
		agents[seat] = a
	}
	return &game.Runner{
		Engine: engine.Splendor{Rules: rules},
		Agents: agents,
		Names:  cfg.Agents,
		Config: game.Config{
			TimeLimit:    cfg.TimeLimit,
			WarmUp:       cfg.WarmUp,
			WarningLimit: cfg.WarningLimit,
			MaxTurns:     cfg.MaxTurns,
			Seed:         seed,
		},
		Logger: log,
	}, nil
}

func describe(res game.Result, names []string) string {
	var b strings.Builder
	for i, s := range res.Scores {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d:%s %.1f", i, names[i], s)
	}
	switch {
	case res.Forfeited():
		fmt.Fprintf(&b, " (agent %d forfeited)", res.ForfeitAgent)
	case res.TurnLimitReached:
		b.WriteString(" (turn limit)")
	}
	return b.String()
}

// printTally prints wins per seat. Shared first places count for every
// winner.
func printTally(out io.Writer, results []game.Result, names []string) {
	wins := make([]int, len(names))
	for _, res := range results {
		for _, w := range res.Winners {
			wins[w]++
		}
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "seat\tagent\twins")
	for i, name := range names {
		fmt.Fprintf(tw, "%d\t%s\t%d/%d\n", i, name, wins[i], len(results))
	}
	_ = tw.Flush()
}

// replay replays a game named by a record id in store or by a path to a JSON
// game log, printing every action and the final table.
func replay(ctx context.Context, ref string, store storage.Store, out io.Writer) error {
	gameLog, err := loadLog(ctx, ref, store)
	if err != nil {
		return err
	}
	g, err := engine.Replay(gameLog)
	for _, e := range gameLog.Entries[:min(len(gameLog.Entries), int(g.Turn))] {
		fmt.Fprintln(out, engine.ActionString(e.AgentID, e.Action))
	}
	if err != nil {
		return fmt.Errorf("replay %s: %w", ref, err)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, g.String())
	fmt.Fprintf(out, "scores %v, winners %v\n", g.Scores(), g.Winners())
	return nil
}

func loadLog(ctx context.Context, ref string, store storage.Store) (engine.GameLog, error) {
	if id, err := uuid.Parse(ref); err == nil {
		if store == nil {
			return engine.GameLog{}, fmt.Errorf("replay by id needs a store")
		}
		r, err := store.GetRecord(ctx, id)
		if err != nil {
			return engine.GameLog{}, fmt.Errorf("get game %s: %w", id, err)
		}
		return r.Log, nil
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return engine.GameLog{}, err
	}
	var gameLog engine.GameLog
	if err := json.Unmarshal(data, &gameLog); err != nil {
		return engine.GameLog{}, fmt.Errorf("decode %s: %w", ref, err)
	}
	return gameLog, nil
}

func list(ctx context.Context, store storage.Store, out io.Writer) error {
	if store == nil {
		return errors.New("list needs a store")
	}
	records, err := store.ListRecords(ctx, storage.DefaultListLimit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tcreated\tagents\tscores")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%v\n", r.ID, r.CreatedAt.Format(time.RFC3339), strings.Join(r.AgentNames, ","), r.Scores)
	}
	return tw.Flush()
}
