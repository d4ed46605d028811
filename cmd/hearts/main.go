// Command hearts benchmarks a strategy against a baseline by self-play.
//
// The champion plays from a Redis strategy store when HEARTS_REDIS_ADDR is
// set, otherwise it is a seeded random player. Every deal can be recorded
// to a SQL database with HEARTS_DB_DSN.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	engine "github.com/brianberns/hearts/engine"
	"github.com/brianberns/hearts/engine/agent"
	"github.com/brianberns/hearts/internal/config"
	"github.com/brianberns/hearts/internal/replay"
	"github.com/brianberns/hearts/internal/strategy"
	"github.com/brianberns/hearts/internal/tournament"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}

	flag.IntVar(&cfg.NumDeals, "deals", cfg.NumDeals, "number of deals")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "base shuffle seed")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel deals (0 = one per CPU)")
	game := flag.Bool("game", false, "play one full game instead of a benchmark")
	greedy := flag.Bool("greedy", false, "champion takes the most probable action")
	flag.Parse()

	log := logrus.New()
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	baseline := agent.LowestPlayer{}
	var champion agent.Player = agent.NewRandomPlayer(cfg.Seed)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.WithError(err).WithField("addr", cfg.RedisAddr).Fatal("Failed to reach Redis")
		}
		opts := []strategy.Option{strategy.WithSeed(cfg.Seed), strategy.WithLogger(log)}
		if *greedy {
			opts = append(opts, strategy.WithGreedy())
		}
		sp := strategy.NewPlayer(strategy.NewRedisStore(client, cfg.RedisPrefix, log), opts...)
		defer sp.LogStats()
		champion = sp
	}

	if *game {
		var players tournament.Players
		for _, s := range engine.AllSeats {
			players[s] = baseline
		}
		players[cfg.ChampionSeat] = champion
		g, err := tournament.PlayGame(ctx, cfg.Rules(), cfg.Seed, players)
		if err != nil {
			log.WithError(err).Fatal("Game failed")
		}
		log.WithFields(logrus.Fields{
			"deals":   g.NumDeals,
			"score":   g.Score.String(),
			"winners": g.Winners(),
		}).Info("Game over")
		return
	}

	tcfg := tournament.Config{
		NumDeals: cfg.NumDeals,
		Seed:     cfg.Seed,
		Workers:  cfg.Workers,
		MoonRule: cfg.MoonRule,
		Log:      log,
	}
	if cfg.DBDSN != "" {
		store, err := replay.OpenSQLStore(ctx, cfg.DBDriver, cfg.DBDSN, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to open record store")
		}
		defer store.Close()
		tcfg.Records = store
	}

	payoff, res, err := tournament.Benchmark(ctx, tcfg, champion, baseline, cfg.ChampionSeat)
	if err != nil {
		log.WithError(err).Fatal("Benchmark failed")
	}
	log.WithFields(logrus.Fields{
		"run":    res.RunID,
		"seat":   cfg.ChampionSeat.String(),
		"payoff": payoff,
		"total":  res.Total.String(),
	}).Info("Benchmark finished")
}
