// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	engine "github.com/brianberns/hearts/engine"
)

// Config holds every HEARTS_* setting.
type Config struct {
	NumDeals     int             // HEARTS_NUM_DEALS
	Seed         uint64          // HEARTS_SEED
	Workers      int             // HEARTS_WORKERS, 0 = one per CPU
	ChampionSeat engine.Seat     // HEARTS_CHAMPION_SEAT
	MoonRule     engine.MoonRule // HEARTS_MOON_RULE
	EndScore     int             // HEARTS_END_SCORE
	RedisAddr    string          // HEARTS_REDIS_ADDR, empty disables the strategy store
	RedisPrefix  string          // HEARTS_REDIS_PREFIX
	DBDriver     string          // HEARTS_DB_DRIVER (pgx or sqlite)
	DBDSN        string          // HEARTS_DB_DSN, empty disables deal records
	LogLevel     logrus.Level    // HEARTS_LOG_LEVEL
}

// Default returns the settings used when nothing is set.
func Default() Config {
	return Config{
		NumDeals:     1000,
		Seed:         0,
		Workers:      0,
		ChampionSeat: engine.South,
		MoonRule:     engine.DefaultRules().MoonRule,
		EndScore:     engine.DefaultRules().EndScore,
		RedisPrefix:  "hearts:strategy:",
		DBDriver:     "pgx",
		LogLevel:     logrus.InfoLevel,
	}
}

// Load reads the given .env files (a missing file is skipped; with no
// files, ./.env is tried) and then the environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	var err error
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if v, ok := lookup(name); ok && err == nil {
			n, perr := strconv.Atoi(v)
			if perr != nil || n < 0 {
				err = fmt.Errorf("%s: invalid count %q", name, v)
				return
			}
			*dst = n
		}
	}

	num("HEARTS_NUM_DEALS", &c.NumDeals)
	num("HEARTS_WORKERS", &c.Workers)
	num("HEARTS_END_SCORE", &c.EndScore)
	if v, ok := lookup("HEARTS_SEED"); ok && err == nil {
		s, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			err = fmt.Errorf("HEARTS_SEED: %w", perr)
		}
		c.Seed = s
	}
	if v, ok := lookup("HEARTS_CHAMPION_SEAT"); ok && err == nil {
		c.ChampionSeat, err = engine.ParseSeat(v)
	}
	if v, ok := lookup("HEARTS_MOON_RULE"); ok && err == nil {
		c.MoonRule, err = engine.ParseMoonRule(v)
	}
	if v, ok := lookup("HEARTS_LOG_LEVEL"); ok && err == nil {
		c.LogLevel, err = logrus.ParseLevel(v)
	}
	str("HEARTS_REDIS_ADDR", &c.RedisAddr)
	str("HEARTS_REDIS_PREFIX", &c.RedisPrefix)
	str("HEARTS_DB_DRIVER", &c.DBDriver)
	str("HEARTS_DB_DSN", &c.DBDSN)
	if err != nil {
		return Config{}, err
	}
	return c, nil
}

// Rules returns the engine rules selected by the config.
func (c Config) Rules() engine.Rules {
	return engine.Rules{EndScore: c.EndScore, MoonRule: c.MoonRule}
}
