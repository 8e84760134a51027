// Package config reads process settings from flags, with FISHMARKET_*
// environment variables taking effect when the flag is not given.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
	"github.com/heyheyboy777/SAD-project/internal/core/forecast"
)

const envPrefix = "FISHMARKET_"

const (
	StorageMemory = "memory"
	StorageMySQL  = "mysql"
)

type Config struct {
	HTTPAddr  string
	GRPCAddr  string
	Storage   string
	MySQLDSN  string
	RedisAddr string
	NATSURL   string
	LogLevel  string

	// Anchor pins "today"; zero means use the wall clock.
	Anchor time.Time

	WalkInBase          float64
	HolidayMultiplier   float64
	UnboundedWalkInDays int
	HistorySeed         uint64

	CacheTTL    time.Duration
	WorkerCount int
	QueueSize   int
}

// Load parses args and the environment. flag.ErrHelp is returned untouched.
func Load(args []string) (Config, error) {
	set := flag.NewFlagSet("fishmarket", flag.ContinueOnError)
	set.SetOutput(io.Discard)

	var (
		cfg    Config
		anchor string
		seed   string
	)
	set.StringVar(&cfg.HTTPAddr, "http-addr", ":8080", "HTTP listen address")
	set.StringVar(&cfg.GRPCAddr, "grpc-addr", ":50051", "gRPC listen address")
	set.StringVar(&cfg.Storage, "storage", StorageMemory, "storage back end: memory or mysql")
	set.StringVar(&cfg.MySQLDSN, "mysql-dsn", "root:root@tcp(localhost:3306)/fishmarket?parseTime=true", "MySQL DSN when -storage=mysql")
	set.StringVar(&cfg.RedisAddr, "redis-addr", "", "Redis address for the forecast cache; empty keeps it in process")
	set.StringVar(&cfg.NATSURL, "nats-url", "", "NATS URL for order events; empty logs them instead")
	set.StringVar(&cfg.LogLevel, "log-level", "info", "debug, info, warn or error")
	set.StringVar(&anchor, "anchor", "", "fixed YYYY-MM-DD to use as today")
	set.Float64Var(&cfg.WalkInBase, "walkin-base", 30, "daily walk-in volume in catties")
	set.Float64Var(&cfg.HolidayMultiplier, "holiday-multiplier", 1.5, "walk-in holiday multiplier")
	set.IntVar(&cfg.UnboundedWalkInDays, "unbounded-walkin-days", 14, "days of walk-in traffic assumed for an unbounded horizon")
	set.StringVar(&seed, "history-seed", "20251024", "seed for generated sales and price history")
	set.DurationVar(&cfg.CacheTTL, "cache-ttl", 5*time.Minute, "forecast cache TTL")
	set.IntVar(&cfg.WorkerCount, "workers", 4, "order event workers")
	set.IntVar(&cfg.QueueSize, "queue-size", 1024, "order event queue size")

	if err := set.Parse(args); err != nil {
		return Config{}, err
	}
	if err := applyEnv(set); err != nil {
		return Config{}, err
	}

	if anchor != "" {
		d, err := domain.ParseDate(anchor)
		if err != nil {
			return Config{}, fmt.Errorf("anchor %q: %w", anchor, err)
		}
		cfg.Anchor = d
	}
	s, err := strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("history seed %q: %w", seed, err)
	}
	cfg.HistorySeed = s

	return cfg, cfg.Validate()
}

// applyEnv copies FISHMARKET_<FLAG_NAME> into every flag not set on the command line.
func applyEnv(set *flag.FlagSet) error {
	explicit := make(map[string]bool)
	set.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	var errs []error
	set.VisitAll(func(f *flag.Flag) {
		if explicit[f.Name] {
			return
		}
		key := envPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return
		}
		if err := set.Set(f.Name, v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	})
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	var errs []error
	switch c.Storage {
	case StorageMemory:
	case StorageMySQL:
		if c.MySQLDSN == "" {
			errs = append(errs, errors.New("mysql storage requires a DSN"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q", c.Storage))
	}
	if !finiteNonNegative(c.WalkInBase) {
		errs = append(errs, errors.New("walk-in base must be a finite non-negative number"))
	}
	if !finiteNonNegative(c.HolidayMultiplier) {
		errs = append(errs, errors.New("holiday multiplier must be a finite non-negative number"))
	}
	if c.UnboundedWalkInDays < 0 {
		errs = append(errs, errors.New("unbounded walk-in days must not be negative"))
	}
	if c.WorkerCount < 1 {
		errs = append(errs, errors.New("need at least one worker"))
	}
	if c.QueueSize < 1 {
		errs = append(errs, errors.New("queue size must be positive"))
	}
	if err := c.Constants().Weights.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Constants builds the forecast tuning from the configuration.
func (c Config) Constants() forecast.Constants {
	return forecast.Constants{
		DailyWalkInBase:   c.WalkInBase,
		HolidayMultiplier: c.HolidayMultiplier,
		UnboundedDays:     c.UnboundedWalkInDays,
		Weights:           forecast.DefaultWeights(),
	}
}

// Clock returns the pinned anchor when set, otherwise the wall clock.
func (c Config) Clock() func() time.Time {
	if c.Anchor.IsZero() {
		return time.Now
	}
	anchor := c.Anchor
	return func() time.Time { return anchor }
}
