package config

import (
	"errors"
	"flag"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.Storage != StorageMemory {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Anchor.IsZero() {
		t.Errorf("expected no anchor, got %v", cfg.Anchor)
	}
	c := cfg.Constants()
	if c.DailyWalkInBase != 30 || c.HolidayMultiplier != 1.5 || c.UnboundedDays != 14 {
		t.Errorf("unexpected constants: %+v", c)
	}
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := Load([]string{"-anchor", "2025-10-24", "-walkin-base", "40", "-storage", "mysql"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 10, 24, 0, 0, 0, 0, time.UTC)
	if !cfg.Anchor.Equal(want) {
		t.Errorf("expected anchor %v, got %v", want, cfg.Anchor)
	}
	if got := cfg.Clock()(); !got.Equal(want) {
		t.Errorf("expected pinned clock, got %v", got)
	}
	if cfg.WalkInBase != 40 || cfg.Storage != StorageMySQL {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FISHMARKET_HTTP_ADDR", ":9090")
	t.Setenv("FISHMARKET_HOLIDAY_MULTIPLIER", "2")
	t.Setenv("FISHMARKET_GRPC_ADDR", ":1")

	cfg, err := Load([]string{"-grpc-addr", ":50052"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":9090" || cfg.HolidayMultiplier != 2 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.GRPCAddr != ":50052" {
		t.Errorf("flag must win over env, got %s", cfg.GRPCAddr)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := [][]string{
		{"-storage", "postgres"},
		{"-anchor", "24/10/2025"},
		{"-workers", "0"},
		{"-walkin-base", "-3"},
		{"-walkin-base", "NaN"},
		{"-walkin-base", "Inf"},
		{"-holiday-multiplier", "-Inf"},
		{"-holiday-multiplier", "nan"},
		{"-history-seed", "abc"},
	}
	for _, args := range cases {
		if _, err := Load(args); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}

	t.Setenv("FISHMARKET_WORKERS", "many")
	if _, err := Load(nil); err == nil {
		t.Error("expected error for bad env value")
	}
}

func TestLoad_Help(t *testing.T) {
	if _, err := Load([]string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
}
