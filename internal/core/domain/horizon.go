package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidHorizon = errors.New("invalid horizon")

// Horizon is the number of days forward from the anchor date that a query
// covers. Unbounded means every future date.
type Horizon int

const Unbounded Horizon = -1

// MaxHorizonDays is the longest finite horizon accepted, ten years.
const MaxHorizonDays = 3650

// ParseHorizon accepts a day count in [0, MaxHorizonDays] or "all"/"unbounded".
func ParseHorizon(s string) (Horizon, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "all", "unbounded":
		return Unbounded, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxHorizonDays {
		return 0, ErrInvalidHorizon
	}
	return Horizon(n), nil
}

func (h Horizon) IsUnbounded() bool {
	return h == Unbounded
}

// Includes reports whether a day offset from the anchor falls within h.
// Negative offsets never do.
func (h Horizon) Includes(days int) bool {
	if days < 0 {
		return false
	}
	return h.IsUnbounded() || days <= int(h)
}

// Finite returns the day count, substituting def for Unbounded.
func (h Horizon) Finite(def int) int {
	if h.IsUnbounded() {
		return def
	}
	return int(h)
}

func (h Horizon) String() string {
	if h.IsUnbounded() {
		return "all"
	}
	return strconv.Itoa(int(h))
}

// DateOf truncates t to its calendar day, expressed as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}
