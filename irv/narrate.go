// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
)

// Narrator receives human-readable progress messages while a tally runs.
// Messages are fire-and-forget; a Narrator must not block for long.
type Narrator interface {
	Narrate(msg string)
}

// NarratorFunc adapts a function to the Narrator interface
type NarratorFunc func(msg string)

func (f NarratorFunc) Narrate(msg string) {
	f(msg)
}

// LogNarrator forwards narration to a structured logger
type LogNarrator struct {
	Logger *slog.Logger
	// Attrs are attached to every message, e.g. the election code
	Attrs []any
}

func (n LogNarrator) Narrate(msg string) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info(msg, n.Attrs...)
}

func (t *Tallier) narrate(format string, args ...any) {
	if t.Narrator == nil {
		return
	}
	t.Narrator.Narrate(fmt.Sprintf(format, args...))
}

func votes(n int) string {
	if n == 1 {
		return "1 vote"
	}
	return humanize.Comma(int64(n)) + " votes"
}

func (s *roundState) describe(ids []CandidateID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = s.candidates[id].String()
	}
	return strings.Join(names, ", ")
}

func (s *roundState) distribution() string {
	parts := make([]string, 0, len(s.order))
	for _, id := range s.active() {
		parts = append(parts, fmt.Sprintf("%s: %s", s.candidates[id], votes(len(s.buckets[id]))))
	}
	return strings.Join(parts, "; ")
}
