// Package stats tracks long-run win/loss statistics for the human
// seat. The table engine reports exactly one result per concluded
// round through the Sink interface; everything else here is derived
// bookkeeping for display.
package stats

import (
	"fmt"
	"sync"
)

// Sink receives one win/loss notification per concluded round.
type Sink interface {
	// LogWin records a round the human seat won, with the amount of
	// chips received from the pot.
	LogWin(amount int)
	// LogLoss records a round the human seat did not win.
	LogLoss()
}

// Nop is a Sink that discards notifications. Useful in tests that
// only care about the engine.
type Nop struct{}

func (Nop) LogWin(int) {}
func (Nop) LogLoss()   {}

// Session accumulates statistics across rounds of one game session.
type Session struct {
	HandsPlayed   int `json:"hands_played"`
	GamesWon      int `json:"games_won"`
	TotalWinnings int `json:"total_winnings"`
}

// NewSession returns an empty statistics store.
func NewSession() *Session {
	return &Session{}
}

// LogWin records a won round and the pot amount received.
func (s *Session) LogWin(amount int) {
	s.GamesWon++
	s.TotalWinnings += amount
	s.HandsPlayed++
}

// LogLoss records a lost round.
func (s *Session) LogLoss() {
	s.HandsPlayed++
}

// WinLossRatio returns the percentage of played hands won.
func (s *Session) WinLossRatio() float64 {
	if s.HandsPlayed == 0 {
		return 0
	}
	return float64(s.GamesWon) / float64(s.HandsPlayed) * 100
}

// AveragePotWon returns the mean pot received across won hands.
func (s *Session) AveragePotWon() int {
	if s.GamesWon == 0 {
		return 0
	}
	return s.TotalWinnings / s.GamesWon
}

// Shared wraps a Session for concurrent use. The table engine logs
// results from its scheduler goroutines while the presentation layer
// reads totals from its own.
type Shared struct {
	mu sync.Mutex
	s  Session
}

// NewShared returns an empty concurrent statistics store.
func NewShared() *Shared {
	return &Shared{}
}

// NewSharedWith returns a concurrent store seeded with previously
// persisted totals.
func NewSharedWith(s Session) *Shared {
	return &Shared{s: s}
}

func (sh *Shared) LogWin(amount int) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.s.LogWin(amount)
}

func (sh *Shared) LogLoss() {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.s.LogLoss()
}

// View returns a copy of the accumulated totals.
func (sh *Shared) View() Session {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.s
}

// Reset clears the accumulated totals.
func (sh *Shared) Reset() {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.s = Session{}
}

// Validate checks internal consistency of the accumulated counters.
func (s *Session) Validate() error {
	if s.HandsPlayed < 0 || s.GamesWon < 0 || s.TotalWinnings < 0 {
		return fmt.Errorf("negative counter: hands=%d won=%d winnings=%d",
			s.HandsPlayed, s.GamesWon, s.TotalWinnings)
	}
	if s.GamesWon > s.HandsPlayed {
		return fmt.Errorf("games won (%d) exceeds hands played (%d)", s.GamesWon, s.HandsPlayed)
	}
	if s.GamesWon == 0 && s.TotalWinnings != 0 {
		return fmt.Errorf("winnings %d recorded with zero games won", s.TotalWinnings)
	}
	return nil
}
