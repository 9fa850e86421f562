package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_WinAndLossCounting(t *testing.T) {
	s := NewSession()

	s.LogWin(100)
	s.LogLoss()
	s.LogWin(50)
	s.LogLoss()

	assert.Equal(t, 4, s.HandsPlayed)
	assert.Equal(t, 2, s.GamesWon)
	assert.Equal(t, 150, s.TotalWinnings)
	assert.InDelta(t, 50.0, s.WinLossRatio(), 0.001)
	assert.Equal(t, 75, s.AveragePotWon())
	require.NoError(t, s.Validate())
}

func TestSession_EmptySession(t *testing.T) {
	s := NewSession()

	assert.Zero(t, s.WinLossRatio())
	assert.Zero(t, s.AveragePotWon())
	require.NoError(t, s.Validate())
}

func TestShared_ConcurrentLogging(t *testing.T) {
	sh := NewShared()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sh.LogWin(10)
				sh.LogLoss()
			}
		}()
	}
	wg.Wait()

	view := sh.View()
	assert.Equal(t, 1600, view.HandsPlayed)
	assert.Equal(t, 800, view.GamesWon)
	assert.Equal(t, 8000, view.TotalWinnings)
	require.NoError(t, view.Validate())

	sh.Reset()
	assert.Zero(t, sh.View().HandsPlayed)
}

func TestShared_ViewIsACopy(t *testing.T) {
	sh := NewShared()
	sh.LogWin(25)

	view := sh.View()
	view.GamesWon = 99

	assert.Equal(t, 1, sh.View().GamesWon)
}

func TestSession_ValidateCatchesInconsistency(t *testing.T) {
	s := &Session{HandsPlayed: 1, GamesWon: 2}
	assert.Error(t, s.Validate())

	s = &Session{TotalWinnings: 10}
	assert.Error(t, s.Validate())
}
