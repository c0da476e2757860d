package manager

import (
	"log"
	"snake-ai/game/entity"
)

// HighScoreStore persists the best score between sessions
type HighScoreStore interface {
	Load() (int, error)
	Save(score int) error
}

// Counters tallies consumption per HUD category. Standard food counts as growth.
type Counters struct {
	Growth   int `json:"growth"`
	Shrink   int `json:"shrink"`
	Negative int `json:"negative"`
}

type StateManager struct {
	store     HighScoreStore
	logger    *log.Logger
	score     int
	counters  Counters
	highScore int
}

// NewStateManager loads the stored high score. A missing or unreadable value
// counts as 0. store may be nil for sessions that keep nothing.
func NewStateManager(store HighScoreStore, logger *log.Logger) *StateManager {
	if logger == nil {
		logger = log.Default()
	}
	sm := &StateManager{
		store:  store,
		logger: logger,
	}

	if store != nil {
		high, err := store.Load()
		if err != nil {
			sm.logger.Printf("Could not load high score, starting from 0: %v", err)
		} else if high > 0 {
			sm.highScore = high
		}
	}

	return sm
}

// Consume applies the score part of kind's effect and bumps its counter.
// Returns false when the effect ends the round instead.
func (sm *StateManager) Consume(kind entity.Kind) bool {
	effect := kind.Effect()
	if effect.FloorAtZero && sm.score+effect.ScoreDelta < 0 {
		return false
	}

	sm.score += effect.ScoreDelta

	switch {
	case effect.Grow:
		sm.counters.Growth++
	case effect.Shrink:
		sm.counters.Shrink++
	case effect.ScoreDelta < 0:
		sm.counters.Negative++
	}
	return true
}

// UpdateScore records the final score of a round. Returns true if it beat
// the high score, which is then saved.
func (sm *StateManager) UpdateScore() bool {
	if sm.score <= sm.highScore {
		return false
	}

	sm.highScore = sm.score
	if sm.store != nil {
		if err := sm.store.Save(sm.highScore); err != nil {
			sm.logger.Printf("Could not save high score %d: %v", sm.highScore, err)
		}
	}
	return true
}

// Reset clears the round state; the high score is kept
func (sm *StateManager) Reset() {
	sm.score = 0
	sm.counters = Counters{}
}

func (sm *StateManager) GetScore() int {
	return sm.score
}

func (sm *StateManager) GetCounters() Counters {
	return sm.counters
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}
