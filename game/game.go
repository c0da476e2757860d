package game

import (
	"log"
	"os"
	"time"

	"snake-ai/ai"
	"snake-ai/game/entity"
	"snake-ai/game/manager"
	"snake-ai/game/types"

	"github.com/google/uuid"
)

// Options configures a Game. The zero value plays on the default grid with
// seed 0 and no high-score persistence.
type Options struct {
	Grid       types.Grid
	Seed       uint64
	Policy     ai.TargetPolicy
	Autopilot  bool
	HighScores manager.HighScoreStore
	Logger     *log.Logger
	Now        func() time.Time
}

// Game owns the whole simulation. It is not safe for concurrent use; one
// goroutine drives Tick and reads snapshots.
type Game struct {
	grid         types.Grid
	snake        *entity.Snake
	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	stateMgr     *manager.StateManager
	pilot        *ai.Autopilot

	autopilot bool
	phase     Phase
	reason    Reason
	pending   types.Direction
	ticks     int
	roundID   string
	startedAt time.Time

	observers []Observer
	logger    *log.Logger
	now       func() time.Time
}

func New(opts Options) *Game {
	if opts.Grid == (types.Grid{}) {
		opts.Grid = types.DefaultGrid()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "[game] ", log.LstdFlags)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	collisionMgr := manager.NewCollisionManager(opts.Grid)
	g := &Game{
		grid:         opts.Grid,
		snake:        entity.NewSnake(),
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(opts.Grid, collisionMgr, opts.Seed),
		stateMgr:     manager.NewStateManager(opts.HighScores, opts.Logger),
		pilot:        ai.NewAutopilot(opts.Grid, opts.Policy),
		autopilot:    opts.Autopilot,
		logger:       opts.Logger,
		now:          opts.Now,
	}
	g.Restart()
	return g
}

// Subscribe registers an observer for all subsequent events
func (g *Game) Subscribe(o Observer) {
	g.observers = append(g.observers, o)
}

func (g *Game) emit(e Event) {
	for _, o := range g.observers {
		o.OnEvent(e)
	}
}

// Restart begins a new round: fresh snake, score, counters and entity
// positions under a new round id. The high score and autopilot flag carry over.
func (g *Game) Restart() {
	g.snake.Reset()
	g.stateMgr.Reset()
	if err := g.foodMgr.Reset(g.snake.Body); err != nil {
		g.logger.Printf("Could not place entities: %v", err)
	}

	g.phase = Playing
	g.reason = ReasonNone
	g.pending = types.None
	g.ticks = 0
	g.roundID = uuid.NewString()
	g.startedAt = g.now()

	g.emit(Event{Type: EventRestart, Snapshot: g.Snapshot()})
}

// RequestDirection stores a heading to try on the next tick. Only the latest
// request counts; it is checked against the heading at that time.
func (g *Game) RequestDirection(dir types.Direction) {
	g.pending = dir
}

// ToggleAutopilot flips autonomous play and returns the new setting
func (g *Game) ToggleAutopilot() bool {
	g.autopilot = !g.autopilot
	g.pending = types.None
	return g.autopilot
}

// SetAutopilot forces autonomous play on or off
func (g *Game) SetAutopilot(on bool) {
	g.autopilot = on
}

// Tick advances the simulation by one step. It does nothing once the round
// has terminated.
func (g *Game) Tick() {
	if g.phase != Playing {
		return
	}

	g.steer()
	g.snake.Update()
	g.ticks++

	// Entity slots are checked in layout order; a terminating effect stops the scan
	for _, i := range g.collisionMgr.CheckFoodCollisions(g.snake.Head(), g.foodMgr.Entities()) {
		if !g.consume(i, g.foodMgr.Entity(i).Kind) {
			break
		}
	}

	// Only wall and self collisions can set a new high score
	if g.phase == Playing {
		if c := g.collisionMgr.CheckCollision(g.snake); c != manager.NoCollision {
			g.terminate(reasonFor(c), g.stateMgr.UpdateScore())
		}
	}

	g.emit(Event{Type: EventTick, Snapshot: g.Snapshot()})
}

func (g *Game) steer() {
	if g.autopilot {
		dir := g.pilot.Decide(g.snake.Body, g.snake.Direction, g.foodMgr.Entities())
		g.snake.SetDirection(dir)
	} else if g.pending != types.None {
		g.snake.SetDirection(g.pending)
	}
	g.pending = types.None
}

// consume applies the effect of entity slot i. Returns false if it ended the round.
func (g *Game) consume(i int, kind entity.Kind) bool {
	effect := kind.Effect()

	if effect.Shrink && !g.snake.Shrink() {
		g.terminate(ReasonShrink, false)
		return false
	}
	if !g.stateMgr.Consume(kind) {
		g.terminate(ReasonNegative, false)
		return false
	}
	if effect.Grow {
		g.snake.Grow()
	}

	if err := g.foodMgr.Relocate(i, g.snake.Body); err != nil {
		g.logger.Printf("Entity %d (%v) stays at %v: %v", i, kind, g.foodMgr.Entity(i).Pos, err)
	}

	g.emit(Event{Type: EventConsume, Kind: kind})
	return true
}

// terminate ends the round. newHigh reports whether the final score was
// stored as the new high score.
func (g *Game) terminate(reason Reason, newHigh bool) {
	g.phase = Terminated
	g.reason = reason

	round := g.Round()
	g.logger.Printf("Round %s over (%v): score %d after %d ticks", round.ID, reason, round.Score, round.Ticks)

	g.emit(Event{Type: EventCollide, Reason: reason})
	g.emit(Event{Type: EventGameOver, Reason: reason, Round: round, NewHighScore: newHigh})
}

// Round summarises the current round; EndedAt is now while it is still running
func (g *Game) Round() Round {
	return Round{
		ID:        g.roundID,
		StartedAt: g.startedAt,
		EndedAt:   g.now(),
		Score:     g.stateMgr.GetScore(),
		Reason:    g.reason,
		Ticks:     g.ticks,
		Length:    g.snake.Len(),
		Counters:  g.stateMgr.GetCounters(),
		Autopilot: g.autopilot,
	}
}

// Snapshot copies everything a renderer needs
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		RoundID:   g.roundID,
		Tick:      g.ticks,
		Phase:     g.phase,
		Reason:    g.reason,
		Body:      g.snake.Clone(),
		Direction: g.snake.Direction,
		Entities:  g.foodMgr.Entities(),
		Score:     g.stateMgr.GetScore(),
		HighScore: g.stateMgr.GetHighScore(),
		Counters:  g.stateMgr.GetCounters(),
		Autopilot: g.autopilot,
	}
	if g.autopilot {
		if path := g.pilot.LastPath(); len(path) > 0 {
			s.Path = append([]types.Point(nil), path...)
		}
	}
	return s
}

func (g *Game) Phase() Phase { return g.phase }
func (g *Game) Reason() Reason { return g.reason }
func (g *Game) Autopilot() bool { return g.autopilot }
func (g *Game) RoundID() string { return g.roundID }
func (g *Game) Ticks() int { return g.ticks }
func (g *Game) Score() int { return g.stateMgr.GetScore() }
func (g *Game) HighScore() int { return g.stateMgr.GetHighScore() }
func (g *Game) Grid() types.Grid { return g.grid }
func (g *Game) Policy() ai.TargetPolicy { return g.pilot.Policy() }
