package manager

import (
	"errors"
	"io"
	"log"
	"testing"

	"snake-ai/game/entity"
	"snake-ai/game/types"
)

// memStore is an in-memory HighScoreStore
type memStore struct {
	value   int
	loadErr error
	saves   []int
}

func (m *memStore) Load() (int, error) {
	return m.value, m.loadErr
}

func (m *memStore) Save(score int) error {
	m.value = score
	m.saves = append(m.saves, score)
	return nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestCheckCollision(t *testing.T) {
	cm := NewCollisionManager(types.DefaultGrid())
	tests := []struct {
		name string
		body []types.Point
		want Collision
	}{
		{"open cell", []types.Point{{X: 5, Y: 5}, {X: 4, Y: 5}}, NoCollision},
		{"left wall", []types.Point{{X: -1, Y: 5}, {X: 0, Y: 5}}, WallCollision},
		{"right wall", []types.Point{{X: 25, Y: 5}, {X: 24, Y: 5}}, WallCollision},
		{"top wall", []types.Point{{X: 3, Y: -1}, {X: 3, Y: 0}}, WallCollision},
		{"bottom wall", []types.Point{{X: 3, Y: 25}, {X: 3, Y: 24}}, WallCollision},
		{"own body", []types.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 5}}, SelfCollision},
	}

	for _, tt := range tests {
		s := &entity.Snake{Body: tt.body, Direction: types.Right}
		if got := cm.CheckCollision(s); got != tt.want {
			t.Errorf("%s: CheckCollision = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidateSpawnPosition(t *testing.T) {
	grid := types.DefaultGrid()
	cm := NewCollisionManager(grid)
	occ := types.NewOccupancy(grid, []types.Point{{X: 4, Y: 23}})
	entities := []entity.Entity{
		{Pos: types.Point{X: 1, Y: 1}, Kind: entity.Standard},
		{Pos: types.Point{X: 2, Y: 2}, Kind: entity.Growth},
	}

	if cm.ValidateSpawnPosition(types.Point{X: 4, Y: 23}, occ, entities, 0) {
		t.Error("body cell accepted")
	}
	if cm.ValidateSpawnPosition(types.Point{X: 2, Y: 2}, occ, entities, 0) {
		t.Error("cell of another entity accepted")
	}
	if !cm.ValidateSpawnPosition(types.Point{X: 1, Y: 1}, occ, entities, 0) {
		t.Error("own cell should not block the moving entity")
	}
	if cm.ValidateSpawnPosition(types.Point{X: 25, Y: 0}, occ, entities, 0) {
		t.Error("out-of-bounds cell accepted")
	}
}

func TestCheckFoodCollisions(t *testing.T) {
	cm := NewCollisionManager(types.DefaultGrid())
	head := types.Point{X: 5, Y: 5}
	entities := []entity.Entity{
		{Pos: types.Point{X: 1, Y: 1}, Kind: entity.Standard},
		{Pos: head, Kind: entity.Growth},
		{Pos: types.Point{X: 2, Y: 2}, Kind: entity.Shrink},
		{Pos: head, Kind: entity.Negative},
	}

	got := cm.CheckFoodCollisions(head, entities)
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("hits = %v, want [1 3]", got)
	}
	if got := cm.CheckFoodCollisions(types.Point{X: 9, Y: 9}, entities); len(got) != 0 {
		t.Errorf("hits on an empty cell = %v", got)
	}
}

func TestFoodManagerResetPlacesAllDistinct(t *testing.T) {
	grid := types.DefaultGrid()
	fm := NewFoodManager(grid, NewCollisionManager(grid), 42)
	body := entity.NewSnake().Body

	for round := 0; round < 50; round++ {
		if err := fm.Reset(body); err != nil {
			t.Fatal(err)
		}
		ents := fm.Entities()
		if len(ents) != 5 {
			t.Fatalf("got %d entities, want 5", len(ents))
		}
		seen := map[types.Point]bool{}
		for i, e := range ents {
			if e.Kind != entity.Layout[i] {
				t.Errorf("slot %d kind = %v, want %v", i, e.Kind, entity.Layout[i])
			}
			if !grid.WalkableBody(e.Pos, body) {
				t.Errorf("slot %d placed on blocked cell %v", i, e.Pos)
			}
			if seen[e.Pos] {
				t.Errorf("two entities share %v", e.Pos)
			}
			seen[e.Pos] = true
		}
	}
}

func TestFoodManagerSeedIsReproducible(t *testing.T) {
	grid := types.DefaultGrid()
	body := entity.NewSnake().Body
	a := NewFoodManager(grid, NewCollisionManager(grid), 7)
	b := NewFoodManager(grid, NewCollisionManager(grid), 7)
	if err := a.Reset(body); err != nil {
		t.Fatal(err)
	}
	if err := b.Reset(body); err != nil {
		t.Fatal(err)
	}
	for i := range a.Entities() {
		if a.Entity(i) != b.Entity(i) {
			t.Errorf("slot %d differs: %v vs %v", i, a.Entity(i), b.Entity(i))
		}
	}
}

func TestFoodManagerRelocateAvoidsBodyAndOthers(t *testing.T) {
	// 3x1 strip: body on x=0, another entity on x=1, only x=2 is free
	grid := types.Grid{Width: 3, Height: 1}
	fm := NewFoodManager(grid, NewCollisionManager(grid), 1)
	body := []types.Point{{X: 0, Y: 0}}
	fm.Place(0, types.Point{X: 0, Y: 0})
	fm.Place(1, types.Point{X: 1, Y: 0})
	for i := 2; i < fm.Len(); i++ {
		fm.Place(i, types.Point{X: -1, Y: -1})
	}

	if err := fm.Relocate(0, body); err != nil {
		t.Fatal(err)
	}
	if got := fm.Entity(0).Pos; got != (types.Point{X: 2, Y: 0}) {
		t.Errorf("relocated to %v, want (2,0)", got)
	}
}

func TestFoodManagerRelocateNoFreeCell(t *testing.T) {
	grid := types.Grid{Width: 2, Height: 1}
	fm := NewFoodManager(grid, NewCollisionManager(grid), 1)
	body := []types.Point{{X: 0, Y: 0}}
	fm.Place(0, types.Point{X: 0, Y: 0})
	fm.Place(1, types.Point{X: 1, Y: 0})

	err := fm.Relocate(0, body)
	if !errors.Is(err, ErrNoFreeCell) {
		t.Fatalf("Relocate error = %v, want ErrNoFreeCell", err)
	}
	if got := fm.Entity(0).Pos; got != (types.Point{X: 0, Y: 0}) {
		t.Errorf("entity moved to %v despite a full grid", got)
	}
}

func TestStateManagerConsume(t *testing.T) {
	sm := NewStateManager(nil, quietLogger())

	if !sm.Consume(entity.Standard) || sm.GetScore() != 1 {
		t.Fatalf("standard: score = %d", sm.GetScore())
	}
	if !sm.Consume(entity.Growth) || sm.GetScore() != 3 {
		t.Fatalf("growth: score = %d", sm.GetScore())
	}
	if !sm.Consume(entity.Shrink) || sm.GetScore() != 3 {
		t.Fatalf("shrink: score = %d", sm.GetScore())
	}
	if !sm.Consume(entity.Negative) || sm.GetScore() != 2 {
		t.Fatalf("negative: score = %d", sm.GetScore())
	}

	want := Counters{Growth: 2, Shrink: 1, Negative: 1}
	if got := sm.GetCounters(); got != want {
		t.Errorf("counters = %+v, want %+v", got, want)
	}
}

func TestStateManagerNegativeAtZeroEndsRound(t *testing.T) {
	sm := NewStateManager(nil, quietLogger())
	if sm.Consume(entity.Negative) {
		t.Fatal("negative at score 0 should end the round")
	}
	if sm.GetScore() != 0 {
		t.Errorf("score went to %d", sm.GetScore())
	}
	if sm.GetCounters().Negative != 0 {
		t.Error("terminal negative should not be counted")
	}
}

func TestStateManagerHighScore(t *testing.T) {
	store := &memStore{value: 17}
	sm := NewStateManager(store, quietLogger())
	if sm.GetHighScore() != 17 {
		t.Fatalf("loaded high score = %d, want 17", sm.GetHighScore())
	}

	for i := 0; i < 12; i++ {
		sm.Consume(entity.Standard)
	}
	if sm.UpdateScore() {
		t.Error("12 should not beat 17")
	}
	if store.value != 17 || len(store.saves) != 0 {
		t.Errorf("store = %d after %d saves, want 17 untouched", store.value, len(store.saves))
	}

	sm.Reset()
	for i := 0; i < 10; i++ {
		sm.Consume(entity.Growth)
	}
	if !sm.UpdateScore() {
		t.Error("20 should beat 17")
	}
	if store.value != 20 || sm.GetHighScore() != 20 {
		t.Errorf("store = %d, high = %d, want 20", store.value, sm.GetHighScore())
	}
}

func TestStateManagerLoadFailureDefaultsToZero(t *testing.T) {
	store := &memStore{value: 99, loadErr: errors.New("corrupt")}
	sm := NewStateManager(store, quietLogger())
	if sm.GetHighScore() != 0 {
		t.Errorf("high score = %d, want 0 after load failure", sm.GetHighScore())
	}
}

func TestStateManagerResetKeepsHighScore(t *testing.T) {
	sm := NewStateManager(&memStore{}, quietLogger())
	sm.Consume(entity.Growth)
	sm.UpdateScore()
	sm.Reset()
	if sm.GetScore() != 0 || sm.GetCounters() != (Counters{}) {
		t.Errorf("Reset left score=%d counters=%+v", sm.GetScore(), sm.GetCounters())
	}
	if sm.GetHighScore() != 2 {
		t.Errorf("high score = %d, want 2", sm.GetHighScore())
	}
}
