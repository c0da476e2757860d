package manager

import (
	"errors"
	"snake-ai/game/entity"
	"snake-ai/game/types"

	"golang.org/x/exp/rand"
)

// ErrNoFreeCell is returned when every cell is taken by the body or another entity
var ErrNoFreeCell = errors.New("no free cell for entity")

type FoodManager struct {
	grid         types.Grid
	entities     []entity.Entity
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(grid types.Grid, collisionMgr *CollisionManager, seed uint64) *FoodManager {
	fm := &FoodManager{
		grid:         grid,
		entities:     make([]entity.Entity, len(entity.Layout)),
		rng:          rand.New(rand.NewSource(seed)),
		collisionMgr: collisionMgr,
	}
	for i, kind := range entity.Layout {
		fm.entities[i] = entity.Entity{Kind: kind}
	}
	return fm
}

// Reset places every entity on a fresh random cell, in slot order
func (fm *FoodManager) Reset(body []types.Point) error {
	occ := types.NewOccupancy(fm.grid, body)
	// Park everything off-grid first so stale positions do not block the draw
	for i := range fm.entities {
		fm.entities[i].Pos = types.Point{X: -1, Y: -1}
	}
	for i := range fm.entities {
		if err := fm.relocate(i, occ); err != nil {
			return err
		}
	}
	return nil
}

// Relocate moves entity i to a uniformly drawn cell that is neither on the
// body nor on another entity. If no such cell exists the entity stays put.
func (fm *FoodManager) Relocate(i int, body []types.Point) error {
	return fm.relocate(i, types.NewOccupancy(fm.grid, body))
}

func (fm *FoodManager) relocate(i int, occ *types.Occupancy) error {
	if fm.freeCells(i, occ) == 0 {
		return ErrNoFreeCell
	}

	for {
		pos := types.Point{
			X: fm.rng.Intn(fm.grid.Width),
			Y: fm.rng.Intn(fm.grid.Height),
		}

		if fm.collisionMgr.ValidateSpawnPosition(pos, occ, fm.entities, i) {
			fm.entities[i].Pos = pos
			return nil
		}
	}
}

// freeCells counts the cells slot i could be drawn onto
func (fm *FoodManager) freeCells(i int, occ *types.Occupancy) int {
	taken := make(map[int]bool, len(fm.entities))
	for j, e := range fm.entities {
		if j != i && fm.grid.Contains(e.Pos) && !occ.Has(e.Pos) {
			taken[fm.grid.Index(e.Pos)] = true
		}
	}
	return fm.grid.Cells() - occ.Count() - len(taken)
}

// Entities returns a copy of the entity slots
func (fm *FoodManager) Entities() []entity.Entity {
	out := make([]entity.Entity, len(fm.entities))
	copy(out, fm.entities)
	return out
}

// Entity returns slot i
func (fm *FoodManager) Entity(i int) entity.Entity {
	return fm.entities[i]
}

// Len returns the number of entity slots
func (fm *FoodManager) Len() int {
	return len(fm.entities)
}

// Place pins entity i to pos without any checks
func (fm *FoodManager) Place(i int, pos types.Point) {
	fm.entities[i].Pos = pos
}
