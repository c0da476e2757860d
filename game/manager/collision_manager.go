package manager

import (
	"snake-ai/game/entity"
	"snake-ai/game/types"
)

// Collision names why a head position ended the round
type Collision int

const (
	NoCollision Collision = iota
	WallCollision
	SelfCollision
)

func (c Collision) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckCollision checks the snake's head against the walls, then its own body
func (cm *CollisionManager) CheckCollision(snake *entity.Snake) Collision {
	if cm.isWallCollision(snake.Head()) {
		return WallCollision
	}
	if snake.HitsSelf() {
		return SelfCollision
	}
	return NoCollision
}

// isWallCollision checks if a position lies outside the grid
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}

// ValidateSpawnPosition checks if a position is free for an entity. The slot
// being moved is passed as skip and is not compared against itself.
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, occ *types.Occupancy, entities []entity.Entity, skip int) bool {
	if !cm.grid.Walkable(pos, occ) {
		return false
	}

	for i, e := range entities {
		if i == skip {
			continue
		}
		if e.Pos == pos {
			return false
		}
	}

	return true
}

// CheckFoodCollisions returns the slots whose entity sits on pos, in slot order
func (cm *CollisionManager) CheckFoodCollisions(pos types.Point, entities []entity.Entity) []int {
	var hits []int
	for i, e := range entities {
		if e.Pos == pos {
			hits = append(hits, i)
		}
	}
	return hits
}
