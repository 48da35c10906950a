package game

import (
	"errors"
	"fmt"
)

var ErrInvalidMove = errors.New("invalid move")

type ActionKind string

const (
	ActionRoll  ActionKind = "roll"
	ActionShoot ActionKind = "shoot"
)

// Action is a move made by the player whose turn it is. Value is used by
// rolls; the three indices by shots.
type Action struct {
	Kind         ActionKind
	Value        int
	TargetPlayer int
	TargetCell   int
	SourceCell   int
}

// Apply runs a move for the current player and passes the turn on.
func Apply(s State, a Action) (State, error) {
	switch a.Kind {
	case ActionRoll:
		return Roll(s, a.Value)
	case ActionShoot:
		return Shoot(s, a.TargetPlayer, a.TargetCell, a.SourceCell)
	default:
		return s, fmt.Errorf("%w: unknown action %q", ErrInvalidMove, a.Kind)
	}
}

// Roll grows the current player's cell for the rolled face (1..6).
func Roll(s State, value int) (State, error) {
	if _, ok := s.Current(); !ok {
		return s, fmt.Errorf("%w: no current player", ErrInvalidMove)
	}
	if value < 1 || value > CellCount {
		return s, fmt.Errorf("%w: die value %d", ErrInvalidMove, value)
	}
	next := s.Clone()
	p := &next.Players[next.CurrentPlayer]
	p.Cells[value-1] = p.Cells[value-1].grow()
	next.advance()
	return next, nil
}

// Shoot spends one bullet of the current player's source cell to reset the
// target cell. Shooting from an empty cell changes nothing but still ends the
// turn.
func Shoot(s State, targetPlayer, targetCell, sourceCell int) (State, error) {
	if _, ok := s.Current(); !ok {
		return s, fmt.Errorf("%w: no current player", ErrInvalidMove)
	}
	if targetPlayer < 0 || targetPlayer >= len(s.Players) {
		return s, fmt.Errorf("%w: target player %d", ErrInvalidMove, targetPlayer)
	}
	if targetCell < 0 || targetCell >= CellCount {
		return s, fmt.Errorf("%w: target cell %d", ErrInvalidMove, targetCell)
	}
	if sourceCell < 0 || sourceCell >= CellCount {
		return s, fmt.Errorf("%w: source cell %d", ErrInvalidMove, sourceCell)
	}

	next := s.Clone()
	shooter := &next.Players[next.CurrentPlayer]
	if shooter.Cells[sourceCell].Bullets > 0 {
		// Spend the bullet before the reset so a shot at the firing cell
		// itself leaves it dormant.
		shooter.Cells[sourceCell].Bullets--
		target := &next.Players[targetPlayer]
		target.Cells[targetCell] = Cell{}
		target.Eliminated = target.allInactive()
	}
	next.advance()
	return next, nil
}

// Forfeit removes a departed player from play: all cells go dormant and the
// player is eliminated. If it was their turn, the turn moves on.
func Forfeit(s State, idx int) State {
	if idx < 0 || idx >= len(s.Players) {
		return s
	}
	next := s.Clone()
	next.Players[idx].Cells = [CellCount]Cell{}
	next.Players[idx].Eliminated = true
	if next.CurrentPlayer == idx {
		next.advance()
	}
	return next
}
