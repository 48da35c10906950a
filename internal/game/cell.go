package game

const (
	CellCount  = 6
	MaxStage   = 6
	MaxBullets = 5
)

// Cell is one of the six slots a player grows by rolling its face value.
// Stage 0 is dormant, 1..5 are growth stages and 6 is fully grown, the only
// stage that carries bullets.
type Cell struct {
	Stage    int  `json:"stage"`
	IsActive bool `json:"isActive"`
	Bullets  int  `json:"bullets"`
}

// Armed reports whether the cell can fire.
func (c Cell) Armed() bool { return c.Stage == MaxStage && c.Bullets > 0 }

// Valid checks the stage/active/bullets relation.
func (c Cell) Valid() bool {
	switch {
	case c.Stage == 0:
		return !c.IsActive && c.Bullets == 0
	case c.Stage > 0 && c.Stage < MaxStage:
		return c.IsActive && c.Bullets == 0
	case c.Stage == MaxStage:
		return c.IsActive && c.Bullets >= 0 && c.Bullets <= MaxBullets
	default:
		return false
	}
}

// grow applies a roll of this cell's face. An armed cell does not change.
func (c Cell) grow() Cell {
	switch {
	case !c.IsActive:
		return Cell{Stage: 1, IsActive: true}
	case c.Stage < MaxStage:
		c.Stage++
		if c.Stage == MaxStage {
			c.Bullets = MaxBullets
		}
		return c
	case c.Bullets == 0:
		c.Bullets = MaxBullets
		return c
	default:
		return c
	}
}
