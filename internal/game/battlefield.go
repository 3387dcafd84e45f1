package game

import "gorm.io/gorm"

// Mitigation is the capability a target exposes to the damage pipeline
// instead of the pipeline inspecting target types at runtime.
// FlatDefense is subtracted from base damage before multipliers; Factor
// scales the multiplied total (gate hardness, stacked defense buffs).
type Mitigation struct {
	FlatDefense int     `json:"flat_defense"`
	Factor      float64 `json:"factor"`
}

// Target is anything a weapon use can resolve against.
type Target interface {
	TargetName() string
	Alive() bool
	Mitigation() Mitigation
	ApplyDamage(amount int)
}

// GateKind selects the fixed hardness factor of a gate.
type GateKind string

const (
	GateFortress GateKind = "fortress"
	GateElite    GateKind = "elite"
	GateNormal   GateKind = "normal"
)

// Factor returns the damage factor for this gate kind.
// Fortress halves incoming damage, Elite takes 80%, anything else full.
func (k GateKind) Factor() float64 {
	switch k {
	case GateFortress:
		return 0.5
	case GateElite:
		return 0.8
	default:
		return 1.0
	}
}

// Enemy occupies one (column,row) slot of the battlefield grid.
type Enemy struct {
	gorm.Model
	BattleID     uint   `json:"-"`
	Name         string `json:"name"`
	Column       int    `json:"column"`
	Row          int    `json:"row"`
	HitPoints    int    `json:"hit_points"`
	MaxHitPoints int    `json:"max_hit_points"`
	Defense      int    `json:"defense"`
	// DefenseBuffFactor is the product of active defense buffs. Buffs stack
	// multiplicatively; 1.0 means unbuffed. Not persisted between turns that
	// outlive the buff (the service decays it at turn end).
	DefenseBuffFactor    float64 `json:"defense_buff_factor"`
	DefenseBuffUntilTurn int     `json:"defense_buff_until_turn"`
	DebuffValue          int     `json:"debuff_value"`
	DebuffUntilTurn      int     `json:"debuff_until_turn"`
}

func (e *Enemy) TargetName() string { return e.Name }

func (e *Enemy) Alive() bool { return e.HitPoints > 0 }

func (e *Enemy) Mitigation() Mitigation {
	def := e.Defense - e.DebuffValue
	if def < 0 {
		def = 0
	}
	factor := 1.0
	if e.DefenseBuffFactor > 0 {
		factor = e.DefenseBuffFactor
	}
	return Mitigation{FlatDefense: def, Factor: factor}
}

func (e *Enemy) ApplyDamage(amount int) {
	e.HitPoints -= amount
	if e.HitPoints < 0 {
		e.HitPoints = 0
	}
}

// Gate is a fortified battlefield target addressed outside the enemy grid.
type Gate struct {
	gorm.Model
	BattleID     uint     `json:"-"`
	Name         string   `json:"name"`
	Kind         GateKind `json:"kind"`
	HitPoints    int      `json:"hit_points"`
	MaxHitPoints int      `json:"max_hit_points"`
}

func (g *Gate) TargetName() string { return g.Name }

func (g *Gate) Alive() bool { return g.HitPoints > 0 }

// Gates have no flat defense; their hardness is purely multiplicative.
func (g *Gate) Mitigation() Mitigation {
	return Mitigation{FlatDefense: 0, Factor: g.Kind.Factor()}
}

func (g *Gate) ApplyDamage(amount int) {
	g.HitPoints -= amount
	if g.HitPoints < 0 {
		g.HitPoints = 0
	}
}

// Battlefield rows: row 0 is the front line, row 1 the back line.
const (
	RowFront = 0
	RowBack  = 1
	RowCount = 2
)

// Battlefield is the in-memory view of a battle's targets, built from the
// persisted battle on demand. Pointers alias the battle's slices so damage
// applied through targets is visible on the battle when it is saved.
type Battlefield struct {
	Enemies []*Enemy
	Gates   []*Gate
}

// AliveEnemies returns enemies with HP > 0 in stored order.
func (f *Battlefield) AliveEnemies() []*Enemy {
	out := make([]*Enemy, 0, len(f.Enemies))
	for _, e := range f.Enemies {
		if e.Alive() {
			out = append(out, e)
		}
	}
	return out
}
