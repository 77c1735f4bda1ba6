package player

import "testing"

func TestPosition_RoleCoversEveryPosition(t *testing.T) {
	for _, pos := range AllPositions {
		if !pos.Valid() {
			t.Fatalf("position %s should be valid", pos)
		}
		if pos.Role() == "" {
			t.Fatalf("position %s has no role", pos)
		}
	}
	if Position("SW").Valid() {
		t.Fatalf("SW should not be a valid position")
	}
	if PositionGoalkeeper.Role() != RoleGoalkeeper {
		t.Fatalf("goalkeeper role mismatch: %s", PositionGoalkeeper.Role())
	}
	if PositionAttackingMidfielder.Role() != RoleAttack {
		t.Fatalf("attacking midfielder role mismatch: %s", PositionAttackingMidfielder.Role())
	}
}

func TestPlayer_Validate(t *testing.T) {
	valid := Player{ID: "p1", Name: "Rizky", Attributes: Uniform(60), Consistency: 70}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid player, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Player)
	}{
		{name: "missing id", mutate: func(p *Player) { p.ID = "" }},
		{name: "missing name", mutate: func(p *Player) { p.Name = "" }},
		{name: "consistency out of range", mutate: func(p *Player) { p.Consistency = 101 }},
		{name: "attribute out of range", mutate: func(p *Player) { p.Attributes.Reflexes = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestAttributes_GetMatchesFields(t *testing.T) {
	attrs := Uniform(10)
	attrs.Finishing = 91
	attrs.Distribution = 12
	if got := attrs.Get(AttrFinishing); got != 91 {
		t.Fatalf("finishing: expected 91, got %d", got)
	}
	if got := attrs.Get(AttrDistribution); got != 12 {
		t.Fatalf("distribution: expected 12, got %d", got)
	}
	if got := attrs.Get(AttrVision); got != 10 {
		t.Fatalf("vision: expected 10, got %d", got)
	}
	if AttributeCount != 26 {
		t.Fatalf("expected 26 attributes, got %d", AttributeCount)
	}
}
