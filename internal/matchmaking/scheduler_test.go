package matchmaking

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/bstar/fight-fortress-sub001/internal/fighter"
	"github.com/bstar/fight-fortress-sub001/internal/universe"
)

func schedulable(division string, phase fighter.Phase, overall float64, idle int) *fighter.Fighter {
	return &fighter.Fighter{
		ID:            uuid.New(),
		Name:          fmt.Sprintf("%s %.0f", phase, overall),
		Division:      division,
		Age:           26,
		Phase:         phase,
		Attributes:    fighter.NewAttributeSet(overall),
		WeeksInactive: idle,
	}
}

func TestGenerateWeeklyFightsNoDoubleBooking(t *testing.T) {
	s := NewScheduler(11)
	var roster []*fighter.Fighter
	for i := 0; i < 24; i++ {
		roster = append(roster, schedulable("Lightweight", fighter.PhaseGatekeeper, 50+float64(i), 30))
	}

	date := fighter.Date{Week: 1, Year: 1}
	for week := 0; week < 100; week++ {
		cards, err := s.GenerateWeeklyFights(roster, date)
		if err != nil {
			t.Fatalf("GenerateWeeklyFights: %v", err)
		}
		seen := make(map[fighter.ID]bool)
		for _, c := range cards {
			if seen[c.FighterA] || seen[c.FighterB] {
				t.Fatalf("week %d: fighter booked twice", week)
			}
			if c.FighterA == c.FighterB {
				t.Fatalf("week %d: fighter matched against himself", week)
			}
			seen[c.FighterA] = true
			seen[c.FighterB] = true
		}
	}
}

func TestGenerateWeeklyFightsRespectsRestAndAvailability(t *testing.T) {
	s := NewScheduler(5)
	resting := schedulable("Welterweight", fighter.PhaseContender, 70, 3)
	injured := schedulable("Welterweight", fighter.PhaseContender, 70, 30)
	injured.InjuryWeeks = 4
	var roster []*fighter.Fighter
	roster = append(roster, resting, injured)
	for i := 0; i < 12; i++ {
		roster = append(roster, schedulable("Welterweight", fighter.PhaseContender, 60+float64(i), 30))
	}

	for week := 0; week < 300; week++ {
		cards, err := s.GenerateWeeklyFights(roster, fighter.Date{Week: 1, Year: 1})
		if err != nil {
			t.Fatalf("GenerateWeeklyFights: %v", err)
		}
		for _, c := range cards {
			for _, id := range []fighter.ID{c.FighterA, c.FighterB} {
				if id == resting.ID {
					t.Fatalf("fighter booked with only 3 weeks of rest")
				}
				if id == injured.ID {
					t.Fatalf("injured fighter booked")
				}
			}
		}
	}
}

func TestGenerateWeeklyFightsBooksMandatoryDefense(t *testing.T) {
	s := NewScheduler(99)
	champ := schedulable("Heavyweight", fighter.PhaseChampion, 90, 30)
	rankOne := schedulable("Heavyweight", fighter.PhaseContender, 85, 30)
	one := 1
	rankOne.Ranking.CurrentRank = &one
	roster := []*fighter.Fighter{champ, rankOne}
	for i := 0; i < 10; i++ {
		roster = append(roster, schedulable("Heavyweight", fighter.PhaseGatekeeper, 55+float64(i), 30))
	}

	// An overdue champion always answers the bell; the contender's draw
	// makes this land well inside a few hundred weeks.
	for week := 0; week < 500; week++ {
		cards, err := s.GenerateWeeklyFights(roster, fighter.Date{Week: 1, Year: 1})
		if err != nil {
			t.Fatalf("GenerateWeeklyFights: %v", err)
		}
		for _, c := range cards {
			if !c.IsMandatory {
				continue
			}
			if !c.Title {
				t.Fatalf("mandatory card without the title on the line")
			}
			if c.Rounds != 12 {
				t.Fatalf("mandatory card over %d rounds, want 12", c.Rounds)
			}
			if c.FighterA != champ.ID || c.FighterB != rankOne.ID {
				t.Fatalf("mandatory card pairs the wrong fighters")
			}
			return
		}
	}
	t.Fatalf("no mandatory defense booked in 500 weeks")
}

func TestGenerateWeeklyFightsDistanceTracksPhase(t *testing.T) {
	s := NewScheduler(3)
	var roster []*fighter.Fighter
	for i := 0; i < 8; i++ {
		roster = append(roster, schedulable("Flyweight", fighter.PhaseProDebut, 45+float64(i), 30))
	}

	booked := false
	for week := 0; week < 300 && !booked; week++ {
		cards, err := s.GenerateWeeklyFights(roster, fighter.Date{Week: 1, Year: 1})
		if err != nil {
			t.Fatalf("GenerateWeeklyFights: %v", err)
		}
		for _, c := range cards {
			booked = true
			if c.Rounds != 6 {
				t.Fatalf("debut bout over %d rounds, want 6", c.Rounds)
			}
			if c.Title {
				t.Fatalf("debut bout marked a title fight")
			}
		}
	}
	if !booked {
		t.Fatalf("no cards booked in 300 weeks")
	}
}

func TestRoundsFor(t *testing.T) {
	cases := []struct {
		a, b fighter.Phase
		want int
	}{
		{fighter.PhaseProDebut, fighter.PhaseProDebut, 6},
		{fighter.PhaseRising, fighter.PhaseProDebut, 8},
		{fighter.PhaseGatekeeper, fighter.PhaseRising, 8},
		{fighter.PhaseContender, fighter.PhaseGatekeeper, 10},
		{fighter.PhaseDecline, fighter.PhaseRising, 10},
	}
	for _, tc := range cases {
		a := schedulable("Lightweight", tc.a, 60, 10)
		b := schedulable("Lightweight", tc.b, 60, 10)
		if got := roundsFor(a, b); got != tc.want {
			t.Fatalf("roundsFor(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestGenerateWeeklyFightsKeepsDivisionsApart(t *testing.T) {
	s := NewScheduler(21)
	var roster []*fighter.Fighter
	for i := 0; i < 10; i++ {
		roster = append(roster, schedulable("Bantamweight", fighter.PhaseContender, 60, 30))
		roster = append(roster, schedulable("Middleweight", fighter.PhaseContender, 60, 30))
	}
	inDivision := make(map[fighter.ID]string)
	for _, f := range roster {
		inDivision[f.ID] = f.Division
	}

	for week := 0; week < 100; week++ {
		cards, err := s.GenerateWeeklyFights(roster, fighter.Date{Week: 1, Year: 1})
		if err != nil {
			t.Fatalf("GenerateWeeklyFights: %v", err)
		}
		for _, c := range cards {
			if inDivision[c.FighterA] != c.Division || inDivision[c.FighterB] != c.Division {
				t.Fatalf("cross-division card in %s", c.Division)
			}
		}
	}
}

var _ universe.Matchmaker = (*Scheduler)(nil)
