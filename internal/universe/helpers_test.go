package universe

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/bstar/fight-fortress-sub001/internal/config"
	"github.com/bstar/fight-fortress-sub001/internal/fighter"
)

func newTestUniverse() *Universe {
	return New(config.DefaultTuning(), 17, 400, 80)
}

func newUniverseTestGenerator(t *testing.T) *fighter.Generator {
	t.Helper()
	gen, err := fighter.NewGenerator(17, DivisionNames)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return gen
}

// addContender drops a ready-made professional into a division with the
// given record, bypassing the generator so scores are fully controlled.
func addContender(u *Universe, division string, wins, losses, kos int) *fighter.Fighter {
	f := &fighter.Fighter{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("Fighter %d-%d", wins, losses),
		Division: division,
		Age:      26,
		Phase:    fighter.PhaseContender,
		Record:   fighter.Record{Wins: wins, Losses: losses, KOs: kos},
		Potential: fighter.Potential{
			Tier:            fighter.TierNational,
			Ceiling:         85,
			GrowthRate:      1.0,
			PeakAgePhysical: 29,
			PeakAgeMental:   33,
			Resilience:      0.5,
		},
		Personality:    fighter.Personality{Ambition: 50, WorkEthic: 60},
		Attributes:     fighter.NewAttributeSet(60),
		BirthWeek:      26,
		FightsThisYear: 2,
		FormSeed:       int64(wins*100 + losses),
		DebutDate:      fighter.Date{Week: 1, Year: 1},
	}
	f.BaseAttributes = f.Attributes.Clone()
	u.AddFighter(f)
	return f
}

// crownChampion installs a fighter as the division champion with all four
// belts open.
func crownChampion(u *Universe, f *fighter.Fighter) {
	for _, body := range u.Bodies {
		f.WinTitle(body.Profile.Code, u.Date)
	}
	f.Phase = fighter.PhaseChampion
	id := f.ID
	u.Divisions[f.Division].ChampionID = &id
}
