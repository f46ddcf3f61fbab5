// Package economy provides the default financial collaborator: a purse
// model driven by popularity and stakes. The core only consumes the purse
// list; everything else here is bookkeeping flavor.
package economy

import (
	"github.com/bstar/fight-fortress-sub001/internal/entropy"
	"github.com/bstar/fight-fortress-sub001/internal/fighter"
	"github.com/bstar/fight-fortress-sub001/internal/universe"
)

// Purse model constants, in dollars.
const (
	basePurse      = 4_000
	titleBasePurse = 400_000
	winnerShare    = 0.60
)

// Ledger computes weekly purses.
type Ledger struct {
	roller *entropy.Roller
}

// NewLedger creates a ledger with its own seeded randomness.
func NewLedger(seed int64) *Ledger {
	return &Ledger{roller: entropy.NewRoller(seed)}
}

// ProcessWeek returns both fighters' purses for every resolved fight.
func (l *Ledger) ProcessWeek(roster []*fighter.Fighter, results []universe.ResolvedFight, date fighter.Date) ([]universe.Purse, error) {
	index := make(map[fighter.ID]*fighter.Fighter, len(roster))
	for _, f := range roster {
		index[f.ID] = f
	}

	var purses []universe.Purse
	for _, rf := range results {
		a := index[rf.Card.FighterA]
		b := index[rf.Card.FighterB]
		if a == nil || b == nil {
			continue
		}

		pot := l.potFor(rf.Card, a, b)
		shareA, shareB := 0.5, 0.5
		if !rf.Result.Draw {
			if rf.Result.WinnerID == a.ID {
				shareA, shareB = winnerShare, 1-winnerShare
			} else {
				shareA, shareB = 1-winnerShare, winnerShare
			}
		}

		purses = append(purses,
			universe.Purse{FighterID: a.ID, Amount: int64(pot * shareA)},
			universe.Purse{FighterID: b.ID, Amount: int64(pot * shareB)},
		)
	}
	return purses, nil
}

// potFor sizes the total pot from the stakes and the draw both names bring.
func (l *Ledger) potFor(card universe.FightCard, a, b *fighter.Fighter) float64 {
	drawPower := a.Popularity + b.Popularity

	pot := basePurse * (1 + drawPower/25)
	if card.Title {
		pot += titleBasePurse * (1 + drawPower/50)
	}

	// Promoter mood.
	pot *= l.roller.Between(0.85, 1.25)
	return pot
}
