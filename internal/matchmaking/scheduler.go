// Package matchmaking provides the default fight scheduler. The universe
// consumes it through the Matchmaker interface; promoters with different
// politics can replace it wholesale.
package matchmaking

import (
	"sort"

	"github.com/bstar/fight-fortress-sub001/internal/entropy"
	"github.com/bstar/fight-fortress-sub001/internal/fighter"
	"github.com/bstar/fight-fortress-sub001/internal/universe"
)

// minRestWeeks is how long a fighter sits between bouts before becoming
// schedulable again.
const minRestWeeks = 6

// scheduleChance is the per-fighter weekly probability of landing on a card
// once rested. Together with minRestWeeks it yields roughly four to seven
// fights a year.
const scheduleChance = 0.18

// Scheduler pairs rested fighters by rating proximity within each division
// and books title fights for champions.
type Scheduler struct {
	roller *entropy.Roller
}

// NewScheduler creates a scheduler with its own seeded randomness.
func NewScheduler(seed int64) *Scheduler {
	return &Scheduler{roller: entropy.NewRoller(seed)}
}

// GenerateWeeklyFights builds the week's cards. Each fighter appears on at
// most one card.
func (s *Scheduler) GenerateWeeklyFights(roster []*fighter.Fighter, date fighter.Date) ([]universe.FightCard, error) {
	byDivision := make(map[string][]*fighter.Fighter)
	for _, f := range roster {
		if !f.Available() || f.WeeksInactive < minRestWeeks {
			continue
		}
		byDivision[f.Division] = append(byDivision[f.Division], f)
	}

	var cards []universe.FightCard
	for _, division := range universe.DivisionNames {
		pool := byDivision[division]
		if len(pool) < 2 {
			continue
		}

		// Willingness draw, champions prioritized when overdue.
		var willing []*fighter.Fighter
		for _, f := range pool {
			chance := scheduleChance
			if f.Phase == fighter.PhaseChampion && f.WeeksInactive >= 20 {
				chance = 0.5
			}
			if f.WeeksInactive >= 26 {
				chance *= 2
			}
			if s.roller.Chance(chance) {
				willing = append(willing, f)
			}
		}
		if len(willing) < 2 {
			continue
		}

		// A champion and the number-one contender on the same card is a
		// mandatory defense; book it before the open pairings.
		var champion, topContender *fighter.Fighter
		for _, f := range willing {
			if f.Phase == fighter.PhaseChampion {
				champion = f
			}
			if f.Ranking.CurrentRank != nil && *f.Ranking.CurrentRank == 1 {
				topContender = f
			}
		}
		if champion != nil && topContender != nil && champion.ID != topContender.ID {
			cards = append(cards, universe.FightCard{
				FighterA:    champion.ID,
				FighterB:    topContender.ID,
				Division:    division,
				Rounds:      12,
				Title:       true,
				IsMandatory: true,
			})
			willing = remove(willing, champion.ID, topContender.ID)
			if len(willing) < 2 {
				continue
			}
		}

		// Pair neighbors by rating so bouts stay competitive.
		sort.Slice(willing, func(i, j int) bool {
			ri := willing[i].Attributes.Overall()
			rj := willing[j].Attributes.Overall()
			if ri != rj {
				return ri > rj
			}
			return willing[i].ID.String() < willing[j].ID.String()
		})

		for i := 0; i+1 < len(willing); i += 2 {
			a, b := willing[i], willing[i+1]
			card := universe.FightCard{
				FighterA: a.ID,
				FighterB: b.ID,
				Division: division,
				Rounds:   roundsFor(a, b),
			}
			if a.Phase == fighter.PhaseChampion || b.Phase == fighter.PhaseChampion {
				card.Title = true
				card.Rounds = 12
			}
			cards = append(cards, card)
		}
	}
	return cards, nil
}

func remove(pool []*fighter.Fighter, ids ...fighter.ID) []*fighter.Fighter {
	out := pool[:0]
	for _, f := range pool {
		skip := false
		for _, id := range ids {
			if f.ID == id {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, f)
		}
	}
	return out
}

// roundsFor picks the distance from the more established of the pair.
func roundsFor(a, b *fighter.Fighter) int {
	phase := a.Phase
	if b.Phase > phase {
		phase = b.Phase
	}
	switch phase {
	case fighter.PhaseProDebut:
		return 6
	case fighter.PhaseRising:
		return 8
	case fighter.PhaseGatekeeper:
		return 8
	default:
		return 10
	}
}
