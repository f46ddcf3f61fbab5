// Universe-level division rankings.
package universe

import (
	"sort"

	"github.com/bstar/fight-fortress-sub001/internal/fighter"
)

// TopContenders is the size of each division's ranked contender table.
const TopContenders = 15

// RankingChange records one fighter's move in a division table.
type RankingChange struct {
	FighterID fighter.ID
	From      int // 0 = unranked before
	To        int // 0 = dropped out
}

// DivisionScore computes the single universe-level ranking score for a
// fighter: win percentage, a capped win-volume quality term, KO percentage,
// recent-activity and streak bonuses, minus the inactivity penalty once the
// fighter has sat out past the grace window.
func (u *Universe) DivisionScore(f *fighter.Fighter) float64 {
	tun := &u.tun.Rankings

	score := f.Record.WinPct() * 50

	quality := float64(f.Record.Wins)
	if quality > 20 {
		quality = 20
	}
	score += quality

	score += f.Record.KOPct() * 15

	if f.FightsThisYear > 0 {
		score += tun.RecentActivityBonus
	}

	streak := float64(f.ConsecutiveWins) * tun.StreakBonusPerWin
	if streak > tun.StreakBonusCap {
		streak = tun.StreakBonusCap
	}
	score += streak

	if f.WeeksInactive > tun.InactivityGraceWeeks {
		score -= float64(f.WeeksInactive-tun.InactivityGraceWeeks) * tun.InactivityPenaltyPerWk
	}

	return score
}

// UpdateDivisionRankings recomputes one division's contender table and
// returns the changes. The champion is excluded; ties break on fighter ID
// so the ordering is fully deterministic given the scores. Rank 1 becomes
// the mandatory challenger when none is set.
func (u *Universe) UpdateDivisionRankings(division string) []RankingChange {
	div := u.Divisions[division]
	if div == nil {
		return nil
	}

	type scored struct {
		f     *fighter.Fighter
		score float64
	}
	var pool []scored
	for _, f := range u.DivisionRoster(division) {
		if div.ChampionID != nil && *div.ChampionID == f.ID {
			continue
		}
		if f.Record.TotalFights() == 0 || f.Phase < fighter.PhaseProDebut {
			continue
		}
		pool = append(pool, scored{f, u.DivisionScore(f)})
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].score != pool[j].score {
			return pool[i].score > pool[j].score
		}
		return pool[i].f.ID.String() < pool[j].f.ID.String()
	})

	limit := TopContenders
	if len(pool) < limit {
		limit = len(pool)
	}

	previous := make(map[fighter.ID]int)
	for _, f := range u.DivisionRoster(division) {
		if f.Ranking.CurrentRank != nil {
			previous[f.ID] = *f.Ranking.CurrentRank
		}
	}

	var changes []RankingChange
	div.Contenders = div.Contenders[:0]

	ranked := make(map[fighter.ID]bool, limit)
	for i := 0; i < limit; i++ {
		f := pool[i].f
		rank := i + 1
		ranked[f.ID] = true
		div.Contenders = append(div.Contenders, f.ID)

		if prev := previous[f.ID]; prev != rank {
			changes = append(changes, RankingChange{FighterID: f.ID, From: prev, To: rank})
		}
		r := rank
		f.Ranking.CurrentRank = &r
		if f.Ranking.PeakRank == 0 || rank < f.Ranking.PeakRank {
			f.Ranking.PeakRank = rank
		}
		f.Ranking.WeeksRanked++
	}

	// Everyone else drops out.
	for _, s := range pool[limit:] {
		if prev, was := previous[s.f.ID]; was {
			changes = append(changes, RankingChange{FighterID: s.f.ID, From: prev, To: 0})
		}
		s.f.Ranking.CurrentRank = nil
	}

	// Mandatory challenger defaults to the top contender.
	if div.MandatoryID != nil {
		if m := u.Active[*div.MandatoryID]; m == nil || !ranked[*div.MandatoryID] {
			div.MandatoryID = nil
		}
	}
	if div.MandatoryID == nil && len(div.Contenders) > 0 {
		top := div.Contenders[0]
		div.MandatoryID = &top
	}

	return changes
}

// updateUniverseRankings runs the weekly pass over every division, emitting
// events only for moves into the top five and fresh entries to keep the
// feed readable.
func (u *Universe) updateUniverseRankings() []Event {
	var events []Event
	for _, name := range DivisionNames {
		for _, ch := range u.UpdateDivisionRankings(name) {
			if ch.To == 0 || (ch.To > 5 && ch.From != 0) {
				continue
			}
			f := u.Active[ch.FighterID]
			if f == nil {
				continue
			}
			events = append(events, RankingChangeEvent{
				Division:  name,
				FighterID: ch.FighterID,
				Name:      f.Name,
				From:      ch.From,
				To:        ch.To,
			})
		}
	}
	return events
}
