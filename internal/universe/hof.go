// Hall-of-Fame evaluation, run once per simulated year.
package universe

import (
	"sort"

	"github.com/bstar/fight-fortress-sub001/internal/fighter"
)

// Induction is one Hall-of-Fame entry.
type Induction struct {
	FighterID   fighter.ID   `json:"fighter_id"`
	Name        string       `json:"name"`
	Date        fighter.Date `json:"date"`
	Score       float64      `json:"score"`
	FirstBallot bool         `json:"first_ballot"`
}

// HallOfFame holds the inducted fighters.
type HallOfFame struct {
	Inductees []Induction `json:"inductees"`
}

// Contains reports whether a fighter is already inducted.
func (h *HallOfFame) Contains(id fighter.ID) bool {
	for _, ind := range h.Inductees {
		if ind.FighterID == id {
			return true
		}
	}
	return false
}

// HOFVerdict is the evaluator's answer for one retiree.
type HOFVerdict struct {
	Qualifies   bool
	FirstBallot bool
	Score       float64
}

// EvaluateHOF scores a retired fighter against the induction criteria.
// Eligibility gates come first: a thin record disqualifies outright,
// whatever the score would have been.
func (u *Universe) EvaluateHOF(f *fighter.Fighter) HOFVerdict {
	tun := &u.tun.HallOfFame

	if f.Record.TotalFights() < tun.MinFights ||
		f.Record.Wins < tun.MinWins ||
		f.Record.WinPct() < tun.MinWinPct {
		return HOFVerdict{}
	}

	score := 0.0

	// Titles and defenses, both capped so belt collectors don't run away.
	titlePoints := float64(len(f.Titles)) * 8
	if titlePoints > 24 {
		titlePoints = 24
	}
	score += titlePoints

	defensePoints := float64(f.TotalTitleDefenses()) * 2
	if defensePoints > 20 {
		defensePoints = 20
	}
	score += defensePoints

	score += f.Record.WinPct() * 25
	score += f.Record.KOPct() * 10

	longevity := float64(f.Record.TotalFights()) * 0.3
	if longevity > 12 {
		longevity = 12
	}
	score += longevity

	// Better peak rank, more points.
	if f.Ranking.PeakRank > 0 {
		rankPoints := float64(16 - f.Ranking.PeakRank)
		if rankPoints > 0 {
			score += rankPoints
		}
	}

	switch f.Potential.Tier {
	case fighter.TierGenerational:
		score += 10
	case fighter.TierElite:
		score += 5
	case fighter.TierJourneyman:
		score -= 5
	case fighter.TierClubLevel:
		score -= 10
	}

	return HOFVerdict{
		Qualifies:   score >= tun.StandardBar,
		FirstBallot: score >= tun.FirstBallotBar,
		Score:       score,
	}
}

// runHOFPass evaluates every retiree past the waiting period who is not yet
// inducted. Runs at the year boundary.
func (u *Universe) runHOFPass() []Event {
	var candidates []*fighter.Fighter
	for _, f := range u.Retired {
		if u.Hall.Contains(f.ID) {
			continue
		}
		if f.RetiredDate == nil ||
			u.Date.YearsSince(*f.RetiredDate) < u.tun.HallOfFame.MinRetiredYears {
			continue
		}
		candidates = append(candidates, f)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID.String() < candidates[j].ID.String()
	})

	var events []Event
	for _, f := range candidates {
		verdict := u.EvaluateHOF(f)
		if !verdict.Qualifies {
			continue
		}
		u.Hall.Inductees = append(u.Hall.Inductees, Induction{
			FighterID:   f.ID,
			Name:        f.Name,
			Date:        u.Date,
			Score:       verdict.Score,
			FirstBallot: verdict.FirstBallot,
		})
		events = append(events, HOFInductionEvent{
			FighterID:   f.ID,
			Name:        f.Name,
			Score:       verdict.Score,
			FirstBallot: verdict.FirstBallot,
		})
	}
	return events
}
