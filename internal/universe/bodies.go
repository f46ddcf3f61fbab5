// Sanctioning bodies: per-body ranking passes and mandatory-defense timers.
package universe

import (
	"sort"

	"github.com/bstar/fight-fortress-sub001/internal/config"
	"github.com/bstar/fight-fortress-sub001/internal/fighter"
)

// BodyProfile is one sanctioning body's weighting and politics: a distinct
// weight vector over the shared ranking signals, entry gates, and its own
// mandatory-defense clock.
type BodyProfile struct {
	Code string
	Name string

	// Score weights.
	WinPctWeight     float64
	QualityWeight    float64
	KOWeight         float64
	ActivityBonus    float64
	StreakWeight     float64
	PopularityWeight float64

	// Entry gates.
	MinWins   int
	MinFights int
	MaxLosses int
	// RequireRankedWin applies RankedWinPenalty instead of exclusion when
	// the fighter has never beaten a ranked opponent.
	RequireRankedWin bool
	RankedWinPenalty float64

	// Body-specific inactivity handling.
	InactivityToleranceWeeks int
	InactivityPenaltyPerWeek float64

	// MandatoryAfterWeeks is how long a champion may go without a defense
	// before the body calls the mandatory.
	MandatoryAfterWeeks int
}

// SanctioningBody is one body's live state: rankings per division and the
// weeks-since-defense clock per division champion.
type SanctioningBody struct {
	Profile BodyProfile `json:"-"`

	// Rankings holds the body's top contenders per division, rank 1 first.
	Rankings map[string][]fighter.ID `json:"rankings"`

	// WeeksSinceDefense counts per division since the champion last
	// defended. Reset on any title fight in that division.
	WeeksSinceDefense map[string]int `json:"weeksSinceDefense"`

	// MandatoryCalled suppresses repeat MANDATORY_DUE events until the
	// clock resets.
	MandatoryCalled map[string]bool `json:"mandatoryCalled"`
}

func newBody(p BodyProfile) *SanctioningBody {
	return &SanctioningBody{
		Profile:           p,
		Rankings:          make(map[string][]fighter.ID),
		WeeksSinceDefense: make(map[string]int),
		MandatoryCalled:   make(map[string]bool),
	}
}

// defaultBodies builds the four bodies. Each gets a different personality:
// one rewards activity, one popularity, one is strict on entry, one favors
// punchers.
func defaultBodies(rt *config.RankingsTuning) []*SanctioningBody {
	return []*SanctioningBody{
		newBody(BodyProfile{
			Code: "WBA", Name: "World Boxing Association",
			WinPctWeight: 45, QualityWeight: 1.0, KOWeight: 12,
			ActivityBonus: 6, StreakWeight: 1.5,
			MinWins: 8, MinFights: 10, MaxLosses: 10,
			InactivityToleranceWeeks: rt.InactivityGraceWeeks,
			InactivityPenaltyPerWeek: 0.5,
			MandatoryAfterWeeks:      40,
		}),
		newBody(BodyProfile{
			Code: "WBC", Name: "World Boxing Council",
			WinPctWeight: 40, QualityWeight: 0.8, KOWeight: 10,
			ActivityBonus: 4, StreakWeight: 1.2, PopularityWeight: 0.25,
			MinWins: 10, MinFights: 12, MaxLosses: 6,
			InactivityToleranceWeeks: rt.InactivityGraceWeeks - 6,
			InactivityPenaltyPerWeek: 0.7,
			MandatoryAfterWeeks:      52,
		}),
		newBody(BodyProfile{
			Code: "IBF", Name: "International Boxing Federation",
			WinPctWeight: 50, QualityWeight: 1.2, KOWeight: 8,
			ActivityBonus: 5, StreakWeight: 1.0,
			MinWins: 12, MinFights: 15, MaxLosses: 4,
			RequireRankedWin: true, RankedWinPenalty: 15,
			InactivityToleranceWeeks: rt.InactivityGraceWeeks,
			InactivityPenaltyPerWeek: 0.6,
			MandatoryAfterWeeks:      36,
		}),
		newBody(BodyProfile{
			Code: "WBO", Name: "World Boxing Organization",
			WinPctWeight: 42, QualityWeight: 0.9, KOWeight: 16,
			ActivityBonus: 5, StreakWeight: 1.4, PopularityWeight: 0.15,
			MinWins: 8, MinFights: 10, MaxLosses: 8,
			InactivityToleranceWeeks: rt.InactivityGraceWeeks + 4,
			InactivityPenaltyPerWeek: 0.4,
			MandatoryAfterWeeks:      48,
		}),
	}
}

// BodyScore computes one body's score for a fighter. The second return is
// false when the fighter fails the body's entry gates; a gated fighter never
// appears in the table, while an eligible one stays ranked no matter how far
// penalties drag the score down.
func (b *SanctioningBody) BodyScore(f *fighter.Fighter) (float64, bool) {
	p := b.Profile
	if f.Record.Wins < p.MinWins ||
		f.Record.TotalFights() < p.MinFights ||
		f.Record.Losses > p.MaxLosses {
		return 0, false
	}

	score := f.Record.WinPct() * p.WinPctWeight

	quality := float64(f.Record.Wins)
	if quality > 20 {
		quality = 20
	}
	score += quality * p.QualityWeight

	score += f.Record.KOPct() * p.KOWeight

	if f.FightsThisYear > 0 {
		score += p.ActivityBonus
	}

	score += float64(f.ConsecutiveWins) * p.StreakWeight
	score += f.Popularity * p.PopularityWeight

	if p.RequireRankedWin && f.RankedWins == 0 {
		score -= p.RankedWinPenalty
	}

	if f.WeeksInactive > p.InactivityToleranceWeeks {
		score -= float64(f.WeeksInactive-p.InactivityToleranceWeeks) * p.InactivityPenaltyPerWeek
	}

	return score, true
}

// UpdateBodyRankings recomputes one body's table for a division and returns
// the ranked IDs, best first. Ineligible fighters are excluded entirely.
func (u *Universe) UpdateBodyRankings(bodyCode, division string) []fighter.ID {
	body := u.Body(bodyCode)
	div := u.Divisions[division]
	if body == nil || div == nil {
		return nil
	}

	type scored struct {
		id    fighter.ID
		score float64
	}
	var pool []scored
	for _, f := range u.DivisionRoster(division) {
		if div.ChampionID != nil && *div.ChampionID == f.ID {
			continue
		}
		s, ok := body.BodyScore(f)
		if !ok {
			continue
		}
		pool = append(pool, scored{f.ID, s})
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].score != pool[j].score {
			return pool[i].score > pool[j].score
		}
		return pool[i].id.String() < pool[j].id.String()
	})

	limit := TopContenders
	if len(pool) < limit {
		limit = len(pool)
	}
	ranked := make([]fighter.ID, 0, limit)
	for _, s := range pool[:limit] {
		ranked = append(ranked, s.id)
	}
	body.Rankings[division] = ranked
	return ranked
}

// Body returns the sanctioning body by code, nil when unknown.
func (u *Universe) Body(code string) *SanctioningBody {
	for _, b := range u.Bodies {
		if b.Profile.Code == code {
			return b
		}
	}
	return nil
}

// updateBodyRankings runs the periodic per-body pass: recompute every
// body/division table and surface mandatory-due calls whose clocks expired.
func (u *Universe) updateBodyRankings() []Event {
	var events []Event
	for _, body := range u.Bodies {
		for _, division := range DivisionNames {
			u.UpdateBodyRankings(body.Profile.Code, division)

			div := u.Divisions[division]
			if div == nil || div.ChampionID == nil {
				body.WeeksSinceDefense[division] = 0
				body.MandatoryCalled[division] = false
				continue
			}
			if body.WeeksSinceDefense[division] < body.Profile.MandatoryAfterWeeks {
				continue
			}
			if body.MandatoryCalled[division] {
				continue
			}

			champ := u.Active[*div.ChampionID]
			table := body.Rankings[division]
			if champ == nil || len(table) == 0 {
				continue
			}
			challenger := u.Active[table[0]]
			if challenger == nil {
				continue
			}
			body.MandatoryCalled[division] = true
			events = append(events, MandatoryDueEvent{
				Org:        body.Profile.Code,
				Division:   division,
				ChampionID: champ.ID,
				Champion:   champ.Name,
				Challenger: challenger.Name,
			})
		}
	}
	return events
}

// tickDefenseClocks advances every body's weeks-since-defense counters for
// divisions with a sitting champion.
func (u *Universe) tickDefenseClocks() {
	for _, body := range u.Bodies {
		for _, division := range DivisionNames {
			div := u.Divisions[division]
			if div != nil && div.ChampionID != nil {
				body.WeeksSinceDefense[division]++
			}
		}
	}
}

// resetDefenseClock clears a division's defense clocks after a title fight.
func (u *Universe) resetDefenseClock(division string) {
	for _, body := range u.Bodies {
		body.WeeksSinceDefense[division] = 0
		body.MandatoryCalled[division] = false
	}
}
