// Retirement decision model: hard triggers, the capped monthly probability,
// and post-career role assignment.
package fighter

import (
	"github.com/bstar/fight-fortress-sub001/internal/config"
	"github.com/bstar/fight-fortress-sub001/internal/entropy"
)

// RetirementModel decides when careers end. It is evaluated on a four-week
// cadence, never weekly; the probability is calibrated per month.
type RetirementModel struct {
	tun    *config.RetirementTuning
	roller *entropy.Roller
}

// NewRetirementModel creates the model from tuning.
func NewRetirementModel(tun *config.Tuning, roller *entropy.Roller) *RetirementModel {
	return &RetirementModel{tun: &tun.Retirement, roller: roller}
}

// CadenceWeeks returns how often the retirement pass runs.
func (m *RetirementModel) CadenceWeeks() int {
	if m.tun.CadenceWeeks <= 0 {
		return 4
	}
	return m.tun.CadenceWeeks
}

// ShouldConsider reports the hard triggers that make a fighter a retirement
// candidate, independent of any probability roll.
func (m *RetirementModel) ShouldConsider(f *Fighter) bool {
	switch {
	case f.Age >= 40:
		return true
	case f.Age >= 38 && f.ConsecutiveLosses >= 2:
		return true
	case f.Record.KOLosses >= 4:
		return true
	case f.Phase == PhaseDecline && f.Record.Losses > f.Record.Wins:
		return true
	case f.ConsecutiveLosses >= 4:
		return true
	}
	return false
}

// Probability returns the monthly retirement probability for a candidate,
// in [0, MonthlyCap]. High heart and ambition push the number down, so
// those fighters hang on longer.
func (m *RetirementModel) Probability(f *Fighter) float64 {
	p := 0.0
	switch {
	case f.Age >= 42:
		p += m.tun.Base42Plus
	case f.Age >= 40:
		p += m.tun.Base40
	case f.Age >= 38:
		p += m.tun.Base38
	case f.Age >= 36:
		p += m.tun.Base36
	}

	if f.ConsecutiveLosses >= 3 {
		p += m.tun.LossStreakBump
	}

	switch {
	case f.Record.KOLosses >= 5:
		p += m.tun.KOHeavyBump
	case f.Record.KOLosses >= 3:
		p += m.tun.KOModerateBump
	}

	p *= 1 - f.Heart()/m.tun.TraitScale
	p *= 1 - f.Personality.Ambition/m.tun.TraitScale

	return entropy.Clamp(p, 0, m.tun.MonthlyCap)
}

// Decide runs the single uniform draw for this evaluation window.
func (m *RetirementModel) Decide(f *Fighter) bool {
	return m.roller.Chance(m.Probability(f))
}

// Retire stamps the terminal phase and date, closes any belts still held,
// clears ranking and activity state, and assigns the one-time post-career
// role. The caller moves the fighter between collections.
func (m *RetirementModel) Retire(f *Fighter, date Date) {
	f.Phase = PhaseRetired
	d := date
	f.RetiredDate = &d
	for _, reign := range f.OpenTitles() {
		f.LoseTitle(reign.Org, date)
	}
	f.Ranking.CurrentRank = nil
	f.InjuryWeeks = 0
	f.SuspensionWeeks = 0
	f.PostCareer = m.assignPostCareerRole(f)
}

// assignPostCareerRole draws a role from aptitude weights derived from the
// fighter's ring craft, presence, and popularity. Most fighters simply walk
// away.
func (m *RetirementModel) assignPostCareerRole(f *Fighter) PostCareerRole {
	technical := f.Attributes.CategoryAvg(CatTechnical)
	ringIQ := f.Attributes.Get(CatMental, "ringIQ")
	composure := f.Attributes.Get(CatMental, "composure")

	weights := []float64{
		120, // RoleNone baseline
		technical*0.6 + ringIQ*0.4,
		composure*0.4 + f.Popularity*0.6,
		f.Popularity*0.5 + f.Personality.Ambition*0.5,
	}
	idx := m.roller.WeightedIndex(weights)
	if idx < 0 {
		return RoleNone
	}
	return PostCareerRole(idx)
}
