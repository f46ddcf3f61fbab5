// Weekly attribute progression and decline.
package fighter

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/bstar/fight-fortress-sub001/internal/config"
	"github.com/bstar/fight-fortress-sub001/internal/entropy"
)

// GrowthStage classifies a fighter's position on the career arc for one
// weekly tick.
type GrowthStage uint8

const (
	StageGrowing GrowthStage = iota
	StageStable
	StageDeclining
)

var stageNames = [...]string{"Growing", "Stable", "Declining"}

func (s GrowthStage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "Unknown"
}

// AdvanceOutcome reports what one Advance call did, for event emission.
type AdvanceOutcome struct {
	Stage GrowthStage
	// TotalDecline is the summed attribute loss this week, 0 unless declining.
	TotalDecline float64
	// VisibleDecline marks the rate-limited narrative event: the fighter is
	// well past peak and slipped noticeably this week. No mechanical effect.
	VisibleDecline bool
}

// ProgressionModel applies weekly attribute growth, prime stability, and
// post-prime decline. One instance per universe; it owns the coherent noise
// field that drives per-fighter training form.
type ProgressionModel struct {
	prog   *config.ProgressionTuning
	dec    *config.DeclineTuning
	noise  opensimplex.Noise
	roller *entropy.Roller
}

// NewProgressionModel creates the model from tuning. The seed feeds the
// training-form noise field, kept separate from the universe roller so form
// curves stay stable under unrelated random draws.
func NewProgressionModel(tun *config.Tuning, seed int64, roller *entropy.Roller) *ProgressionModel {
	return &ProgressionModel{
		prog:   &tun.Progression,
		dec:    &tun.Decline,
		noise:  opensimplex.NewNormalized(seed),
		roller: roller,
	}
}

// Classify maps age against the fighter's peak-age windows. A fighter inside
// either prime window is Stable; the tie at a window boundary always
// favors stability over growth or decline.
func (m *ProgressionModel) Classify(f *Fighter) GrowthStage {
	w := m.prog.PrimeWindowYears
	if abs(f.Age-f.Potential.PeakAgePhysical) <= w ||
		abs(f.Age-f.Potential.PeakAgeMental) <= w {
		return StageStable
	}
	if f.Age > f.Potential.PeakAgePhysical+m.dec.GraceYears {
		return StageDeclining
	}
	if f.Age < f.Potential.PeakAgePhysical {
		return StageGrowing
	}
	return StageStable
}

// Advance applies one week of attribute change in place. Experience growth
// from ring time runs regardless of stage. Every mutated value is clamped
// into [AttrMin, AttrMax].
func (m *ProgressionModel) Advance(f *Fighter, absWeek int) AdvanceOutcome {
	out := AdvanceOutcome{Stage: m.Classify(f)}

	switch out.Stage {
	case StageGrowing:
		m.applyGrowth(f, absWeek)
	case StageDeclining:
		out.TotalDecline = m.applyDecline(f)
		yearsPast := f.Age - f.Potential.PeakAgePhysical
		if yearsPast >= m.dec.VisibleDeclineMinYears &&
			out.TotalDecline >= m.dec.VisibleDeclineMinDrop &&
			m.roller.Chance(m.dec.VisibleDeclineChance) {
			out.VisibleDecline = true
		}
	}

	m.applyExperience(f)
	f.Attributes.ClampAll()
	return out
}

// applyGrowth raises each attribute toward its effective ceiling. Growth is
// monotone: the form factor stays positive and values never pass the ceiling.
func (m *ProgressionModel) applyGrowth(f *Fighter, absWeek int) {
	workMod := m.prog.WorkEthicMin +
		(f.Personality.WorkEthic/100)*(m.prog.WorkEthicMax-m.prog.WorkEthicMin)
	form := m.formFactor(f, absWeek)

	for _, cat := range Categories {
		rate := m.prog.CategoryRates[cat]
		if rate <= 0 {
			continue
		}
		for skill, v := range f.Attributes[cat] {
			ceiling := m.EffectiveCeiling(f, cat, skill)
			if v >= ceiling {
				continue
			}
			diminishing := 1 - v/100
			delta := rate * f.Potential.GrowthRate * workMod * diminishing * form
			v += delta
			if v > ceiling {
				v = ceiling
			}
			f.Attributes[cat][skill] = v
		}
	}
}

// EffectiveCeiling is the growth bound for one skill: the rolled potential
// ceiling or 115% of the creation-time base, whichever is lower, capped at
// the attribute maximum.
func (m *ProgressionModel) EffectiveCeiling(f *Fighter, cat, skill string) float64 {
	ceiling := f.BaseAttributes.Get(cat, skill) * m.prog.CeilingFactor
	if f.Potential.Ceiling < ceiling {
		ceiling = f.Potential.Ceiling
	}
	if ceiling > AttrMax {
		ceiling = AttrMax
	}
	return ceiling
}

// applyDecline erodes attributes past the grace window, floored at AttrMin,
// and returns the total loss.
func (m *ProgressionModel) applyDecline(f *Fighter) float64 {
	yearsPast := float64(f.Age - f.Potential.PeakAgePhysical)
	mult := 1 + m.dec.MultiplierPerYear*yearsPast
	resMod := 1 - m.dec.ResilienceDampening*f.Potential.Resilience

	total := 0.0
	for _, cat := range Categories {
		base := m.dec.BaseRates[cat]
		for skill, v := range f.Attributes[cat] {
			loss := base * mult * resMod
			if IsPhysicalSkill(cat, skill) {
				// Fast-twitch skills erode on top of the category rate.
				loss += m.dec.PhysicalErosion * mult * resMod
			}
			if loss <= 0 {
				continue
			}
			next := v - loss
			if next < AttrMin {
				next = AttrMin
			}
			total += v - next
			f.Attributes[cat][skill] = next
		}
	}
	return total
}

// applyExperience converts ring time into mental.experience and a trickle
// into the ring-craft skills, scaled by how seasoned the fighter already is.
func (m *ProgressionModel) applyExperience(f *Fighter) {
	if f.FightsThisYear <= 0 {
		return
	}
	gain := m.prog.ExperienceRate * float64(f.FightsThisYear)
	exp := f.Attributes.Get(CatMental, "experience")
	f.Attributes.Set(CatMental, "experience", exp+gain)

	trickle := gain * m.prog.IQTrickleFactor * (exp / AttrMax)
	f.Attributes.Add(CatMental, "ringIQ", trickle)
	f.Attributes.Add(CatTechnical, "ringGeneralship", trickle)
}

// formFactor samples the fighter's smooth training-form curve for this week.
// Values stay within 1 ± FormAmplitude.
func (m *ProgressionModel) formFactor(f *Fighter, absWeek int) float64 {
	if m.prog.FormAmplitude <= 0 {
		return 1
	}
	// Normalized noise is in [0,1]; recenter to [-1,1].
	x := float64(f.FormSeed % 100000)
	n := m.noise.Eval2(x, float64(absWeek)/26)*2 - 1
	return 1 + m.prog.FormAmplitude*n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
