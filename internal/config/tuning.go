package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning carries the model constants for progression, decline, retirement,
// population control, rankings, and Hall-of-Fame scoring. A YAML file can
// overlay any subset of these over the defaults.
type Tuning struct {
	Progression ProgressionTuning `yaml:"progression"`
	Decline     DeclineTuning     `yaml:"decline"`
	Retirement  RetirementTuning  `yaml:"retirement"`
	Population  PopulationTuning  `yaml:"population"`
	Rankings    RankingsTuning    `yaml:"rankings"`
	HallOfFame  HOFTuning         `yaml:"hall_of_fame"`
}

// ProgressionTuning controls pre-prime attribute growth.
type ProgressionTuning struct {
	// CeilingFactor bounds growth at base*CeilingFactor (also capped by the
	// fighter's rolled potential ceiling).
	CeilingFactor float64 `yaml:"ceiling_factor"`

	// CategoryRates are weekly base growth points per attribute category.
	CategoryRates map[string]float64 `yaml:"category_rates"`

	// Work ethic maps linearly onto [WorkEthicMin, WorkEthicMax].
	WorkEthicMin float64 `yaml:"work_ethic_min"`
	WorkEthicMax float64 `yaml:"work_ethic_max"`

	// PrimeWindowYears freezes attributes within ± this many years of a
	// peak age.
	PrimeWindowYears int `yaml:"prime_window_years"`

	// FormAmplitude scales the smooth training-form noise curve applied to
	// weekly gains (0 disables it).
	FormAmplitude float64 `yaml:"form_amplitude"`

	// ExperienceRate is weekly mental.experience gain per fight this year.
	ExperienceRate float64 `yaml:"experience_rate"`

	// IQTrickleFactor scales the ring-IQ gain that rides along with
	// experience growth.
	IQTrickleFactor float64 `yaml:"iq_trickle_factor"`
}

// DeclineTuning controls post-prime attribute erosion.
type DeclineTuning struct {
	// GraceYears past physical peak before decline starts.
	GraceYears int `yaml:"grace_years"`

	// MultiplierPerYear steepens decline per year past the grace window.
	MultiplierPerYear float64 `yaml:"multiplier_per_year"`

	// ResilienceDampening is the maximum decline reduction a fully
	// resilient fighter receives (rate is scaled by 1 - dampening*resilience).
	ResilienceDampening float64 `yaml:"resilience_dampening"`

	// BaseRates are weekly base decline points per attribute category.
	BaseRates map[string]float64 `yaml:"base_rates"`

	// PhysicalErosion is the extra weekly loss applied to the fast-twitch
	// skills (hand/foot speed, reflexes, cardio, recovery).
	PhysicalErosion float64 `yaml:"physical_erosion"`

	// Visible-decline narrative event gating.
	VisibleDeclineChance   float64 `yaml:"visible_decline_chance"`
	VisibleDeclineMinYears int     `yaml:"visible_decline_min_years"`
	VisibleDeclineMinDrop  float64 `yaml:"visible_decline_min_drop"`
}

// RetirementTuning controls the retirement decision model.
type RetirementTuning struct {
	CadenceWeeks int     `yaml:"cadence_weeks"`
	MonthlyCap   float64 `yaml:"monthly_cap"`

	// Age-banded base increments.
	Base42Plus float64 `yaml:"base_42_plus"`
	Base40     float64 `yaml:"base_40"`
	Base38     float64 `yaml:"base_38"`
	Base36     float64 `yaml:"base_36"`

	LossStreakBump float64 `yaml:"loss_streak_bump"`
	KOHeavyBump    float64 `yaml:"ko_heavy_bump"`
	KOModerateBump float64 `yaml:"ko_moderate_bump"`

	// Heart and ambition each scale the probability by (1 - trait/TraitScale).
	TraitScale float64 `yaml:"trait_scale"`
}

// PopulationTuning controls prospect replenishment.
type PopulationTuning struct {
	HighDeficitProb float64 `yaml:"high_deficit_prob"`
	RampBase        float64 `yaml:"ramp_base"`
	RampSpan        float64 `yaml:"ramp_span"`
	SurplusProb     float64 `yaml:"surplus_prob"`
	FloorProb       float64 `yaml:"floor_prob"`
	MaxBatch        int     `yaml:"max_batch"`
	ProspectAgeMin  int     `yaml:"prospect_age_min"`
	ProspectAgeMax  int     `yaml:"prospect_age_max"`
}

// RankingsTuning controls the activity signals in ranking scores.
type RankingsTuning struct {
	InactivityGraceWeeks   int     `yaml:"inactivity_grace_weeks"`
	InactivityPenaltyPerWk float64 `yaml:"inactivity_penalty_per_week"`
	RecentActivityBonus    float64 `yaml:"recent_activity_bonus"`
	StreakBonusPerWin      float64 `yaml:"streak_bonus_per_win"`
	StreakBonusCap         float64 `yaml:"streak_bonus_cap"`
}

// HOFTuning controls Hall-of-Fame eligibility and thresholds.
type HOFTuning struct {
	MinRetiredYears int     `yaml:"min_retired_years"`
	MinFights       int     `yaml:"min_fights"`
	MinWins         int     `yaml:"min_wins"`
	MinWinPct       float64 `yaml:"min_win_pct"`
	FirstBallotBar  float64 `yaml:"first_ballot_bar"`
	StandardBar     float64 `yaml:"standard_bar"`
}

// DefaultTuning returns the baseline constants. These reproduce the
// qualitative behavior the simulation is validated against; exact values
// are expected to be re-tuned.
func DefaultTuning() *Tuning {
	return &Tuning{
		Progression: ProgressionTuning{
			CeilingFactor: 1.15,
			CategoryRates: map[string]float64{
				"power":     0.020,
				"speed":     0.022,
				"stamina":   0.026,
				"defense":   0.024,
				"offense":   0.024,
				"technical": 0.028,
				"mental":    0.016,
			},
			WorkEthicMin:     0.8,
			WorkEthicMax:     1.2,
			PrimeWindowYears: 2,
			FormAmplitude:    0.15,
			ExperienceRate:   0.04,
			IQTrickleFactor:  0.3,
		},
		Decline: DeclineTuning{
			GraceYears:          3,
			MultiplierPerYear:   0.1,
			ResilienceDampening: 0.4,
			// Power is the last thing to go; it erodes far slower than the
			// fast-twitch categories.
			BaseRates: map[string]float64{
				"power":     0.005,
				"speed":     0.022,
				"stamina":   0.020,
				"defense":   0.012,
				"offense":   0.014,
				"technical": 0.006,
				"mental":    0.0,
			},
			PhysicalErosion:        0.008,
			VisibleDeclineChance:   0.05,
			VisibleDeclineMinYears: 3,
			VisibleDeclineMinDrop:  0.08,
		},
		Retirement: RetirementTuning{
			CadenceWeeks:   4,
			MonthlyCap:     0.08,
			Base42Plus:     0.04,
			Base40:         0.02,
			Base38:         0.01,
			Base36:         0.005,
			LossStreakBump: 0.01,
			KOHeavyBump:    0.02,
			KOModerateBump: 0.005,
			TraitScale:     250,
		},
		Population: PopulationTuning{
			HighDeficitProb: 0.8,
			RampBase:        0.3,
			RampSpan:        0.4,
			SurplusProb:     0.15,
			FloorProb:       0.05,
			MaxBatch:        12,
			ProspectAgeMin:  18,
			ProspectAgeMax:  23,
		},
		Rankings: RankingsTuning{
			InactivityGraceWeeks:   26,
			InactivityPenaltyPerWk: 0.4,
			RecentActivityBonus:    4.0,
			StreakBonusPerWin:      1.5,
			StreakBonusCap:         9.0,
		},
		HallOfFame: HOFTuning{
			MinRetiredYears: 3,
			MinFights:       20,
			MinWins:         15,
			MinWinPct:       0.55,
			FirstBallotBar:  85,
			StandardBar:     65,
		},
	}
}

// LoadTuning returns the defaults overlaid with values from a YAML file.
// An empty path returns the defaults unchanged.
func LoadTuning(path string) (*Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tuning file %s: %w", path, err)
	}
	return t, nil
}
