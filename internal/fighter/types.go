// Package fighter provides the fighter career data model, procedural
// generation, the attribute progression/decline model, and the retirement
// decision model.
package fighter

import (
	"github.com/google/uuid"
)

// ID is the stable unique identifier of a fighter.
type ID = uuid.UUID

func newID() ID {
	return uuid.New()
}

// ParseID parses the canonical string form of an ID.
func ParseID(s string) (ID, error) {
	return uuid.Parse(s)
}

// Phase is the fighter's current career stage. Transitions are
// one-directional except for lateral movement among Rising, Contender,
// Gatekeeper, and Decline. Retired is terminal.
type Phase uint8

const (
	PhaseYouth Phase = iota
	PhaseAmateur
	PhaseProDebut
	PhaseRising
	PhaseContender
	PhaseChampion
	PhaseGatekeeper
	PhaseDecline
	PhaseRetired
)

var phaseNames = [...]string{
	"Youth", "Amateur", "ProDebut", "Rising", "Contender",
	"Champion", "Gatekeeper", "Decline", "Retired",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "Unknown"
}

// Style is the fighter's in-ring archetype. Purely flavor plus generation
// bias: it shapes the base attribute spread, not the weekly models.
type Style uint8

const (
	StyleOutBoxer Style = iota
	StyleSwarmer
	StyleSlugger
	StyleBoxerPuncher
	StyleCounterPuncher
)

var styleNames = [...]string{
	"Out-Boxer", "Swarmer", "Slugger", "Boxer-Puncher", "Counter-Puncher",
}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "Unknown"
}

// TalentTier is the immutable rarity classification rolled at creation.
type TalentTier uint8

const (
	TierClubLevel TalentTier = iota
	TierJourneyman
	TierRegional
	TierNational
	TierWorldClass
	TierElite
	TierGenerational
)

var tierNames = [...]string{
	"ClubLevel", "Journeyman", "Regional", "National",
	"WorldClass", "Elite", "Generational",
}

func (t TalentTier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return "Unknown"
}

// Date is a point on the simulation calendar: week 1–52 of a year.
type Date struct {
	Week int `json:"week"`
	Year int `json:"year"`
}

// WeeksSince returns the number of weeks elapsed from other to d.
func (d Date) WeeksSince(other Date) int {
	return (d.Year-other.Year)*52 + (d.Week - other.Week)
}

// YearsSince returns full years elapsed from other to d.
func (d Date) YearsSince(other Date) int {
	return d.WeeksSince(other) / 52
}

// Record holds the professional fight record. Counters only move forward;
// corrections are out of scope.
type Record struct {
	Wins     int `json:"wins"`
	Losses   int `json:"losses"`
	Draws    int `json:"draws"`
	KOs      int `json:"kos"`
	KOLosses int `json:"ko_losses"`
}

// TotalFights returns wins + losses + draws.
func (r Record) TotalFights() int {
	return r.Wins + r.Losses + r.Draws
}

// WinPct returns the win percentage in [0,1], 0 for an empty record.
func (r Record) WinPct() float64 {
	total := r.TotalFights()
	if total == 0 {
		return 0
	}
	return float64(r.Wins) / float64(total)
}

// KOPct returns the share of wins that came by knockout.
func (r Record) KOPct() float64 {
	if r.Wins == 0 {
		return 0
	}
	return float64(r.KOs) / float64(r.Wins)
}

// RankingInfo tracks a fighter's standing in its division.
type RankingInfo struct {
	// CurrentRank is nil when unranked.
	CurrentRank *int `json:"current_rank,omitempty"`
	// PeakRank is the best rank ever held; 0 means never ranked.
	PeakRank    int `json:"peak_rank"`
	WeeksRanked int `json:"weeks_ranked"`
}

// TitleReign records one championship reign with one sanctioning body.
// LostDate nil means the title is currently held; a fighter has at most one
// open reign per organization.
type TitleReign struct {
	Org      string `json:"org"`
	WonDate  Date   `json:"won_date"`
	LostDate *Date  `json:"lost_date,omitempty"`
	Defenses int    `json:"defenses"`
}

// Potential is the rolled talent bundle. Immutable after generation.
type Potential struct {
	Tier            TalentTier `json:"tier"`
	Ceiling         float64    `json:"ceiling"`           // max permissible attribute value
	GrowthRate      float64    `json:"growth_rate"`       // growth multiplier
	PeakAgePhysical int        `json:"peak_age_physical"`
	PeakAgeMental   int        `json:"peak_age_mental"`
	Resilience      float64    `json:"resilience"` // 0–1, dampens decline
}

// Personality holds the immutable trait bundle, each on a 0–100 scale.
type Personality struct {
	Ambition      float64 `json:"ambition"`
	RiskTolerance float64 `json:"risk_tolerance"`
	Loyalty       float64 `json:"loyalty"`
	WorkEthic     float64 `json:"work_ethic"`
}

// PostCareerRole is the one-time role assigned on retirement.
type PostCareerRole uint8

const (
	RoleNone PostCareerRole = iota
	RoleTrainer
	RoleCommentator
	RolePromoter
)

var roleNames = [...]string{"None", "Trainer", "Commentator", "Promoter"}

func (r PostCareerRole) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "Unknown"
}

// Fighter is the per-fighter mutable career state, owned exclusively by the
// Universe aggregate.
type Fighter struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Division string `json:"division"`

	Age       int   `json:"age"`       // full sim-years
	BirthWeek int   `json:"birth_week"` // calendar week the age ticks over
	Phase     Phase `json:"phase"`
	Style     Style `json:"style"`

	Record  Record      `json:"record"`
	Ranking RankingInfo `json:"ranking"`
	Titles  []TitleReign `json:"titles,omitempty"`

	Potential   Potential    `json:"potential"`
	Personality Personality  `json:"personality"`

	Attributes     AttributeSet `json:"attributes"`
	BaseAttributes AttributeSet `json:"base_attributes"`

	Popularity float64 `json:"popularity"` // 0–100

	// Activity counters.
	FightsThisYear    int `json:"fights_this_year"`
	WeeksInactive     int `json:"weeks_inactive"`
	ConsecutiveWins   int `json:"consecutive_wins"`
	ConsecutiveLosses int `json:"consecutive_losses"`
	// RankedWins counts wins over ranked opponents, an entry gate some
	// sanctioning bodies care about.
	RankedWins int `json:"ranked_wins"`

	// Availability countdowns, in weeks.
	InjuryWeeks     int `json:"injury_weeks,omitempty"`
	SuspensionWeeks int `json:"suspension_weeks,omitempty"`

	CareerEarnings int64 `json:"career_earnings"`

	// FormSeed drives the per-fighter training-form noise curve.
	FormSeed int64 `json:"form_seed"`

	DebutDate   Date           `json:"debut_date"`
	RetiredDate *Date          `json:"retired_date,omitempty"`
	PostCareer  PostCareerRole `json:"post_career,omitempty"`
}

// OpenTitles returns the currently held title reigns.
func (f *Fighter) OpenTitles() []TitleReign {
	var open []TitleReign
	for _, t := range f.Titles {
		if t.LostDate == nil {
			open = append(open, t)
		}
	}
	return open
}

// HoldsTitle reports whether the fighter currently holds the given org's belt.
func (f *Fighter) HoldsTitle(org string) bool {
	for _, t := range f.Titles {
		if t.Org == org && t.LostDate == nil {
			return true
		}
	}
	return false
}

// WinTitle opens a reign for org. A second open reign for the same org is a
// no-op; at most one may be open at a time.
func (f *Fighter) WinTitle(org string, date Date) {
	if f.HoldsTitle(org) {
		return
	}
	f.Titles = append(f.Titles, TitleReign{Org: org, WonDate: date})
}

// LoseTitle closes the open reign for org, if any.
func (f *Fighter) LoseTitle(org string, date Date) {
	for i := range f.Titles {
		if f.Titles[i].Org == org && f.Titles[i].LostDate == nil {
			d := date
			f.Titles[i].LostDate = &d
			return
		}
	}
}

// DefendTitle increments the defense count of the open reign for org.
func (f *Fighter) DefendTitle(org string) {
	for i := range f.Titles {
		if f.Titles[i].Org == org && f.Titles[i].LostDate == nil {
			f.Titles[i].Defenses++
			return
		}
	}
}

// TotalTitleDefenses sums defenses across every reign.
func (f *Fighter) TotalTitleDefenses() int {
	n := 0
	for _, t := range f.Titles {
		n += t.Defenses
	}
	return n
}

// Active reports whether the fighter is part of the active roster.
func (f *Fighter) Active() bool {
	return f.Phase != PhaseRetired
}

// Available reports whether the fighter can be scheduled this week.
func (f *Fighter) Available() bool {
	return f.Active() && f.Phase >= PhaseProDebut &&
		f.InjuryWeeks == 0 && f.SuspensionWeeks == 0
}

// Heart returns the mental heart attribute, the grit signal the retirement
// model reads.
func (f *Fighter) Heart() float64 {
	return f.Attributes.Get(CatMental, "heart")
}
