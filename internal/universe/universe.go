// The Universe aggregate is the exclusive owner of all fighter career records,
// divisions, sanctioning bodies, and history. Everything is mutated through
// the weekly pipeline; there is no package-level state, so multiple
// universes can run side by side in one process.
package universe

import (
	"sort"
	"sync"

	"github.com/bstar/fight-fortress-sub001/internal/config"
	"github.com/bstar/fight-fortress-sub001/internal/entropy"
	"github.com/bstar/fight-fortress-sub001/internal/fighter"
)

// DivisionNames is the fixed set of weight divisions.
var DivisionNames = []string{
	"Flyweight", "Bantamweight", "Featherweight", "Lightweight",
	"Welterweight", "Middleweight", "Light Heavyweight", "Heavyweight",
}

// FightCard is one scheduled bout, produced by the matchmaking collaborator.
// Matchmaking guarantees each fighter appears on at most one card per week.
type FightCard struct {
	FighterA fighter.ID
	FighterB fighter.ID
	Division string
	Rounds   int
	// Title marks a championship bout; the champion's open belts are all on
	// the line.
	Title       bool
	IsMandatory bool
}

// FightStats are one fighter's numbers from a bout.
type FightStats struct {
	Thrown     int `json:"thrown"`
	Landed     int `json:"landed"`
	Knockdowns int `json:"knockdowns"`
}

// Method is how a fight ended.
type Method string

const (
	MethodKO   Method = "KO"
	MethodTKO  Method = "TKO"
	MethodUD   Method = "UD"
	MethodSD   Method = "SD"
	MethodMD   Method = "MD"
	MethodDraw Method = "Draw"
)

// FightResult is the combat collaborator's verdict on one card.
type FightResult struct {
	WinnerID fighter.ID
	LoserID  fighter.ID
	Draw     bool
	Method   Method
	Round    int
	StatsA   FightStats
	StatsB   FightStats
	IsUpset  bool
	// InjuryWeeks sidelines the loser after a brutal stoppage.
	InjuryWeeks int
}

// Bout pairs a card with snapshots of its two fighters for resolution.
type Bout struct {
	Card FightCard
	A    *fighter.Fighter
	B    *fighter.Fighter
}

// Purse is one payout from the economics collaborator.
type Purse struct {
	FighterID fighter.ID
	Amount    int64
}

// Matchmaker schedules the week's fight cards from the active roster.
type Matchmaker interface {
	GenerateWeeklyFights(roster []*fighter.Fighter, date fighter.Date) ([]FightCard, error)
}

// CombatResolver resolves scheduled bouts. ResolveBatch is order-preserving
// and may fan the independent fights out in parallel; the orchestrator
// awaits the whole batch before any later stage runs.
type CombatResolver interface {
	Resolve(bout Bout) (FightResult, error)
	ResolveBatch(bouts []Bout) ([]FightResult, error)
}

// ProspectGenerator creates fully populated fighter records.
// *fighter.Generator satisfies it.
type ProspectGenerator interface {
	Generate(currentDate fighter.Date, age int) *fighter.Fighter
}

// Economist runs the weekly financial pass. Only its purse list feeds back
// into the core, as earnings bookkeeping and events.
type Economist interface {
	ProcessWeek(roster []*fighter.Fighter, results []ResolvedFight, date fighter.Date) ([]Purse, error)
}

// ResolvedFight is a card with its applied result, as handed to economics.
type ResolvedFight struct {
	Card   FightCard
	Result FightResult
}

// Division is one weight class: its champion, mandatory challenger, and
// ranked contender table.
type Division struct {
	Name       string
	ChampionID *fighter.ID
	// MandatoryID is the contender the champion owes a defense.
	MandatoryID *fighter.ID
	// Contenders holds the ranked top fighters, index 0 = rank 1. The
	// champion is never listed.
	Contenders []fighter.ID
}

// RetirementRecord is the historical entry appended when a career ends.
type RetirementRecord struct {
	FighterID   fighter.ID     `json:"fighter_id"`
	Name        string         `json:"name"`
	Date        fighter.Date   `json:"date"`
	FinalRecord fighter.Record `json:"final_record"`
	TitleReigns int            `json:"title_reigns"`
	PeakRank    int            `json:"peak_rank"`
	Role        fighter.PostCareerRole `json:"role"`
}

// Universe owns the complete simulation state.
type Universe struct {
	// mu guards all mutable state. ProcessWeek holds the write lock for the
	// whole tick; observers take RLock around any walk of the live maps.
	mu sync.RWMutex

	Date    fighter.Date
	AbsWeek int // weeks since simulation start, drives form curves

	Active  map[fighter.ID]*fighter.Fighter
	Retired map[fighter.ID]*fighter.Fighter

	Divisions map[string]*Division
	Bodies    []*SanctioningBody
	Hall      *HallOfFame
	History   []RetirementRecord

	// Events from recent weeks, trimmed to keep memory bounded.
	Events []Event

	// weekResults collects the current week's resolved fights for the
	// economics stage, cleared at the start of stage 4.
	weekResults []ResolvedFight

	tun         *config.Tuning
	roller      *entropy.Roller
	progression *fighter.ProgressionModel
	retirement  *fighter.RetirementModel
	population  *PopulationController

	matchmaker Matchmaker
	combat     CombatResolver
	generator  ProspectGenerator
	economist  Economist
}

// New creates an empty universe starting at week 1 of year 1.
func New(tun *config.Tuning, seed int64, target, variance int) *Universe {
	roller := entropy.NewRoller(seed)
	u := &Universe{
		Date:        fighter.Date{Week: 1, Year: 1},
		Active:      make(map[fighter.ID]*fighter.Fighter),
		Retired:     make(map[fighter.ID]*fighter.Fighter),
		Divisions:   make(map[string]*Division, len(DivisionNames)),
		Hall:        &HallOfFame{},
		tun:         tun,
		roller:      roller,
		progression: fighter.NewProgressionModel(tun, seed+1, roller),
		retirement:  fighter.NewRetirementModel(tun, roller),
		population:  NewPopulationController(&tun.Population, target, variance, roller),
	}
	for _, name := range DivisionNames {
		u.Divisions[name] = &Division{Name: name}
	}
	u.Bodies = defaultBodies(&tun.Rankings)
	return u
}

// RLock takes the read lock so a caller can inspect live state while the
// runner keeps ticking. Pair with RUnlock.
func (u *Universe) RLock() { u.mu.RLock() }

// RUnlock releases the read lock.
func (u *Universe) RUnlock() { u.mu.RUnlock() }

// SetCollaborators wires the external services the weekly pipeline calls.
// Any of them may be nil; the corresponding stage then contributes zero
// events.
func (u *Universe) SetCollaborators(m Matchmaker, c CombatResolver, g ProspectGenerator, e Economist) {
	u.matchmaker = m
	u.combat = c
	u.generator = g
	u.economist = e
}

// AddFighter registers a fighter into the active roster.
func (u *Universe) AddFighter(f *fighter.Fighter) {
	if f == nil || f.Phase == fighter.PhaseRetired {
		return
	}
	u.Active[f.ID] = f
}

// Fighter looks a fighter up in either collection.
func (u *Universe) Fighter(id fighter.ID) *fighter.Fighter {
	if f, ok := u.Active[id]; ok {
		return f
	}
	return u.Retired[id]
}

// ActiveCount returns the size of the active roster.
func (u *Universe) ActiveCount() int {
	return len(u.Active)
}

// ActiveRoster returns the active fighters sorted by ID for deterministic
// iteration. Map order would otherwise leak randomness into the models.
func (u *Universe) ActiveRoster() []*fighter.Fighter {
	roster := make([]*fighter.Fighter, 0, len(u.Active))
	for _, f := range u.Active {
		roster = append(roster, f)
	}
	sort.Slice(roster, func(i, j int) bool {
		return roster[i].ID.String() < roster[j].ID.String()
	})
	return roster
}

// DivisionRoster returns the active fighters of one division, ID-sorted.
func (u *Universe) DivisionRoster(division string) []*fighter.Fighter {
	var roster []*fighter.Fighter
	for _, f := range u.Active {
		if f.Division == division {
			roster = append(roster, f)
		}
	}
	sort.Slice(roster, func(i, j int) bool {
		return roster[i].ID.String() < roster[j].ID.String()
	})
	return roster
}

// retire moves a fighter to the retired collection and appends the
// historical record. Never reversed.
func (u *Universe) retire(f *fighter.Fighter) {
	u.retirement.Retire(f, u.Date)
	delete(u.Active, f.ID)
	u.Retired[f.ID] = f

	div := u.Divisions[f.Division]
	if div != nil {
		if div.ChampionID != nil && *div.ChampionID == f.ID {
			div.ChampionID = nil
		}
		if div.MandatoryID != nil && *div.MandatoryID == f.ID {
			div.MandatoryID = nil
		}
	}

	u.History = append(u.History, RetirementRecord{
		FighterID:   f.ID,
		Name:        f.Name,
		Date:        u.Date,
		FinalRecord: f.Record,
		TitleReigns: len(f.Titles),
		PeakRank:    f.Ranking.PeakRank,
		Role:        f.PostCareer,
	})
}
