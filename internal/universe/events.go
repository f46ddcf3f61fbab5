// Package universe holds the Universe aggregate and the weekly tick
// orchestrator, together with rankings, sanctioning bodies, population
// control, and Hall-of-Fame evaluation.
package universe

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/bstar/fight-fortress-sub001/internal/fighter"
)

// EventKind tags the closed set of domain event variants.
type EventKind string

const (
	KindFightResult    EventKind = "FIGHT_RESULT"
	KindTitleChange    EventKind = "TITLE_CHANGE"
	KindUpset          EventKind = "UPSET"
	KindRetirement     EventKind = "RETIREMENT"
	KindNewProspect    EventKind = "NEW_PROSPECT"
	KindVisibleDecline EventKind = "VISIBLE_DECLINE"
	KindHOFInduction   EventKind = "HOF_INDUCTION"
	KindRankingChange  EventKind = "RANKING_CHANGE"
	KindMandatoryDue   EventKind = "MANDATORY_DUE"
	KindPurse          EventKind = "PURSE"
	KindPhaseChange    EventKind = "PHASE_CHANGE"
)

// Event is one notable occurrence in the universe. Each variant carries only
// the fields relevant to its kind; consumers switch on the concrete type (or
// Kind) instead of probing optional fields.
type Event interface {
	Kind() EventKind
	Message() string
}

// FightResultEvent reports a resolved bout.
type FightResultEvent struct {
	Card       FightCard
	Result     FightResult
	WinnerName string
	LoserName  string
}

func (FightResultEvent) Kind() EventKind { return KindFightResult }
func (e FightResultEvent) Message() string {
	if e.Result.Draw {
		return fmt.Sprintf("%s and %s fight to a draw over %d rounds",
			e.WinnerName, e.LoserName, e.Card.Rounds)
	}
	return fmt.Sprintf("%s defeats %s by %s in round %d",
		e.WinnerName, e.LoserName, e.Result.Method, e.Result.Round)
}

// TitleChangeEvent reports a belt changing hands.
type TitleChangeEvent struct {
	Org      string
	Division string
	NewChamp fighter.ID
	OldChamp fighter.ID
	NewName  string
	OldName  string
}

func (TitleChangeEvent) Kind() EventKind { return KindTitleChange }
func (e TitleChangeEvent) Message() string {
	if e.OldName == "" {
		return fmt.Sprintf("%s claims the vacant %s %s title", e.NewName, e.Org, e.Division)
	}
	return fmt.Sprintf("%s takes the %s %s title from %s",
		e.NewName, e.Org, e.Division, e.OldName)
}

// UpsetEvent marks a result the combat model flagged as an upset.
type UpsetEvent struct {
	WinnerID   fighter.ID
	WinnerName string
	LoserName  string
	Division   string
}

func (UpsetEvent) Kind() EventKind { return KindUpset }
func (e UpsetEvent) Message() string {
	return fmt.Sprintf("Upset in the %s division: %s shocks %s",
		e.Division, e.WinnerName, e.LoserName)
}

// RetirementEvent reports a career ending.
type RetirementEvent struct {
	FighterID   fighter.ID
	Name        string
	Age         int
	FinalRecord fighter.Record
	TitleCount  int
	PeakRank    int
	Role        fighter.PostCareerRole
}

func (RetirementEvent) Kind() EventKind { return KindRetirement }
func (e RetirementEvent) Message() string {
	msg := fmt.Sprintf("%s retires at %d with a record of %d-%d-%d",
		e.Name, e.Age, e.FinalRecord.Wins, e.FinalRecord.Losses, e.FinalRecord.Draws)
	if e.Role != fighter.RoleNone {
		msg += fmt.Sprintf(", moving on as a %s", e.Role)
	}
	return msg
}

// NewProspectEvent reports a prospect turning professional.
type NewProspectEvent struct {
	FighterID fighter.ID
	Name      string
	Age       int
	Division  string
	Tier      fighter.TalentTier
}

func (NewProspectEvent) Kind() EventKind { return KindNewProspect }
func (e NewProspectEvent) Message() string {
	return fmt.Sprintf("%s (%d) turns professional in the %s division",
		e.Name, e.Age, e.Division)
}

// VisibleDeclineEvent is the narrative-only signal that a fighter is
// visibly slipping. No mechanical effect.
type VisibleDeclineEvent struct {
	FighterID fighter.ID
	Name      string
	Age       int
	Drop      float64
}

func (VisibleDeclineEvent) Kind() EventKind { return KindVisibleDecline }
func (e VisibleDeclineEvent) Message() string {
	return fmt.Sprintf("%s (%d) is showing clear signs of decline", e.Name, e.Age)
}

// HOFInductionEvent reports a Hall-of-Fame induction.
type HOFInductionEvent struct {
	FighterID   fighter.ID
	Name        string
	Score       float64
	FirstBallot bool
}

func (HOFInductionEvent) Kind() EventKind { return KindHOFInduction }
func (e HOFInductionEvent) Message() string {
	if e.FirstBallot {
		return fmt.Sprintf("%s enters the Hall of Fame on the first ballot", e.Name)
	}
	return fmt.Sprintf("%s is inducted into the Hall of Fame", e.Name)
}

// RankingChangeEvent reports a notable move in a division's rankings.
type RankingChangeEvent struct {
	Division  string
	FighterID fighter.ID
	Name      string
	From      int // 0 = previously unranked
	To        int
}

func (RankingChangeEvent) Kind() EventKind { return KindRankingChange }
func (e RankingChangeEvent) Message() string {
	if e.From == 0 {
		return fmt.Sprintf("%s enters the %s rankings at #%d",
			e.Name, e.Division, e.To)
	}
	return fmt.Sprintf("%s moves from #%d to #%d in the %s rankings",
		e.Name, e.From, e.To, e.Division)
}

// MandatoryDueEvent reports a sanctioning body calling a mandatory defense.
type MandatoryDueEvent struct {
	Org        string
	Division   string
	ChampionID fighter.ID
	Champion   string
	Challenger string
}

func (MandatoryDueEvent) Kind() EventKind { return KindMandatoryDue }
func (e MandatoryDueEvent) Message() string {
	return fmt.Sprintf("The %s orders %s to defend the %s title against %s",
		e.Org, e.Champion, e.Division, e.Challenger)
}

// PurseEvent reports a fight purse paid out.
type PurseEvent struct {
	FighterID fighter.ID
	Name      string
	Amount    int64
}

func (PurseEvent) Kind() EventKind { return KindPurse }
func (e PurseEvent) Message() string {
	return fmt.Sprintf("%s earns a purse of $%s", e.Name, humanize.Comma(e.Amount))
}

// PhaseChangeEvent reports a career-phase transition.
type PhaseChangeEvent struct {
	FighterID fighter.ID
	Name      string
	From      fighter.Phase
	To        fighter.Phase
}

func (PhaseChangeEvent) Kind() EventKind { return KindPhaseChange }
func (e PhaseChangeEvent) Message() string {
	return fmt.Sprintf("%s moves from %s to %s", e.Name, e.From, e.To)
}
