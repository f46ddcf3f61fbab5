// The weekly tick: a strict ordered pipeline over the whole universe.
package universe

import (
	"log/slog"

	"github.com/bstar/fight-fortress-sub001/internal/fighter"
)

// maxRetainedEvents bounds the universe event buffer.
const maxRetainedEvents = 2000

// ProcessWeek advances the simulation by one week and returns the week's
// events. The stage order is load-bearing: later stages read the mutations
// of earlier ones (rankings and retirement must see final fight records).
// The tick always completes; a failing collaborator degrades to zero
// events for its stage. The universe write lock is held for the whole
// tick, so observers see either the previous week or the finished one.
func (u *Universe) ProcessWeek() []Event {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.AbsWeek++
	var events []Event

	// 1. Aging, progression/decline, phase transitions.
	events = append(events, u.runDevelopment()...)

	// 2. Injury and suspension countdowns.
	u.runCountdowns()

	// 3. Activity counters and defense clocks.
	u.runActivityCounters()
	u.tickDefenseClocks()

	// 4. Fight generation and resolution.
	events = append(events, u.runFights()...)

	// 5. Retirement pass, every fourth week.
	if u.Date.Week%u.retirement.CadenceWeeks() == 0 {
		events = append(events, u.runRetirementPass()...)
	}

	// 6. Sanctioning-body rankings, every fourth week.
	if u.Date.Week%4 == 0 {
		events = append(events, u.updateBodyRankings()...)
	}

	// 7. Population equilibrium.
	events = append(events, u.runPopulationControl()...)

	// 8. Universe-wide rankings.
	events = append(events, u.updateUniverseRankings()...)

	// 9. Hall of Fame, at the year boundary.
	if u.Date.Week == 52 {
		events = append(events, u.runHOFPass()...)
	}

	// 10. Financial pass.
	events = append(events, u.runEconomics()...)

	// 11. Calendar advance.
	u.advanceCalendar()

	u.Events = append(u.Events, events...)
	if len(u.Events) > maxRetainedEvents {
		u.Events = u.Events[len(u.Events)-maxRetainedEvents:]
	}
	return events
}

// runDevelopment ages fighters on their birth week, applies the weekly
// progression/decline model, and runs the one centralized phase-transition
// check per fighter.
func (u *Universe) runDevelopment() []Event {
	var events []Event
	for _, f := range u.ActiveRoster() {
		if f.BirthWeek == u.Date.Week {
			f.Age++
		}

		outcome := u.progression.Advance(f, u.AbsWeek)
		if outcome.VisibleDecline {
			events = append(events, VisibleDeclineEvent{
				FighterID: f.ID,
				Name:      f.Name,
				Age:       f.Age,
				Drop:      outcome.TotalDecline,
			})
		}

		if next := fighter.NextPhase(f); next != f.Phase {
			from := f.Phase
			f.Phase = next
			events = append(events, PhaseChangeEvent{
				FighterID: f.ID, Name: f.Name, From: from, To: next,
			})
		}
	}
	return events
}

// runCountdowns decrements the availability counters. Independent of every
// other stage.
func (u *Universe) runCountdowns() {
	for _, f := range u.Active {
		if f.InjuryWeeks > 0 {
			f.InjuryWeeks--
		}
		if f.SuspensionWeeks > 0 {
			f.SuspensionWeeks--
		}
	}
}

// runActivityCounters resets the yearly fight counter at week 1 and ticks
// every professional's inactivity clock.
func (u *Universe) runActivityCounters() {
	for _, f := range u.Active {
		if u.Date.Week == 1 {
			f.FightsThisYear = 0
		}
		if f.Phase >= fighter.PhaseProDebut {
			f.WeeksInactive++
		}
	}
}

// runRetirementPass applies the hard triggers and the capped monthly
// probability roll. Hard-triggered non-champions are pushed into Decline
// whether or not they retire this window.
func (u *Universe) runRetirementPass() []Event {
	var events []Event
	for _, f := range u.ActiveRoster() {
		if f.Phase < fighter.PhaseProDebut {
			continue
		}
		if !u.retirement.ShouldConsider(f) {
			continue
		}

		if f.Phase != fighter.PhaseChampion && f.Phase != fighter.PhaseDecline {
			f.Phase = fighter.PhaseDecline
		}

		if !u.retirement.Decide(f) {
			continue
		}

		u.retire(f)
		events = append(events, RetirementEvent{
			FighterID:   f.ID,
			Name:        f.Name,
			Age:         f.Age,
			FinalRecord: f.Record,
			TitleCount:  len(f.Titles),
			PeakRank:    f.Ranking.PeakRank,
			Role:        f.PostCareer,
		})
	}
	return events
}

// purseEventFloor keeps the event feed to headline money.
const purseEventFloor = 1_000_000

// runEconomics hands the week's resolved fights to the economics
// collaborator and books the purses it reports. Failures are logged and
// cost only this stage's events.
func (u *Universe) runEconomics() []Event {
	if u.economist == nil {
		return nil
	}
	purses, err := u.economist.ProcessWeek(u.ActiveRoster(), u.weekResults, u.Date)
	if err != nil {
		slog.Warn("economics pass failed", "error", err)
		return nil
	}

	var events []Event
	for _, p := range purses {
		f := u.Active[p.FighterID]
		if f == nil {
			continue
		}
		f.CareerEarnings += p.Amount
		if p.Amount >= purseEventFloor {
			events = append(events, PurseEvent{FighterID: f.ID, Name: f.Name, Amount: p.Amount})
		}
	}
	return events
}

// advanceCalendar moves to the next week, wrapping 52 → 1.
func (u *Universe) advanceCalendar() {
	if u.Date.Week >= 52 {
		u.Date.Week = 1
		u.Date.Year++
		return
	}
	u.Date.Week++
}
