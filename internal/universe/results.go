// Fight generation and result application, stage 4 of the weekly tick.
package universe

import (
	"log/slog"

	"github.com/bstar/fight-fortress-sub001/internal/entropy"
	"github.com/bstar/fight-fortress-sub001/internal/fighter"
)

// runFights asks matchmaking for the week's cards, resolves them through
// the combat collaborator as one awaited batch, and folds the results back
// into the career records. Collaborator failures cost this stage its
// events, never the week.
func (u *Universe) runFights() []Event {
	u.weekResults = u.weekResults[:0]
	if u.matchmaker == nil || u.combat == nil {
		return nil
	}

	cards, err := u.matchmaker.GenerateWeeklyFights(u.ActiveRoster(), u.Date)
	if err != nil {
		slog.Warn("matchmaking failed, no fights this week", "error", err)
		return nil
	}

	// Validate cards before resolution; a card naming an unknown or
	// unavailable fighter is dropped, the rest proceed.
	var bouts []Bout
	seen := make(map[fighter.ID]bool)
	for _, card := range cards {
		a := u.Active[card.FighterA]
		b := u.Active[card.FighterB]
		if a == nil || b == nil || !a.Available() || !b.Available() {
			continue
		}
		if seen[a.ID] || seen[b.ID] {
			// Matchmaking promised one card per fighter per week.
			continue
		}
		seen[a.ID] = true
		seen[b.ID] = true
		bouts = append(bouts, Bout{Card: card, A: a, B: b})
	}
	if len(bouts) == 0 {
		return nil
	}

	results, err := u.combat.ResolveBatch(bouts)
	if err != nil {
		slog.Warn("combat resolution failed, no fights this week", "error", err)
		return nil
	}

	var events []Event
	for i, res := range results {
		if i >= len(bouts) {
			break
		}
		events = append(events, u.applyResult(bouts[i].Card, res)...)
	}
	return events
}

// applyResult updates both career records from one resolved bout and emits
// its events. A result referencing an unknown fighter is skipped whole.
func (u *Universe) applyResult(card FightCard, res FightResult) []Event {
	if res.Draw {
		a := u.Active[card.FighterA]
		b := u.Active[card.FighterB]
		if a == nil || b == nil {
			return nil
		}
		for _, f := range []*fighter.Fighter{a, b} {
			f.Record.Draws++
			f.FightsThisYear++
			f.WeeksInactive = 0
			f.ConsecutiveWins = 0
			f.ConsecutiveLosses = 0
		}
		u.weekResults = append(u.weekResults, ResolvedFight{Card: card, Result: res})
		if card.Title {
			u.applyTitleFight(card, res, nil, nil)
		}
		return []Event{FightResultEvent{Card: card, Result: res, WinnerName: a.Name, LoserName: b.Name}}
	}

	winner := u.Active[res.WinnerID]
	loser := u.Active[res.LoserID]
	if winner == nil || loser == nil {
		return nil
	}

	winner.Record.Wins++
	loser.Record.Losses++
	if res.Method == MethodKO || res.Method == MethodTKO {
		winner.Record.KOs++
		loser.Record.KOLosses++
	}

	for _, f := range []*fighter.Fighter{winner, loser} {
		f.FightsThisYear++
		f.WeeksInactive = 0
	}
	winner.ConsecutiveWins++
	winner.ConsecutiveLosses = 0
	loser.ConsecutiveLosses++
	loser.ConsecutiveWins = 0

	if loser.Ranking.CurrentRank != nil {
		winner.RankedWins++
	}

	// Popularity moves with outcomes; upsets and belts move it more.
	popGain := 2.0
	if res.IsUpset {
		popGain += 4
	}
	if card.Title {
		popGain += 4
	}
	winner.Popularity = entropy.Clamp(winner.Popularity+popGain, 0, 100)
	loser.Popularity = entropy.Clamp(loser.Popularity-1, 0, 100)

	if res.InjuryWeeks > loser.InjuryWeeks {
		loser.InjuryWeeks = res.InjuryWeeks
	}

	events := []Event{FightResultEvent{
		Card: card, Result: res, WinnerName: winner.Name, LoserName: loser.Name,
	}}
	if res.IsUpset {
		events = append(events, UpsetEvent{
			WinnerID:   winner.ID,
			WinnerName: winner.Name,
			LoserName:  loser.Name,
			Division:   card.Division,
		})
	}
	if card.Title {
		events = append(events, u.applyTitleFight(card, res, winner, loser)...)
	}

	u.weekResults = append(u.weekResults, ResolvedFight{Card: card, Result: res})
	return events
}

// applyTitleFight moves belts. A draw keeps the champion; a challenger win
// transfers every open reign; a vacant title crowns the winner with all
// four belts.
func (u *Universe) applyTitleFight(card FightCard, res FightResult, winner, loser *fighter.Fighter) []Event {
	div := u.Divisions[card.Division]
	if div == nil {
		return nil
	}
	defer u.resetDefenseClock(card.Division)

	if res.Draw || winner == nil {
		return nil
	}

	var events []Event

	switch {
	case div.ChampionID == nil:
		// Vacant title: winner unifies the division.
		for _, body := range u.Bodies {
			winner.WinTitle(body.Profile.Code, u.Date)
			events = append(events, TitleChangeEvent{
				Org:      body.Profile.Code,
				Division: card.Division,
				NewChamp: winner.ID,
				NewName:  winner.Name,
			})
		}
		id := winner.ID
		div.ChampionID = &id
		winner.Ranking.CurrentRank = nil

	case *div.ChampionID == winner.ID:
		// Successful defense.
		for _, reign := range winner.OpenTitles() {
			winner.DefendTitle(reign.Org)
		}
		if card.IsMandatory {
			div.MandatoryID = nil
		}

	case loser != nil && *div.ChampionID == loser.ID:
		// New champion.
		for _, reign := range loser.OpenTitles() {
			loser.LoseTitle(reign.Org, u.Date)
			winner.WinTitle(reign.Org, u.Date)
			events = append(events, TitleChangeEvent{
				Org:      reign.Org,
				Division: card.Division,
				NewChamp: winner.ID,
				OldChamp: loser.ID,
				NewName:  winner.Name,
				OldName:  loser.Name,
			})
		}
		id := winner.ID
		div.ChampionID = &id
		winner.Ranking.CurrentRank = nil
		if card.IsMandatory {
			div.MandatoryID = nil
		}
	}

	return events
}
