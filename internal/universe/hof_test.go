package universe

import (
	"testing"

	"github.com/bstar/fight-fortress-sub001/internal/fighter"
)

// retiredGreat builds a career worthy of the hall: long reign, deep record,
// number one peak.
func retiredGreat(u *Universe, retired fighter.Date) *fighter.Fighter {
	f := addContender(u, "Middleweight", 42, 2, 30)
	f.Potential.Tier = fighter.TierGenerational
	f.Ranking.PeakRank = 1
	for _, org := range []string{"WBA", "WBC", "IBF", "WBO"} {
		f.WinTitle(org, fighter.Date{Week: 1, Year: 3})
		for i := 0; i < 4; i++ {
			f.DefendTitle(org)
		}
	}
	f.Phase = fighter.PhaseRetired
	d := retired
	f.RetiredDate = &d
	delete(u.Active, f.ID)
	u.Retired[f.ID] = f
	return f
}

func TestEvaluateHOFGatesThinRecords(t *testing.T) {
	u := newTestUniverse()

	cases := []struct {
		name   string
		record fighter.Record
	}{
		{"too few fights", fighter.Record{Wins: 12, Losses: 2}},
		{"too few wins", fighter.Record{Wins: 14, Losses: 10}},
		{"win rate too low", fighter.Record{Wins: 15, Losses: 14}},
	}
	for _, c := range cases {
		f := addContender(u, "Lightweight", 0, 0, 0)
		f.Record = c.record
		f.Ranking.PeakRank = 1
		verdict := u.EvaluateHOF(f)
		if verdict.Qualifies || verdict.Score != 0 {
			t.Fatalf("%s: verdict %+v, want gated zero", c.name, verdict)
		}
	}
}

func TestEvaluateHOFGreatIsFirstBallot(t *testing.T) {
	u := newTestUniverse()
	f := retiredGreat(u, fighter.Date{Week: 1, Year: 5})

	verdict := u.EvaluateHOF(f)
	if !verdict.Qualifies {
		t.Fatalf("great career does not qualify: %+v", verdict)
	}
	if !verdict.FirstBallot {
		t.Fatalf("great career misses first ballot: %+v", verdict)
	}
	if verdict.Score < u.tun.HallOfFame.FirstBallotBar {
		t.Fatalf("score %v below first-ballot bar", verdict.Score)
	}
}

func TestEvaluateHOFSolidJourneymanFallsShort(t *testing.T) {
	u := newTestUniverse()
	f := addContender(u, "Lightweight", 20, 5, 5)
	f.Potential.Tier = fighter.TierRegional
	f.Ranking.PeakRank = 9

	verdict := u.EvaluateHOF(f)
	if verdict.Score == 0 {
		t.Fatalf("passed the gates but scored zero")
	}
	if verdict.Qualifies {
		t.Fatalf("solid but unremarkable career qualified: %+v", verdict)
	}
}

func TestRunHOFPassWaitsOutTheEligibilityPeriod(t *testing.T) {
	u := newTestUniverse()
	u.Date = fighter.Date{Week: 52, Year: 6}
	retiredGreat(u, fighter.Date{Week: 52, Year: 5}) // one year retired

	if events := u.runHOFPass(); len(events) != 0 {
		t.Fatalf("inducted %d fighters before the waiting period", len(events))
	}
	if len(u.Hall.Inductees) != 0 {
		t.Fatalf("hall not empty")
	}
}

func TestRunHOFPassInductsOnce(t *testing.T) {
	u := newTestUniverse()
	u.Date = fighter.Date{Week: 52, Year: 10}
	f := retiredGreat(u, fighter.Date{Week: 52, Year: 5})

	events := u.runHOFPass()
	if len(events) != 1 {
		t.Fatalf("%d induction events, want 1", len(events))
	}
	ind, ok := events[0].(HOFInductionEvent)
	if !ok {
		t.Fatalf("unexpected event type %T", events[0])
	}
	if ind.FighterID != f.ID || !ind.FirstBallot {
		t.Fatalf("wrong induction: %+v", ind)
	}
	if !u.Hall.Contains(f.ID) {
		t.Fatalf("hall does not contain the inductee")
	}

	// The next yearly pass must not double-induct.
	u.Date.Year++
	if events := u.runHOFPass(); len(events) != 0 {
		t.Fatalf("double induction: %d events", len(events))
	}
	if len(u.Hall.Inductees) != 1 {
		t.Fatalf("inductee count %d, want 1", len(u.Hall.Inductees))
	}
}
