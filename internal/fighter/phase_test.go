package fighter

import "testing"

func TestNextPhaseRetiredIsTerminal(t *testing.T) {
	f := &Fighter{Phase: PhaseRetired, Age: 25}
	f.Record.Wins = 30
	if got := NextPhase(f); got != PhaseRetired {
		t.Fatalf("retired fighter transitioned to %s", got)
	}
}

func TestNextPhaseEarlyLadder(t *testing.T) {
	cases := []struct {
		name string
		f    Fighter
		want Phase
	}{
		{"youth stays", Fighter{Phase: PhaseYouth, Age: 12}, PhaseYouth},
		{"youth to amateur at 15", Fighter{Phase: PhaseYouth, Age: 15}, PhaseAmateur},
		{"amateur stays", Fighter{Phase: PhaseAmateur, Age: 17}, PhaseAmateur},
		{"amateur turns pro at 18", Fighter{Phase: PhaseAmateur, Age: 18}, PhaseProDebut},
	}
	for _, c := range cases {
		if got := NextPhase(&c.f); got != c.want {
			t.Fatalf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestNextPhaseProDebutGraduation(t *testing.T) {
	f := &Fighter{Phase: PhaseProDebut, Age: 20}
	f.Potential.PeakAgePhysical = 29

	f.Record = Record{Wins: 3, Losses: 2}
	if got := NextPhase(f); got != PhaseProDebut {
		t.Fatalf("5 fights graduated early to %s", got)
	}

	f.Record = Record{Wins: 5, Losses: 1}
	if got := NextPhase(f); got != PhaseRising {
		t.Fatalf("winning debut = %s, want Rising", got)
	}

	f.Record = Record{Wins: 2, Losses: 4}
	if got := NextPhase(f); got != PhaseGatekeeper {
		t.Fatalf("losing debut = %s, want Gatekeeper", got)
	}
}

func TestNextPhaseBeltAlwaysWins(t *testing.T) {
	f := &Fighter{Phase: PhaseRising, Age: 26}
	f.Potential.PeakAgePhysical = 29
	f.Record = Record{Wins: 15}
	f.WinTitle("WBA", Date{Week: 1, Year: 5})

	if got := NextPhase(f); got != PhaseChampion {
		t.Fatalf("titleholder = %s, want Champion", got)
	}
}

func TestNextPhaseChampionLosesBelt(t *testing.T) {
	f := &Fighter{Phase: PhaseChampion, Age: 28}
	f.Potential.PeakAgePhysical = 30
	f.Record = Record{Wins: 20, Losses: 1}
	f.WinTitle("WBC", Date{Week: 1, Year: 4})
	f.LoseTitle("WBC", Date{Week: 20, Year: 5})

	if got := NextPhase(f); got != PhaseContender {
		t.Fatalf("dethroned champion = %s, want Contender", got)
	}
}

func TestNextPhaseAgeForcesDecline(t *testing.T) {
	f := &Fighter{Phase: PhaseContender, Age: 35}
	f.Potential.PeakAgePhysical = 29
	f.Record = Record{Wins: 25, Losses: 3}
	rank := 4
	f.Ranking.CurrentRank = &rank

	if got := NextPhase(f); got != PhaseDecline {
		t.Fatalf("aged contender = %s, want Decline", got)
	}
}

func TestNextPhaseRankedBecomesContender(t *testing.T) {
	f := &Fighter{Phase: PhaseRising, Age: 24}
	f.Potential.PeakAgePhysical = 29
	f.Record = Record{Wins: 12, Losses: 1}
	rank := 9
	f.Ranking.CurrentRank = &rank

	if got := NextPhase(f); got != PhaseContender {
		t.Fatalf("ranked riser = %s, want Contender", got)
	}
}

func TestNextPhaseStalledRiserBecomesGatekeeper(t *testing.T) {
	f := &Fighter{Phase: PhaseRising, Age: 25}
	f.Potential.PeakAgePhysical = 29
	f.Record = Record{Wins: 6, Losses: 6}

	if got := NextPhase(f); got != PhaseGatekeeper {
		t.Fatalf("stalled riser = %s, want Gatekeeper", got)
	}
}

func TestNextPhaseContenderSkidsToGatekeeper(t *testing.T) {
	f := &Fighter{Phase: PhaseContender, Age: 27}
	f.Potential.PeakAgePhysical = 30
	f.Record = Record{Wins: 18, Losses: 4}
	f.ConsecutiveLosses = 2

	if got := NextPhase(f); got != PhaseGatekeeper {
		t.Fatalf("skidding contender = %s, want Gatekeeper", got)
	}
}
