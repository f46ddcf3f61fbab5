package fighter

// NextPhase computes the career phase a fighter should hold given its
// current snapshot. Every phase change in the simulation goes through this
// one function, called once per fighter per tick, so the transition rules
// stay auditable in one place.
//
// Transitions are one-directional through Youth → Amateur → ProDebut, then
// lateral among Rising/Contender/Champion/Gatekeeper/Decline, and terminal
// at Retired.
func NextPhase(f *Fighter) Phase {
	switch f.Phase {
	case PhaseRetired:
		return PhaseRetired

	case PhaseYouth:
		if f.Age >= 15 {
			return PhaseAmateur
		}
		return PhaseYouth

	case PhaseAmateur:
		if f.Age >= 18 {
			return PhaseProDebut
		}
		return PhaseAmateur

	case PhaseProDebut:
		if f.Record.TotalFights() >= 6 {
			if f.Record.WinPct() >= 0.5 {
				return PhaseRising
			}
			return PhaseGatekeeper
		}
		return PhaseProDebut
	}

	// Lateral band. A belt always wins.
	if len(f.OpenTitles()) > 0 {
		return PhaseChampion
	}

	if f.Age > f.Potential.PeakAgePhysical+3 {
		return PhaseDecline
	}

	if f.Ranking.CurrentRank != nil {
		return PhaseContender
	}

	switch f.Phase {
	case PhaseChampion:
		// Just lost the belt, still near the top.
		return PhaseContender
	case PhaseRising:
		if f.Record.TotalFights() >= 12 && f.Record.WinPct() < 0.55 {
			return PhaseGatekeeper
		}
		return PhaseRising
	case PhaseContender:
		// Fell out of the rankings.
		if f.ConsecutiveLosses >= 2 {
			return PhaseGatekeeper
		}
		return PhaseContender
	}

	return f.Phase
}
