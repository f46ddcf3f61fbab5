// Package combat provides the default fight resolver. Fights are
// independent given their input snapshots, so the batch variant fans out
// across goroutines and the caller awaits the whole batch.
package combat

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/bstar/fight-fortress-sub001/internal/entropy"
	"github.com/bstar/fight-fortress-sub001/internal/fighter"
	"github.com/bstar/fight-fortress-sub001/internal/universe"
)

// upsetThreshold: a winner whose pre-fight chance was below this is an upset.
const upsetThreshold = 0.30

// Resolver is a rating-plus-variance fight model.
type Resolver struct {
	roller *entropy.Roller
}

// NewResolver creates a resolver with its own seeded randomness.
func NewResolver(seed int64) *Resolver {
	return &Resolver{roller: entropy.NewRoller(seed)}
}

// Resolve runs one fight.
func (r *Resolver) Resolve(bout universe.Bout) (universe.FightResult, error) {
	return r.resolveWith(bout, r.roller)
}

// ResolveBatch resolves a week's card list in parallel, order-preserving.
// Per-bout randomness is pre-drawn sequentially from the resolver's roller
// so results stay reproducible regardless of goroutine scheduling.
func (r *Resolver) ResolveBatch(bouts []universe.Bout) ([]universe.FightResult, error) {
	seeds := make([]int64, len(bouts))
	for i := range bouts {
		seeds[i] = r.roller.Int63()
	}

	results := make([]universe.FightResult, len(bouts))
	var g errgroup.Group
	for i := range bouts {
		i := i
		g.Go(func() error {
			res, err := r.resolveWith(bouts[i], entropy.NewRoller(seeds[i]))
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Resolver) resolveWith(bout universe.Bout, roller *entropy.Roller) (universe.FightResult, error) {
	a, b := bout.A, bout.B
	if a == nil || b == nil {
		return universe.FightResult{}, fmt.Errorf("combat: bout missing a fighter snapshot")
	}

	ratingA := effectiveRating(a)
	ratingB := effectiveRating(b)

	// Logistic win probability from the rating gap.
	probA := 1 / (1 + math.Exp(-(ratingA-ratingB)/6))

	// Close fights occasionally end level.
	margin := math.Abs(ratingA - ratingB)
	if margin < 3 && roller.Chance(0.05) {
		res := universe.FightResult{
			Draw:   true,
			Method: universe.MethodDraw,
			Round:  bout.Card.Rounds,
			StatsA: rollStats(a, b, bout.Card.Rounds, roller),
			StatsB: rollStats(b, a, bout.Card.Rounds, roller),
		}
		return res, nil
	}

	winner, loser := a, b
	winProb := probA
	if !roller.Chance(probA) {
		winner, loser = b, a
		winProb = 1 - probA
	}

	method, round := r.finish(winner, loser, bout.Card.Rounds, roller)

	res := universe.FightResult{
		WinnerID: winner.ID,
		LoserID:  loser.ID,
		Method:   method,
		Round:    round,
		StatsA:   rollStats(a, b, round, roller),
		StatsB:   rollStats(b, a, round, roller),
		IsUpset:  winProb < upsetThreshold,
	}

	// Stoppage losers sit out on medical grounds.
	switch method {
	case universe.MethodKO:
		res.InjuryWeeks = roller.IntBetween(6, 12)
	case universe.MethodTKO:
		res.InjuryWeeks = roller.IntBetween(3, 8)
	}
	return res, nil
}

// effectiveRating reads the snapshot the way judges do: overall class with
// extra weight on speed, offense, and ring smarts.
func effectiveRating(f *fighter.Fighter) float64 {
	return f.Attributes.Overall()*0.7 +
		f.Attributes.CategoryAvg(fighter.CatSpeed)*0.1 +
		f.Attributes.CategoryAvg(fighter.CatOffense)*0.1 +
		f.Attributes.Get(fighter.CatMental, "ringIQ")*0.1
}

// finish decides method and round from the winner's power against the
// loser's durability.
func (r *Resolver) finish(winner, loser *fighter.Fighter, rounds int, roller *entropy.Roller) (universe.Method, int) {
	power := winner.Attributes.CategoryAvg(fighter.CatPower)
	durability := loser.Attributes.Get(fighter.CatStamina, "durability")

	koProb := entropy.Clamp(0.18+(power-durability)/150, 0.05, 0.60)
	if roller.Chance(koProb) {
		// Stoppages cluster in the middle rounds.
		round := int(entropy.Clamp(roller.Normal(float64(rounds)*0.6, float64(rounds)*0.25), 1, float64(rounds)))
		if roller.Chance(0.4) {
			return universe.MethodKO, round
		}
		return universe.MethodTKO, round
	}

	// Decision split widens as the fight gets closer.
	switch {
	case roller.Chance(0.65):
		return universe.MethodUD, rounds
	case roller.Chance(0.6):
		return universe.MethodSD, rounds
	default:
		return universe.MethodMD, rounds
	}
}

// rollStats fabricates plausible punch numbers for one side.
func rollStats(f, opp *fighter.Fighter, rounds int, roller *entropy.Roller) universe.FightStats {
	output := f.Attributes.Get(fighter.CatStamina, "cardio")/2 + 20
	thrown := int(float64(rounds) * roller.Between(output*0.8, output*1.2))

	accuracy := f.Attributes.Get(fighter.CatOffense, "accuracy") / 100
	evasion := opp.Attributes.CategoryAvg(fighter.CatDefense) / 100
	landRate := entropy.Clamp(accuracy*(1.2-evasion), 0.15, 0.55)

	return universe.FightStats{
		Thrown: thrown,
		Landed: int(float64(thrown) * landRate),
	}
}
