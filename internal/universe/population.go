// Population equilibrium: prospect replenishment keeps the active roster
// near its target band without ever halting the inflow of young talent.
package universe

import (
	"github.com/bstar/fight-fortress-sub001/internal/config"
	"github.com/bstar/fight-fortress-sub001/internal/entropy"
	"github.com/bstar/fight-fortress-sub001/internal/fighter"
)

// PopulationController decides each week whether and how many new prospects
// enter the universe.
type PopulationController struct {
	tun      *config.PopulationTuning
	target   int
	variance int
	roller   *entropy.Roller
}

// NewPopulationController creates the controller for a target band.
func NewPopulationController(tun *config.PopulationTuning, target, variance int, roller *entropy.Roller) *PopulationController {
	if variance <= 0 {
		variance = 1
	}
	return &PopulationController{tun: tun, target: target, variance: variance, roller: roller}
}

// GenerationProbability is the step function over the deficit:
// far below target → near-certain generation, inside the band → a moderate
// ramp, above target → a trickle that never reaches zero.
func (c *PopulationController) GenerationProbability(activeCount int) float64 {
	deficit := c.target - activeCount
	v := float64(c.variance)

	switch {
	case float64(deficit) > v:
		return c.tun.HighDeficitProb
	case deficit > 0:
		return c.tun.RampBase + (float64(deficit)/v)*c.tun.RampSpan
	case float64(deficit) > -v:
		return c.tun.SurplusProb
	default:
		return c.tun.FloorProb
	}
}

// ShouldGenerate rolls against the deficit-driven probability.
func (c *PopulationController) ShouldGenerate(activeCount int) bool {
	return c.roller.Chance(c.GenerationProbability(activeCount))
}

// HowMany scales the prospect batch with deficit severity, from a single
// debut up to the configured cap.
func (c *PopulationController) HowMany(deficit int) int {
	if deficit <= 0 {
		return 1
	}
	n := 1 + deficit*(c.tun.MaxBatch-1)/(2*c.variance)
	if n > c.tun.MaxBatch {
		n = c.tun.MaxBatch
	}
	if n < 1 {
		n = 1
	}
	return n
}

// runPopulationControl is the weekly stage: maybe inject prospects via the
// generation collaborator. A failed or missing generator means zero
// prospects this week, never an aborted tick.
func (u *Universe) runPopulationControl() []Event {
	if u.generator == nil {
		return nil
	}
	if !u.population.ShouldGenerate(u.ActiveCount()) {
		return nil
	}

	deficit := u.population.target - u.ActiveCount()
	count := u.population.HowMany(deficit)

	var events []Event
	for i := 0; i < count; i++ {
		age := u.roller.IntBetween(u.tun.Population.ProspectAgeMin, u.tun.Population.ProspectAgeMax)
		f := u.generator.Generate(u.Date, age)
		if f == nil {
			continue
		}
		f.Phase = fighter.PhaseProDebut
		u.AddFighter(f)
		events = append(events, NewProspectEvent{
			FighterID: f.ID,
			Name:      f.Name,
			Age:       f.Age,
			Division:  f.Division,
			Tier:      f.Potential.Tier,
		})
	}
	return events
}
