// Procedural fighter generation: demographics, talent tier, potential
// bundle, style-biased base attributes, and personality.
package fighter

import (
	"fmt"

	"github.com/bstar/fight-fortress-sub001/internal/entropy"
)

// Generator creates fully populated fighter career records.
type Generator struct {
	roller    *entropy.Roller
	divisions []string
}

// NewGenerator creates a generator with its own seeded randomness. The
// divisions slice is the pool new fighters are assigned into.
func NewGenerator(seed int64, divisions []string) (*Generator, error) {
	if len(divisions) == 0 {
		return nil, fmt.Errorf("generator: no divisions configured")
	}
	return &Generator{
		roller:    entropy.NewRoller(seed),
		divisions: divisions,
	}, nil
}

// Generate creates one fighter at the given age. Fighters aged 18+ enter as
// professional debuts; younger ones sit in the amateur pipeline.
func (g *Generator) Generate(currentDate Date, age int) *Fighter {
	tier := g.rollTier()
	style := Style(g.roller.Intn(int(StyleCounterPuncher) + 1))
	potential := g.rollPotential(tier)

	attrs := g.rollBaseAttributes(tier, style, potential.Ceiling)

	phase := PhaseYouth
	switch {
	case age >= 18:
		phase = PhaseProDebut
	case age >= 15:
		phase = PhaseAmateur
	}

	f := &Fighter{
		ID:        newID(),
		Name:      g.generateName(),
		Division:  g.divisions[g.roller.Intn(len(g.divisions))],
		Age:       age,
		BirthWeek: g.roller.IntBetween(1, 52),
		Phase:     phase,
		Style:     style,
		Potential: potential,
		Personality: Personality{
			Ambition:      g.rollTrait(),
			RiskTolerance: g.rollTrait(),
			Loyalty:       g.rollTrait(),
			WorkEthic:     g.rollTrait(),
		},
		Attributes: attrs,
		Popularity: entropy.Clamp(g.roller.Normal(8+float64(tier)*4, 4), 0, 40),
		FormSeed:   g.roller.Int63(),
		DebutDate:  currentDate,
	}
	f.BaseAttributes = f.Attributes.Clone()
	return f
}

func (g *Generator) rollTier() TalentTier {
	idx := g.roller.WeightedIndex(tierWeights)
	if idx < 0 {
		return TierJourneyman
	}
	return TalentTier(idx)
}

// tierWeights give the rarity curve; generational talents show up about
// once in two hundred prospects.
var tierWeights = []float64{30, 25, 20, 14, 7, 3.5, 0.5}

func (g *Generator) rollPotential(tier TalentTier) Potential {
	type band struct {
		ceilLo, ceilHi     float64
		growthLo, growthHi float64
	}
	bands := map[TalentTier]band{
		TierClubLevel:    {62, 70, 0.70, 0.90},
		TierJourneyman:   {68, 75, 0.80, 1.00},
		TierRegional:     {72, 80, 0.90, 1.10},
		TierNational:     {78, 86, 1.00, 1.20},
		TierWorldClass:   {84, 91, 1.10, 1.30},
		TierElite:        {89, 95, 1.20, 1.45},
		TierGenerational: {93, 99, 1.35, 1.60},
	}
	b := bands[tier]

	peakPhys := int(entropy.Clamp(g.roller.Normal(28.5, 1.6), 26, 32))
	peakMental := peakPhys + g.roller.IntBetween(2, 5)

	// Higher tiers tend to age better, but resilience stays individual.
	resilience := entropy.Clamp(
		g.roller.Normal(0.45+float64(tier)*0.04, 0.18), 0.05, 0.95)

	return Potential{
		Tier:            tier,
		Ceiling:         g.roller.Between(b.ceilLo, b.ceilHi),
		GrowthRate:      g.roller.Between(b.growthLo, b.growthHi),
		PeakAgePhysical: peakPhys,
		PeakAgeMental:   peakMental,
		Resilience:      resilience,
	}
}

func (g *Generator) rollBaseAttributes(tier TalentTier, style Style, ceiling float64) AttributeSet {
	// Base level sits well below the ceiling, leaving growth headroom.
	base := entropy.Clamp(38+float64(tier)*2.5+g.roller.Normal(0, 2), AttrMin, ceiling-8)
	attrs := NewAttributeSet(base)

	// Small per-skill scatter.
	for _, cat := range Categories {
		for name := range attrs[cat] {
			attrs.Add(cat, name, g.roller.Normal(0, 2.5))
		}
	}

	// Style bias shapes the spread without moving the overall much.
	bias := func(cat string, delta float64) {
		for name := range attrs[cat] {
			attrs.Add(cat, name, delta)
		}
	}
	switch style {
	case StyleOutBoxer:
		bias(CatTechnical, 4)
		bias(CatDefense, 3)
		bias(CatPower, -4)
	case StyleSwarmer:
		bias(CatStamina, 4)
		bias(CatOffense, 3)
		bias(CatDefense, -3)
	case StyleSlugger:
		bias(CatPower, 5)
		bias(CatTechnical, -4)
	case StyleBoxerPuncher:
		bias(CatPower, 2)
		bias(CatOffense, 2)
	case StyleCounterPuncher:
		bias(CatSpeed, 3)
		bias(CatTechnical, 3)
		bias(CatStamina, -2)
	}

	// Young fighters start with almost no ring experience.
	attrs.Set(CatMental, "experience", AttrMin+g.roller.Between(0, 4))

	attrs.ClampAll()
	return attrs
}

func (g *Generator) rollTrait() float64 {
	return entropy.Clamp(g.roller.Normal(55, 18), 5, 99)
}

func (g *Generator) generateName() string {
	first := firstNames[g.roller.Intn(len(firstNames))]
	last := lastNames[g.roller.Intn(len(lastNames))]
	return first + " " + last
}

// Name pools for procedural generation.
var firstNames = []string{
	"Manny", "Terence", "Errol", "Deontay", "Tyson", "Anthony", "Oleksandr",
	"Canelo", "Gennady", "Vasiliy", "Shakur", "Devin", "Ryan", "Gervonta",
	"Teofimo", "Jaron", "Jaime", "David", "Artur", "Dmitry", "Callum",
	"Liam", "Josh", "Leigh", "Sunny", "Amir", "Kell", "Carl", "Ricky",
	"Tony", "Dillian", "Joe", "Daniel", "Lawrence", "Filip", "Zhilei",
	"Luis", "Andy", "Frank", "Otto", "Efe", "Marco", "Julio", "Oscar",
	"Felix", "Miguel", "Juan", "Roman", "Srisaket", "Nonito", "Naoya",
}

var lastNames = []string{
	"Alvarez", "Crawford", "Spence", "Wilder", "Fury", "Joshua", "Usyk",
	"Golovkin", "Lomachenko", "Stevenson", "Haney", "Garcia", "Davis",
	"Lopez", "Ennis", "Munguia", "Benavidez", "Beterbiev", "Bivol",
	"Smith", "Taylor", "Wood", "Edwards", "Khan", "Brook", "Froch",
	"Hatton", "Bellew", "Whyte", "Joyce", "Dubois", "Okolie", "Hrgovic",
	"Zhang", "Ortiz", "Ruiz", "Sanchez", "Wallin", "Ajagba", "Huck",
	"Cesar", "Chavez", "Duran", "Trinidad", "Cotto", "Marquez",
	"Gonzalez", "Rungvisai", "Donaire", "Inoue", "Moloney", "Casimero",
}
