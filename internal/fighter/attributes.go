package fighter

// Attribute bounds. Every mutation clamps back into this range.
const (
	AttrMin = 30.0
	AttrMax = 99.0
)

// Attribute category names. These double as the keys of the tuning rate
// tables.
const (
	CatPower     = "power"
	CatSpeed     = "speed"
	CatStamina   = "stamina"
	CatDefense   = "defense"
	CatOffense   = "offense"
	CatTechnical = "technical"
	CatMental    = "mental"
)

// Categories lists every attribute category in a fixed iteration order.
var Categories = []string{
	CatPower, CatSpeed, CatStamina, CatDefense, CatOffense, CatTechnical, CatMental,
}

// categorySkills enumerates the named skills per category.
var categorySkills = map[string][]string{
	CatPower:     {"powerLeft", "powerRight"},
	CatSpeed:     {"handSpeed", "footSpeed", "reflexes"},
	CatStamina:   {"cardio", "recovery", "durability"},
	CatDefense:   {"headMovement", "blocking", "clinch"},
	CatOffense:   {"jab", "combinations", "accuracy"},
	CatTechnical: {"footwork", "timing", "ringGeneralship"},
	CatMental:    {"experience", "ringIQ", "heart", "composure"},
}

// physicalSkills are the fast-twitch skills that take the extra erosion in
// decline, keyed "category/skill".
var physicalSkills = map[string]bool{
	CatSpeed + "/handSpeed":  true,
	CatSpeed + "/footSpeed":  true,
	CatSpeed + "/reflexes":   true,
	CatStamina + "/cardio":   true,
	CatStamina + "/recovery": true,
}

// SkillMap holds the named numeric skills of one category.
type SkillMap map[string]float64

// AttributeSet is category name → skill map. All values live in
// [AttrMin, AttrMax].
type AttributeSet map[string]SkillMap

// NewAttributeSet creates a set with every known skill at the given value.
func NewAttributeSet(initial float64) AttributeSet {
	set := make(AttributeSet, len(Categories))
	for _, cat := range Categories {
		skills := make(SkillMap, len(categorySkills[cat]))
		for _, name := range categorySkills[cat] {
			skills[name] = clampAttr(initial)
		}
		set[cat] = skills
	}
	return set
}

// Clone makes a deep copy, used to snapshot base attributes at creation.
func (a AttributeSet) Clone() AttributeSet {
	out := make(AttributeSet, len(a))
	for cat, skills := range a {
		copied := make(SkillMap, len(skills))
		for name, v := range skills {
			copied[name] = v
		}
		out[cat] = copied
	}
	return out
}

// Get returns a skill value, 0 when absent.
func (a AttributeSet) Get(cat, skill string) float64 {
	return a[cat][skill]
}

// Set stores a skill value clamped into [AttrMin, AttrMax].
func (a AttributeSet) Set(cat, skill string, v float64) {
	if a[cat] == nil {
		a[cat] = make(SkillMap)
	}
	a[cat][skill] = clampAttr(v)
}

// Add adjusts a skill by delta, clamped.
func (a AttributeSet) Add(cat, skill string, delta float64) {
	a.Set(cat, skill, a.Get(cat, skill)+delta)
}

// CategoryAvg returns the mean skill value of one category.
func (a AttributeSet) CategoryAvg(cat string) float64 {
	skills := a[cat]
	if len(skills) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range skills {
		sum += v
	}
	return sum / float64(len(skills))
}

// Overall returns the mean across all categories, the single rating the
// default matchmaker and combat model read.
func (a AttributeSet) Overall() float64 {
	if len(a) == 0 {
		return 0
	}
	sum := 0.0
	for _, cat := range Categories {
		sum += a.CategoryAvg(cat)
	}
	return sum / float64(len(Categories))
}

// ClampAll forces every skill back into bounds after a bulk mutation pass.
func (a AttributeSet) ClampAll() {
	for _, skills := range a {
		for name, v := range skills {
			skills[name] = clampAttr(v)
		}
	}
}

func clampAttr(v float64) float64 {
	if v < AttrMin {
		return AttrMin
	}
	if v > AttrMax {
		return AttrMax
	}
	return v
}

// IsPhysicalSkill reports whether cat/skill takes the extra decline erosion.
func IsPhysicalSkill(cat, skill string) bool {
	return physicalSkills[cat+"/"+skill]
}
