package domain

import "strings"

// Keyword lists for the legacy category classifier. Matching is by
// case-insensitive substring against the exercise name.
var (
	warmupKeywords = []string{
		"warmup", "warm-up", "stretch", "mobility", "rotation",
		"flexibility", "shoulder", "neck", "wrist", "ankle", "hip",
	}

	techniqueKeywords = []string{
		"jab", "cross", "hook", "uppercut", "shadow", "boxing",
		"combo", "combination", "technique", "defense", "slip",
		"block", "guard", "stance", "footwork",
	}

	enduranceKeywords = []string{
		"burpee", "jump", "run", "jog", "cardio", "endurance",
		"mountain climber", "jumping jack", "squat", "plank",
		"push-up", "pushup", "sprint", "sit-up",
	}
)

// InferCategory guesses an exercise category from its name. It is a
// deprecated fallback for rows that predate the stored category column;
// the stored field is authoritative whenever it holds a valid value.
//
// Tie-break order is part of the contract: warmup keywords win over
// technique, technique over endurance, and an unmatched name falls back
// to DefaultCategory.
func InferCategory(name string) ExerciseCategory {
	lower := strings.ToLower(name)

	for _, kw := range warmupKeywords {
		if strings.Contains(lower, kw) {
			return CategoryWarmup
		}
	}
	for _, kw := range techniqueKeywords {
		if strings.Contains(lower, kw) {
			return CategoryTechnique
		}
	}
	for _, kw := range enduranceKeywords {
		if strings.Contains(lower, kw) {
			return CategoryEndurance
		}
	}

	return DefaultCategory
}

// EffectiveCategory returns the stored category when it is valid, and
// otherwise falls back to inferring one from the exercise name.
func EffectiveCategory(stored ExerciseCategory, name string) ExerciseCategory {
	if IsValidCategory(stored) {
		return stored
	}
	return InferCategory(name)
}
