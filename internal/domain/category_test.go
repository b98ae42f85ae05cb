package domain

import "testing"

func TestInferCategory(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		expected ExerciseCategory
	}{
		{"Shoulder rotation warmup", CategoryWarmup},
		{"Ankle mobility drill", CategoryWarmup},
		{"Jab-cross combo", CategoryTechnique},
		{"Shadow boxing rounds", CategoryTechnique},
		{"Burpees", CategoryEndurance},
		{"Jump rope", CategoryEndurance},
		{"Something unrecognizable", DefaultCategory},
	}

	for _, tt := range tests {
		if got := InferCategory(tt.name); got != tt.expected {
			t.Errorf("InferCategory(%q) = %s, want %s", tt.name, got, tt.expected)
		}
	}
}

// A name matching keywords from several lists resolves by the documented
// tie-break order: warmup beats technique beats endurance.
func TestInferCategoryTieBreak(t *testing.T) {
	t.Parallel()
	if got := InferCategory("Shoulder jab burpee"); got != CategoryWarmup {
		t.Errorf("Expected %s, got %s", CategoryWarmup, got)
	}
	if got := InferCategory("Jab sprint"); got != CategoryTechnique {
		t.Errorf("Expected %s, got %s", CategoryTechnique, got)
	}
}

func TestEffectiveCategory(t *testing.T) {
	t.Parallel()
	// Stored category wins even when the name suggests otherwise
	if got := EffectiveCategory(CategoryWarmup, "Burpees"); got != CategoryWarmup {
		t.Errorf("Expected stored category to win, got %s", got)
	}

	// Invalid stored value falls back to inference
	if got := EffectiveCategory("", "Jab drills"); got != CategoryTechnique {
		t.Errorf("Expected inferred %s, got %s", CategoryTechnique, got)
	}
	if got := EffectiveCategory("cardio", "Mystery move"); got != DefaultCategory {
		t.Errorf("Expected default %s, got %s", DefaultCategory, got)
	}
}

func TestNormalizeCategory(t *testing.T) {
	t.Parallel()
	if got := NormalizeCategory(CategoryTechnique); got != CategoryTechnique {
		t.Errorf("Expected %s, got %s", CategoryTechnique, got)
	}
	if got := NormalizeCategory(""); got != DefaultCategory {
		t.Errorf("Expected %s, got %s", DefaultCategory, got)
	}
	if got := NormalizeCategory("stretching"); got != DefaultCategory {
		t.Errorf("Expected %s, got %s", DefaultCategory, got)
	}
}
