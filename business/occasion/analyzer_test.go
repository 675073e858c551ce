package occasion

import (
	"math"
	"strings"
	"testing"

	"shopLens/domain"
)

func TestParseContextBeachWedding(t *testing.T) {
	profile := NewAnalyzer().ParseContext("elegant dress for beach wedding in summer")

	// Wedding comes before beach in the detection order.
	if profile.Occasion != "wedding" {
		t.Fatalf("expected wedding, got %q", profile.Occasion)
	}

	if profile.Mood != "elegant" {
		t.Fatalf("expected elegant mood, got %q", profile.Mood)
	}

	if profile.Season != "summer" {
		t.Fatalf("expected summer, got %q", profile.Season)
	}

	if profile.Location != "beach" {
		t.Fatalf("expected beach location, got %q", profile.Location)
	}
}

func TestParseContextTimeOfDay(t *testing.T) {
	a := NewAnalyzer()

	if got := a.ParseContext("dress for dinner tonight").TimeOfDay; got != "evening" {
		t.Fatalf("expected evening, got %q", got)
	}

	if got := a.ParseContext("breakfast outfit").TimeOfDay; got != "morning" {
		t.Fatalf("expected morning, got %q", got)
	}

	if got := a.ParseContext("lunch meeting attire").TimeOfDay; got != "afternoon" {
		t.Fatalf("expected afternoon, got %q", got)
	}
}

func TestParseContextEmpty(t *testing.T) {
	profile := NewAnalyzer().ParseContext("usb cable")

	if !profile.IsEmpty() {
		t.Fatalf("expected empty context, got %+v", profile)
	}
}

func TestMergeExplicitWins(t *testing.T) {
	extracted := domain.ContextProfile{Occasion: "wedding", Season: "summer"}
	explicit := domain.ContextProfile{Occasion: "party"}

	merged := Merge(extracted, explicit)

	if merged.Occasion != "party" {
		t.Fatalf("explicit occasion must win, got %q", merged.Occasion)
	}

	if merged.Season != "summer" {
		t.Fatalf("extracted season must survive, got %q", merged.Season)
	}
}

func TestScoreBoostsAndCaps(t *testing.T) {
	a := NewAnalyzer()

	candidate := domain.Candidate{
		Title:       "Elegant white formal gown",
		Description: "classic sophisticated luxurious wedding ceremony dress in ivory and gold",
		Category:    "dresses",
	}

	ctx := domain.ContextProfile{Occasion: "wedding"}

	score := a.Score(candidate, ctx, 0.5)

	if score.OccasionBoost != maxOccasionBoost {
		t.Fatalf("heavy keyword stacking should hit the cap %f, got %f", maxOccasionBoost, score.OccasionBoost)
	}

	if score.FinalScore != math.Min(0.5*maxOccasionBoost, 1.0) {
		t.Fatalf("unexpected final score %f", score.FinalScore)
	}
}

func TestScoreFinalCappedAtOne(t *testing.T) {
	a := NewAnalyzer()

	candidate := domain.Candidate{
		Title:    "Elegant formal wedding dress",
		Category: "dresses",
	}

	score := a.Score(candidate, domain.ContextProfile{Occasion: "wedding"}, 0.95)

	if score.FinalScore > 1.0 {
		t.Fatalf("final score must cap at 1.0, got %f", score.FinalScore)
	}
}

func TestScoreNoContextIsNeutral(t *testing.T) {
	a := NewAnalyzer()

	score := a.Score(domain.Candidate{Title: "toaster"}, domain.ContextProfile{}, 0.7)

	if score.OccasionBoost != 1.0 || score.MoodBoost != 1.0 || score.ContextBoost != 1.0 {
		t.Fatalf("empty context must not boost, got %+v", score)
	}

	if score.FinalScore != 0.7 {
		t.Fatalf("final score should equal base, got %f", score.FinalScore)
	}

	if score.BaseRelevance != 0.7 {
		t.Fatalf("score should carry the base relevance, got %f", score.BaseRelevance)
	}

	if score.Explanation != "General match" {
		t.Fatalf("expected general match explanation, got %q", score.Explanation)
	}
}

func TestScoreExplanation(t *testing.T) {
	a := NewAnalyzer()

	candidate := domain.Candidate{
		Title:       "Elegant summer wedding dress",
		Description: "white formal gown",
		Category:    "dresses",
	}

	ctx := domain.ContextProfile{Occasion: "wedding", Mood: "elegant", Season: "summer"}

	score := a.Score(candidate, ctx, 0.5)

	for _, want := range []string{"Perfect for wedding", "Matches elegant mood", "Great for summer"} {
		if !strings.Contains(score.Explanation, want) {
			t.Fatalf("explanation %q missing %q", score.Explanation, want)
		}
	}

	if !strings.Contains(score.Explanation, " • ") {
		t.Fatalf("explanation parts should be bullet separated, got %q", score.Explanation)
	}
}

func TestScoreEveningTimeMatch(t *testing.T) {
	a := NewAnalyzer()

	candidate := domain.Candidate{Title: "Formal evening gown"}
	ctx := domain.ContextProfile{TimeOfDay: "evening"}

	score := a.Score(candidate, ctx, 0.5)

	if math.Abs(score.ContextBoost-1.1) > 1e-9 {
		t.Fatalf("expected 1.1 time boost, got %f", score.ContextBoost)
	}
}

func TestNormalizeDropsUnknownValues(t *testing.T) {
	ctx := Normalize(domain.ContextProfile{Occasion: "spaceflight", Mood: "grumpy", Season: "summer"})

	if ctx.Occasion != "" {
		t.Errorf("unknown occasion should be dropped, got %q", ctx.Occasion)
	}

	if ctx.Mood != "" {
		t.Errorf("unknown mood should be dropped, got %q", ctx.Mood)
	}

	if ctx.Season != "summer" {
		t.Errorf("known fields must survive, got %q", ctx.Season)
	}
}

func TestNormalizeKeepsKnownValues(t *testing.T) {
	ctx := Normalize(domain.ContextProfile{Occasion: "wedding", Mood: "elegant"})

	if ctx.Occasion != "wedding" || ctx.Mood != "elegant" {
		t.Fatalf("known values were dropped: %+v", ctx)
	}
}
