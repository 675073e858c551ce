package sentiment

import (
	"image"
	"image/color"
	"math"
	"testing"

	"shopLens/domain"
)

func solidImage(c color.RGBA, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	return img
}

func TestAnalyzeSolidYellowReadsVibrant(t *testing.T) {
	img := solidImage(color.RGBA{R: 255, G: 255, B: 0, A: 255}, 32, 32)

	score := NewAnalyzer().Analyze(img)

	if score.Emotion != "happy" {
		t.Fatalf("expected happy for solid yellow, got %s", score.Emotion)
	}

	if score.Category != CategoryVibrant {
		t.Fatalf("expected vibrant category, got %s", score.Category)
	}

	if score.EmotionScore != 1.0 {
		t.Fatalf("dominant emotion should normalize to 1.0, got %f", score.EmotionScore)
	}
}

func TestDominantEmotionZeroSupport(t *testing.T) {
	// Pure green sits outside every palette's distance threshold, so no
	// palette gets support. The first palette wins the tie at zero and
	// the image still reads as vibrant rather than falling back to calm.
	green := solidImage(color.RGBA{G: 255, A: 255}, 16, 16)

	emotion, support := dominantEmotion(flatten(normalize(green)))

	if emotion != "happy" {
		t.Fatalf("zero support should keep the first palette emotion, got %q", emotion)
	}

	if support != 0 {
		t.Fatalf("expected zero support score, got %f", support)
	}

	if got := NewAnalyzer().Analyze(green).Category; got != CategoryVibrant {
		t.Fatalf("expected vibrant category on zero support, got %s", got)
	}
}

func TestAnalyzeWarmth(t *testing.T) {
	red := solidImage(color.RGBA{R: 250, G: 0, B: 0, A: 255}, 16, 16)
	blue := solidImage(color.RGBA{R: 0, G: 0, B: 250, A: 255}, 16, 16)

	a := NewAnalyzer()

	if got := a.Analyze(red).Warmth; got < 0.95 {
		t.Fatalf("red image should be warm, got %f", got)
	}

	if got := a.Analyze(blue).Warmth; got > 0.05 {
		t.Fatalf("blue image should be cool, got %f", got)
	}

	black := solidImage(color.RGBA{A: 255}, 16, 16)
	if got := a.Analyze(black).Warmth; got != 0.5 {
		t.Fatalf("black image should be neutral 0.5, got %f", got)
	}
}

func TestAnalyzeFlatImageScores(t *testing.T) {
	// Mid-gray: maximal brightness score, zero contrast and saturation,
	// perfect harmony (single hue bin).
	gray := solidImage(color.RGBA{R: 127, G: 127, B: 127, A: 255}, 32, 32)

	score := NewAnalyzer().Analyze(gray)

	if score.Brightness < 0.99 {
		t.Fatalf("mid-gray brightness should be ~1, got %f", score.Brightness)
	}

	if score.Contrast != 0 {
		t.Fatalf("flat image contrast should be 0, got %f", score.Contrast)
	}

	if score.Saturation != 0 {
		t.Fatalf("gray saturation should be 0, got %f", score.Saturation)
	}

	if score.Harmony < 0.99 {
		t.Fatalf("single-hue harmony should be ~1, got %f", score.Harmony)
	}

	if score.Complexity != 0 {
		t.Fatalf("flat image complexity should be 0, got %f", score.Complexity)
	}
}

func TestAnalyzeBrightnessPenalizesExtremes(t *testing.T) {
	a := NewAnalyzer()

	dark := a.Analyze(solidImage(color.RGBA{A: 255}, 16, 16))
	bright := a.Analyze(solidImage(color.RGBA{R: 255, G: 255, B: 255, A: 255}, 16, 16))

	if dark.Brightness > 0.01 {
		t.Fatalf("black image brightness should be ~0, got %f", dark.Brightness)
	}

	if bright.Brightness > 0.05 {
		t.Fatalf("white image brightness should be near 0, got %f", bright.Brightness)
	}
}

func TestOverallIsWeightedSum(t *testing.T) {
	score := NewAnalyzer().Analyze(solidImage(color.RGBA{R: 127, G: 127, B: 127, A: 255}, 32, 32))

	want := 0.25*score.Harmony +
		0.20*score.Composition +
		0.15*score.Contrast +
		0.15*score.Brightness +
		0.10*score.Saturation +
		0.10*score.Complexity +
		0.05*score.Warmth

	if math.Abs(score.Overall-want) > 1e-9 {
		t.Fatalf("overall %f does not match weighted sum %f", score.Overall, want)
	}
}

func TestBoostRangeAndPreference(t *testing.T) {
	low := domain.SentimentScore{Overall: 0, Category: CategoryCalm}
	high := domain.SentimentScore{Overall: 1, Category: CategoryCalm}

	if got := Boost(low, ""); got != 0.8 {
		t.Fatalf("zero appeal should boost 0.8, got %f", got)
	}

	if got := Boost(high, ""); got != 1.2 {
		t.Fatalf("max appeal should boost 1.2, got %f", got)
	}

	mid := domain.SentimentScore{Overall: 0.5, Category: CategoryCalm}

	plain := Boost(mid, "")
	preferred := Boost(mid, CategoryCalm)

	if math.Abs(plain-1.0) > 1e-9 {
		t.Fatalf("expected 1.0 for overall 0.5, got %f", plain)
	}

	if math.Abs(preferred-1.15) > 1e-9 {
		t.Fatalf("expected 1.15 with matching preference, got %f", preferred)
	}

	// Preference boost still clamps at 1.2.
	if got := Boost(high, CategoryCalm); got != 1.2 {
		t.Fatalf("boost must clamp at 1.2, got %f", got)
	}
}
