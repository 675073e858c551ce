// Package sentiment scores product images on aesthetic and emotional
// appeal using color theory and composition analysis.
package sentiment

import (
	"image"
	"image/draw"
	"math"

	"github.com/nfnt/resize"

	"shopLens/domain"
)

// Images are shrunk to this edge length before analysis so per-image cost
// stays bounded regardless of what the sources serve.
const analysisMaxDim = 256

// Edge detection threshold on the Sobel gradient magnitude.
const edgeThreshold = 100

// Component weights of the overall aesthetic score.
const (
	weightHarmony     = 0.25
	weightComposition = 0.20
	weightContrast    = 0.15
	weightBrightness  = 0.15
	weightSaturation  = 0.10
	weightComplexity  = 0.10
	weightWarmth      = 0.05
)

type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// pixels holds the normalized image as flat channel planes.
type pixels struct {
	w, h int
	r    []float64
	g    []float64
	b    []float64
	gray []float64
}

// Analyze computes the full visual profile of one product image.
func (a *Analyzer) Analyze(img image.Image) domain.SentimentScore {
	px := flatten(normalize(img))

	edges := sobelEdges(px)

	harmony := colorHarmony(px)
	brightness := brightnessScore(px)
	saturation := saturationScore(px)
	composition := compositionScore(px, edges)
	contrast := contrastScore(px)
	warmth := warmthScore(px)
	complexity := complexityScore(px, edges)

	emotion, emotionScore := dominantEmotion(px)

	category, ok := emotionCategory[emotion]
	if !ok {
		category = CategoryCalm
	}

	overall := weightHarmony*harmony +
		weightComposition*composition +
		weightContrast*contrast +
		weightBrightness*brightness +
		weightSaturation*saturation +
		weightComplexity*complexity +
		weightWarmth*warmth

	return domain.SentimentScore{
		Brightness:   brightness,
		Saturation:   saturation,
		Contrast:     contrast,
		Harmony:      harmony,
		Composition:  composition,
		Warmth:       warmth,
		Complexity:   complexity,
		Overall:      overall,
		Emotion:      emotion,
		EmotionScore: emotionScore,
		Category:     category,
	}
}

// Boost turns a sentiment score into a ranking multiplier in [0.8, 1.2].
// Matching the caller's preferred category earns an extra 15%.
func Boost(score domain.SentimentScore, preference string) float64 {
	boost := 0.8 + score.Overall*0.4

	if preference != "" && score.Category == preference {
		boost *= 1.15
	}

	return math.Min(1.2, math.Max(0.8, boost))
}

func normalize(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	if bounds.Dx() > analysisMaxDim || bounds.Dy() > analysisMaxDim {
		img = resize.Thumbnail(analysisMaxDim, analysisMaxDim, img, resize.Lanczos3)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}

	return rgba
}

func flatten(img *image.RGBA) pixels {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	px := pixels{
		w:    w,
		h:    h,
		r:    make([]float64, w*h),
		g:    make([]float64, w*h),
		b:    make([]float64, w*h),
		gray: make([]float64, w*h),
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[(y-bounds.Min.Y)*img.Stride:]

		for x := 0; x < w; x++ {
			r := float64(row[x*4])
			g := float64(row[x*4+1])
			b := float64(row[x*4+2])

			px.r[i] = r
			px.g[i] = g
			px.b[i] = b
			px.gray[i] = 0.299*r + 0.587*g + 0.114*b
			i++
		}
	}

	return px
}

// colorHarmony measures hue concentration. A tight hue distribution has
// low entropy and reads as harmonious.
func colorHarmony(px pixels) float64 {
	const bins = 36

	var hist [bins]float64

	for i := range px.r {
		hue := hueOf(px.r[i], px.g[i], px.b[i])
		// Hue is 0-360; halve it and bin by 5 to get 36 bins.
		bin := int(hue/2) / 5
		if bin >= bins {
			bin = bins - 1
		}

		hist[bin]++
	}

	total := float64(len(px.r))
	if total == 0 {
		return 0
	}

	entropy := 0.0
	for _, count := range hist {
		p := count / total
		entropy -= p * math.Log(p+1e-10)
	}

	return 1 - entropy/math.Log(bins)
}

func hueOf(r, g, b float64) float64 {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	delta := maxC - minC

	if delta == 0 {
		return 0
	}

	var hue float64

	switch maxC {
	case r:
		hue = 60 * math.Mod((g-b)/delta, 6)
	case g:
		hue = 60 * ((b-r)/delta + 2)
	default:
		hue = 60 * ((r-g)/delta + 4)
	}

	if hue < 0 {
		hue += 360
	}

	return hue
}

// brightnessScore peaks at mid-gray and penalizes under and over exposed
// images symmetrically.
func brightnessScore(px pixels) float64 {
	mean := meanOf(px.gray)

	score := 1 - math.Abs(mean-127)/127

	return math.Max(0, score)
}

func saturationScore(px pixels) float64 {
	var sum float64

	for i := range px.r {
		maxC := math.Max(px.r[i], math.Max(px.g[i], px.b[i]))
		minC := math.Min(px.r[i], math.Min(px.g[i], px.b[i]))

		if maxC > 0 {
			sum += (maxC - minC) / maxC
		}
	}

	if len(px.r) == 0 {
		return 0
	}

	return sum / float64(len(px.r))
}

// compositionScore rewards balanced edge distribution across a rule of
// thirds grid.
func compositionScore(px pixels, edges []float64) float64 {
	hThird := px.h / 3
	wThird := px.w / 3

	if hThird == 0 || wThird == 0 {
		return 1
	}

	var densities [9]float64

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64

			for y := i * hThird; y < (i+1)*hThird; y++ {
				for x := j * wThird; x < (j+1)*wThird; x++ {
					sum += edges[y*px.w+x]
				}
			}

			densities[i*3+j] = sum / float64(hThird*wThird*255)
		}
	}

	return 1 / (1 + stdDev(densities[:])*10)
}

// contrastScore normalizes the gray level standard deviation against a
// typical range of 0-50.
func contrastScore(px pixels) float64 {
	return math.Min(stdDev(px.gray)/50, 1)
}

// warmthScore is the red share of red plus blue. 0 is cool, 1 is warm.
func warmthScore(px pixels) float64 {
	avgRed := meanOf(px.r)
	avgBlue := meanOf(px.b)

	if avgRed+avgBlue == 0 {
		return 0.5
	}

	return avgRed / (avgRed + avgBlue)
}

func complexityScore(px pixels, edges []float64) float64 {
	var edgeSum float64
	for _, v := range edges {
		edgeSum += v
	}

	edgeDensity := edgeSum / float64(len(edges)*255)

	lapVariance := laplacianVariance(px)

	return (edgeDensity + math.Min(lapVariance/1000, 1)) / 2
}

// sobelEdges returns a binary edge map with 255 at edge pixels. Border
// pixels stay 0.
func sobelEdges(px pixels) []float64 {
	edges := make([]float64, px.w*px.h)

	for y := 1; y < px.h-1; y++ {
		for x := 1; x < px.w-1; x++ {
			at := func(dx, dy int) float64 {
				return px.gray[(y+dy)*px.w+(x+dx)]
			}

			gx := -at(-1, -1) - 2*at(-1, 0) - at(-1, 1) +
				at(1, -1) + 2*at(1, 0) + at(1, 1)
			gy := -at(-1, -1) - 2*at(0, -1) - at(1, -1) +
				at(-1, 1) + 2*at(0, 1) + at(1, 1)

			if math.Sqrt(gx*gx+gy*gy) > edgeThreshold {
				edges[y*px.w+x] = 255
			}
		}
	}

	return edges
}

func laplacianVariance(px pixels) float64 {
	if px.w < 3 || px.h < 3 {
		return 0
	}

	values := make([]float64, 0, (px.w-2)*(px.h-2))

	for y := 1; y < px.h-1; y++ {
		for x := 1; x < px.w-1; x++ {
			center := px.gray[y*px.w+x]
			lap := px.gray[(y-1)*px.w+x] +
				px.gray[(y+1)*px.w+x] +
				px.gray[y*px.w+x-1] +
				px.gray[y*px.w+x+1] -
				4*center

			values = append(values, lap)
		}
	}

	return variance(values)
}

// dominantEmotion finds the palette emotion with the largest share of
// nearby pixels. Scores are normalized so the winner reads 1.0.
func dominantEmotion(px pixels) (string, float64) {
	const colorDistanceThreshold = 100

	total := float64(len(px.r))
	if total == 0 {
		return "calm", 0
	}

	best := ""
	bestScore := -1.0
	var maxScore float64

	scores := make([]float64, len(emotionPalettes))

	for pi, palette := range emotionPalettes {
		var paletteBest float64

		for _, target := range palette.colors {
			var close float64

			for i := range px.r {
				dr := px.r[i] - target.r
				dg := px.g[i] - target.g
				db := px.b[i] - target.b

				if dr*dr+dg*dg+db*db < colorDistanceThreshold*colorDistanceThreshold {
					close++
				}
			}

			if score := close / total; score > paletteBest {
				paletteBest = score
			}
		}

		scores[pi] = paletteBest

		if paletteBest > maxScore {
			maxScore = paletteBest
		}

		if paletteBest > bestScore {
			bestScore = paletteBest
			best = palette.emotion
		}
	}

	if maxScore > 0 {
		bestScore /= maxScore
	}

	return best, bestScore
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := meanOf(values)

	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}

	return sum / float64(len(values))
}

func stdDev(values []float64) float64 {
	return math.Sqrt(variance(values))
}
