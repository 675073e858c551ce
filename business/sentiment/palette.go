package sentiment

// Sentiment categories assigned to product images.
const (
	CategoryVibrant      = "vibrant"
	CategoryCalm         = "calm"
	CategoryElegant      = "elegant"
	CategoryEnergetic    = "energetic"
	CategoryLuxurious    = "luxurious"
	CategoryPlayful      = "playful"
	CategoryProfessional = "professional"
	CategoryRomantic     = "romantic"
)

type rgb struct {
	r, g, b float64
}

// Emotion color associations from color psychology. Order decides the
// winner on score ties, so this stays an ordered slice.
var emotionPalettes = []struct {
	emotion string
	colors  []rgb
}{
	{"happy", []rgb{{255, 255, 0}, {255, 200, 0}, {255, 150, 0}}},
	{"calm", []rgb{{100, 150, 200}, {150, 200, 220}, {180, 220, 240}}},
	{"energetic", []rgb{{255, 0, 0}, {255, 100, 0}, {255, 50, 100}}},
	{"luxurious", []rgb{{50, 0, 50}, {100, 0, 100}, {139, 0, 139}}},
	{"romantic", []rgb{{255, 192, 203}, {255, 105, 180}, {255, 20, 147}}},
	{"professional", []rgb{{0, 0, 100}, {50, 50, 100}, {70, 70, 90}}},
	{"playful", []rgb{{255, 100, 200}, {100, 255, 200}, {200, 100, 255}}},
	{"elegant", []rgb{{0, 0, 0}, {255, 255, 255}, {200, 200, 200}}},
}

var emotionCategory = map[string]string{
	"happy":        CategoryVibrant,
	"calm":         CategoryCalm,
	"energetic":    CategoryEnergetic,
	"luxurious":    CategoryLuxurious,
	"romantic":     CategoryRomantic,
	"professional": CategoryProfessional,
	"playful":      CategoryPlayful,
	"elegant":      CategoryElegant,
}
