package occasion

// Attribute tables for context scoring. These are ordered slices, not
// maps: detection takes the first occasion whose keyword appears in the
// query, so "beach wedding" resolves to wedding.

type occasionAttrs struct {
	name       string
	keywords   []string
	colors     []string
	styles     []string
	categories []string
}

var occasionTable = []occasionAttrs{
	{
		name:       "wedding",
		keywords:   []string{"wedding", "bride", "groom", "formal", "elegant", "ceremony", "celebration"},
		colors:     []string{"white", "ivory", "cream", "pastel", "gold", "silver"},
		styles:     []string{"elegant", "formal", "sophisticated", "classic", "luxurious"},
		categories: []string{"dresses", "suits", "accessories", "jewelry"},
	},
	{
		name:       "party",
		keywords:   []string{"party", "celebration", "festive", "fun", "dance", "night out"},
		colors:     []string{"bright", "vibrant", "metallic", "sparkle", "bold"},
		styles:     []string{"trendy", "flashy", "stylish", "modern", "eye-catching"},
		categories: []string{"dresses", "shoes", "accessories", "bags"},
	},
	{
		name:       "business",
		keywords:   []string{"business", "office", "professional", "work", "corporate", "meeting"},
		colors:     []string{"black", "navy", "gray", "white", "dark blue", "charcoal"},
		styles:     []string{"professional", "formal", "classic", "conservative", "tailored"},
		categories: []string{"suits", "shirts", "blazers", "pants", "shoes"},
	},
	{
		name:       "casual",
		keywords:   []string{"casual", "everyday", "comfortable", "relaxed", "weekend"},
		colors:     []string{"any", "neutral", "denim", "earth tones"},
		styles:     []string{"casual", "comfortable", "relaxed", "simple", "laid-back"},
		categories: []string{"jeans", "t-shirts", "sneakers", "casual wear"},
	},
	{
		name:       "beach",
		keywords:   []string{"beach", "swim", "summer", "vacation", "resort", "tropical"},
		colors:     []string{"bright", "tropical", "white", "blue", "coral", "turquoise"},
		styles:     []string{"casual", "breezy", "light", "summery", "resort"},
		categories: []string{"swimwear", "sandals", "sunglasses", "beach wear", "hats"},
	},
	{
		name:       "sport",
		keywords:   []string{"sport", "athletic", "gym", "workout", "running", "training", "fitness"},
		colors:     []string{"any", "bright", "neon", "performance"},
		styles:     []string{"athletic", "performance", "sporty", "active", "functional"},
		categories: []string{"sportswear", "sneakers", "athletic wear", "activewear"},
	},
	{
		name:       "date",
		keywords:   []string{"date", "romantic", "dinner", "evening", "special"},
		colors:     []string{"red", "pink", "black", "romantic", "soft"},
		styles:     []string{"romantic", "elegant", "stylish", "attractive", "chic"},
		categories: []string{"dresses", "shoes", "accessories", "perfume"},
	},
	{
		name:       "interview",
		keywords:   []string{"interview", "professional", "job", "formal", "first impression"},
		colors:     []string{"navy", "black", "gray", "white", "conservative"},
		styles:     []string{"professional", "conservative", "polished", "formal", "classic"},
		categories: []string{"suits", "shirts", "dress shoes", "professional wear"},
	},
	{
		name:       "festival",
		keywords:   []string{"festival", "concert", "music", "outdoor", "bohemian"},
		colors:     []string{"bright", "colorful", "bold", "eclectic", "vibrant"},
		styles:     []string{"bohemian", "eclectic", "trendy", "casual", "artistic"},
		categories: []string{"casual wear", "accessories", "boots", "hats"},
	},
}

type moodAttrs struct {
	name     string
	keywords []string
	colors   []string
	styles   []string
}

var moodTable = []moodAttrs{
	{
		name:     "confident",
		keywords: []string{"bold", "statement", "powerful", "strong", "striking"},
		colors:   []string{"red", "black", "bold", "deep"},
		styles:   []string{"bold", "powerful", "statement", "striking"},
	},
	{
		name:     "relaxed",
		keywords: []string{"comfortable", "casual", "soft", "easy", "laid-back"},
		colors:   []string{"soft", "neutral", "pastel", "earth tones"},
		styles:   []string{"comfortable", "relaxed", "casual", "easy"},
	},
	{
		name:     "elegant",
		keywords: []string{"elegant", "sophisticated", "refined", "graceful", "classy"},
		colors:   []string{"black", "white", "navy", "neutral", "subtle"},
		styles:   []string{"elegant", "sophisticated", "refined", "classic"},
	},
	{
		name:     "playful",
		keywords: []string{"fun", "playful", "colorful", "quirky", "cheerful"},
		colors:   []string{"bright", "colorful", "vibrant", "fun"},
		styles:   []string{"playful", "fun", "trendy", "quirky"},
	},
	{
		name:     "professional",
		keywords: []string{"professional", "polished", "formal", "business", "tailored"},
		colors:   []string{"navy", "gray", "black", "white", "conservative"},
		styles:   []string{"professional", "polished", "formal", "tailored"},
	},
	{
		name:     "romantic",
		keywords: []string{"romantic", "soft", "feminine", "delicate", "lovely"},
		colors:   []string{"pink", "red", "soft", "pastel", "floral"},
		styles:   []string{"romantic", "feminine", "soft", "delicate"},
	},
	{
		name:     "energetic",
		keywords: []string{"energetic", "active", "dynamic", "sporty", "vibrant"},
		colors:   []string{"bright", "neon", "vibrant", "bold"},
		styles:   []string{"sporty", "active", "dynamic", "modern"},
	},
}

type seasonAttrs struct {
	name     string
	keywords []string
	colors   []string
}

var seasonTable = []seasonAttrs{
	{
		name:     "spring",
		keywords: []string{"spring", "light", "fresh", "blossom", "renewal"},
		colors:   []string{"pastel", "light", "fresh", "floral", "green", "pink"},
	},
	{
		name:     "summer",
		keywords: []string{"summer", "hot", "sunny", "bright", "vacation"},
		colors:   []string{"bright", "white", "light", "tropical", "vibrant"},
	},
	{
		name:     "fall",
		keywords: []string{"fall", "autumn", "warm", "cozy", "harvest"},
		colors:   []string{"orange", "brown", "burgundy", "earth tones", "warm"},
	},
	{
		name:     "winter",
		keywords: []string{"winter", "cold", "warm", "cozy", "holiday"},
		colors:   []string{"dark", "deep", "rich", "jewel tones", "winter white"},
	},
}

var (
	eveningWords   = []string{"evening", "night", "dinner"}
	morningWords   = []string{"morning", "breakfast"}
	afternoonWords = []string{"afternoon", "lunch"}

	beachWords   = []string{"beach", "seaside", "coastal"}
	outdoorWords = []string{"outdoor", "outside"}
	indoorWords  = []string{"indoor", "inside"}
)
