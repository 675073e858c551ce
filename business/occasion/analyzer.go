// Package occasion extracts situational context from query text and
// scores candidates against it.
package occasion

import (
	"fmt"
	"math"
	"strings"

	"shopLens/domain"
	"shopLens/pkg/logger"
)

// Boost caps. Keyword stacking must not drown out base relevance.
const (
	maxOccasionBoost = 1.8
	maxMoodBoost     = 1.6
	maxContextBoost  = 1.3
)

type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// ParseContext extracts occasion, mood, season, time of day and location
// from a natural language query. The first matching table entry wins.
func (a *Analyzer) ParseContext(query string) domain.ContextProfile {
	queryLower := strings.ToLower(query)

	profile := domain.ContextProfile{}

	for _, occ := range occasionTable {
		if containsAny(queryLower, occ.keywords) {
			profile.Occasion = occ.name

			break
		}
	}

	for _, mood := range moodTable {
		if containsAny(queryLower, mood.keywords) {
			profile.Mood = mood.name

			break
		}
	}

	for _, season := range seasonTable {
		if containsAny(queryLower, season.keywords) {
			profile.Season = season.name

			break
		}
	}

	switch {
	case containsAny(queryLower, eveningWords):
		profile.TimeOfDay = "evening"
	case containsAny(queryLower, morningWords):
		profile.TimeOfDay = "morning"
	case containsAny(queryLower, afternoonWords):
		profile.TimeOfDay = "afternoon"
	}

	switch {
	case containsAny(queryLower, beachWords):
		profile.Location = "beach"
	case containsAny(queryLower, outdoorWords):
		profile.Location = "outdoor"
	case containsAny(queryLower, indoorWords):
		profile.Location = "indoor"
	}

	return profile
}

// Merge overlays explicit context on top of an extracted one. Explicit
// values always win.
func Merge(extracted, explicit domain.ContextProfile) domain.ContextProfile {
	merged := extracted

	if explicit.Occasion != "" {
		merged.Occasion = explicit.Occasion
	}

	if explicit.Mood != "" {
		merged.Mood = explicit.Mood
	}

	if explicit.Season != "" {
		merged.Season = explicit.Season
	}

	if explicit.TimeOfDay != "" {
		merged.TimeOfDay = explicit.TimeOfDay
	}

	if explicit.Weather != "" {
		merged.Weather = explicit.Weather
	}

	if explicit.Location != "" {
		merged.Location = explicit.Location
	}

	if len(explicit.Styles) > 0 {
		merged.Styles = explicit.Styles
	}

	return merged
}

// Normalize drops occasion and mood values that are not in the keyword
// tables. Unknown strings from the caller are logged once per request
// and treated as absent rather than rejected.
func Normalize(ctx domain.ContextProfile) domain.ContextProfile {
	if ctx.Occasion != "" {
		if _, ok := findOccasion(ctx.Occasion); !ok {
			logger.Warn("unknown occasion, ignoring", "occasion", ctx.Occasion)
			ctx.Occasion = ""
		}
	}

	if ctx.Mood != "" {
		if _, ok := findMood(ctx.Mood); !ok {
			logger.Warn("unknown mood, ignoring", "mood", ctx.Mood)
			ctx.Mood = ""
		}
	}

	return ctx
}

// Score rates how well a candidate fits the context. Each matching
// attribute group multiplies its boost; the boosts are capped and then
// applied to the base similarity, with the result capped at 1.0.
func (a *Analyzer) Score(candidate domain.Candidate, ctx domain.ContextProfile, baseScore float64) domain.OccasionScore {
	occasionBoost := 1.0
	moodBoost := 1.0
	contextBoost := 1.0

	var matched []string

	text := strings.ToLower(candidate.Title + " " + candidate.Description)
	category := strings.ToLower(candidate.Category)

	if ctx.Occasion != "" {
		if attrs, ok := findOccasion(ctx.Occasion); ok {
			if n := countMatches(text, attrs.keywords); n > 0 {
				occasionBoost *= 1.0 + float64(n)*0.1
				matched = append(matched, fmt.Sprintf("occasion_keywords(%d)", n))
			}

			if n := countMatches(text, attrs.colors); n > 0 {
				occasionBoost *= 1.0 + float64(n)*0.08
				matched = append(matched, fmt.Sprintf("occasion_colors(%d)", n))
			}

			if n := countMatches(text, attrs.styles); n > 0 {
				occasionBoost *= 1.0 + float64(n)*0.12
				matched = append(matched, fmt.Sprintf("occasion_styles(%d)", n))
			}

			for _, cat := range attrs.categories {
				if strings.Contains(category, cat) {
					occasionBoost *= 1.2
					matched = append(matched, "category_match")

					break
				}
			}
		}
	}

	if ctx.Mood != "" {
		if attrs, ok := findMood(ctx.Mood); ok {
			if n := countMatches(text, attrs.keywords); n > 0 {
				moodBoost *= 1.0 + float64(n)*0.1
				matched = append(matched, fmt.Sprintf("mood_keywords(%d)", n))
			}

			if n := countMatches(text, attrs.colors); n > 0 {
				moodBoost *= 1.0 + float64(n)*0.08
				matched = append(matched, fmt.Sprintf("mood_colors(%d)", n))
			}

			if n := countMatches(text, attrs.styles); n > 0 {
				moodBoost *= 1.0 + float64(n)*0.1
				matched = append(matched, fmt.Sprintf("mood_styles(%d)", n))
			}
		}
	}

	if ctx.Season != "" {
		if attrs, ok := findSeason(ctx.Season); ok {
			total := countMatches(text, attrs.keywords) + countMatches(text, attrs.colors)
			if total > 0 {
				contextBoost *= 1.0 + float64(total)*0.05
				matched = append(matched, fmt.Sprintf("season_match(%d)", total))
			}
		}
	}

	if ctx.TimeOfDay == "evening" && containsAny(text, []string{"evening", "formal", "elegant"}) {
		contextBoost *= 1.1
		matched = append(matched, "time_match")
	}

	if ctx.Location != "" && strings.Contains(text, ctx.Location) {
		contextBoost *= 1.1
		matched = append(matched, "location_match")
	}

	occasionBoost = math.Min(occasionBoost, maxOccasionBoost)
	moodBoost = math.Min(moodBoost, maxMoodBoost)
	contextBoost = math.Min(contextBoost, maxContextBoost)

	final := math.Min(baseScore*occasionBoost*moodBoost*contextBoost, 1.0)

	return domain.OccasionScore{
		BaseRelevance: baseScore,
		OccasionBoost: occasionBoost,
		MoodBoost:     moodBoost,
		ContextBoost:  contextBoost,
		FinalScore:    final,
		MatchTags:     matched,
		Explanation:   explanation(ctx, matched, occasionBoost, moodBoost, contextBoost),
	}
}

func explanation(ctx domain.ContextProfile, matched []string, occasionBoost, moodBoost, contextBoost float64) string {
	var parts []string

	if ctx.Occasion != "" && occasionBoost > 1.0 {
		parts = append(parts, "Perfect for "+ctx.Occasion)
	}

	if ctx.Mood != "" && moodBoost > 1.0 {
		parts = append(parts, "Matches "+ctx.Mood+" mood")
	}

	if ctx.Season != "" && contextBoost > 1.0 {
		parts = append(parts, "Great for "+ctx.Season)
	}

	if len(matched) > 3 {
		parts = append(parts, fmt.Sprintf("Strong match (%d attributes)", len(matched)))
	} else if len(matched) > 0 {
		parts = append(parts, fmt.Sprintf("Good match (%d attributes)", len(matched)))
	}

	if len(parts) == 0 {
		return "General match"
	}

	return strings.Join(parts, " • ")
}

func findOccasion(name string) (occasionAttrs, bool) {
	for _, occ := range occasionTable {
		if occ.name == name {
			return occ, true
		}
	}

	return occasionAttrs{}, false
}

func findMood(name string) (moodAttrs, bool) {
	for _, mood := range moodTable {
		if mood.name == name {
			return mood, true
		}
	}

	return moodAttrs{}, false
}

func findSeason(name string) (seasonAttrs, bool) {
	for _, season := range seasonTable {
		if season.name == name {
			return season, true
		}
	}

	return seasonAttrs{}, false
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}

	return false
}

func countMatches(text string, words []string) int {
	n := 0

	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}

	return n
}
