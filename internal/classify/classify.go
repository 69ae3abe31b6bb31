// Package classify buckets a question into an advisory category using an
// ordered keyword rule list. The first rule with a hit wins.
package classify

import "strings"

const (
	CategoryDisease = "disease"
	CategoryWeather = "weather"
	CategoryMarket  = "market"
	CategoryFarming = "farming"
	CategoryGeneral = "general"
)

type rule struct {
	category string
	keywords []string
}

// Order matters: a question about "pest damage before the rains" is a
// disease question, not a weather one.
var rules = []rule{
	{CategoryDisease, []string{
		"disease", "pest", "fungus", "fungal", "blight", "rot", "wilt",
		"infection", "infected", "insect", "larvae", "worm", "aphid",
		"yellow leaves", "spots on", "mildew",
	}},
	{CategoryWeather, []string{
		"weather", "rain", "rainfall", "monsoon", "temperature", "humidity",
		"frost", "drought", "forecast", "storm", "hail",
	}},
	{CategoryMarket, []string{
		"price", "market", "mandi", "sell", "selling", "rate", "msp",
		"profit", "buyer",
	}},
	{CategoryFarming, []string{
		"sow", "sowing", "seed", "harvest", "irrigation", "water", "fertilizer",
		"fertiliser", "manure", "soil", "crop", "plant", "yield", "spacing",
	}},
}

// Categorize returns the first matching category for the question, or
// CategoryGeneral when nothing matches.
func Categorize(question string) string {
	text := strings.ToLower(question)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.category
			}
		}
	}
	return CategoryGeneral
}
