package llm

// Price is USD per million tokens.
type Price struct {
	Input  float64
	Output float64
}

// Cost returns the USD cost of u at price p.
func (p Price) Cost(u Usage) float64 {
	return (float64(u.InputTokens)*p.Input + float64(u.OutputTokens)*p.Output) / 1e6
}

// LookupPrice returns the price for a model id or alias. ok is false for
// models not in the table, including everything routed through OpenRouter.
func LookupPrice(model string) (Price, bool) {
	for _, aliases := range []map[string]string{anthropicAliases, openaiAliases, geminiAliases} {
		if id, found := aliases[model]; found {
			model = id
			break
		}
	}
	p, ok := prices[model]
	return p, ok
}

var prices = map[string]Price{
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},
	"gpt-4o":                    {2.5, 10},
	"gpt-4o-mini":               {0.15, 0.6},
	"gemini-2.0-flash":          {0.1, 0.4},
	"gemini-2.0-pro":            {1.25, 10},
}
