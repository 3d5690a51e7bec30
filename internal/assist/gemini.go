package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nkarstens/geojourney/internal/domain"
	"github.com/nkarstens/geojourney/internal/metrics"
)

// Gemini calls a hosted generateContent API and implements all four assist
// interfaces. One request is in flight per user action; failures surface to
// the caller without retries.
type Gemini struct {
	client *resty.Client
	model  string
}

// NewGemini constructs the client. baseURL is the API root (e.g.
// "https://generativelanguage.googleapis.com"); model names the hosted model
// to query.
func NewGemini(baseURL, apiKey, model string) *Gemini {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", apiKey).
		SetTimeout(60 * time.Second)

	return &Gemini{client: c, model: model}
}

// generateRequest / generateResponse structs for JSON binding

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate sends one prompt and returns the model's raw text answer.
// asJSON asks the API to constrain the answer to a JSON document.
func (g *Gemini) generate(ctx context.Context, prompt string, asJSON bool) (string, error) {
	req := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}
	if asJSON {
		req.GenerationConfig = &generationConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(&req).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", g.model))
	if err != nil {
		return "", fmt.Errorf("assist: model request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("assist: model status %d: %s", resp.StatusCode(), resp.String())
	}

	var gr generateResponse
	if err := json.Unmarshal(resp.Body(), &gr); err != nil {
		return "", fmt.Errorf("assist: decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("assist: empty model response")
	}
	return strings.TrimSpace(gr.Candidates[0].Content.Parts[0].Text), nil
}

// DetectMode classifies a coordinate path. Paths with fewer than two points
// are UNKNOWN without a call. Failures return ModeUnknown with the error.
func (g *Gemini) DetectMode(ctx context.Context, path []domain.Coordinates) (domain.TransportMode, error) {
	if len(path) < 2 {
		return domain.ModeUnknown, nil
	}

	sampled := samplePath(path)
	points := make([]string, 0, len(sampled))
	for _, p := range sampled {
		points = append(points, fmt.Sprintf("lat:%.5f,lng:%.5f,t:%d", p.Lat, p.Lng, p.Timestamp))
	}

	prompt := fmt.Sprintf(
		"Analyze the following sequence of GPS coordinates (latitude, longitude, timestamp) "+
			"to determine the most likely mode of transport. Consider the speed, pauses, and "+
			"overall path pattern. The data is: %s. Respond with JSON of the form "+
			`{"mode": "..."} where mode is one of: WALKING, BIKING, DRIVING, TRANSIT, `+
			"or UNKNOWN if uncertain.",
		strings.Join(points, "; "),
	)

	text, err := g.generate(ctx, prompt, true)
	if err != nil {
		return domain.ModeUnknown, err
	}

	var out struct {
		Mode string `json:"mode"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return domain.ModeUnknown, fmt.Errorf("assist: parse mode answer: %w", err)
	}
	// An answer outside the fixed mode set degrades to UNKNOWN, not an error.
	return domain.ParseTransportMode(out.Mode), nil
}

// ExtractExpense parses expense details out of free text. The model's answer
// is validated field by field; anything incomplete is a descriptive error so
// the user can fix the input or enter the expense manually.
func (g *Gemini) ExtractExpense(ctx context.Context, text string) (ExtractedExpense, error) {
	categories := make([]string, 0, len(domain.AllCategories))
	for _, c := range domain.AllCategories {
		categories = append(categories, string(c))
	}

	prompt := fmt.Sprintf(
		"Analyze the following text to extract expense details. The text could be from a "+
			"receipt, an online payment confirmation, or a booking message. Identify the "+
			"amount, currency, a short description, and categorize it into one of the "+
			"following: %s.\n\nRespond with JSON of the form "+
			`{"amount": 0, "currency": "", "description": "", "category": ""}.`+
			"\n\nText to analyze: %q",
		strings.Join(categories, ", "), text,
	)

	answer, err := g.generate(ctx, prompt, true)
	if err != nil {
		return ExtractedExpense{}, fmt.Errorf("failed to parse expense from text: %w", err)
	}

	var out ExtractedExpense
	if err := json.Unmarshal([]byte(answer), &out); err != nil {
		return ExtractedExpense{}, fmt.Errorf("failed to parse expense from text: %w", err)
	}
	if out.Amount <= 0 || out.Currency == "" || out.Description == "" || !out.Category.Valid() {
		return ExtractedExpense{}, fmt.Errorf("failed to parse expense from text: model answer incomplete")
	}
	return out, nil
}

// SuggestTrips asks for three personalized future-trip suggestions built
// from summary lines over the user's history, never the raw data.
func (g *Gemini) SuggestTrips(ctx context.Context, trips []domain.Trip, expenses []domain.Expense) ([]domain.Suggestion, error) {
	modes := make([]string, 0)
	for mode := range metrics.ModeDistribution(trips) {
		modes = append(modes, string(mode))
	}

	days := make([]string, 0)
	dayNames := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for i, n := range metrics.TripsByDay(trips) {
		if n > 0 {
			days = append(days, dayNames[i])
		}
	}

	hours := make([]string, 0)
	for h, n := range metrics.PeakHours(trips) {
		if n > 0 {
			hours = append(hours, fmt.Sprintf("%02d:00", h))
		}
	}

	seen := make(map[domain.ExpenseCategory]bool)
	categories := make([]string, 0)
	for _, e := range expenses {
		if !seen[e.Category] {
			seen[e.Category] = true
			categories = append(categories, string(e.Category))
		}
	}

	prompt := fmt.Sprintf(
		"Based on the user's travel history and expenses, suggest 3 personalized future trips. "+
			"For each suggestion, provide a title, a brief description, an estimated total budget "+
			"summary string, a detailed budget breakdown (e.g., for transport, food, lodging), the "+
			"likely transport mode (WALKING/BIKING/DRIVING/TRANSIT/UNKNOWN or MULTIPLE), a short "+
			"reason why the user might like it based on their history, and a relevant image URL "+
			"from a service like picsum.photos.\n\n"+
			"User's Trips Summary:\n"+
			"- They have taken %d trips.\n"+
			"- Common transport modes: %s.\n"+
			"- Trips often happen on these days: %s.\n"+
			"- Trips often start around these hours: %s.\n\n"+
			"User's Expenses Summary:\n"+
			"- They have logged %d expenses.\n"+
			"- They spend on categories like: %s.\n\n"+
			"Respond with a JSON array of objects with keys: title, description, estimatedBudget, "+
			"budgetDetails (array of {item, cost}), transportMode, reason, imageUrl.",
		len(trips), strings.Join(modes, ", "), strings.Join(days, ", "),
		strings.Join(hours, ", "), len(expenses), strings.Join(categories, ", "),
	)

	answer, err := g.generate(ctx, prompt, true)
	if err != nil {
		return nil, fmt.Errorf("could not generate trip suggestions: %w", err)
	}

	var suggestions []domain.Suggestion
	if err := json.Unmarshal([]byte(answer), &suggestions); err != nil {
		return nil, fmt.Errorf("could not generate trip suggestions: %w", err)
	}
	return suggestions, nil
}

// Insights asks for a short free-text analysis of the aggregate trip data.
func (g *Gemini) Insights(ctx context.Context, trips []domain.Trip) (string, error) {
	dist, _ := json.Marshal(metrics.ModeDistribution(trips))
	hours, _ := json.Marshal(metrics.PeakHours(trips))
	days, _ := json.Marshal(metrics.TripsByDay(trips))

	prompt := fmt.Sprintf(
		"Analyze the following trip data summary and generate a few concise, actionable "+
			"insights for a transport planner or researcher. Focus on patterns, anomalies, and "+
			"potential recommendations.\n\n"+
			"Data Summary:\n"+
			"- Total Trips: %d\n"+
			"- Transport Mode Distribution: %s\n"+
			"- Peak Travel Times (by hour): %s\n"+
			"- Trips by Day of the Week: %s\n\n"+
			"Based on this data, what are the key takeaways? Keep the insights to 2-3 bullet points.",
		len(trips), dist, hours, days,
	)

	answer, err := g.generate(ctx, prompt, false)
	if err != nil {
		return "", fmt.Errorf("failed to generate insights: %w", err)
	}
	return answer, nil
}

// compile-time checks: Gemini implements every assist interface.
var (
	_ ModeDetector     = (*Gemini)(nil)
	_ ExpenseExtractor = (*Gemini)(nil)
	_ TripSuggester    = (*Gemini)(nil)
	_ InsightGenerator = (*Gemini)(nil)
)
