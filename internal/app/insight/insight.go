// Package insight generates motivational feedback and habit analysis from the
// user's stats through an LLM. Everything here is best-effort presentation:
// a failed or malformed AI response degrades to a deterministic fallback,
// never to an error the caller has to handle. The engagement engine's rules
// are never delegated to the AI.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/studyflow-app/studyflow/internal/domain"
	"github.com/studyflow-app/studyflow/internal/infra/metrics"
)

// ChatClient is the text-generation dependency. infra/openai implements it.
type ChatClient interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// Service produces insights. A nil client is allowed and always falls back.
type Service struct {
	client ChatClient
}

// NewService creates an insight service. client may be nil.
func NewService(client ChatClient) *Service {
	return &Service{client: client}
}

const systemPrompt = "You are a personal coach for studying, productivity and personal development. " +
	"Be motivational, empathetic and practical."

// Motivation returns a short motivational message for the given stats.
// Always returns a usable string.
func (s *Service) Motivation(ctx context.Context, stats domain.UserStats) string {
	fallback := fallbackMotivation(stats)
	if s.client == nil {
		metrics.InsightRequests.WithLabelValues("fallback").Inc()
		return fallback
	}

	prompt := fmt.Sprintf(
		"The user is at level %d with %d XP, a current streak of %d days (longest %d) "+
			"and %d total study minutes. Write one short motivational message (max 2 sentences).",
		stats.Level, stats.TotalXP, stats.CurrentStreak, stats.LongestStreak, stats.TotalMinutes)

	text, err := s.client.Chat(ctx, systemPrompt, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			log.Printf("insight: motivation request failed: %v (using fallback)", err)
		}
		metrics.InsightRequests.WithLabelValues("fallback").Inc()
		return fallback
	}
	metrics.InsightRequests.WithLabelValues("ok").Inc()
	return strings.TrimSpace(text)
}

// Insight is one analysis finding.
type Insight struct {
	Type     string `json:"type"` // positive | suggestion | warning | motivation
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"` // high | medium | low
}

// Analysis is the structured payload the habit analysis asks the model for.
type Analysis struct {
	Insights     []Insight `json:"insights"`
	Suggestions  []string  `json:"suggestions"`
	Motivation   string    `json:"motivation"`
	Score        int       `json:"score"`
	Strengths    []string  `json:"strengths"`
	Improvements []string  `json:"improvements"`
}

// Analyze asks the model for a structured analysis of the user's habits,
// goals and study stats. Malformed or absent responses degrade to a
// deterministic fallback built from the stats alone.
func (s *Service) Analyze(ctx context.Context, habits []domain.Habit, goals []domain.Goal, stats domain.UserStats) Analysis {
	fallback := fallbackAnalysis(habits, goals, stats)
	if s.client == nil {
		metrics.InsightRequests.WithLabelValues("fallback").Inc()
		return fallback
	}

	payload, err := json.Marshal(map[string]any{
		"habits": habits,
		"goals":  goals,
		"stats":  stats,
	})
	if err != nil {
		metrics.InsightRequests.WithLabelValues("fallback").Inc()
		return fallback
	}

	prompt := fmt.Sprintf(
		"Analyze this user data and reply with ONLY a JSON object of the form "+
			`{"insights":[{"type":"positive|suggestion|warning|motivation","title":"","message":"","priority":"high|medium|low"}],`+
			`"suggestions":[""],"motivation":"","score":0,"strengths":[""],"improvements":[""]}`+
			"\n\nDATA:\n%s", payload)

	text, err := s.client.Chat(ctx, systemPrompt, prompt)
	if err != nil {
		log.Printf("insight: analysis request failed: %v (using fallback)", err)
		metrics.InsightRequests.WithLabelValues("fallback").Inc()
		return fallback
	}

	analysis, ok := parseAnalysis(text)
	if !ok {
		log.Printf("insight: analysis response not parseable (using fallback)")
		metrics.InsightRequests.WithLabelValues("fallback").Inc()
		return fallback
	}
	metrics.InsightRequests.WithLabelValues("ok").Inc()
	return analysis
}

// parseAnalysis extracts the JSON object from a model response, tolerating
// markdown fences and leading prose.
func parseAnalysis(text string) (Analysis, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Analysis{}, false
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(text[start:end+1]), &analysis); err != nil {
		return Analysis{}, false
	}
	if len(analysis.Insights) == 0 && analysis.Motivation == "" {
		return Analysis{}, false // Parsed but empty — treat as malformed
	}
	if analysis.Score < 0 {
		analysis.Score = 0
	}
	if analysis.Score > 100 {
		analysis.Score = 100
	}
	return analysis, true
}

// ─── Fallbacks ──────────────────────────────────────────────────────────────

func fallbackMotivation(stats domain.UserStats) string {
	switch {
	case stats.CurrentStreak >= 7:
		return fmt.Sprintf("A %d-day streak — that is real discipline. Keep the chain going!", stats.CurrentStreak)
	case stats.CurrentStreak >= 2:
		return fmt.Sprintf("%d days in a row. One more session today keeps the streak alive.", stats.CurrentStreak)
	case stats.TotalMinutes > 0:
		return "Every minute of study counts. Log a session today and start a new streak."
	default:
		return "Your journey starts with a single session. Log your first one today!"
	}
}

func fallbackAnalysis(habits []domain.Habit, goals []domain.Goal, stats domain.UserStats) Analysis {
	score := 40
	if stats.CurrentStreak >= 3 {
		score += 20
	}
	if stats.SessionsThisWeek >= 5 {
		score += 20
	}
	completed := 0
	for _, g := range goals {
		if g.Status == domain.GoalCompleted {
			completed++
		}
	}
	if completed > 0 {
		score += 10
	}
	if score > 100 {
		score = 100
	}

	analysis := Analysis{
		Motivation: fallbackMotivation(stats),
		Score:      score,
	}
	if stats.CurrentStreak >= 3 {
		analysis.Insights = append(analysis.Insights, Insight{
			Type:     "positive",
			Title:    "Consistent streak",
			Message:  fmt.Sprintf("You have studied %d days in a row.", stats.CurrentStreak),
			Priority: "medium",
		})
		analysis.Strengths = append(analysis.Strengths, "Consistency")
	}
	if len(habits) > 0 && stats.SessionsThisWeek == 0 {
		analysis.Insights = append(analysis.Insights, Insight{
			Type:     "warning",
			Title:    "Quiet week",
			Message:  "No study sessions logged in the last 7 days.",
			Priority: "high",
		})
		analysis.Improvements = append(analysis.Improvements, "Weekly study volume")
	}
	if len(analysis.Insights) == 0 {
		analysis.Insights = append(analysis.Insights, Insight{
			Type:     "motivation",
			Title:    "Keep going",
			Message:  "Log sessions regularly to unlock tailored insights.",
			Priority: "low",
		})
	}
	analysis.Suggestions = append(analysis.Suggestions, "Schedule a fixed daily study block.")
	return analysis
}
