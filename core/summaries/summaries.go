// Package summaries builds natural-language narratives of completed tasks
// by delegating text generation to an external provider.
package summaries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jrazmi/taskflow/sdk/logger"
)

// Fallback strings returned without contacting the provider.
const (
	EmptyDayFallback  = "No tasks were completed today. Take some time to plan for tomorrow!"
	WeeklyUnavailable = "Week summary unavailable"
)

// ErrNoSummaries is returned when a weekly summary is requested with no
// daily summaries to work from.
var ErrNoSummaries = errors.New("no daily summaries to summarize")

// TextGenerator produces text for a prompt. Implemented by the gemini
// client; mocked in tests.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// CompletedTask is one finished task fed into a daily summary.
type CompletedTask struct {
	Title       string
	Description string
	Category    string
	Priority    string
}

// DayLog is the completed-task record for a single date.
type DayLog struct {
	Date           string
	CompletedTasks []CompletedTask
}

// DailySummary is a previously generated daily narrative, input to the
// weekly summary.
type DailySummary struct {
	Date      string
	TaskCount int
	Summary   string
}

// Summarizer generates daily and weekly narratives.
type Summarizer struct {
	log       *logger.Logger
	generator TextGenerator
}

// NewSummarizer creates a Summarizer backed by the given generator.
func NewSummarizer(log *logger.Logger, generator TextGenerator) *Summarizer {
	return &Summarizer{
		log:       log,
		generator: generator,
	}
}

// Daily produces a short encouraging narrative of the day's completed
// tasks. An empty day returns a fixed fallback without contacting the
// provider.
func (s *Summarizer) Daily(ctx context.Context, day DayLog) (string, error) {
	if len(day.CompletedTasks) == 0 {
		return EmptyDayFallback, nil
	}

	prompt := buildDailyPrompt(day)

	summary, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate daily summary: %w", err)
	}
	if summary == "" {
		return "", fmt.Errorf("generate daily summary: empty result")
	}

	return summary, nil
}

// Weekly produces a longer narrative with trend observations across the
// given ordered daily summaries. An empty provider result degrades to a
// fixed unavailable string.
func (s *Summarizer) Weekly(ctx context.Context, daily []DailySummary) (string, error) {
	if len(daily) == 0 {
		return "", ErrNoSummaries
	}

	prompt := buildWeeklyPrompt(daily)

	summary, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate weekly summary: %w", err)
	}
	if summary == "" {
		return WeeklyUnavailable, nil
	}

	return summary, nil
}

func buildDailyPrompt(day DayLog) string {
	var tasks strings.Builder
	for i, task := range day.CompletedTasks {
		tasks.WriteString(fmt.Sprintf("%d. %s", i+1, task.Title))
		if task.Description != "" {
			tasks.WriteString(" - " + task.Description)
		}
		tasks.WriteString(fmt.Sprintf(" (%s, %s priority)", task.Category, task.Priority))
		if i < len(day.CompletedTasks)-1 {
			tasks.WriteString("\n")
		}
	}

	return fmt.Sprintf(`You are a productivity assistant. I completed the following tasks today (%s):

%s

Please generate a positive, encouraging summary of my accomplishments today. The summary should:
- Highlight what I achieved
- Mention the variety of areas I worked on
- Be motivating and acknowledge my progress
- Be 2-3 sentences long
- Use a warm, personal tone

Focus on productivity insights and patterns if you notice any.`, day.Date, tasks.String())
}

func buildWeeklyPrompt(daily []DailySummary) string {
	var days strings.Builder
	for i, d := range daily {
		days.WriteString(fmt.Sprintf("Day %d (%s): %d tasks - %s", i+1, d.Date, d.TaskCount, d.Summary))
		if i < len(daily)-1 {
			days.WriteString("\n")
		}
	}

	return fmt.Sprintf(`Based on these daily task summaries from the past week:

%s

Please provide a weekly productivity summary that:
- Highlights overall progress and patterns
- Notes areas of consistency or growth
- Provides gentle suggestions for the upcoming week
- Maintains an encouraging tone
- Is 3-4 sentences long

Focus on productivity trends and celebrate achievements.`, days.String())
}
