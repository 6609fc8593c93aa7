package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/jrazmi/taskflow/client/taskapi"
	"github.com/jrazmi/taskflow/core/summaries"
)

func init() {
	Register(&SummaryCmd{})
}

// SummaryCmd generates an AI narrative of completed work.
type SummaryCmd struct {
	weekly bool
}

func (c *SummaryCmd) Name() string      { return "summary" }
func (c *SummaryCmd) Aliases() []string { return nil }
func (c *SummaryCmd) Synopsis() string  { return "Summarize completed tasks" }
func (c *SummaryCmd) Usage() string     { return "taskflow summary [--weekly]" }

func (c *SummaryCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.weekly, "weekly", false, "")
}

func (c *SummaryCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if env.Summarizer == nil {
		fmt.Fprintln(errOut, "error: summaries need GEMINI_API_KEY to be set")
		return ExitUserError
	}

	tasks := env.Set.All()
	now := time.Now()

	if c.weekly {
		return c.runWeekly(ctx, env, tasks, now, out, errOut)
	}

	day := dayLog(tasks, now)
	text, err := env.Summarizer.Daily(ctx, day)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return ExitBackendError
	}

	fmt.Fprintln(out, text)
	return ExitOK
}

func (c *SummaryCmd) runWeekly(ctx context.Context, env *Env, tasks []taskapi.Task, now time.Time, out, errOut io.Writer) int {
	var daily []summaries.DailySummary
	for offset := 6; offset >= 0; offset-- {
		day := dayLog(tasks, now.AddDate(0, 0, -offset))
		if len(day.CompletedTasks) == 0 {
			continue
		}

		text, err := env.Summarizer.Daily(ctx, day)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return ExitBackendError
		}
		daily = append(daily, summaries.DailySummary{
			Date:      day.Date,
			TaskCount: len(day.CompletedTasks),
			Summary:   text,
		})
	}

	text, err := env.Summarizer.Weekly(ctx, daily)
	if err != nil {
		if errors.Is(err, summaries.ErrNoSummaries) {
			fmt.Fprintln(out, "nothing was completed this week")
			return ExitOK
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return ExitBackendError
	}

	fmt.Fprintln(out, text)
	return ExitOK
}

// dayLog collects the tasks completed on the given local date. The
// completion time is approximated by the task's last update.
func dayLog(tasks []taskapi.Task, day time.Time) summaries.DayLog {
	date := day.Format("2006-01-02")

	log := summaries.DayLog{Date: date}
	for _, t := range tasks {
		if !t.Completed || t.UpdatedAt.Local().Format("2006-01-02") != date {
			continue
		}
		log.CompletedTasks = append(log.CompletedTasks, summaries.CompletedTask{
			Title:       t.Title,
			Description: t.Description,
			Category:    t.Category,
			Priority:    t.Priority,
		})
	}
	return log
}
