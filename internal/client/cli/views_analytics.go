package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

const barWidth = 30

// bar draws n scaled against top as a run of '#'.
func bar(n, top int) string {
	if top <= 0 || n <= 0 {
		return ""
	}
	w := n * barWidth / top
	if w == 0 {
		w = 1
	}
	return strings.Repeat("#", w)
}

func (a *App) viewAnalytics(ctx context.Context, _ Params) error {
	dash, ins, err := a.Analytics.Overview(ctx)
	if err != nil {
		a.fail(ctx, "Failed to load analytics", err)
	}
	if dash != nil {
		a.printDashboard(dash)
	}
	if ins != nil {
		a.printInsights(ins)
	}
	return nil
}

func (a *App) printDashboard(d *models.Dashboard) {
	t := newTable("METRIC", "VALUE")
	t.AddRow("Total notes", d.TotalNotes)
	t.AddRow("Notes this month", d.RecentNotes)
	t.AddRow("Notes this week", d.WeeklyNotes)
	t.AddRow("Total words", d.TotalWords)
	t.AddRow("Average words per note", fmt.Sprintf("%.0f", d.AvgWordsPerNote))
	t.AddRow("Writing streak", plural(d.WritingStreak, "day"))
	if d.MostProductiveDay != "" {
		t.AddRow("Most productive day", d.MostProductiveDay)
	}
	a.printf("%s\n\n", t)

	if len(d.MonthlyActivity) > 0 {
		top := 0
		for _, m := range d.MonthlyActivity {
			top = max(top, m.Count)
		}
		t := newTable("MONTH", "NOTES", "")
		for _, m := range d.MonthlyActivity {
			t.AddRow(m.Month, m.Count, bar(m.Count, top))
		}
		a.printf("%s\n\n", t)
	}

	if len(d.WeeklyActivity) > 0 {
		top := 0
		for _, w := range d.WeeklyActivity {
			top = max(top, w.Count)
		}
		t := newTable("DAY", "NOTES", "")
		for _, w := range d.WeeklyActivity {
			t.AddRow(w.Day, w.Count, bar(w.Count, top))
		}
		a.printf("%s\n\n", t)
	}
}

func (a *App) printInsights(ins *models.Insights) {
	if len(ins.MostUsedWords) > 0 {
		t := newTable("WORD", "USES")
		for _, w := range ins.MostUsedWords {
			t.AddRow(w.Word, w.Count)
		}
		a.printf("%s\n\n", t)
	}

	a.printf("Peak writing hour: %02d:00\n", ins.WritingPatterns.PeakWritingHour)
	dist := ins.ContentInsights.EntryLengthDistribution
	a.printf("Entry length: %d short, %d medium, %d long\n", dist.Short, dist.Medium, dist.Long)
}
