package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

const summaryDivider = "══════════════════════════════════════════════════════"

// Glyph возвращает значок исхода проверки.
func Glyph(outcome string) string {
	switch outcome {
	case OutcomePassed:
		return "✅"
	case OutcomeFailed:
		return "❌"
	case OutcomeSkipped:
		return "⏭"
	default:
		return "?"
	}
}

// TextWriter выводит Report человекочитаемо: таблица проверок и итоги.
type TextWriter struct{}

// NewTextWriter создаёт TextWriter.
func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

// Write форматирует report в w.
//
// При StatusAborted выводится только строка "login failed" с причиной:
// сводка в этом случае не печатается.
func (t *TextWriter) Write(w io.Writer, report *Report) error {
	if report == nil {
		return nil
	}

	if report.DryRun && report.Plan != nil {
		return report.Plan.WriteText(w)
	}

	if report.Status == StatusAborted {
		msg := "login failed"
		if report.Error != nil && report.Error.Message != "" {
			msg += ": " + report.Error.Message
		}
		_, err := fmt.Fprintf(w, "❌ %s\n", msg)
		return err
	}

	if _, err := fmt.Fprintf(w, "\n%s\n📊 Сводка\n%s\n", summaryDivider, summaryDivider); err != nil {
		return err
	}

	if _, err := io.WriteString(w, renderChecks(report.Checks)+"\n"); err != nil {
		return err
	}

	summary := report.Summary
	if summary == nil {
		summary = Summarize(report.Checks)
	}
	if _, err := fmt.Fprintf(w, "%s Пройдено: %d   %s Провалено: %d   %s Пропущено: %d   Всего: %d\n",
		Glyph(OutcomePassed), summary.Passed,
		Glyph(OutcomeFailed), summary.Failed,
		Glyph(OutcomeSkipped), summary.Skipped,
		summary.Total); err != nil {
		return err
	}

	for _, m := range summary.KeyMetrics {
		line := fmt.Sprintf("📈 %s: %s", m.Name, m.Value)
		if m.Unit != "" {
			line += " " + m.Unit
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if report.Metadata != nil && report.Metadata.DurationMs > 0 {
		if _, err := fmt.Fprintf(w, "⏱️  Время выполнения: %s\n", formatDuration(report.Metadata.DurationMs)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%s\n", summaryDivider)
	return err
}

// renderChecks строит таблицу проверок.
func renderChecks(checks []CheckEntry) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "Проверка", "Результат", "HTTP", "Время", "Комментарий"})

	for i, c := range checks {
		status := ""
		if c.StatusCode > 0 {
			status = strconv.Itoa(c.StatusCode)
		}
		tw.AppendRow(table.Row{
			i + 1,
			c.Name,
			Glyph(c.Outcome) + " " + c.Outcome,
			status,
			formatDuration(c.DurationMs),
			comment(c),
		})
	}

	return tw.Render()
}

// comment собирает текст последней колонки: причина и детали.
func comment(c CheckEntry) string {
	parts := make([]string, 0, len(c.Details)+1)
	if c.Reason != "" {
		parts = append(parts, sanitizeValue(c.Reason))
	}

	keys := make([]string, 0, len(c.Details))
	for k := range c.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+sanitizeValue(c.Details[k]))
	}

	return strings.Join(parts, "; ")
}

// formatDuration форматирует миллисекунды: мс, секунды с десятой долей или минуты.
func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dмс", ms)
	}
	sec := ms / 1000
	if sec < 60 {
		return fmt.Sprintf("%.1fс", float64(ms)/1000)
	}
	return fmt.Sprintf("%dм %dс", sec/60, sec%60)
}
