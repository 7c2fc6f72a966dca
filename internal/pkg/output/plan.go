package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// DryRunPlan — упорядоченный план проверок, выводимый без обращения к API.
type DryRunPlan struct {
	Command string     `json:"command"`
	Target  string     `json:"target,omitempty"`
	Steps   []PlanStep `json:"steps"`
	Summary string     `json:"summary,omitempty"`
}

// PlanStep описывает одну проверку плана.
type PlanStep struct {
	Order     int    `json:"order"`
	Operation string `json:"operation"`

	// Parameters — метод, путь и прочее (ключ-значение).
	Parameters map[string]any `json:"parameters"`

	// Requires и Produces — фикстуры, которые шаг потребляет и производит.
	Requires []string `json:"requires,omitempty"`
	Produces []string `json:"produces,omitempty"`

	Skipped    bool   `json:"skipped,omitempty"`
	SkipReason string `json:"skip_reason,omitempty"`
}

// WriteText выводит план между заголовками "=== DRY RUN ===".
func (p *DryRunPlan) WriteText(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== DRY RUN ===\n")
	fmt.Fprintf(&b, "Команда: %s\n", p.Command)
	if p.Target != "" {
		fmt.Fprintf(&b, "API: %s\n", p.Target)
	}
	fmt.Fprintf(&b, "\nПлан выполнения:\n")

	for _, step := range p.Steps {
		if step.Skipped {
			fmt.Fprintf(&b, "  %d. [SKIP] %s: %s\n", step.Order, step.Operation, step.SkipReason)
			continue
		}
		fmt.Fprintf(&b, "  %d. %s\n", step.Order, step.Operation)

		keys := make([]string, 0, len(step.Parameters))
		for k := range step.Parameters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "      %s: %s\n", k, sanitizeValue(step.Parameters[k]))
		}
		if len(step.Requires) > 0 {
			fmt.Fprintf(&b, "      requires: %s\n", strings.Join(step.Requires, ", "))
		}
		if len(step.Produces) > 0 {
			fmt.Fprintf(&b, "      produces: %s\n", strings.Join(step.Produces, ", "))
		}
	}

	if p.Summary != "" {
		fmt.Fprintf(&b, "\nИтого: %s\n", p.Summary)
	}
	fmt.Fprintf(&b, "=== END DRY RUN ===\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// sanitizeValue убирает ANSI escape-последовательности и управляющие символы,
// переносы строк и табы заменяются пробелами.
func sanitizeValue(v any) string {
	s := fmt.Sprintf("%v", v)

	var result strings.Builder
	inEscapeSeq := false
	for _, r := range s {
		if r == '\x1b' {
			inEscapeSeq = true
			continue
		}
		if inEscapeSeq {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscapeSeq = false
			}
			continue
		}

		switch {
		case r == '\n' || r == '\t':
			result.WriteRune(' ')
		case r < 32 || r == 127:
			continue
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}
