package smoke

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Kargones/api-smoke/internal/pkg/output"
)

// printer выводит диагностику проверок по мере выполнения.
// В JSON режиме writer равен io.Discard: stdout занят отчётом.
type printer struct {
	w       io.Writer
	verbose bool
}

func (p *printer) begin(name, method, path string) {
	fmt.Fprintf(p.w, "\n▶ %s: %s %s\n", name, method, path)
}

// step печатает дополнительный запрос внутри уже начатой проверки.
func (p *printer) step(method, path string) {
	fmt.Fprintf(p.w, "   → %s %s\n", method, path)
}

func (p *printer) finish(res CheckResult) {
	if res.StatusCode > 0 {
		fmt.Fprintf(p.w, "   HTTP %d (%dмс)\n", res.StatusCode, res.Duration.Milliseconds())
	}
	if res.Body != "" {
		fmt.Fprintf(p.w, "%s\n", indent(res.Body, "   "))
	}
	if p.verbose && res.Curl != "" {
		fmt.Fprintf(p.w, "   %s\n", res.Curl)
	}

	keys := make([]string, 0, len(res.Details))
	for k := range res.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(p.w, "   %s: %s\n", k, res.Details[k])
	}

	line := fmt.Sprintf("%s %s: %s", output.Glyph(string(res.Outcome)), res.Name, res.Outcome)
	if res.Reason != "" {
		line += " (" + res.Reason + ")"
	}
	fmt.Fprintln(p.w, line)
}

func (p *printer) skip(res CheckResult) {
	fmt.Fprintf(p.w, "\n%s %s: %s (%s)\n", output.Glyph(string(res.Outcome)), res.Name, res.Outcome, res.Reason)
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
