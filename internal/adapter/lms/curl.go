package lms

import (
	"net/http"
	"sort"
	"strings"

	"github.com/Kargones/api-smoke/internal/pkg/urlutil"
)

// renderCurl строит команду curl, воспроизводящую запрос.
// Токен в Authorization и секреты в теле маскируются.
func renderCurl(method, rawURL string, header http.Header, body []byte) string {
	var b strings.Builder
	b.WriteString("curl -sS -X ")
	b.WriteString(method)
	b.WriteString(" ")
	b.WriteString(shellQuote(urlutil.RedactURL(rawURL)))

	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := header.Get(name)
		if strings.EqualFold(name, "Authorization") {
			value = maskAuthorization(value)
		}
		b.WriteString(" -H ")
		b.WriteString(shellQuote(name + ": " + value))
	}

	if len(body) > 0 {
		b.WriteString(" --data ")
		b.WriteString(shellQuote(string(maskJSON(body, false))))
	}
	return b.String()
}

func maskAuthorization(value string) string {
	const bearer = "Bearer "
	if strings.HasPrefix(value, bearer) {
		return bearer + urlutil.MaskToken(strings.TrimPrefix(value, bearer))
	}
	return "***"
}

// shellQuote заключает s в одинарные кавычки для POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
