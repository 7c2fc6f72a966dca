package output

import "io"

// Writer форматирует отчёт прогона.
// Реализации: JSONWriter, TextWriter.
type Writer interface {
	Write(w io.Writer, report *Report) error
}
