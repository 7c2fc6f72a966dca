// Package testutil содержит вспомогательные функции для тестов.
package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// CaptureStdout выполняет fn с перехваченным os.Stdout и возвращает вывод.
// Тесты, использующие его, не должны вызывать t.Parallel().
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	out, _ := CaptureExit(t, func() int {
		fn()
		return 0
	})
	return out
}

// CaptureExit выполняет fn с перехваченным os.Stdout и возвращает вывод
// вместе с кодом, который вернула fn. Удобно для run() из main.
func CaptureExit(t *testing.T, fn func() int) (string, int) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err, "не удалось создать pipe для stdout")

	// Чтение идёт параллельно: большой отчёт не помещается в буфер pipe.
	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() {
		_, copyErr := io.Copy(&buf, r)
		done <- copyErr
	}()

	os.Stdout = w
	code := func() int {
		defer func() { os.Stdout = oldStdout }()
		return fn()
	}()

	_ = w.Close() //nolint:errcheck // test helper pipe close
	require.NoError(t, <-done, "не удалось прочитать stdout")
	_ = r.Close() //nolint:errcheck // test helper pipe close

	return buf.String(), code
}
