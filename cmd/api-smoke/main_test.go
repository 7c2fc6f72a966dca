package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/api-smoke/internal/adapter/lms/lmstest"
	"github.com/Kargones/api-smoke/internal/constants"
	"github.com/Kargones/api-smoke/internal/pkg/output"
	"github.com/Kargones/api-smoke/internal/pkg/testutil"
)

// isolateEnv сбрасывает переменные, влияющие на прогон.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		constants.EnvConfigPath, constants.EnvDryRun, constants.EnvVerbose,
		"SMOKE_BASE_URL", "SMOKE_OUTPUT_FORMAT", "SMOKE_LEGACY_EXIT_CODE",
		"SMOKE_LOGIN_IDENTIFIER", "SMOKE_LOGIN_PASSWORD",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	t.Setenv("SMOKE_LOG_LEVEL", "error")
}

func TestRun_Success(t *testing.T) {
	isolateEnv(t)
	srv := lmstest.NewServer(t)
	t.Setenv("SMOKE_BASE_URL", srv.BaseURL())

	out, code := testutil.CaptureExit(t, run)

	assert.Equal(t, constants.ExitOK, code)
	assert.Contains(t, out, "▶ login: POST /user/userLogin")
	assert.Contains(t, out, "count: 2")
	assert.Contains(t, out, "📊 Сводка")
	assert.NotContains(t, out, lmstest.Token)
}

func TestRun_JSON(t *testing.T) {
	isolateEnv(t)
	srv := lmstest.NewServer(t)
	t.Setenv("SMOKE_BASE_URL", srv.BaseURL())
	t.Setenv("SMOKE_OUTPUT_FORMAT", "json")

	out, code := testutil.CaptureExit(t, run)
	require.Equal(t, constants.ExitOK, code)

	var report output.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report), "stdout должен быть одним JSON документом")
	assert.Equal(t, output.StatusPassed, report.Status)
	require.NotNil(t, report.Summary)
	assert.Equal(t, 8, report.Summary.Passed)
}

func TestRun_LoginFailed(t *testing.T) {
	isolateEnv(t)
	srv := lmstest.NewServer(t)
	t.Setenv("SMOKE_BASE_URL", srv.BaseURL())
	t.Setenv("SMOKE_LOGIN_PASSWORD", "wrong")

	out, code := testutil.CaptureExit(t, run)

	assert.Equal(t, constants.ExitLoginFailed, code)
	assert.Contains(t, out, "login failed")
	assert.NotContains(t, out, "Сводка")
	assert.Equal(t, []string{"POST /user/userLogin"}, srv.Calls())
}

func TestRun_ConfigError(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SMOKE_BASE_URL", "not-a-url")

	_, code := testutil.CaptureExit(t, run)
	assert.Equal(t, constants.ExitConfigError, code)
}

func TestRun_ConfigFile(t *testing.T) {
	isolateEnv(t)
	srv := lmstest.NewServer(t)
	srv.SetCourses()

	path := filepath.Join(t.TempDir(), "smoke.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target:\n  baseUrl: "+srv.BaseURL()+"\noutput:\n  legacyExitCode: true\n"), 0o600))
	t.Setenv(constants.EnvConfigPath, path)

	out, code := testutil.CaptureExit(t, run)
	assert.Equal(t, constants.ExitOK, code, "legacyExitCode сохраняет код 0 при проваленных проверках")
	assert.Contains(t, out, "no courses found")
}

func TestRun_DryRun(t *testing.T) {
	isolateEnv(t)
	srv := lmstest.NewServer(t)
	t.Setenv("SMOKE_BASE_URL", srv.BaseURL())
	t.Setenv(constants.EnvDryRun, "true")

	out, code := testutil.CaptureExit(t, run)

	assert.Equal(t, constants.ExitOK, code)
	assert.Contains(t, out, "=== DRY RUN ===")
	assert.Empty(t, srv.Requests())
}
