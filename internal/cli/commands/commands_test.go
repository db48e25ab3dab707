package commands

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsplit/internal/config"
	"jsplit/internal/domain"
)

func init() {
	color.NoColor = true
}

const alphaReport = `<?xml version="1.0" encoding="UTF-8"?>
<testsuite name="pkg.AlphaTest" tests="1" time="10">
    <testcase name="testOne" classname="pkg.AlphaTest" time="10"/>
</testsuite>`

const betaReport = `<?xml version="1.0" encoding="UTF-8"?>
<testsuite name="pkg.BetaTest" tests="2" time="30">
    <testcase name="testOne" classname="pkg.BetaTest" time="12"/>
    <testcase name="testTwo" classname="pkg.BetaTest" time="18"/>
</testsuite>`

// reportDir writes two valid reports and one broken report into a fresh
// working directory and returns its path.
func reportDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)

	files := map[string]string{
		"TEST-alpha.xml": alphaReport,
		"TEST-beta.xml":  betaReport,
		"TEST-bad.xml":   "not xml",
		"notes.txt":      "ignored",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func execute(t *testing.T, c *Commands, args ...string) (string, string, error) {
	t.Helper()
	root := &cobra.Command{Use: "jsplit", SilenceUsage: true, SilenceErrors: true}
	c.Register(root)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func withDB(c *Commands, db *sql.DB) {
	c.Split.openDB = func(ctx context.Context, dsn string) (*sql.DB, error) {
		return db, nil
	}
}

func TestSplitCommand_JSON(t *testing.T) {
	dir := reportDir(t)
	c := NewCommands(config.New())

	out, _, err := execute(t, c, "split", dir, "-c", "2", "-o", "json")
	require.NoError(t, err)

	var plan domain.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))

	// target 20: A fits, B is oversized, the zero letters share a group
	require.Len(t, plan.Groups, 3)
	assert.Equal(t, "A", plan.Groups[0].Keys())
	assert.Equal(t, "B", plan.Groups[1].Keys())
	assert.Equal(t, "CDEFGHIJKLMNOPQRSTUVWXYZ", plan.Groups[2].Keys())

	assert.Equal(t, 2, plan.Meta.RequestedGroups)
	assert.Equal(t, 3, plan.Meta.ActualGroups)
	assert.Equal(t, 40.0, plan.Meta.TotalSeconds)
	assert.Equal(t, 20.0, plan.Meta.TargetSeconds)
	assert.Equal(t, 2, plan.Meta.Suites)
	assert.Equal(t, 2, plan.Meta.Reports)
	assert.Equal(t, SourceReports, plan.Meta.Source)

	require.Len(t, plan.Skipped, 1)
	assert.Equal(t, filepath.Join(dir, "TEST-bad.xml"), plan.Skipped[0].Path)
}

func TestSplitCommand_Text(t *testing.T) {
	dir := reportDir(t)
	c := NewCommands(config.New())

	out, _, err := execute(t, c, "split", dir, "--groups", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Group: ABCDEFGHIJKLMNOPQRSTUVWXYZ: 40s\n - A: 10s\n - B: 30s\n - C: 0s\n")
	assert.Contains(t, out, "Total time: 40\n")
	assert.Contains(t, out, "Skipped 1 unreadable report(s):")
}

func TestSplitCommand_Only(t *testing.T) {
	dir := reportDir(t)

	tests := []struct {
		only     string
		expected string
	}{
		{only: "1", expected: "A\n"},
		{only: "2", expected: "B\n"},
		{only: "4", expected: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.only, func(t *testing.T) {
			out, errOut, err := execute(t, NewCommands(config.New()), "split", dir, "-c", "2", "--only", tt.only)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
			assert.Empty(t, errOut)
		})
	}
}

func TestSplitCommand_Filter(t *testing.T) {
	dir := reportDir(t)

	out, _, err := execute(t, NewCommands(config.New()), "split", dir, "-c", "1", "-o", "json", "-f", "*Beta*")
	require.NoError(t, err)

	var plan domain.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, 1, plan.Meta.Suites)
	assert.Equal(t, 30.0, plan.Meta.TotalSeconds)
}

func TestSplitCommand_SaveAndShow(t *testing.T) {
	dir := reportDir(t)
	metricsFile := filepath.Join(dir, "jsplit.prom")

	_, errOut, err := execute(t, NewCommands(config.New()), "split", dir, "-c", "2", "--save", "--metrics-file", metricsFile)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Plan saved to "+filepath.Join(dir, "storage", "split-plan.json"))
	assert.Contains(t, errOut, "Metrics written to "+metricsFile)

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `jsplit_group_duration_seconds{group="2"} 30`)

	out, _, err := execute(t, NewCommands(config.New()), "show", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "CDEFGHIJKLMNOPQRSTUVWXYZ")
	assert.Contains(t, out, "75.0%")
}

func TestSplitCommand_ConfigFile(t *testing.T) {
	dir := reportDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jsplit.yaml"), []byte("groups: 2\nonly: 2\n"), 0644))

	out, _, err := execute(t, NewCommands(config.New()), "split", dir)
	require.NoError(t, err)
	assert.Equal(t, "B\n", out)

	// explicit flags win over the file
	out, _, err = execute(t, NewCommands(config.New()), "split", dir, "--only", "1")
	require.NoError(t, err)
	assert.Equal(t, "A\n", out)
}

func TestSplitCommand_InvalidGroups(t *testing.T) {
	dir := reportDir(t)

	_, _, err := execute(t, NewCommands(config.New()), "split", dir, "-c", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "groups must be at least 1")
}

func TestSplitCommand_NoReports(t *testing.T) {
	chdir(t, t.TempDir())

	out, errOut, err := execute(t, NewCommands(config.New()), "split")
	require.NoError(t, err)
	assert.Contains(t, errOut, "No reports found")
	assert.Equal(t, "=======================================\nTotal time: 0\n", out)
}

func TestSplitCommand_FromHistory(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JSPLIT_HISTORY_WINDOW", "3")
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT suite_name, AVG(duration_seconds) FROM `suite_durations`")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"suite_name", "avg"}).
			AddRow("pkg.AlphaTest", 10.0).
			AddRow("pkg.ZuluTest", 10.0))
	mock.ExpectClose()

	c := NewCommands(config.New())
	withDB(c, db)

	out, _, err := execute(t, c, "split", "-c", "2", "-o", "json", "--from-history")
	require.NoError(t, err)

	var plan domain.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, SourceHistory, plan.Meta.Source)
	assert.Equal(t, 0, plan.Meta.Reports)
	require.Len(t, plan.Groups, 2)
	assert.Equal(t, "ABCDEFGHIJKLMNOPQRSTUVWXY", plan.Groups[0].Keys())
	assert.Equal(t, "Z", plan.Groups[1].Keys())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCommand(t *testing.T) {
	dir := reportDir(t)

	out, _, err := execute(t, NewCommands(config.New()), "list", dir)
	require.NoError(t, err)
	assert.Equal(t, "Found 3 report file(s):\n├── TEST-alpha.xml\n├── TEST-bad.xml\n└── TEST-beta.xml\n", out)

	out, errOut, err := execute(t, NewCommands(config.New()), "list", dir, "--suites")
	require.NoError(t, err)
	assert.Contains(t, out, "pkg.AlphaTest")
	assert.Contains(t, out, "pkg.BetaTest")
	assert.Contains(t, out, "2 SUITES")
	assert.Contains(t, errOut, "Skipped 1 unreadable report(s)")
}

func TestShowCommand_NoSavedPlan(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := execute(t, NewCommands(config.New()), "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read plan file")
}

func TestMigrateCommand(t *testing.T) {
	chdir(t, t.TempDir())
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES")).
		WithArgs("suite_durations").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS `suite_durations`")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectClose()

	c := NewCommands(config.New())
	withDB(c, db)

	out, _, err := execute(t, c, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "✓ Created table suite_durations\n", out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordCommand(t *testing.T) {
	dir := reportDir(t)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO `suite_durations`"))
	prep.ExpectExec().WithArgs(sqlmock.AnyArg(), "pkg.AlphaTest", 10.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs(sqlmock.AnyArg(), "pkg.BetaTest", 30.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()
	mock.ExpectClose()

	c := NewCommands(config.New())
	withDB(c, db)

	out, _, err := execute(t, c, "record", dir)
	require.NoError(t, err)
	assert.Regexp(t, `^✓ Recorded run [0-9a-f-]{36}: 2 suites from 2 report\(s\)\n$`, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordCommand_HistoryUnavailable(t *testing.T) {
	dir := reportDir(t)

	// no history_dsn configured, the real connector refuses
	_, _, err := execute(t, NewCommands(config.New()), "record", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history DSN is empty")
}

func TestHistoryCommand(t *testing.T) {
	chdir(t, t.TempDir())
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	at := time.Date(2024, 10, 18, 20, 40, 34, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT run_id, COUNT(*), MAX(recorded_at)")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"run_id", "count", "last_recorded"}).AddRow("run-7", 4, at))
	mock.ExpectClose()

	c := NewCommands(config.New())
	withDB(c, db)

	out, _, err := execute(t, c, "history", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "run-7")
	assert.Contains(t, out, "2024-10-18 20:40:34")
	assert.NoError(t, mock.ExpectationsWereMet())
}
