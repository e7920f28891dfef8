package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathakanu/dailychime/internal/model"
	"github.com/pathakanu/dailychime/internal/settings"
)

const settingsPath = "/config/dailychime/settings.json"

type fakeScheduler struct {
	armed      []string
	armErr     map[string]error
	sounding   bool
	silenceErr error
}

func (f *fakeScheduler) Arm(expr string) error {
	if err := f.armErr[expr]; err != nil {
		return err
	}
	f.armed = append(f.armed, expr)
	return nil
}

func (f *fakeScheduler) Silence() (bool, error) {
	was := f.sounding
	f.sounding = false
	return was, f.silenceErr
}

func (f *fakeScheduler) NextRun() time.Time { return time.Time{} }

type harness struct {
	fs    afero.Fs
	sched *fakeScheduler
	out   *bytes.Buffer
	shell *Shell
}

func newHarness(t *testing.T, fs afero.Fs, input string) *harness {
	t.Helper()
	out := &bytes.Buffer{}
	sched := &fakeScheduler{}
	in := NewBasicLineInput(strings.NewReader(input), out)
	sh := New(in, out, settings.New(fs, settingsPath), sched, log.New(io.Discard, "", 0))
	return &harness{fs: fs, sched: sched, out: out, shell: sh}
}

func writeSettings(t *testing.T, fs afero.Fs, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(content), 0o644))
}

func readSettings(t *testing.T, fs afero.Fs) string {
	t.Helper()
	data, err := afero.ReadFile(fs, settingsPath)
	require.NoError(t, err)
	return string(data)
}

func TestFirstRunPersistsAndArms(t *testing.T) {
	t.Parallel()
	h := newHarness(t, afero.NewMemMapFs(), "6:30 PM\n2\n")

	require.NoError(t, h.shell.Start())
	require.NoError(t, h.shell.Run(context.Background()))

	cfg, err := settings.New(h.fs, settingsPath).Load()
	require.NoError(t, err)
	assert.Equal(t, model.ReminderConfig{Time: "6:30 PM", CronExpression: "0 30 18 * * *"}, cfg)
	assert.Equal(t, []string{"0 30 18 * * *"}, h.sched.armed)
	assert.Contains(t, h.out.String(), "Reminder set for 6:30 PM every day.")
}

func TestFirstRunRepromptsOnInvalidTime(t *testing.T) {
	t.Parallel()
	h := newHarness(t, afero.NewMemMapFs(), "13:00 PM\nsoon\n8:70 AM\n7:15 am\n")

	require.NoError(t, h.shell.Start())

	assert.Equal(t, []string{"0 15 7 * * *"}, h.sched.armed)
	assert.Equal(t, 3, strings.Count(h.out.String(), "invalid time"))
	assert.Equal(t, "7:15 am", h.shell.Current().Time)
}

func TestFirstRunSaveFailureStillArms(t *testing.T) {
	t.Parallel()
	h := newHarness(t, afero.NewReadOnlyFs(afero.NewMemMapFs()), "9:00 PM\n")

	require.NoError(t, h.shell.Start())
	assert.Equal(t, []string{"0 0 21 * * *"}, h.sched.armed)
	assert.Contains(t, h.out.String(), "Could not save settings")
}

func TestFirstRunInputClosed(t *testing.T) {
	t.Parallel()
	h := newHarness(t, afero.NewMemMapFs(), "")

	err := h.shell.Start()
	assert.True(t, IsQuit(err))
	assert.Empty(t, h.sched.armed)
}

func TestStartArmsStoredSchedule(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{"time":"7:00 AM","cronExpression":"0 0 7 * * *"}`)
	h := newHarness(t, fs, "")

	require.NoError(t, h.shell.Start())
	assert.Equal(t, []string{"0 0 7 * * *"}, h.sched.armed)
	assert.Equal(t, "7:00 AM", h.shell.Current().Time)
}

func TestDeclineChangeKeepsFileAndJob(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	original := `{"time":"7:00 AM","cronExpression":"0 0 7 * * *"}`
	writeSettings(t, fs, original)
	h := newHarness(t, fs, "1\nN\n2\n")

	require.NoError(t, h.shell.Start())
	require.NoError(t, h.shell.Run(context.Background()))

	assert.Equal(t, original, readSettings(t, fs))
	assert.Equal(t, []string{"0 0 7 * * *"}, h.sched.armed)
	out := h.out.String()
	assert.Contains(t, out, "Reminder time: 7:00 AM")
	assert.Contains(t, out, "0 0 7 * * *")
	assert.Contains(t, out, "Next reminder: ")
	assert.Contains(t, out, "Goodbye.")
}

func TestAcceptChangeRewritesAndRearms(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{"time":"7:00 AM","cronExpression":"0 0 7 * * *"}`)
	h := newHarness(t, fs, "1\ny\n25:00\n9:45 PM\n2\n")

	require.NoError(t, h.shell.Start())
	require.NoError(t, h.shell.Run(context.Background()))

	cfg, err := settings.New(fs, settingsPath).Load()
	require.NoError(t, err)
	assert.Equal(t, model.ReminderConfig{Time: "9:45 PM", CronExpression: "0 45 21 * * *"}, cfg)
	assert.Equal(t, []string{"0 0 7 * * *", "0 45 21 * * *"}, h.sched.armed)
	assert.Equal(t, "9:45 PM", h.shell.Current().Time)
}

func TestChangeSaveFailureKeepsPreviousSchedule(t *testing.T) {
	t.Parallel()
	base := afero.NewMemMapFs()
	writeSettings(t, base, `{"time":"7:00 AM","cronExpression":"0 0 7 * * *"}`)
	h := newHarness(t, afero.NewReadOnlyFs(base), "1\nY\n9:45 PM\n2\n")

	require.NoError(t, h.shell.Start())
	require.NoError(t, h.shell.Run(context.Background()))

	assert.Equal(t, []string{"0 0 7 * * *"}, h.sched.armed)
	assert.Equal(t, "7:00 AM", h.shell.Current().Time)
	assert.Contains(t, h.out.String(), "Could not save settings")
	assert.Contains(t, h.out.String(), "Keeping the reminder at 7:00 AM.")
}

func TestCorruptSettingsUseDefaultAndShowMenu(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{not json`)
	h := newHarness(t, fs, "2\n")

	require.NoError(t, h.shell.Start())
	assert.Equal(t, []string{"0 0 20 * * *"}, h.sched.armed)
	assert.Equal(t, model.DefaultReminderConfig(), h.shell.Current())

	require.NoError(t, h.shell.Run(context.Background()))
	assert.Contains(t, h.out.String(), "1. Settings")
}

func TestStoredScheduleRejectedFallsBackToDefault(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{"time":"7:00 AM","cronExpression":"0 0 7 * * 1L"}`)
	h := newHarness(t, fs, "")
	h.sched.armErr = map[string]error{"0 0 7 * * 1L": errors.New("unsupported")}

	require.NoError(t, h.shell.Start())
	assert.Equal(t, []string{"0 0 20 * * *"}, h.sched.armed)
}

func TestRunUnknownChoiceAndEOF(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{"time":"7:00 AM","cronExpression":"0 0 7 * * *"}`)
	h := newHarness(t, fs, "3\n")

	require.NoError(t, h.shell.Start())
	require.NoError(t, h.shell.Run(context.Background()))
	assert.Contains(t, h.out.String(), "Please choose 1 or 2.")
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	t.Parallel()
	h := newHarness(t, afero.NewMemMapFs(), "1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, h.shell.Run(ctx))
	assert.NotContains(t, h.out.String(), "Settings")
}

func TestSilence(t *testing.T) {
	t.Parallel()
	h := newHarness(t, afero.NewMemMapFs(), "")

	h.shell.Silence()
	assert.NotContains(t, h.out.String(), "silenced")

	h.sched.sounding = true
	h.shell.Silence()
	assert.Contains(t, h.out.String(), "Reminder silenced.")
}
