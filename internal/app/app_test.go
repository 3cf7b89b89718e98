package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/msgstack/internal/banner"
	"github.com/cristianoliveira/msgstack/internal/journal"
	"github.com/cristianoliveira/msgstack/internal/scenario"
	"github.com/cristianoliveira/msgstack/internal/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sinkCall struct {
	op   string
	key  string
	opts banner.Options
}

type recordingSink struct {
	calls []sinkCall
}

func (s *recordingSink) Enqueue(key string, opts banner.Options) {
	s.calls = append(s.calls, sinkCall{op: "enqueue", key: key, opts: opts})
}
func (s *recordingSink) Dismiss(key string)  { s.calls = append(s.calls, sinkCall{op: "dismiss", key: key}) }
func (s *recordingSink) DismissAll()         { s.calls = append(s.calls, sinkCall{op: "dismiss-all"}) }
func (s *recordingSink) Suspend(name string) { s.calls = append(s.calls, sinkCall{op: "suspend", key: name}) }
func (s *recordingSink) Resume(name string)  { s.calls = append(s.calls, sinkCall{op: "resume", key: name}) }

type fakeHost struct {
	scenario  *scenario.Scenario
	loadErr   error
	loadedArg string
	stacking  bool
	producers []tui.Producer
	runErr    error
}

func (f *fakeHost) LoadScenario(path string) (*scenario.Scenario, error) {
	f.loadedArg = path
	return f.scenario, f.loadErr
}

func (f *fakeHost) RunHost(ctx context.Context, stacking bool, producers ...tui.Producer) error {
	f.stacking = stacking
	f.producers = producers
	return f.runErr
}

func (f *fakeHost) Replay(sc *scenario.Scenario) scenario.Transcript {
	return scenario.Transcript{
		{At: 0, Text: "step enqueue a"},
		{At: 0, Text: "event enqueued a"},
		{At: 250 * time.Millisecond, Text: "event shown a"},
	}
}

func instantScenario(t *testing.T, stacking bool) *scenario.Scenario {
	t.Helper()
	sc, err := scenario.Parse([]byte(`
name = "quick"
stacking = `+map[bool]string{true: "true", false: "false"}[stacking]+`

[[steps]]
action = "enqueue"
key = "a"
title = "A"

[[steps]]
action = "dismiss"
key = "a"
`), "toml")
	require.NoError(t, err)
	return sc
}

func TestUseCaseConstructorsPanicOnNilClient(t *testing.T) {
	tests := map[string]func(){
		"cleanup": func() { NewCleanupUseCase(nil) },
		"demo":    func() { NewDemoUseCase(nil) },
		"watch":   func() { NewWatchUseCase(nil) },
		"replay":  func() { NewReplayUseCase(nil) },
		"history": func() { NewHistoryUseCase(nil) },
		"config":  func() { NewConfigUseCase(nil) },
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			assert.PanicsWithValue(t,
				"New"+strings.ToUpper(name[:1])+name[1:]+"UseCase: client dependency cannot be nil", fn)
		})
	}
}

func TestDemoPlaysScenario(t *testing.T) {
	host := &fakeHost{scenario: instantScenario(t, false)}
	err := NewDemoUseCase(host).Execute(context.Background(), DemoInput{Scenario: "quick.toml"})
	require.NoError(t, err)

	assert.Equal(t, "quick.toml", host.loadedArg)
	assert.False(t, host.stacking)
	require.Len(t, host.producers, 1)
	assert.Equal(t, "scenario quick", host.producers[0].Name)

	sink := &recordingSink{}
	require.NoError(t, host.producers[0].Run(context.Background(), sink))
	assert.Equal(t, []sinkCall{
		{op: "enqueue", key: "a", opts: banner.Options{Title: "A", Level: banner.LevelInfo}},
		{op: "dismiss", key: "a"},
	}, sink.calls)
}

func TestDemoStacking(t *testing.T) {
	host := &fakeHost{scenario: instantScenario(t, true)}
	require.NoError(t, NewDemoUseCase(host).Execute(context.Background(), DemoInput{}))
	assert.True(t, host.stacking, "scenario can turn stacking on")

	host = &fakeHost{scenario: instantScenario(t, false)}
	require.NoError(t, NewDemoUseCase(host).Execute(context.Background(), DemoInput{Stacking: true}))
	assert.True(t, host.stacking)
}

func TestDemoLoopStopsWithContext(t *testing.T) {
	host := &fakeHost{scenario: instantScenario(t, false)}
	require.NoError(t, NewDemoUseCase(host).Execute(context.Background(), DemoInput{Loop: true}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := host.producers[0].Run(ctx, &recordingSink{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDemoLoadError(t *testing.T) {
	host := &fakeHost{loadErr: os.ErrNotExist}
	err := NewDemoUseCase(host).Execute(context.Background(), DemoInput{Scenario: "x.toml"})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, host.producers)
}

func TestWatchRequiresDirectory(t *testing.T) {
	host := &fakeHost{}
	err := NewWatchUseCase(host).Execute(context.Background(), WatchInput{Dir: "  "})
	assert.Error(t, err)
	assert.Nil(t, host.producers)
}

func TestWatchProducerEnqueuesExistingFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "inbox")
	host := &fakeHost{runErr: errors.New("quit")}
	err := NewWatchUseCase(host).Execute(context.Background(), WatchInput{Dir: dir, Stacking: true})
	assert.EqualError(t, err, "quit")
	assert.True(t, host.stacking)
	require.Len(t, host.producers, 1)
	assert.Equal(t, "inbox "+dir, host.producers[0].Name)

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.toml"), []byte("title = \"Build done\"\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink := &recordingSink{}
	require.NoError(t, host.producers[0].Run(ctx, sink))
	require.Len(t, sink.calls, 1)
	assert.Equal(t, "build.toml", sink.calls[0].key)
	assert.Equal(t, "Build done", sink.calls[0].opts.Title)
}

func TestReplayWritesTranscript(t *testing.T) {
	host := &fakeHost{scenario: instantScenario(t, false)}
	var out bytes.Buffer
	require.NoError(t, NewReplayUseCase(host).Execute(ReplayInput{Scenario: "quick.toml", Output: &out}))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "# quick: 2 steps, 3 lines", lines[0])
	assert.Equal(t, "  +0.250s  event shown a", lines[3])
}

func TestReplayGrep(t *testing.T) {
	host := &fakeHost{scenario: instantScenario(t, false)}
	var out bytes.Buffer
	require.NoError(t, NewReplayUseCase(host).Execute(ReplayInput{Output: &out, Grep: "event"}))
	assert.Contains(t, out.String(), "2 lines")
	assert.NotContains(t, out.String(), "step enqueue")
}

func TestReplayErrors(t *testing.T) {
	host := &fakeHost{loadErr: scenario.ErrNoSteps}
	err := NewReplayUseCase(host).Execute(ReplayInput{Output: &bytes.Buffer{}})
	assert.ErrorIs(t, err, scenario.ErrNoSteps)

	err = NewReplayUseCase(host).Execute(ReplayInput{})
	assert.Error(t, err)
}

type fakeJournal struct {
	entries  []journal.Entry
	sessions []journal.SessionSummary
	filter   journal.Filter
	err      error
}

func (f *fakeJournal) History(ctx context.Context, filter journal.Filter) ([]journal.Entry, error) {
	f.filter = filter
	return f.entries, f.err
}

func (f *fakeJournal) Sessions(ctx context.Context) ([]journal.SessionSummary, error) {
	return f.sessions, f.err
}

func TestHistoryFiltersAndFormats(t *testing.T) {
	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	client := &fakeJournal{entries: []journal.Entry{{ID: 7, Event: "shown", Key: "a", Title: "A", Timestamp: stamp}}}
	var out bytes.Buffer

	err := NewHistoryUseCase(client).Execute(context.Background(), HistoryInput{
		Session: "s1",
		Event:   "SHOWN",
		Key:     "a",
		Since:   time.Hour,
		Limit:   5,
		Format:  "json",
		Output:  &out,
		Now:     func() time.Time { return stamp },
	})
	require.NoError(t, err)
	assert.Equal(t, journal.Filter{
		Session: "s1",
		Event:   "shown",
		Key:     "a",
		Since:   stamp.Add(-time.Hour),
		Limit:   5,
	}, client.filter)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.EqualValues(t, 7, decoded[0]["id"])
}

func TestHistoryEmpty(t *testing.T) {
	var out bytes.Buffer
	uc := NewHistoryUseCase(&fakeJournal{})
	require.NoError(t, uc.Execute(context.Background(), HistoryInput{Output: &out}))
	assert.Equal(t, "No events recorded\n", out.String())

	out.Reset()
	require.NoError(t, uc.Execute(context.Background(), HistoryInput{Output: &out, Sessions: true, Format: "table"}))
	assert.Equal(t, "No sessions recorded\n", out.String())

	out.Reset()
	require.NoError(t, uc.Execute(context.Background(), HistoryInput{Output: &out, Format: "json"}))
	assert.Equal(t, "[]\n", out.String())
}

func TestHistorySessions(t *testing.T) {
	client := &fakeJournal{sessions: []journal.SessionSummary{{Session: "abc", Events: 3}}}
	var out bytes.Buffer
	require.NoError(t, NewHistoryUseCase(client).Execute(context.Background(), HistoryInput{Output: &out, Sessions: true}))
	assert.Contains(t, out.String(), "abc  3 events")
}

func TestHistoryValidation(t *testing.T) {
	uc := NewHistoryUseCase(&fakeJournal{})
	ctx := context.Background()

	err := uc.Execute(ctx, HistoryInput{Format: "xml", Output: &bytes.Buffer{}})
	assert.ErrorContains(t, err, "invalid format")

	err = uc.Execute(ctx, HistoryInput{Limit: -1, Output: &bytes.Buffer{}})
	assert.ErrorContains(t, err, "limit")

	err = uc.Execute(ctx, HistoryInput{Since: -time.Second, Output: &bytes.Buffer{}})
	assert.ErrorContains(t, err, "since")

	err = NewHistoryUseCase(&fakeJournal{err: journal.ErrInvalidEvent}).Execute(ctx, HistoryInput{Output: &bytes.Buffer{}})
	assert.ErrorIs(t, err, journal.ErrInvalidEvent)
}

type fakeCleanupClient struct {
	days   int
	dryRun bool
	n      int64
	err    error
	called bool
}

func (f *fakeCleanupClient) CleanupJournal(ctx context.Context, days int, dryRun bool) (int64, error) {
	f.called = true
	f.days, f.dryRun = days, dryRun
	return f.n, f.err
}

func TestCleanupUsesConfigDefault(t *testing.T) {
	client := &fakeCleanupClient{n: 4}
	loaded := false
	var out bytes.Buffer
	err := NewCleanupUseCase(client).Execute(context.Background(), CleanupInput{
		Output:     &out,
		LoadConfig: func() { loaded = true },
		GetConfigInt: func(key string, def int) int {
			assert.Equal(t, "cleanup_days", key)
			return 45
		},
	})
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, 45, client.days)
	assert.Equal(t, "Starting cleanup of journal entries older than 45 days\nRemoved 4 entries\nCleanup completed\n", out.String())
}

func TestCleanupDryRun(t *testing.T) {
	client := &fakeCleanupClient{n: 2}
	var out bytes.Buffer
	require.NoError(t, NewCleanupUseCase(client).Execute(context.Background(), CleanupInput{Days: 7, DryRun: true, Output: &out}))
	assert.True(t, client.dryRun)
	assert.Contains(t, out.String(), "Would remove 2 entries")
}

func TestCleanupErrors(t *testing.T) {
	client := &fakeCleanupClient{}
	err := NewCleanupUseCase(client).Execute(context.Background(), CleanupInput{Days: -1})
	assert.EqualError(t, err, "days must be a positive integer")
	assert.False(t, client.called)

	client.err = errors.New("disk full")
	err = NewCleanupUseCase(client).Execute(context.Background(), CleanupInput{Days: 1})
	assert.EqualError(t, err, "cleanup failed: disk full")
}

type fakeConfigClient struct {
	written string
	err     error
	path    string
}

func (f *fakeConfigClient) WriteSampleConfig(path string) (string, error) {
	if path == "" {
		path = "/default/config.toml"
	}
	f.written = path
	return path, f.err
}

func (f *fakeConfigClient) ConfigValues() map[string]string {
	return map[string]string{"stacking": "false", "autodismiss": ""}
}

func (f *fakeConfigClient) ConfigPath() string { return f.path }

func TestConfigInit(t *testing.T) {
	client := &fakeConfigClient{}
	var out bytes.Buffer
	require.NoError(t, NewConfigUseCase(client).Init("", &out))
	assert.Equal(t, "Wrote /default/config.toml\n", out.String())

	client.err = errors.New("exists")
	assert.ErrorContains(t, NewConfigUseCase(client).Init("x", &out), "failed to write config")
}

func TestConfigShow(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewConfigUseCase(&fakeConfigClient{path: "/etc/msgstack.toml"}).Show(&out))
	assert.Equal(t, "# loaded from /etc/msgstack.toml\nautodismiss = \"\"\nstacking = \"false\"\n", out.String())
}
