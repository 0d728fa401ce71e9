package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/storage"
)

type fakeGateway struct {
	records   []storage.Record
	theme     string
	loadErr   error
	saveErr   error
	saves     int
	themeSave int
	closed    bool
}

func (f *fakeGateway) LoadTasks(context.Context) ([]storage.Record, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.records, nil
}

func (f *fakeGateway) SaveTasks(_ context.Context, records []storage.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.records = records
	return nil
}

func (f *fakeGateway) LoadTheme(context.Context) (string, error) {
	if f.theme == "" {
		return storage.DefaultTheme, nil
	}
	return f.theme, nil
}

func (f *fakeGateway) SaveTheme(_ context.Context, theme string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.themeSave++
	f.theme = theme
	return nil
}

func (f *fakeGateway) Close() error {
	f.closed = true
	return nil
}

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newStore(t *testing.T, gw *fakeGateway) *Store {
	t.Helper()
	clock := &testClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	s, err := Open(context.Background(), gw, WithClock(clock.now), WithIDFunc(counterIDs()))
	require.NoError(t, err)
	return s
}

func texts(s *Store) []string {
	out := []string{}
	for _, t := range s.Snapshot() {
		out = append(out, t.Text)
	}
	return out
}

func mustAdd(t *testing.T, s *Store, text string) model.Task {
	t.Helper()
	task, ok, err := s.Add(context.Background(), Draft{Text: text})
	require.NoError(t, err)
	require.True(t, ok)
	return task
}

func TestAddPrependsAndPersists(t *testing.T) {
	gw := &fakeGateway{}
	s := newStore(t, gw)

	mustAdd(t, s, "Buy milk")
	mustAdd(t, s, "Call mom")

	assert.Equal(t, []string{"Call mom", "Buy milk"}, texts(s))
	assert.Equal(t, 2, gw.saves)
	require.Len(t, gw.records, 2)
	assert.Equal(t, "Call mom", gw.records[0].Text)

	first := s.Snapshot()[0]
	assert.Equal(t, model.PriorityMedium, first.Priority)
	assert.False(t, first.Completed)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestAddBlankTextIsNoop(t *testing.T) {
	gw := &fakeGateway{}
	s := newStore(t, gw)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, ok, err := s.Add(context.Background(), Draft{Text: text, Priority: model.PriorityHigh})
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, gw.saves, "no-op must not write")
}

func TestAddRejectsInvalidInput(t *testing.T) {
	s := newStore(t, &fakeGateway{})
	_, ok, err := s.Add(context.Background(), Draft{Text: "x", Due: "tomorrow"})
	assert.False(t, ok)
	assert.ErrorIs(t, err, model.ErrInvalidDue)

	_, ok, err = s.Add(context.Background(), Draft{Text: "x", Priority: "urgent"})
	assert.False(t, ok)
	assert.ErrorIs(t, err, model.ErrInvalidPriority)
	assert.Equal(t, 0, s.Len())
}

func TestIDsStayUniqueAcrossMutations(t *testing.T) {
	s := newStore(t, &fakeGateway{})
	ctx := context.Background()
	seen := map[string]time.Time{}
	for i := 0; i < 20; i++ {
		task := mustAdd(t, s, fmt.Sprintf("task %d", i))
		seen[task.ID] = task.CreatedAt
		if i%3 == 0 {
			_, err := s.Remove(ctx, task.ID)
			require.NoError(t, err)
		}
		if i%4 == 0 && s.Len() > 0 {
			id := s.Snapshot()[0].ID
			text := "edited"
			_, err := s.Update(ctx, id, Patch{Text: &text})
			require.NoError(t, err)
		}
	}
	ids := map[string]bool{}
	for _, task := range s.Snapshot() {
		assert.False(t, ids[task.ID], "duplicate id %s", task.ID)
		ids[task.ID] = true
		assert.Equal(t, seen[task.ID], task.CreatedAt, "createdAt must not change")
	}
}

func TestUniqueIDRedrawsOnCollision(t *testing.T) {
	gw := &fakeGateway{records: []storage.Record{{ID: "dup", Text: "existing", Priority: "low", CreatedAt: time.Now()}}}
	calls := 0
	s, err := Open(context.Background(), gw, WithIDFunc(func() string {
		calls++
		if calls == 1 {
			return "dup"
		}
		return "fresh"
	}))
	require.NoError(t, err)
	task := mustAdd(t, s, "new")
	assert.Equal(t, "fresh", task.ID)
}

func TestUpdateReplacesMutableFields(t *testing.T) {
	s := newStore(t, &fakeGateway{})
	ctx := context.Background()
	orig := mustAdd(t, s, "Draft report")

	text, due, prio := "Final report", "2024-06-03", model.PriorityHigh
	ok, err := s.Update(ctx, orig.ID, Patch{Text: &text, Due: &due, Priority: &prio})
	require.NoError(t, err)
	require.True(t, ok)

	got, _ := s.Get(orig.ID)
	assert.Equal(t, "Final report", got.Text)
	assert.Equal(t, "2024-06-03", got.Due)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)

	clear := ""
	ok, err = s.Update(ctx, orig.ID, Patch{Due: &clear})
	require.NoError(t, err)
	require.True(t, ok)
	got, _ = s.Get(orig.ID)
	assert.False(t, got.HasDue())
}

func TestUpdateNoops(t *testing.T) {
	gw := &fakeGateway{}
	s := newStore(t, gw)
	ctx := context.Background()
	task := mustAdd(t, s, "Keep me")
	saves := gw.saves

	blank := "  "
	ok, err := s.Update(ctx, task.ID, Patch{Text: &blank})
	require.NoError(t, err)
	assert.False(t, ok)

	other := "x"
	ok, err = s.Update(ctx, "missing", Patch{Text: &other})
	require.NoError(t, err)
	assert.False(t, ok)

	got, _ := s.Get(task.ID)
	assert.Equal(t, "Keep me", got.Text)
	assert.Equal(t, saves, gw.saves)
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	s := newStore(t, &fakeGateway{})
	ctx := context.Background()
	task := mustAdd(t, s, "Flip")

	ok, err := s.ToggleCompleted(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, ok)
	got, _ := s.Get(task.ID)
	assert.True(t, got.Completed)

	_, err = s.ToggleCompleted(ctx, task.ID)
	require.NoError(t, err)
	got, _ = s.Get(task.ID)
	assert.False(t, got.Completed)

	ok, err = s.ToggleCompleted(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemoveAndClear(t *testing.T) {
	s := newStore(t, &fakeGateway{})
	ctx := context.Background()
	a := mustAdd(t, s, "A")
	mustAdd(t, s, "B")

	ok, err := s.Remove(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())

	ok, err = s.Remove(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"B"}, texts(s))

	ok, err = s.Clear(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestReorderMovesSingleItem(t *testing.T) {
	s := newStore(t, &fakeGateway{})
	for _, text := range []string{"D", "C", "B", "A"} {
		mustAdd(t, s, text)
	}
	require.Equal(t, []string{"A", "B", "C", "D"}, texts(s))
	before := map[string]bool{}
	for _, task := range s.Snapshot() {
		before[task.ID] = true
	}

	require.NoError(t, s.Reorder(context.Background(), 0, 2))
	assert.Equal(t, []string{"B", "C", "A", "D"}, texts(s))

	after := map[string]bool{}
	for _, task := range s.Snapshot() {
		after[task.ID] = true
	}
	assert.Equal(t, before, after)
}

func TestReorderOutOfRangeLeavesStore(t *testing.T) {
	gw := &fakeGateway{}
	s := newStore(t, gw)
	mustAdd(t, s, "B")
	mustAdd(t, s, "A")
	saves := gw.saves

	for _, pair := range [][2]int{{-1, 0}, {0, 2}, {2, 0}, {0, -5}} {
		err := s.Reorder(context.Background(), pair[0], pair[1])
		assert.ErrorIs(t, err, ErrInvalidIndex)
	}
	assert.Equal(t, []string{"A", "B"}, texts(s))
	assert.Equal(t, saves, gw.saves)
}

func TestConfirmationGate(t *testing.T) {
	s := newStore(t, &fakeGateway{})
	ctx := context.Background()
	task := mustAdd(t, s, "Precious")

	var asked []string
	decline := ConfirmFunc(func(prompt string) (bool, error) {
		asked = append(asked, prompt)
		return false, nil
	})
	ok, err := s.RemoveConfirmed(ctx, task.ID, decline)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.ClearConfirmed(ctx, decline)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []string{RemovePrompt, ClearPrompt}, asked)

	failing := ConfirmFunc(func(string) (bool, error) { return true, errors.New("tty closed") })
	_, err = s.RemoveConfirmed(ctx, task.ID, failing)
	assert.Error(t, err)
	assert.Equal(t, 1, s.Len())

	accept := ConfirmFunc(func(string) (bool, error) { return true, nil })
	ok, err = s.RemoveConfirmed(ctx, task.ID, accept)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestRemoveConfirmedSkipsPromptForUnknownID(t *testing.T) {
	s := newStore(t, &fakeGateway{})
	asked := false
	ok, err := s.RemoveConfirmed(context.Background(), "missing", ConfirmFunc(func(string) (bool, error) {
		asked = true
		return true, nil
	}))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, asked)
}

func TestSaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	gw := &fakeGateway{}
	s := newStore(t, gw)
	mustAdd(t, s, "saved")

	gw.saveErr = errors.New("quota exceeded")
	task, ok, err := s.Add(context.Background(), Draft{Text: "unsaved"})
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Dirty())

	_, err = s.ToggleCompleted(context.Background(), task.ID)
	assert.ErrorIs(t, err, ErrPersist)
	got, _ := s.Get(task.ID)
	assert.True(t, got.Completed)

	gw.saveErr = nil
	require.NoError(t, s.Close(context.Background()))
	assert.False(t, s.Dirty())
	assert.True(t, gw.closed)
	assert.Len(t, gw.records, 2)
}

func TestOpenSurvivesBadPersistedState(t *testing.T) {
	s, err := Open(context.Background(), &fakeGateway{loadErr: errors.New("unparseable")})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	due := "2024-06-02"
	gw := &fakeGateway{
		theme: "neon",
		records: []storage.Record{
			{ID: "a", Text: "ok", Due: &due, Priority: "high", CreatedAt: now},
			{ID: "a", Text: "dup", Priority: "high", CreatedAt: now},
			{ID: " ", Text: "no id", Priority: "high", CreatedAt: now},
			{ID: "b", Text: "  ", Priority: "high", CreatedAt: now},
			{ID: "c", Text: "bad prio", Priority: "urgent", CreatedAt: now},
			{ID: "d", Text: "fine", Priority: "low", CreatedAt: now},
		},
	}
	s, err = Open(context.Background(), gw)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok", "  ", "bad prio", "fine"}, texts(s))
	assert.Equal(t, model.ThemeLight, s.Theme())

	c, ok := s.Get("c")
	require.True(t, ok)
	assert.Equal(t, model.PriorityMedium, c.Priority)
}

func TestOpenKeepsDamagedRecordsThroughLaterSaves(t *testing.T) {
	loadedAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	created := loadedAt.Add(-time.Hour)
	badDue := "tomorrow"
	gw := &fakeGateway{records: []storage.Record{
		{ID: "abc1234", Text: "", Priority: "high", CreatedAt: created},
		{ID: "def5678", Text: "Buy milk", Priority: "", CreatedAt: created},
		{ID: "ghi9012", Text: "Call mom", Due: &badDue, Priority: "low"},
	}}
	s, err := Open(context.Background(), gw, WithClock(func() time.Time { return loadedAt }))
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	milk, _ := s.Get("def5678")
	assert.Equal(t, model.PriorityMedium, milk.Priority)
	mom, _ := s.Get("ghi9012")
	assert.Equal(t, loadedAt, mom.CreatedAt)
	assert.False(t, mom.IsOverdue(loadedAt))

	changed, err := s.ToggleCompleted(context.Background(), "def5678")
	require.NoError(t, err)
	require.True(t, changed)

	require.Len(t, gw.records, 3)
	assert.Equal(t, "abc1234", gw.records[0].ID)
	assert.Equal(t, "", gw.records[0].Text)
	require.NotNil(t, gw.records[2].Due)
	assert.Equal(t, "tomorrow", *gw.records[2].Due)

	// Damaged fields do not block edits to the others.
	p := model.PriorityHigh
	changed, err = s.Update(context.Background(), "ghi9012", Patch{Priority: &p})
	require.NoError(t, err)
	assert.True(t, changed)
	text := "Named now"
	changed, err = s.Update(context.Background(), "abc1234", Patch{Text: &text})
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestOpenNilGateway(t *testing.T) {
	_, err := Open(context.Background(), nil)
	assert.Error(t, err)
}

func TestThemePersistence(t *testing.T) {
	gw := &fakeGateway{theme: "dark"}
	s := newStore(t, gw)
	assert.Equal(t, model.ThemeDark, s.Theme())

	next, err := s.ToggleTheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, next)
	assert.Equal(t, "light", gw.theme)

	assert.ErrorIs(t, s.SetTheme(context.Background(), "sepia"), model.ErrInvalidTheme)
}

func TestResolveByPrefix(t *testing.T) {
	gw := &fakeGateway{records: []storage.Record{
		{ID: "abc123", Text: "one", Priority: "low", CreatedAt: time.Now()},
		{ID: "abd456", Text: "two", Priority: "low", CreatedAt: time.Now()},
	}}
	s, err := Open(context.Background(), gw)
	require.NoError(t, err)

	got, ok := s.Resolve("abc")
	require.True(t, ok)
	assert.Equal(t, "one", got.Text)

	_, ok = s.Resolve("ab")
	assert.False(t, ok, "ambiguous prefix")
	_, ok = s.Resolve("zzz")
	assert.False(t, ok)
	_, ok = s.Resolve("")
	assert.False(t, ok)
}

func TestScenarioRecentFirstUnderDefaultSort(t *testing.T) {
	s := newStore(t, &fakeGateway{})
	mustAdd(t, s, "Buy milk")
	mustAdd(t, s, "Call mom")
	assert.Equal(t, []string{"Call mom", "Buy milk"}, texts(s))
}
