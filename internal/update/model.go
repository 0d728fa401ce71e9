package update

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/taskpad/internal/config"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/query"
	"github.com/sandeepkv93/taskpad/internal/stats"
	"github.com/sandeepkv93/taskpad/internal/store"
)

type Mode string

const (
	ModeList    Mode = "list"
	ModeAdd     Mode = "add"
	ModeEdit    Mode = "edit"
	ModeSearch  Mode = "search"
	ModeConfirm Mode = "confirm"
	ModePalette Mode = "palette"
	ModeChart   Mode = "chart"
)

type StatusBar struct {
	Text    string
	IsError bool
}

// Editor fields in tab order.
const (
	fieldText = iota
	fieldDue
	fieldPriority
	fieldCount
)

type EditorState struct {
	TaskID   string
	Field    int
	Priority model.Priority
	Err      string
}

// ConfirmState holds a destructive action waiting for a y/n answer. run
// receives a confirmer that reports the answer.
type ConfirmState struct {
	Prompt string
	run    func(store.Confirmer) (bool, error)
	done   string
}

type CommandPaletteState struct {
	Input string
}

type Model struct {
	Mode        Mode
	Query       query.Query
	Upcoming    stats.Upcoming
	Cursor      int
	ChartCursor int
	Detailed    bool
	HelpVisible bool
	Editor      EditorState
	Confirm     ConfirmState
	Palette     CommandPaletteState
	Status      StatusBar
	Keys        KeyMap
	Quitting    bool
	LastError   error

	store       *store.Store
	ctx         context.Context
	now         func() time.Time
	logger      *log.Logger
	upcomingDay string
	prevSearch  string
	visible     []model.Task
	summary     stats.Summary
	width       int

	textInput    textinput.Model
	dueInput     textinput.Model
	searchInput  textinput.Model
	commandInput textinput.Model
	progressBar  progress.Model
	helpModel    help.Model
}

type Options struct {
	Keys   config.Keymap
	Filter model.Filter
	Sort   model.SortMode
	Now    func() time.Time
	Logger *log.Logger
}

func DefaultOptions() Options {
	cfg := config.Default()
	return Options{Keys: cfg.Keys, Filter: cfg.Filter(), Sort: cfg.Sort()}
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(st *store.Store, opts Options) Model {
	q := query.Default()
	if opts.Filter.IsValid() {
		q.Filter = opts.Filter
	}
	if opts.Sort.IsValid() {
		q.Sort = opts.Sort
	}
	m := Model{
		Mode:   ModeList,
		Query:  q,
		Keys:   NewKeyMap(config.Default().Keys),
		store:  st,
		ctx:    context.Background(),
		now:    time.Now,
		logger: opts.Logger,
		width:  100,
	}
	if opts.Keys != (config.Keymap{}) {
		m.Keys = NewKeyMap(opts.Keys)
	}
	if opts.Now != nil {
		m.now = opts.Now
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	m.initBubbleComponents()
	m.refresh()
	return m
}

func (m *Model) initBubbleComponents() {
	m.textInput = textinput.New()
	m.textInput.Prompt = ""
	m.textInput.Placeholder = "Add a task..."
	m.textInput.CharLimit = 256
	m.textInput.Width = 40

	m.dueInput = textinput.New()
	m.dueInput.Prompt = ""
	m.dueInput.Placeholder = model.DateLayout
	m.dueInput.CharLimit = len(model.DateLayout)
	m.dueInput.Width = 12

	m.searchInput = textinput.New()
	m.searchInput.Prompt = "search> "
	m.searchInput.Placeholder = "Search tasks..."
	m.searchInput.CharLimit = 128
	m.searchInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ":"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.progressBar = progress.New(progress.WithGradient("#60a5fa", "#7c3aed"), progress.WithWidth(40))
	m.helpModel = help.New()
}

// refresh recomputes the derived view state after any store or query change.
func (m *Model) refresh() {
	today := m.now()
	if day := model.FormatDate(today); day != m.upcomingDay {
		m.Upcoming = stats.NewUpcoming(today)
		m.upcomingDay = day
		m.ChartCursor = 0
	}
	tasks := m.store.Snapshot()
	m.visible = query.Visible(tasks, m.Query, today)
	m.summary = stats.Compute(tasks, today)
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.visible) {
		m.Cursor = len(m.visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if n := m.Upcoming.Len(); m.ChartCursor >= n {
		m.ChartCursor = n - 1
	}
	if m.ChartCursor < 0 {
		m.ChartCursor = 0
	}
}

func (m Model) selected() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.visible) {
		return model.Task{}, false
	}
	return m.visible[m.Cursor], true
}

// Visible returns the tasks currently on screen.
func (m Model) Visible() []model.Task {
	return m.visible
}

func (m Model) Summary() stats.Summary {
	return m.summary
}

func (m *Model) selectID(id string) {
	for i, t := range m.visible {
		if t.ID == id {
			m.Cursor = i
			return
		}
	}
}
