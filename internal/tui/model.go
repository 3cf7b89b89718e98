// Package tui hosts the message queue in a bubbletea program. The Model is the
// container the coordinator talks to: it gates the first show on the initial
// window size, plays animations on its frame ticks and renders the banners.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/msgstack/internal/animation"
	"github.com/cristianoliveira/msgstack/internal/banner"
	"github.com/cristianoliveira/msgstack/internal/errors"
	"github.com/cristianoliveira/msgstack/internal/logging"
	"github.com/cristianoliveira/msgstack/internal/messages"
	"github.com/cristianoliveira/msgstack/internal/scenario"
)

const (
	frameInterval    = time.Second / 60
	defaultStatusTTL = 5 * time.Second
	keyboardHold     = "keyboard"
)

// Options configures a Model.
type Options struct {
	Stacking      bool
	EnterDuration time.Duration
	ExitDuration  time.Duration
	// BackDelay overrides messages.BackMessageStartDelay when positive.
	BackDelay time.Duration
	StatusTTL time.Duration
	Observers []messages.Observer
	// OnSlots runs whenever the displayed snapshot changes.
	OnSlots func(messages.Slots)
	// Now starts the animation clock. Defaults to time.Now.
	Now func() time.Time
}

type onScreen struct {
	key    string
	banner *banner.Banner
}

// Model is the bubbletea model hosting the queue.
type Model struct {
	rt    *animation.Runtime
	coord *messages.AnimationCoordinator
	queue *messages.QueueManager
	sink  *scenario.QueueSink

	keys keyMap
	help help.Model

	errorHandler *errors.TUIHandler
	statusTTL    time.Duration

	width, height  int
	laidOut        bool
	afterLayout    []func()
	containerShown bool

	banners   []onScreen
	onSlots   func(messages.Slots)
	lastSlots messages.Slots
	quitting  bool
}

// NewModel creates a host with its own runtime, coordinator and queue.
func NewModel(opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.StatusTTL <= 0 {
		opts.StatusTTL = defaultStatusTTL
	}

	m := &Model{
		rt:        animation.NewRuntime(opts.Now()),
		keys:      defaultKeyMap(),
		help:      help.New(),
		statusTTL: opts.StatusTTL,
		onSlots:   opts.OnSlots,
	}
	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		logging.Debug("status message", "type", msg.Type.String(), "text", msg.Text)
	})

	m.errorHandler.SetClock(m.rt.Now)

	m.coord = messages.NewAnimationCoordinator(m, m.startAnimation)
	if opts.BackDelay > 0 {
		m.coord.SetBackMessageDelay(opts.BackDelay)
	}
	m.queue = messages.NewQueueManager(m.coord, messages.WithStacking(opts.Stacking))
	m.queue.AddObserver(banner.NewAutoDismisser(m.rt, m.queue))
	for _, o := range opts.Observers {
		m.queue.AddObserver(o)
	}
	m.sink = scenario.NewQueueSink(m.rt, m.queue,
		scenario.WithDurations(opts.EnterDuration, opts.ExitDuration),
		scenario.WithOnEnqueued(m.track),
		scenario.WithErrorHandler(func(err error) {
			errors.Report(m.errorHandler, err)
		}),
	)
	m.queue.SetDelegate(m)
	return m
}

// Queue returns the hosted queue.
func (m *Model) Queue() *messages.QueueManager {
	return m.queue
}

// Runtime returns the animation runtime advanced by the frame ticks.
func (m *Model) Runtime() *animation.Runtime {
	return m.rt
}

// OnStartShowing implements messages.Delegate.
func (m *Model) OnStartShowing(next func()) {
	m.containerShown = true
	next()
}

// OnFinishHiding implements messages.Delegate.
func (m *Model) OnFinishHiding() {
	m.containerShown = false
}

// RunAfterInitialMessageLayout implements messages.LayoutWaiter. The first
// window size message is the initial layout pass.
func (m *Model) RunAfterInitialMessageLayout(fn func()) {
	if m.laidOut {
		fn()
		return
	}
	m.afterLayout = append(m.afterLayout, fn)
}

func (m *Model) startAnimation(a animation.Animation) {
	a.Start()
}

func (m *Model) track(key string, b *banner.Banner) {
	m.banners = append(m.banners, onScreen{key: key, banner: b})
}

// prune drops banners that are gone for good.
func (m *Model) prune() {
	kept := m.banners[:0]
	for _, s := range m.banners {
		if s.banner.Dismissed() && !s.banner.Visible() {
			continue
		}
		kept = append(kept, s)
	}
	m.banners = kept
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the frame ticks.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
	case tickMsg:
		m.rt.Advance(time.Time(msg))
		m.prune()
		cmd = tick()
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case EnqueueMsg:
		m.sink.Enqueue(msg.Key, msg.Options)
	case DismissMsg:
		m.sink.Dismiss(msg.Key)
	case DismissAllMsg:
		m.sink.DismissAll()
	case SuspendMsg:
		m.sink.Suspend(msg.Name)
	case ResumeMsg:
		m.sink.Resume(msg.Name)
	case ProducerDoneMsg:
		m.handleProducerDone(msg)
	}
	m.publishSlots()
	return m, cmd
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.help.Width = msg.Width
	if m.laidOut {
		return
	}
	m.laidOut = true
	pending := m.afterLayout
	m.afterLayout = nil
	for _, fn := range pending {
		fn()
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.queue.Destroy()
		return tea.Quit
	case key.Matches(msg, m.keys.Dismiss):
		front := m.queue.Displayed().Front
		if front == nil {
			m.errorHandler.Info("nothing to dismiss")
			return nil
		}
		m.sink.Dismiss(front.Key)
	case key.Matches(msg, m.keys.DismissAll):
		n := m.queue.Len()
		m.sink.DismissAll()
		if n > 0 {
			m.errorHandler.Success(fmt.Sprintf("dismissed %d message(s)", n))
		}
	case key.Matches(msg, m.keys.Suspend):
		m.toggleSuspend()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) toggleSuspend() {
	for _, name := range m.sink.Suspensions() {
		if name == keyboardHold {
			m.sink.Resume(keyboardHold)
			m.errorHandler.Info("display resumed")
			return
		}
	}
	m.sink.Suspend(keyboardHold)
	m.errorHandler.Info("display suspended")
}

func (m *Model) handleProducerDone(msg ProducerDoneMsg) {
	if msg.Err != nil {
		m.errorHandler.Error(fmt.Sprintf("%s: %v", msg.Name, msg.Err))
		logging.Error("producer failed", "producer", msg.Name, "error", msg.Err)
		return
	}
	m.errorHandler.Info(msg.Name + " finished")
}

func (m *Model) publishSlots() {
	if m.onSlots == nil {
		return
	}
	s := m.queue.Displayed()
	if s == m.lastSlots {
		return
	}
	m.lastSlots = s
	m.onSlots(s)
}
