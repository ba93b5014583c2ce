package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/certlab/certmeter/internal/cert/distance"
	"github.com/certlab/certmeter/internal/config"
	apperrors "github.com/certlab/certmeter/internal/errors"
	runtimemetrics "github.com/certlab/certmeter/internal/metrics"
	"github.com/certlab/certmeter/internal/sysmon"
)

// ExecutionState holds the measurement-related fields of a TUI session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - footerHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// logsWidth returns the width allocated to the logs panel.
func (l LayoutManager) logsWidth() int {
	return l.width * LogsPanelWidthPercent / 100
}

// rightWidth returns the width allocated to the right column (metrics + chart).
func (l LayoutManager) rightWidth() int {
	return l.width - l.logsWidth()
}

// metricsHeight returns the height allocated to the metrics panel.
func (l LayoutManager) metricsHeight() int {
	body := l.bodyHeight()
	h := MetricsPanelHeight
	if h > body/2 {
		h = body / 2
	}
	return h
}

// chartHeight returns the height allocated to the chart panel.
func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Layout constants for the TUI dashboard.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 4
	LogsPanelWidthPercent = 55
	MetricsPanelHeight    = 7 // top line + 1 data row + borders; expands with a result
)

// Model is the root bubbletea model for the measurement dashboard.
type Model struct {
	header  HeaderModel
	logs    LogsModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	config    config.AppConfig
	factory   *distance.ProviderFactory
	providers []string
	provIdx   int
	memory    *runtimemetrics.MemoryCollector
	ref       *programRef
	paused    bool
}

// NewModel creates a new dashboard model.
func NewModel(parentCtx context.Context, cfg config.AppConfig, factory *distance.ProviderFactory, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	providers := factory.List()
	provIdx := 0
	for i, name := range providers {
		if name == cfg.Distance {
			provIdx = i
			break
		}
	}

	header := NewHeaderModel(version, cfg.AgentID)
	header.SetProvider(providers[provIdx])

	logs := NewLogsModel()
	logs.AddConfig(cfg, providers[provIdx])

	return Model{
		header:  header,
		logs:    logs,
		metrics: NewMetricsModel(),
		chart:   NewChartModel(),
		footer:  NewFooterModel(),
		keymap:  DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		config:    cfg,
		factory:   factory,
		providers: providers,
		provIdx:   provIdx,
		memory:    runtimemetrics.NewMemoryCollector(),
		ref:       &programRef{},
	}
}

// currentProvider resolves the selected distance provider.
func (m Model) currentProvider() distance.Provider {
	p, err := m.factory.Get(m.providers[m.provIdx])
	if err != nil {
		// The index is always drawn from factory.List(), so this cannot
		// happen; fall back to the first registered provider.
		all := m.factory.GetAll()
		return all[0]
	}
	return p
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startMeasurementCmd(m.ref, m.ctx, m.config, m.currentProvider(), m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case SampleMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.logs.AddSample(msg)
		m.metrics.UpdateSamples(msg.Collected)
		return m, nil

	case ResponsesMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.logs.AddResponses(msg)
		return m, nil

	case PairMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.logs.AddPair(msg)
		m.chart.AddDistance(msg.Distance)
		m.metrics.UpdatePairs(msg.Index, msg.Total)
		return m, nil

	case ResultMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.logs.AddResult(msg)
		m.metrics.UpdateResult(msg.Result)
		m.done = true
		m.exitCode = apperrors.ExitSuccess
		m.header.SetDone()
		m.chart.SetDone(msg.Duration)
		m.footer.SetDone(true)
		return m, nil

	case MeasureErrorMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.logs.AddError(msg.Err)
		m.footer.SetError(true)
		m.done = true
		m.exitCode = exitCodeFor(msg.Err)
		m.header.SetDone()
		return m, nil

	case TickMsg:
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(m.memory), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.Stats)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a superseded measurement
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		return m.restart()

	case key.Matches(msg, m.keymap.Cycle):
		m.provIdx = (m.provIdx + 1) % len(m.providers)
		return m.restart()

	case key.Matches(msg, m.keymap.Up):
		m.logs.ScrollUp(1)
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		m.logs.ScrollDown(1)
		return m, nil

	case key.Matches(msg, m.keymap.PageUp):
		m.logs.ScrollUp(m.logs.PageSize())
		return m, nil

	case key.Matches(msg, m.keymap.PageDown):
		m.logs.ScrollDown(m.logs.PageSize())
		return m, nil
	}

	return m, nil
}

// restart cancels the in-flight measurement and launches a fresh one with
// the currently selected distance provider.
func (m Model) restart() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}

	m.generation++
	ctx, cancel := context.WithCancel(m.parentCtx)
	m.ctx = ctx
	m.cancel = cancel

	provider := m.providers[m.provIdx]
	m.header.Reset()
	m.header.SetProvider(provider)
	m.logs.Reset()
	m.logs.AddConfig(m.config, provider)
	m.chart.Reset()
	m.metrics = NewMetricsModel()
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.footer.SetDone(false)
	m.footer.SetError(false)
	m.footer.SetPaused(false)
	m.done = false
	m.paused = false
	m.exitCode = apperrors.ExitSuccess

	return m, tea.Batch(
		tickCmd(),
		startMeasurementCmd(m.ref, m.ctx, m.config, m.currentProvider(), m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.header.View()
	footer := m.footer.View()

	metrics := m.metrics.View()
	chart := m.chart.View()

	// Right column: metrics on top, chart on bottom
	rightCol := lipgloss.JoinVertical(lipgloss.Left, metrics, chart)

	// Render logs panel to match the right column's actual height
	logs := m.logs.renderToHeight(lipgloss.Height(rightCol))

	// Main body: logs on left, right column on right
	body := lipgloss.JoinHorizontal(lipgloss.Top, logs, rightCol)

	// Full layout: header + body + footer
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.logs.SetSize(m.logsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, cfg config.AppConfig, factory *distance.ProviderFactory, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, cfg, factory, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the measurement
	// goroutine can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd(collector *runtimemetrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg{Snapshot: collector.Snapshot()}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg{Stats: sysmon.Sample()}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
