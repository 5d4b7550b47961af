// ABOUTME: Bubbletea model for the interactive waveform preview
// ABOUTME: Zoom stretches cached snapshots, then a full re-render follows
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wavetile/wavetile-go/pkg/peaks"
	"github.com/wavetile/wavetile-go/pkg/render"
)

const (
	chromeRows = 4 // header + footer lines around the waveform
	zoomStep   = 1.25
	scrubStep  = 0.05
)

// Model drives the terminal waveform preview.
type Model struct {
	peaks  render.Peaks
	set    *render.SurfaceSet
	params render.Params

	// Terminal dimensions
	width  int
	height int

	zoom     float64
	progress float64
	bars     bool

	err error
}

type tickMsg time.Time

// rerenderMsg asks for a full rasterization after a zoom stretch.
type rerenderMsg struct{}

// NewModel creates a preview model over an existing surface set.
func NewModel(set *render.SurfaceSet, peaks render.Peaks, params render.Params, bars bool) Model {
	return Model{
		peaks:  peaks,
		set:    set,
		params: params,
		zoom:   1,
		bars:   bars,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tickEvery()
}

func tickEvery() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func rerenderAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return rerenderMsg{}
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.render()
		return m, nil

	case tickMsg:
		// Staggered off-screen redraws may have completed since the
		// last frame; the periodic tick picks them up.
		return m, tickEvery()

	case rerenderMsg:
		m.render()
		return m, nil
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "+", "=":
		return m.applyZoom(m.zoom * zoomStep)
	case "-", "_":
		return m.applyZoom(m.zoom / zoomStep)

	case "left":
		m.scrub(m.progress - scrubStep)
	case "right":
		m.scrub(m.progress + scrubStep)

	case "b":
		m.bars = !m.bars
		m.render()
	}

	return m, nil
}

// applyZoom stretches the cached snapshots to the new width right away
// and schedules the real re-render shortly after, so the zoom feels
// instant even on wide waveforms.
func (m Model) applyZoom(zoom float64) (tea.Model, tea.Cmd) {
	if zoom < 1 {
		zoom = 1
	}
	if zoom > 64 {
		zoom = 64
	}
	if zoom == m.zoom || m.width == 0 {
		return m, nil
	}
	m.zoom = zoom

	if err := m.set.StretchToWidth(m.pixelWidth(), m.progress); err != nil {
		m.err = err
		return m, nil
	}
	return m, rerenderAfter(200 * time.Millisecond)
}

func (m *Model) scrub(progress float64) {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	m.progress = progress
	m.set.UpdateProgress(int(progress * float64(m.set.Width())))
}

// pixelWidth is the waveform's total device-pixel width at the current
// zoom. FillParent fits the terminal; otherwise the peak count sets
// the natural width.
func (m *Model) pixelWidth() int {
	base := float64(m.width)
	if !m.params.FillParent && len(m.peaks) > 0 {
		ratio := m.params.PixelRatio
		if ratio <= 0 {
			ratio = 1
		}
		base = float64(peaks.Columns(m.peaks[0])) * ratio
	}
	w := int(base * m.zoom)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) waveRows() int {
	rows := m.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

// render rasterizes the peaks at the current zoom and dimensions.
func (m *Model) render() {
	if m.width == 0 {
		return
	}
	if err := m.set.Resize(m.pixelWidth(), m.waveRows()*2); err != nil {
		m.err = err
		return
	}

	var err error
	if m.bars {
		err = m.set.RenderBars(m.peaks, 0, m.set.Width())
	} else {
		err = m.set.RenderLine(m.peaks, 0, m.set.Width())
	}
	if err != nil {
		m.err = err
		return
	}
	m.set.UpdateProgress(int(m.progress * float64(m.set.Width())))
	m.err = nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))
	helpStyle := lipgloss.NewStyle().Faint(true)

	style := "line"
	if m.bars {
		style = "bars"
	}
	status := fmt.Sprintf("zoom %.2fx  progress %3.0f%%  style %s  surfaces %d",
		m.zoom, m.progress*100, style, m.set.SurfaceCount())
	if m.err != nil {
		status = fmt.Sprintf("error: %v", m.err)
	}

	s := titleStyle.Render("Wavetile Preview") + "\n"
	s += statusStyle.Render(status) + "\n"
	s += Cells(m.set.Composite(), m.width, m.waveRows())
	s += helpStyle.Render("+/-: zoom  ←/→: scrub  b: bars/line  q: quit")
	return s
}
