package viz

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/voyage/internal/helm"
	"github.com/san-kum/voyage/internal/poi"
	"github.com/san-kum/voyage/internal/scene"
)

const (
	margin          = 2
	historyCapacity = 120
	boatHalfWidth   = 1

	// rows of the ocean view, used to hit-test the mouse
	rowSkyTop = 1
	rowBoat   = 6
	rowSea    = 9
)

type TickMsg time.Time

// anchorBox is shared between the model copies bubbletea passes around so
// the controller's anchor callback can open the detail dialog.
type anchorBox struct {
	point *poi.Point
}

// Model is the bubbletea program state around a helm controller.
type Model struct {
	ctrl    *helm.Controller
	clock   *helm.Clock
	fps     int
	width   int
	height  int
	facing  bool
	history []float64
	anchor  *anchorBox

	// terminals report the mouse only when it moves
	pressed  bool
	pointerX float64
}

func NewModel(ctrl *helm.Controller, fps int, now time.Time) Model {
	if fps <= 0 {
		fps = 60
	}
	box := &anchorBox{}
	ctrl.OnAnchor(func(p poi.Point) { box.point = &p })

	m := Model{
		ctrl:    ctrl,
		clock:   helm.NewClock(now, helm.FrameUnit, ctrl.Options().Motion.MaxDelta),
		fps:     fps,
		width:   80,
		height:  24,
		facing:  true,
		history: make([]float64, 0, historyCapacity),
		anchor:  box,
	}
	ctrl.SetViewport(float64(m.trackWidth()))
	return m
}

// Run starts the terminal viewer and blocks until the user quits.
func Run(ctrl *helm.Controller, fps int) error {
	p := tea.NewProgram(
		NewModel(ctrl, fps, time.Now()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) trackWidth() int {
	w := m.width - 2*margin
	if w < 10 {
		return 10
	}
	return w
}

// Update handles input events and advances the controller on ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.BlurMsg:
		m.ctrl.PointerCancel()
		m.pressed = false
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ctrl.SetViewport(float64(m.trackWidth()))
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name := msg.String()
	switch name {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.anchor.point = nil
		return m, nil
	}

	if n, err := strconv.Atoi(name); err == nil {
		points := m.ctrl.Points()
		if n >= 1 && n <= len(points) {
			m.ctrl.SeekTo(points[n-1].Position)
		}
		return m, nil
	}

	if k, ok := helm.ParseKey(name); ok {
		m.ctrl.HandleKey(k)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x := float64(msg.X - margin)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y < rowSkyTop || msg.Y > rowSea {
			return
		}
		onBoat := msg.Y == rowBoat && m.ctrl.BoatHit(x, boatHalfWidth)
		m.ctrl.PointerDown(x, onBoat)
		m.pressed, m.pointerX = true, x
	case tea.MouseActionMotion:
		m.ctrl.PointerMove(x)
		m.pointerX = x
	case tea.MouseActionRelease:
		m.ctrl.PointerUp()
		m.pressed = false
	}
}

func (m *Model) step(now time.Time) {
	if m.pressed && m.ctrl.Dragging() {
		m.ctrl.PointerMove(m.pointerX)
	}
	m.ctrl.Step(m.clock.Advance(now))

	v := m.ctrl.State().Velocity
	if v != 0 {
		m.facing = v > 0
	}
	m.history = append(m.history, v)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// View renders the ocean, the voyage map and the status lines.
func (m Model) View() string {
	snap := m.ctrl.Snapshot()
	width := m.trackWidth()
	pad := strings.Repeat(" ", margin)
	sky := scene.SkyAt(snap.Position)
	stops := sky.Gradient()
	points := m.ctrl.Points()

	var b strings.Builder
	b.WriteString(pad + titleStyle.Render("VOYAGE") + "  " + m.status(snap) + "\n")

	b.WriteString(pad + skyRow(stops[0], width, sky.StarOpacity, 1) + "\n")
	b.WriteString(pad + skyRow(stops[1], width, sky.StarOpacity, 5) + "\n")
	clouds := tile(cloudTile, width, layerShift(scene.Offset(snap.Position, scene.Layers[1].Speed), width))
	b.WriteString(pad + cloudStyle.Render(clouds) + "\n")

	b.WriteString(pad + labelRow(points, width, snap.NearestID) + "\n")
	b.WriteString(pad + islandRow(points, width, snap.NearestID) + "\n")

	near := tile(wavePatterns[2], width, layerShift(scene.Offset(snap.Position, scene.Layers[5].Speed), width))
	wake := scene.WakeFor(snap.Velocity, m.facing)
	b.WriteString(pad + boatRow(width, columnFor(snap.Position, width), wake, near) + "\n")

	for i, layer := range []int{4, 3} {
		row := tile(wavePatterns[1-i], width, layerShift(scene.Offset(snap.Position, scene.Layers[layer].Speed), width))
		b.WriteString(pad + waveStyles[1-i].Render(row) + "\n")
	}
	b.WriteString(pad + waveStyles[0].Render(strings.Repeat("~", width)) + "\n")

	b.WriteString("\n" + pad + mapRow(points, snap.Position, width) + "\n")
	b.WriteString(pad + Sparkline(m.history, width, m.ctrl.Options().Motion.MaxVelocity) + "\n")

	if p := m.anchor.point; p != nil {
		body := fmt.Sprintf("%s %s\n\nanchored at %.0f%%", p.Emoji, p.Label, p.Position)
		b.WriteString("\n" + dialogStyle.Render(body) + "\n")
	}

	b.WriteString(helpStyle.Render(pad+"←/→ a/d sail · click ocean to navigate · drag boat · 1-9 islands · enter anchor · esc close · q quit") + "\n")
	return b.String()
}

func (m Model) status(s helm.Snapshot) string {
	nearest := "open water"
	if s.NearestID != "" {
		if p, ok := poi.Find(m.ctrl.Points(), s.NearestID); ok {
			nearest = p.Label
		}
	}
	return strings.Join([]string{
		labelStyle.Render("mode ") + valueStyle.Render(s.Mode.String()),
		labelStyle.Render("pos ") + valueStyle.Render(fmt.Sprintf("%5.1f", s.Position)),
		labelStyle.Render("vel ") + valueStyle.Render(fmt.Sprintf("%+.2f", s.Velocity)),
		labelStyle.Render("near ") + valueStyle.Render(nearest),
	}, "  ")
}

func (m Model) Anchored() (poi.Point, bool) {
	if m.anchor.point == nil {
		return poi.Point{}, false
	}
	return *m.anchor.point, true
}
