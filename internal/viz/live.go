package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/oceansim/internal/ocean"
	"github.com/san-kum/oceansim/internal/sim"
)

const (
	historyCapacity = 120
	paramStep       = 0.1
)

// Eight compass directions, index by rounded angle octant.
var arrowGlyphs = []rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

var tempShades = []rune{' ', '░', '▒', '▓', '█'}

type TickMsg time.Time

// Model is the bubbletea model for the live field view. It renders
// only through the engine's read-only views and mutates nothing but
// the forcing parameters.
type Model struct {
	engine *sim.Engine

	dt        float64
	timeAccel float64
	fps       int

	t         float64
	paused    bool
	showTemp  bool
	showHelp  bool
	keHistory []float64
}

func NewModel(engine *sim.Engine, dt, timeAccel float64, showTemp bool, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		engine:    engine,
		dt:        dt,
		timeAccel: timeAccel,
		fps:       fps,
		showTemp:  showTemp,
		keHistory: make([]float64, 0, historyCapacity),
	}
}

// RunLive starts the interactive view and blocks until quit.
func RunLive(engine *sim.Engine, dt, timeAccel float64, showTemp bool, fps int) error {
	p := tea.NewProgram(NewModel(engine, dt, timeAccel, showTemp, fps))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		p := m.engine.Params()
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "t":
			m.showTemp = !m.showTemp
		case "?":
			m.showHelp = !m.showHelp
		case "r":
			m.engine.Reset()
			m.t = 0
			m.keHistory = m.keHistory[:0]
		case "w":
			p.WindStrength += paramStep
			m.engine.SetParams(p)
		case "W":
			p.WindStrength -= paramStep
			m.engine.SetParams(p)
		case "c":
			p.CoriolisStrength += paramStep
			m.engine.SetParams(p)
		case "C":
			p.CoriolisStrength -= paramStep
			m.engine.SetParams(p)
		case "b":
			p.TemperatureDiff += paramStep
			m.engine.SetParams(p)
		case "B":
			p.TemperatureDiff -= paramStep
			m.engine.SetParams(p)
		}
		return m, nil

	case TickMsg:
		if !m.paused {
			m.engine.Tick(m.dt, m.timeAccel)
			m.t += m.dt
			m.keHistory = append(m.keHistory, m.engine.Grid().KineticEnergy())
			if len(m.keHistory) > historyCapacity {
				m.keHistory = m.keHistory[1:]
			}
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	field := m.renderField()
	stats := m.renderStats()

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(field),
		statsStyle.Render(stats),
	)

	if len(m.keHistory) > 2 {
		graph := asciigraph.Plot(m.keHistory,
			asciigraph.Height(6),
			asciigraph.Width(70),
			asciigraph.Caption("kinetic energy"),
		)
		main = lipgloss.JoinVertical(lipgloss.Left, main, graphStyle.Render(graph))
	}

	if m.showHelp {
		main = lipgloss.JoinVertical(lipgloss.Left, main,
			helpStyle.Render("space pause · t temperature · w/W wind · c/C coriolis · b/B buoyancy · r reset · q quit"))
	}

	return main + "\n"
}

// renderField draws one rune per grid cell: directional arrows scaled
// by speed, or temperature shading, with tracer particles overlaid.
func (m Model) renderField() string {
	g := m.engine.Grid()

	rows := make([][]string, g.H)
	for y := 0; y < g.H; y++ {
		rows[y] = make([]string, g.W)
		for x := 0; x < g.W; x++ {
			if m.showTemp {
				rows[y][x] = temperatureRune(g, x, y)
			} else {
				rows[y][x] = velocityRune(g, x, y)
			}
		}
	}

	for _, pt := range m.engine.Tracers().Particles() {
		x, y := int(pt.X), int(pt.Y)
		if x < 0 || x >= g.W || y < 0 || y >= g.H {
			continue
		}
		if pt.Depth == ocean.Deep {
			rows[y][x] = deepStyle.Render("◦")
		} else {
			rows[y][x] = particleStyle.Render("●")
		}
	}

	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		sb.WriteString(strings.Join(rows[y], ""))
		if y < g.H-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func velocityRune(g *ocean.FieldGrid, x, y int) string {
	i := g.Idx(x, y)
	u, v := g.U[i], g.V[i]
	speed := math.Hypot(u, v)
	if speed < 0.05 {
		return "·"
	}

	// Screen y grows downward, flip v for the compass angle.
	angle := math.Atan2(-v, u)
	octant := int(math.Round(angle/(math.Pi/4))+8) % 8
	glyph := string(arrowGlyphs[octant])

	switch {
	case speed < 0.5:
		return slowStyle.Render(glyph)
	case speed < 1.2:
		return mediumStyle.Render(glyph)
	default:
		return fastStyle.Render(glyph)
	}
}

func temperatureRune(g *ocean.FieldGrid, x, y int) string {
	// Initialization profile spans roughly [-14, 28] °C.
	t := g.Temperature[g.Idx(x, y)]
	norm := (t + 14) / 42
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}

	shade := string(tempShades[int(norm*float64(len(tempShades)-1)+0.5)])
	switch {
	case norm < 0.35:
		return coldStyle.Render(shade)
	case norm < 0.7:
		return mildStyle.Render(shade)
	default:
		return warmStyle.Render(shade)
	}
}

func (m Model) renderStats() string {
	p := m.engine.Params()
	surface, deep := m.engine.Tracers().CountByDepth()

	status := "running"
	if m.paused {
		status = pausedStyle.Render("paused")
	}

	lines := []string{
		headerStyle.Render("oceansim"),
		"",
		row("status", status),
		row("t", fmt.Sprintf("%.1fs", m.t)),
		row("wind", fmt.Sprintf("%.2f", p.WindStrength)),
		row("coriolis", fmt.Sprintf("%.2f", p.CoriolisStrength)),
		row("temp diff", fmt.Sprintf("%.2f", p.TemperatureDiff)),
		row("kinetic", fmt.Sprintf("%.3f", m.engine.Grid().KineticEnergy())),
		row("particles", fmt.Sprintf("%d + %d deep", surface, deep)),
		"",
		helpStyle.Render("? for keys"),
	}
	return strings.Join(lines, "\n")
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}
