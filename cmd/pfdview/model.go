package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/algorithms"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/chemistry"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/config"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/document"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/logging"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/rules"
)

// View types
type view int

const (
	resultsView view = iota
	latticeView
	equationsView
	compoundsView
)

var viewNames = []string{"Results", "Lattice", "Equations", "Compounds"}

// Key bindings
type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Reload   key.Binding
	Filter   key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Reload, k.Filter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Reload, k.Filter},
		{k.Up, k.Down, k.Quit},
	}
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload file"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter compounds by element"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

// Model
type model struct {
	path    string
	cfg     *config.Config
	catalog *chemistry.Catalog
	logger  logging.Logger

	problem *document.Problem
	report  *rules.Report
	lattice *algorithms.Lattice

	currentView view
	keys        keyMap
	help        help.Model
	results     table.Model
	equations   table.Model
	compounds   table.Model
	filter      textinput.Model
	filtering   bool
	width       int
	height      int
	message     string
}

func initialModel(path string, cfg *config.Config) (model, error) {
	catalog, err := cfg.Catalog()
	if err != nil {
		return model{}, err
	}

	filter := textinput.New()
	filter.Placeholder = "element"
	filter.CharLimit = 20
	filter.Width = 20

	m := model{
		path:      path,
		cfg:       cfg,
		catalog:   catalog,
		logger:    logging.NewNopLogger(),
		keys:      keys,
		help:      help.New(),
		results:   newTable([]table.Column{{Title: "Severity", Width: 9}, {Title: "Key", Width: 24}, {Title: "Target", Width: 16}, {Title: "Message", Width: 60}}),
		equations: newTable([]table.Column{{Title: "Ref", Width: 6}, {Title: "Type", Width: 22}, {Title: "Equation", Width: 70}}),
		compounds: newTable([]table.Column{{Title: "Name", Width: 20}, {Title: "Abbr", Width: 6}, {Title: "Elements", Width: 30}, {Title: "Hf", Width: 10}, {Title: "Cp", Width: 10}}),
		filter:    filter,
	}
	if err := m.run(context.Background()); err != nil {
		return model{}, err
	}
	m.refreshCompounds()
	return m, nil
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// run loads the problem file and validates it
func (m *model) run(ctx context.Context) error {
	problem, err := document.LoadProblem(m.path)
	if err != nil {
		return err
	}
	mgr := rules.NewManager(
		rules.WithCatalog(m.catalog),
		rules.WithLogger(m.logger),
		rules.WithDownstreamOnly(m.cfg.DownstreamOnly),
	)
	report, err := mgr.Validate(ctx, problem.Diagram, problem.Equations)
	if err != nil {
		return err
	}

	// Earlier stages can stop the run before the diagram rule builds a lattice
	var lattice *algorithms.Lattice
	if report.Analysis != nil {
		lattice = report.Analysis.Lattice
	}
	if lattice == nil {
		lattice, err = algorithms.CreateAbstractedPFD(problem.Diagram.Graph(), problem.Diagram.Allocator().Clone(), algorithms.Options{
			DownstreamOnly: m.cfg.DownstreamOnly,
			Logger:         m.logger,
		})
		if err != nil {
			return err
		}
	}

	m.problem = problem
	m.report = report
	m.lattice = lattice
	m.results.SetRows(resultRows(report.Results))
	m.equations.SetRows(equationRows(problem, report))
	return nil
}

func resultRows(results []feedback.Result) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, table.Row{r.Severity.String(), r.Key.String(), r.Target.String(), r.Message})
	}
	return rows
}

func equationRows(p *document.Problem, report *rules.Report) []table.Row {
	rows := make([]table.Row, 0, len(p.Equations))
	for _, eq := range p.Equations {
		typ := eq.Type.Classification.String()
		if eq.Type.Target != "" {
			typ += " (" + eq.Type.Target + ")"
		}
		text := eq.String()
		for _, r := range report.Results {
			if r.Target.Kind == feedback.TargetEquation && r.Target.Ref == eq.Ref {
				text = "✗ " + text
				break
			}
		}
		rows = append(rows, table.Row{eq.Ref, typ, text})
	}
	return rows
}

func (m *model) refreshCompounds() {
	element := strings.TrimSpace(m.filter.Value())
	var rows []table.Row
	for _, c := range m.catalog.Compounds() {
		if element != "" && !c.Contains(element) {
			continue
		}
		rows = append(rows, table.Row{c.Name, c.Abbr, composition(&c), constant(c.HeatFormation), constant(c.HeatCapacity)})
	}
	m.compounds.SetRows(rows)
	m.compounds.SetCursor(0)
}

func composition(c *chemistry.Compound) string {
	parts := make([]string, 0, len(c.Elements))
	for _, e := range c.ElementNames() {
		parts = append(parts, fmt.Sprintf("%s:%d", e, c.Elements[e]))
	}
	return strings.Join(parts, " ")
}

func constant(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h := max(msg.Height-14, 5)
		m.results.SetHeight(h)
		m.equations.SetHeight(h)
		m.compounds.SetHeight(h)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % view(len(viewNames))
			m.message = ""
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.currentView = (m.currentView - 1 + view(len(viewNames))) % view(len(viewNames))
			m.message = ""
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			if err := m.run(context.Background()); err != nil {
				m.message = errorStyle.Render("Reload failed: " + err.Error())
			} else {
				m.message = successStyle.Render("Reloaded " + m.path)
			}
			return m, nil

		case key.Matches(msg, m.keys.Filter) && m.currentView == compoundsView:
			m.filtering = true
			return m, m.filter.Focus()
		}
	}

	var cmd tea.Cmd
	switch m.currentView {
	case resultsView:
		m.results, cmd = m.results.Update(msg)
	case equationsView:
		m.equations, cmd = m.equations.Update(msg)
	case compoundsView:
		m.compounds, cmd = m.compounds.Update(msg)
	}
	return m, cmd
}

func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refreshCompounds()
	return m, cmd
}

func (m model) View() string {
	var s strings.Builder

	title := "ChemProV PFD Check"
	if m.problem != nil && m.problem.Title != "" {
		title += ": " + m.problem.Title
	}
	s.WriteString(titleStyle.Render(title) + "\n\n")
	s.WriteString(m.renderTabs() + "\n")

	var content string
	switch m.currentView {
	case resultsView:
		content = m.renderResults()
	case latticeView:
		content = m.renderLattice()
	case equationsView:
		content = m.equations.View()
	case compoundsView:
		content = m.renderCompounds()
	}
	s.WriteString(contentStyle.Render(content))

	if m.message != "" {
		s.WriteString("\n" + contentStyle.Render(m.message))
	}
	s.WriteString("\n" + helpStyle.Render(m.help.View(m.keys)))

	return s.String()
}

func (m model) renderTabs() string {
	var tabs []string
	for i, name := range viewNames {
		if view(i) == m.currentView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) renderResults() string {
	var status string
	switch {
	case !m.report.Valid:
		status = errorStyle.Render("✗ Invalid")
	case len(m.report.BySeverity(feedback.Warning)) > 0:
		status = warnStyle.Render("! Valid with warnings")
	default:
		status = successStyle.Render("✓ Valid")
	}

	stats := fmt.Sprintf("%s\n\nRun:        %s\nEquations:  %d\nResults:    %d\nDuration:   %s",
		status,
		m.report.ID.String()[:8],
		len(m.problem.Equations),
		len(m.report.Results),
		m.report.Duration.Round(time.Microsecond),
	)
	box := statsBoxStyle.Render(stats)
	return lipgloss.JoinHorizontal(lipgloss.Top, box, m.results.View())
}

// renderLattice lists each abstracted subgraph, marking the ones bound to
// equations with their verdict.
func (m model) renderLattice() string {
	d := m.problem.Diagram
	verdicts := make(map[string]string)
	if an := m.report.Analysis; an != nil {
		for _, sv := range an.Subgraphs {
			verdicts[verdictKey(sv.Level, sv.Boundary)] = fmt.Sprintf("%s (%d eq / %d species)", sv.Verdict, sv.Equations, len(sv.Species))
		}
	}

	var b strings.Builder
	level := 0
	for _, sum := range m.lattice.Summaries() {
		if sum.Level != level {
			level = sum.Level
			b.WriteString(headerStyle.Render(fmt.Sprintf("Level %d", level)) + "\n")
		}
		line := fmt.Sprintf("  {%s}  in: %s  out: %s",
			strings.Join(d.UnitLabels(sum.Absorbed), " "),
			strings.Join(d.TableLabels(sum.Boundary.Incoming), " "),
			strings.Join(d.TableLabels(sum.Boundary.Outgoing), " "))
		if v, ok := verdicts[verdictKey(sum.Level, sum.Boundary)]; ok {
			line += "  " + successStyle.Render(v)
		}
		b.WriteString(line + "\n")
	}
	if m.lattice.Len() <= 1 {
		b.WriteString("No process units to abstract\n")
	}
	for _, loop := range algorithms.RecycleLoops(d.Graph()) {
		b.WriteString(warnStyle.Render("Recycle loop: "+strings.Join(d.UnitLabels(loop), " ")) + "\n")
	}
	return graphBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func verdictKey(level int, b pfd.Boundary) string {
	return strconv.Itoa(level) + "/" + b.Key()
}

func (m model) renderCompounds() string {
	var header string
	if m.filtering || m.filter.Value() != "" {
		header = "Element: " + m.filter.View() + "\n\n"
	}
	return header + m.compounds.View()
}
