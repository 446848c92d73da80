package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/cityplan/internal/cli/formatter"
	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// plansLoadedMsg signals that the plan list and current selection have been loaded.
type plansLoadedMsg struct {
	plans     []*domain.Plan
	currentID string
	err       error
}

// planActionMsg reports the outcome of a select or delete. The browser
// reloads after every action.
type planActionMsg struct {
	status string
	err    error
}

type browserKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Detail  key.Binding
	Filter  key.Binding
	Quit    key.Binding
}

func newBrowserKeyMap() browserKeyMap {
	return browserKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Delete:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
		Detail:  key.NewBinding(key.WithKeys("tab", " "), key.WithHelp("tab", "allocation")),
		Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Detail, k.Filter, k.Quit}
}

func (k browserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// planBrowser shows an interactive, navigable list of saved plans. Enter
// makes the highlighted plan current; d deletes it after confirmation.
type planBrowser struct {
	ctx  context.Context
	app  *App
	keys browserKeyMap
	help help.Model

	plans     []*domain.Plan
	currentID string
	cursor    int
	loading   bool
	err       error
	status    string

	confirming bool
	detail     bool
	width      int

	// Filtering
	filtering bool
	filter    string
}

func newPlanBrowser(ctx context.Context, app *App) *planBrowser {
	return &planBrowser{
		ctx:     ctx,
		app:     app,
		keys:    newBrowserKeyMap(),
		help:    help.New(),
		loading: true,
	}
}

func (v *planBrowser) Init() tea.Cmd {
	return v.loadPlans()
}

func (v *planBrowser) loadPlans() tea.Cmd {
	ctx, app := v.ctx, v.app
	return func() tea.Msg {
		plans, err := app.Plans.List(ctx)
		if err != nil {
			return plansLoadedMsg{err: err}
		}
		current, err := app.Plans.Current(ctx)
		if err != nil {
			return plansLoadedMsg{err: err}
		}
		msg := plansLoadedMsg{plans: plans}
		if current != nil {
			msg.currentID = current.ID
		}
		return msg
	}
}

func (v *planBrowser) selectPlan(p *domain.Plan) tea.Cmd {
	ctx, app := v.ctx, v.app
	return func() tea.Msg {
		if err := app.Plans.Select(ctx, p.ID); err != nil {
			return planActionMsg{err: err}
		}
		return planActionMsg{status: fmt.Sprintf("Selected %s", p.CityName)}
	}
}

func (v *planBrowser) deletePlan(p *domain.Plan) tea.Cmd {
	ctx, app := v.ctx, v.app
	return func() tea.Msg {
		if err := app.Plans.Delete(ctx, p.ID); err != nil {
			return planActionMsg{err: err}
		}
		return planActionMsg{status: fmt.Sprintf("Deleted %s", p.CityName)}
	}
}

func (v *planBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.help.Width = msg.Width
		return v, nil

	case plansLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.plans = msg.plans
		v.currentID = msg.currentID
		v.clampCursor()
		return v, nil

	case planActionMsg:
		v.err = msg.err
		v.status = msg.status
		return v, v.loadPlans()

	case tea.KeyMsg:
		switch {
		case v.filtering:
			return v.updateFilter(msg)
		case v.confirming:
			return v.updateConfirm(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *planBrowser) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visiblePlans()

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case key.Matches(msg, v.keys.Select):
		if v.cursor < len(visible) {
			return v, v.selectPlan(visible[v.cursor])
		}
	case key.Matches(msg, v.keys.Delete):
		if v.cursor < len(visible) {
			v.confirming = true
			v.status = ""
		}
	case key.Matches(msg, v.keys.Detail):
		v.detail = !v.detail
	case key.Matches(msg, v.keys.Filter):
		v.filtering = true
		v.filter = ""
		v.cursor = 0
	}
	return v, nil
}

func (v *planBrowser) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Confirm):
		v.confirming = false
		visible := v.visiblePlans()
		if v.cursor < len(visible) {
			return v, v.deletePlan(visible[v.cursor])
		}
	case key.Matches(msg, v.keys.Cancel):
		v.confirming = false
	}
	return v, nil
}

func (v *planBrowser) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
		v.cursor = 0
		return v, nil
	case tea.KeyEnter:
		v.filtering = false
		return v, nil
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			v.filter = v.filter[:len(v.filter)-1]
			v.cursor = 0
		}
	default:
		if len(msg.String()) == 1 {
			v.filter += msg.String()
			v.cursor = 0
		}
	}
	return v, nil
}

func (v *planBrowser) visiblePlans() []*domain.Plan {
	if v.filter == "" {
		return v.plans
	}
	lf := strings.ToLower(v.filter)
	var filtered []*domain.Plan
	for _, p := range v.plans {
		if strings.Contains(strings.ToLower(p.CityName), lf) ||
			strings.HasPrefix(p.ID, lf) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (v *planBrowser) clampCursor() {
	if n := len(v.visiblePlans()); v.cursor >= n {
		v.cursor = max(n-1, 0)
	}
}

func (v *planBrowser) View() string {
	if v.loading {
		return formatter.Dim("Loading plans...")
	}

	var b strings.Builder
	b.WriteString(formatter.Header("City Plans"))
	b.WriteString("\n")

	visible := v.visiblePlans()
	if len(v.plans) == 0 {
		b.WriteString(formatter.Dim("No plans yet. Run 'cityplan plan new' to create one."))
		b.WriteString("\n")
	} else if len(visible) == 0 {
		b.WriteString(formatter.Dim(fmt.Sprintf("No plans match %q.", v.filter)))
		b.WriteString("\n")
	}

	for i, p := range visible {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleHeader.Render("▸ ")
		}
		marker := " "
		if p.ID == v.currentID {
			marker = formatter.StyleYellow.Render("★")
		}
		name := padRight(formatter.Truncate(p.CityName, v.nameWidth()), v.nameWidth())
		if i == v.cursor {
			name = formatter.Bold(name)
		}
		fmt.Fprintf(&b, "%s%s %s  %s  %s  %s\n",
			cursor, marker, name,
			formatter.ScoreBadge(p.SustainabilityScore),
			formatter.MoneyFloat(v.app.Currency, p.Budget),
			formatter.Dim(p.DisplayID()))
	}

	if v.detail && v.cursor < len(visible) {
		p := visible[v.cursor]
		b.WriteString("\n")
		b.WriteString(formatter.FormatAllocation(p.BudgetAllocation, p.Budget, v.app.Currency))
	}

	b.WriteString("\n")
	switch {
	case v.filtering:
		fmt.Fprintf(&b, "%s %s\n", formatter.StyleHeader.Render("/"), v.filter)
	case v.confirming && v.cursor < len(visible):
		fmt.Fprintf(&b, "%s\n", formatter.StyleRed.Render(fmt.Sprintf("Delete %s? (y/n)", visible[v.cursor].CityName)))
	case v.err != nil:
		fmt.Fprintf(&b, "%s\n", formatter.StyleRed.Render("Error: "+v.err.Error()))
	case v.status != "":
		fmt.Fprintf(&b, "%s\n", formatter.StyleGreen.Render(v.status))
	}

	b.WriteString(v.help.View(v.keys))
	return b.String()
}

// nameWidth shrinks the city column on narrow terminals. The other columns
// of a row take roughly 40 cells.
func (v *planBrowser) nameWidth() int {
	const widest, narrowest, otherCols = 24, 8, 40
	if v.width == 0 {
		return widest
	}
	return min(widest, max(narrowest, v.width-otherCols))
}

// padRight pads s with spaces to the given visible width.
func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
