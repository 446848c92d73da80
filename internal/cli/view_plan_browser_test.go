package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/cityplan/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBrowserDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newPlanBrowser(context.Background(), app), teatest.WithSize(100, 40))
	d.DrainInit()
	return d
}

func TestPlanBrowser_Empty(t *testing.T) {
	d := newBrowserDriver(t, testApp(t))
	d.RequireViewContains("CITY PLANS", "No plans yet")
}

func TestPlanBrowser_ListsPlansAndMarksCurrent(t *testing.T) {
	app := testApp(t)
	seedPlans(t, app)

	d := newBrowserDriver(t, app)
	d.RequireViewContains("Greenhaven", "Harbor Point", "★", "▸ ", "$10,000,000", "b2222222")
}

func TestPlanBrowser_EnterSelectsHighlighted(t *testing.T) {
	app := testApp(t)
	green, _ := seedPlans(t, app)

	d := newBrowserDriver(t, app)
	d.PressEnter()
	d.RequireViewContains("Selected Greenhaven")

	cur, err := app.Plans.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, green.ID, cur.ID)
}

func TestPlanBrowser_NavigateAndSelect(t *testing.T) {
	app := testApp(t)
	seedPlans(t, app)
	ctx := context.Background()
	plans, err := app.Plans.List(ctx)
	require.NoError(t, err)
	require.NoError(t, app.Plans.Select(ctx, plans[0].ID))

	d := newBrowserDriver(t, app)
	d.PressDown()
	d.PressDown()
	d.PressUp()
	d.PressKey('j')
	d.PressEnter()

	cur, err := app.Plans.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, plans[1].ID, cur.ID)
}

func TestPlanBrowser_DeleteRequiresConfirmation(t *testing.T) {
	app := testApp(t)
	seedPlans(t, app)
	ctx := context.Background()

	d := newBrowserDriver(t, app)
	d.PressKey('d')
	d.RequireViewContains("Delete Greenhaven? (y/n)")

	d.PressKey('n')
	d.RequireViewNotContains("Delete Greenhaven?")
	plans, err := app.Plans.List(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 2)

	d.PressKey('d')
	d.PressKey('y')
	d.RequireViewContains("Deleted Greenhaven")

	plans, err = app.Plans.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Harbor Point", plans[0].CityName)
}

func TestPlanBrowser_DeleteLastRowMovesCursorUp(t *testing.T) {
	app := testApp(t)
	seedPlans(t, app)

	d := newBrowserDriver(t, app)
	d.PressDown()
	d.PressKey('d')
	d.PressKey('y')

	browser := d.Model.(*planBrowser)
	assert.Equal(t, 0, browser.cursor)
	d.RequireViewContains("Greenhaven", "Deleted Harbor Point")
	d.RequireViewNotContains("b2222222")
}

func TestPlanBrowser_Filter(t *testing.T) {
	app := testApp(t)
	green, _ := seedPlans(t, app)
	require.NoError(t, app.Plans.Select(context.Background(), green.ID))

	d := newBrowserDriver(t, app)
	d.PressKey('/')
	d.Type("harb")
	d.RequireViewContains("harb", "Harbor Point")
	d.RequireViewNotContains("Greenhaven")

	d.PressEnter()
	d.PressEnter()
	cur, err := app.Plans.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Harbor Point", cur.CityName)

	d.PressKey('/')
	d.PressEsc()
	d.RequireViewContains("Greenhaven", "Harbor Point")
}

func TestPlanBrowser_FilterNoMatches(t *testing.T) {
	app := testApp(t)
	seedPlans(t, app)

	d := newBrowserDriver(t, app)
	d.PressKey('/')
	d.Type("zz")
	d.RequireViewContains(`No plans match "zz"`)
}

func TestPlanBrowser_DetailTogglesAllocation(t *testing.T) {
	app := testApp(t)
	seedPlans(t, app)

	d := newBrowserDriver(t, app)
	d.RequireViewNotContains("Emergency Reserve")
	d.SendKey(tea.KeyMsg{Type: tea.KeyTab})
	d.RequireViewContains("Infrastructure", "Emergency Reserve")
}

func TestPlanBrowser_Quit(t *testing.T) {
	d := newBrowserDriver(t, testApp(t))
	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestPlanBrowser_CtrlCQuits(t *testing.T) {
	d := newBrowserDriver(t, testApp(t))
	d.PressCtrlC()
	assert.True(t, d.Quitting)
}

func TestPlanBrowser_NarrowTerminalTruncatesNames(t *testing.T) {
	app := testApp(t)
	seedPlans(t, app)

	d := newBrowserDriver(t, app)
	d.RequireViewContains("Harbor Point")

	d.Resize(50, 20)
	d.RequireViewContains("Harbor Po…", "Greenhaven")
	d.RequireViewNotContains("Harbor Point")

	d.Resize(120, 40)
	d.RequireViewContains("Harbor Point")
}

func TestPlanBrowser_LoadsWithGenerousCmdTimeout(t *testing.T) {
	app := testApp(t)
	seedPlans(t, app)

	d := teatest.New(t, newPlanBrowser(context.Background(), app),
		teatest.WithSize(100, 40), teatest.WithCmdTimeout(2*time.Second))
	d.DrainInit()
	d.PressEnter()
	d.RequireViewContains("Selected Greenhaven")
}
