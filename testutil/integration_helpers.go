package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/internal/app"
	"github.com/boolean-maybe/tock/internal/bootstrap"
	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/stats"
	"github.com/boolean-maybe/tock/store/filekv"
	"github.com/boolean-maybe/tock/timer"
	"github.com/boolean-maybe/tock/view"
	"github.com/boolean-maybe/tock/view/header"
)

// TestApp wraps the full MVC stack for integration testing with SimulationScreen
type TestApp struct {
	App           *tview.Application
	Screen        tcell.SimulationScreen
	RootLayout    *view.RootLayout
	Services      *bootstrap.Services
	NavController *controller.NavigationController
	InputRouter   *controller.InputRouter
	Controllers   *bootstrap.Controllers
	HeaderConfig  *model.HeaderConfig
	DataDir       string
	Theme         string
	t             *testing.T
	headerWidget  *header.HeaderWidget
	cancel        context.CancelFunc
}

// NewTestApp bootstraps the full MVC stack over a file store in a temp dir.
// Mirrors the initialization sequence of bootstrap.Bootstrap.
func NewTestApp(t *testing.T) *TestApp {
	t.Helper()

	// 1. Data directory (auto-cleanup via t.TempDir())
	dataDir := t.TempDir()
	kv, err := filekv.NewOS(dataDir)
	if err != nil {
		t.Fatalf("failed to open file store: %v", err)
	}

	// 2. Services and models
	svc, err := bootstrap.NewServices(kv, nil, stats.DefaultGoals)
	if err != nil {
		t.Fatalf("failed to create services: %v", err)
	}
	svc.Backend = config.BackendFile
	svc.DataDir = dataDir

	headerConfig := model.NewHeaderConfig()
	layoutModel := model.NewLayoutModel()
	bootstrap.InitHeaderBaseStats(headerConfig, svc.Tasks)

	// 3. SimulationScreen
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	screen.SetSize(100, 40)
	screen.Clear()

	// 4. tview.Application on the simulation screen
	application := tview.NewApplication()
	application.SetScreen(screen)

	// 5. Controllers. No dictation recognizer is configured.
	ctx, cancel := context.WithCancel(context.Background())
	nav := controller.NewNavigationController(application)
	controllers := &bootstrap.Controllers{
		Nav:       nav,
		Task:      svc.Tasks,
		TaskList:  controller.NewTaskListController(ctx, svc.Tasks, model.NewTaskListState(), nav, nil),
		Timer:     controller.NewTimerController(ctx, timer.NewRunner(timer.DefaultWork, timer.DefaultBreak)),
		Analytics: controller.NewAnalyticsController(svc.Stats),
	}

	inputRouter := controller.NewInputRouter(
		nav,
		controllers.TaskList,
		controllers.Timer,
		controllers.Analytics,
		headerConfig,
		svc.TaskStore,
		svc.Stats,
	)

	ta := &TestApp{
		App:           application,
		Screen:        screen,
		Services:      svc,
		NavController: nav,
		InputRouter:   inputRouter,
		Controllers:   controllers,
		HeaderConfig:  headerConfig,
		DataDir:       dataDir,
		Theme:         "dark",
		t:             t,
		cancel:        cancel,
	}
	// theme changes stay in memory
	inputRouter.SetThemeToggler(func() (string, error) {
		if ta.Theme == "dark" {
			ta.Theme = "light"
		} else {
			ta.Theme = "dark"
		}
		return ta.Theme, nil
	})

	// 6. View layer. A nil queueUpdate runs view refreshes inline, there is no event loop.
	viewFactory := view.NewViewFactory(controllers.TaskList, controllers.Timer, controllers.Analytics, nil)
	ta.headerWidget = header.NewHeaderWidget(headerConfig)
	ta.RootLayout = view.NewRootLayout(ta.headerWidget, headerConfig, layoutModel, viewFactory, svc.TaskStore, application)

	// 7. Navigation callbacks and global input capture
	nav.SetOnViewChanged(func(viewID model.ViewID, params map[string]interface{}) {
		layoutModel.SetContent(viewID, params)
	})
	nav.SetActiveViewGetter(ta.RootLayout.GetContentView)
	app.InstallGlobalInputCapture(application, inputRouter, nav)

	// 8. Root layout and initial page
	application.SetRoot(ta.RootLayout.GetPrimitive(), true).EnableMouse(false)
	nav.SwitchPage(model.TaskListViewID)

	// Note: Do NOT call app.Run() - we use Draw() + screen.Show() for synchronous testing
	ta.Draw()
	return ta
}

// Draw forces a synchronous draw without running the app event loop
func (ta *TestApp) Draw() {
	_, width, height := ta.Screen.GetContents()
	ta.RootLayout.GetPrimitive().SetRect(0, 0, width, height)
	ta.RootLayout.GetPrimitive().Draw(ta.Screen)
	ta.Screen.Show()
}

// SendKey simulates a key press by directly calling the input capture handler.
// If InputCapture doesn't consume the event, it's forwarded to the focused primitive.
func (ta *TestApp) SendKey(key tcell.Key, ch rune, mod tcell.ModMask) {
	event := tcell.NewEventKey(key, ch, mod)
	consumed := false
	if capture := ta.App.GetInputCapture(); capture != nil {
		consumed = capture(event) == nil
	}

	if !consumed {
		if focused := ta.App.GetFocus(); focused != nil {
			if handler := focused.InputHandler(); handler != nil {
				handler(event, func(p tview.Primitive) { ta.App.SetFocus(p) })
			}
		}
	}

	ta.Draw()
}

// SendRune presses a single printable key.
func (ta *TestApp) SendRune(ch rune) {
	ta.SendKey(tcell.KeyRune, ch, tcell.ModNone)
}

// SendText types a string of characters
func (ta *TestApp) SendText(text string) {
	for _, ch := range text {
		ta.SendRune(ch)
	}
}

// AddTask types text into the task input and submits it, as a user would.
func (ta *TestApp) AddTask(text string) {
	ta.SendRune('a')
	ta.SendText(text)
	ta.SendKey(tcell.KeyEnter, 0, tcell.ModNone)
	ta.SendKey(tcell.KeyEscape, 0, tcell.ModNone)
}

// GetTextAt extracts text from a screen region starting at (x, y) with given width
func (ta *TestApp) GetTextAt(x, y, width int) string {
	contents, screenWidth, _ := ta.Screen.GetContents()
	var result strings.Builder

	for i := 0; i < width; i++ {
		cellIdx := y*screenWidth + (x + i)
		if cellIdx >= len(contents) {
			break
		}
		cell := contents[cellIdx]
		if len(cell.Runes) > 0 {
			result.WriteRune(cell.Runes[0])
		} else {
			result.WriteRune(' ')
		}
	}

	return strings.TrimSpace(result.String())
}

// FindText searches for a text string anywhere on the screen.
// Returns (found, x, y) where x, y are the coordinates of the first match.
func (ta *TestApp) FindText(needle string) (bool, int, int) {
	_, width, height := ta.Screen.GetContents()
	for y := 0; y < height; y++ {
		rowText := ta.GetTextAt(0, y, width)
		if x := strings.Index(rowText, needle); x >= 0 {
			return true, x, y
		}
	}
	return false, 0, 0
}

// DumpScreen prints the current screen content for debugging
func (ta *TestApp) DumpScreen() {
	_, width, height := ta.Screen.GetContents()
	ta.t.Logf("Screen size: %dx%d", width, height)
	for y := 0; y < height; y++ {
		if line := ta.GetTextAt(0, y, width); line != "" {
			ta.t.Logf("Row %2d: %s", y, line)
		}
	}
}

// Cleanup tears down the test app and releases resources
func (ta *TestApp) Cleanup() {
	ta.cancel()
	ta.RootLayout.Cleanup()
	ta.headerWidget.Cleanup()
	ta.Screen.Fini()
}
