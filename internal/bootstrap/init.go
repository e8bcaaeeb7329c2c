package bootstrap

import (
	"context"
	"io"
	"log/slog"

	"github.com/rivo/tview"
	"github.com/spf13/pflag"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/internal/app"
	"github.com/boolean-maybe/tock/internal/background"
	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/util/sysinfo"
	"github.com/boolean-maybe/tock/view"
	"github.com/boolean-maybe/tock/view/header"
)

// BootstrapResult contains all initialized application components.
type BootstrapResult struct {
	Cfg      *config.Config
	LogLevel slog.Level
	// SystemInfo is collected before the screen starts, from terminfo and
	// the environment.
	SystemInfo   *sysinfo.SystemInfo
	Services     *Services
	HeaderConfig *model.HeaderConfig
	LayoutModel  *model.LayoutModel
	App          *tview.Application
	Controllers  *Controllers
	InputRouter  *controller.InputRouter
	ViewFactory  *view.ViewFactory
	HeaderWidget *header.HeaderWidget
	RootLayout   *view.RootLayout
	Watcher      *background.DataWatcher
	Context      context.Context
	CancelFunc   context.CancelFunc

	logFile io.Closer
}

// Close stops background work and releases the stores and the log file.
// Safe to call once the application has stopped.
func (r *BootstrapResult) Close() {
	r.CancelFunc()
	if r.Watcher != nil {
		r.Watcher.Stop()
	}
	r.RootLayout.Cleanup()
	r.HeaderWidget.Cleanup()
	if err := r.Services.Close(); err != nil {
		slog.Warn("failed to close store", "error", err)
	}
	_ = r.logFile.Close()
}

// Bootstrap orchestrates the complete application initialization sequence.
// flags are the root command's flags.
func Bootstrap(flags *pflag.FlagSet) (*BootstrapResult, error) {
	// Phase 1: Configuration and logging
	cfg, err := LoadConfig(flags)
	if err != nil {
		return nil, err
	}
	if err := EnsureUserConfig(); err != nil {
		return nil, err
	}
	logLevel, logFile := InitLogging(cfg)

	// Phase 2: System information collection
	// Collected before app creation; gradients are gated on the color depth
	systemInfo := sysinfo.NewSystemInfo()
	config.UseGradients, config.UseWideGradients = systemInfo.GradientSupport(config.GetGradientThreshold())
	slog.Debug("collected system information",
		"os", systemInfo.OS,
		"arch", systemInfo.Architecture,
		"term", systemInfo.TermType,
		"theme", systemInfo.DetectedTheme,
		"color_support", systemInfo.ColorSupport,
		"color_count", systemInfo.ColorCount,
		"gradients", config.UseGradients)

	// Phase 3: Store initialization
	svc, err := InitServices()
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	// Phase 4: Model initialization
	headerConfig, layoutModel := InitHeaderAndLayoutModels()
	InitHeaderBaseStats(headerConfig, svc.Tasks)

	// Phase 5: Application and controllers
	application := app.NewApp()
	app.SetupSignalHandler(application)
	queueUpdate := func(fn func()) { application.QueueUpdateDraw(fn) }

	ctx, cancel := context.WithCancel(context.Background())
	controllers := BuildControllers(ctx, application, svc)

	// Phase 6: Input routing
	inputRouter := controller.NewInputRouter(
		controllers.Nav,
		controllers.TaskList,
		controllers.Timer,
		controllers.Analytics,
		headerConfig,
		svc.TaskStore,
		svc.Stats,
	)

	// Phase 7: View factory and layout
	viewFactory := view.NewViewFactory(controllers.TaskList, controllers.Timer, controllers.Analytics, queueUpdate)

	headerWidget := header.NewHeaderWidget(headerConfig)
	rootLayout := view.NewRootLayout(headerWidget, headerConfig, layoutModel, viewFactory, svc.TaskStore, application)

	// Phase 8: Background tasks
	background.PublishTimerStat(controllers.Timer.Runner(), headerConfig, queueUpdate)
	watcher := startWatcher(ctx, svc, queueUpdate)

	// Phase 9: Navigation and input wiring
	wireNavigation(controllers.Nav, layoutModel, rootLayout)
	app.InstallGlobalInputCapture(application, inputRouter, controllers.Nav)

	// Phase 10: Initial view
	controllers.Nav.SwitchPage(model.TaskListViewID)

	return &BootstrapResult{
		Cfg:          cfg,
		LogLevel:     logLevel,
		SystemInfo:   systemInfo,
		Services:     svc,
		HeaderConfig: headerConfig,
		LayoutModel:  layoutModel,
		App:          application,
		Controllers:  controllers,
		InputRouter:  inputRouter,
		ViewFactory:  viewFactory,
		HeaderWidget: headerWidget,
		RootLayout:   rootLayout,
		Watcher:      watcher,
		Context:      ctx,
		CancelFunc:   cancel,
		logFile:      logFile,
	}, nil
}

// startWatcher reloads tasks and stats when another process (the CLI, a
// second TUI) writes the data directory. Memory stores are not watched.
func startWatcher(ctx context.Context, svc *Services, queueUpdate func(func())) *background.DataWatcher {
	match := svc.WatchMatcher()
	if match == nil {
		return nil
	}
	watcher, err := background.StartDataWatcher(ctx, svc.DataDir, match, func() {
		queueUpdate(func() { reloadServices(svc) })
	})
	if err != nil {
		slog.Warn("not watching data directory", "dir", svc.DataDir, "error", err)
		return nil
	}
	return watcher
}

func reloadServices(svc *Services) {
	if err := svc.TaskStore.Reload(); err != nil {
		slog.Error("failed to reload tasks", "error", err)
	}
	if err := svc.Stats.Load(); err != nil {
		slog.Error("failed to reload stats", "error", err)
	}
}

// wireNavigation wires navigation controller callbacks to keep LayoutModel
// and RootLayout in sync.
func wireNavigation(navController *controller.NavigationController, layoutModel *model.LayoutModel, rootLayout *view.RootLayout) {
	navController.SetOnViewChanged(func(viewID model.ViewID, params map[string]interface{}) {
		layoutModel.SetContent(viewID, params)
	})
	navController.SetActiveViewGetter(rootLayout.GetContentView)
}
