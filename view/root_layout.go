package view

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/store"
	"github.com/boolean-maybe/tock/view/header"

	"github.com/rivo/tview"
)

// RootLayout stacks the header above the current page. LayoutModel decides
// which page is shown and HeaderConfig whether the header is.
type RootLayout struct {
	root        *tview.Flex
	header      *header.HeaderWidget
	contentArea *tview.Flex

	headerConfig *model.HeaderConfig
	layoutModel  *model.LayoutModel
	viewFactory  controller.ViewFactory
	taskStore    store.Store

	contentView   controller.View
	lastParamsKey string
	viewStatNames []string

	headerListenerID  int
	layoutListenerID  int
	storeListenerID   int
	lastHeaderVisible bool
	app               *tview.Application
}

// NewRootLayout creates a root layout that observes models and manages header/content.
// app may be nil in tests; focus changes are then skipped.
func NewRootLayout(
	hdr *header.HeaderWidget,
	headerConfig *model.HeaderConfig,
	layoutModel *model.LayoutModel,
	viewFactory controller.ViewFactory,
	taskStore store.Store,
	app *tview.Application,
) *RootLayout {
	rl := &RootLayout{
		root:              tview.NewFlex().SetDirection(tview.FlexRow),
		header:            hdr,
		contentArea:       tview.NewFlex().SetDirection(tview.FlexRow),
		headerConfig:      headerConfig,
		layoutModel:       layoutModel,
		viewFactory:       viewFactory,
		taskStore:         taskStore,
		lastHeaderVisible: headerConfig.IsVisible(),
		app:               app,
	}

	rl.layoutListenerID = layoutModel.AddListener(rl.onLayoutChange)
	rl.headerListenerID = headerConfig.AddListener(rl.onHeaderConfigChange)
	if taskStore != nil {
		rl.storeListenerID = taskStore.AddListener(rl.onStoreChange)
	}
	rl.rebuildLayout()

	return rl
}

// onLayoutChange swaps in a new page, or only re-applies header visibility
// when the page and its params are unchanged.
func (rl *RootLayout) onLayoutChange() {
	viewID := rl.layoutModel.GetContentViewID()
	params := rl.layoutModel.GetContentParams()

	paramsKey, paramsKeyOK := stableParamsKey(params)
	if paramsKeyOK && rl.contentView != nil && rl.contentView.GetViewID() == viewID && paramsKey == rl.lastParamsKey {
		rl.recomputeHeaderVisibility()
		return
	}

	if rl.contentView != nil {
		rl.contentView.OnBlur()
	}

	newView := rl.viewFactory.CreateView(viewID, params)
	if newView == nil {
		slog.Error("failed to create view", "viewID", viewID)
		return
	}
	rl.lastParamsKey = ""
	if paramsKeyOK {
		rl.lastParamsKey = paramsKey
	}

	rl.recomputeHeaderVisibility()

	rl.contentArea.Clear()
	rl.contentArea.AddItem(newView.GetPrimitive(), 0, 1, true)
	rl.contentView = newView

	rl.syncHeader(newView)

	// Views whose keys or stats change while active re-sync the header
	if notifier, ok := newView.(controller.ViewChangeNotifier); ok {
		notifier.SetViewChangeHandler(func() {
			if rl.contentView == newView {
				rl.syncHeader(newView)
			}
		})
	}

	newView.OnFocus()
	if rl.app != nil {
		rl.app.SetFocus(newView.GetPrimitive())
	}
}

// recomputeHeaderVisibility applies the user preference
func (rl *RootLayout) recomputeHeaderVisibility() {
	rl.headerConfig.SetVisible(rl.headerConfig.GetUserPreference())
}

func (rl *RootLayout) onHeaderConfigChange() {
	currentVisible := rl.headerConfig.IsVisible()
	if currentVisible != rl.lastHeaderVisible {
		rl.lastHeaderVisible = currentVisible
		rl.rebuildLayout()
	}
}

// rebuildLayout re-adds the header rows when visible
func (rl *RootLayout) rebuildLayout() {
	rl.root.Clear()

	if rl.headerConfig.IsVisible() {
		rl.root.AddItem(rl.header, header.HeaderHeight, 0, false)
		rl.root.AddItem(tview.NewBox(), 1, 0, false) // spacer
	}

	rl.root.AddItem(rl.contentArea, 0, 1, true)
}

// GetPrimitive returns the root tview primitive for app.SetRoot()
func (rl *RootLayout) GetPrimitive() tview.Primitive {
	return rl.root
}

// GetActionRegistry delegates to the content view
func (rl *RootLayout) GetActionRegistry() *controller.ActionRegistry {
	if rl.contentView != nil {
		return rl.contentView.GetActionRegistry()
	}
	return controller.NewActionRegistry()
}

// GetViewID delegates to the content view
func (rl *RootLayout) GetViewID() model.ViewID {
	if rl.contentView != nil {
		return rl.contentView.GetViewID()
	}
	return ""
}

// GetContentView returns the current content view
func (rl *RootLayout) GetContentView() controller.View {
	return rl.contentView
}

// OnFocus delegates to the content view
func (rl *RootLayout) OnFocus() {
	if rl.contentView != nil {
		rl.contentView.OnFocus()
	}
}

// OnBlur delegates to the content view
func (rl *RootLayout) OnBlur() {
	if rl.contentView != nil {
		rl.contentView.OnBlur()
	}
}

// Cleanup detaches from the models and blurs the current page
func (rl *RootLayout) Cleanup() {
	rl.layoutModel.RemoveListener(rl.layoutListenerID)
	rl.headerConfig.RemoveListener(rl.headerListenerID)
	if rl.taskStore != nil {
		rl.taskStore.RemoveListener(rl.storeListenerID)
	}
	if rl.contentView != nil {
		rl.contentView.OnBlur()
	}
}

// onStoreChange refreshes the page stats after any task write
func (rl *RootLayout) onStoreChange() {
	if rl.contentView != nil {
		rl.updateViewStats(rl.contentView)
	}
}

// syncHeader shows the view's key bindings and stats in the header
func (rl *RootLayout) syncHeader(v controller.View) {
	rl.headerConfig.SetViewActions(v.GetActionRegistry().ToHeaderActions())
	rl.updateViewStats(v)
}

// updateViewStats replaces the previous view's stats with v's
func (rl *RootLayout) updateViewStats(v controller.View) {
	var stats []model.HeaderStat
	if sp, ok := v.(controller.StatsProvider); ok {
		stats = sp.GetStats()
	}

	names := make([]string, 0, len(stats))
	for _, stat := range stats {
		names = append(names, stat.Name)
		rl.headerConfig.SetStat(stat.Name, stat.Value, stat.Order)
	}
	for _, old := range rl.viewStatNames {
		if !slices.Contains(names, old) {
			rl.headerConfig.RemoveStat(old)
		}
	}
	rl.viewStatNames = names
}

// stableParamsKey fingerprints params so a Touch can be told apart from a
// request for a fresh view. Non-scalar values report false.
func stableParamsKey(params map[string]any) (string, bool) {
	if len(params) == 0 {
		return "", true
	}
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(params)) {
		switch v := params[k].(type) {
		case nil, string, bool, int, int64, float64:
			fmt.Fprintf(&b, "%q=%#v;", k, v)
		default:
			return "", false
		}
	}
	return b.String(), true
}
