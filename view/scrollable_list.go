package view

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ScrollableList stacks fixed-height items and scrolls to keep the
// selected one visible.
type ScrollableList struct {
	*tview.Box
	items      []tview.Primitive
	itemHeight int
	selection  int
	offset     int
}

// NewScrollableList creates an empty list with single-row items
func NewScrollableList() *ScrollableList {
	return &ScrollableList{Box: tview.NewBox(), itemHeight: 1, selection: -1}
}

// SetItemHeight sets the row count of every item
func (sl *ScrollableList) SetItemHeight(h int) *ScrollableList {
	sl.itemHeight = max(1, h)
	return sl
}

// AddItem appends an item
func (sl *ScrollableList) AddItem(p tview.Primitive) *ScrollableList {
	sl.items = append(sl.items, p)
	return sl
}

// Clear removes all items. The scroll offset is kept so a rebuild after a
// change does not jump.
func (sl *ScrollableList) Clear() *ScrollableList {
	sl.items = nil
	return sl
}

// ItemCount returns the number of items
func (sl *ScrollableList) ItemCount() int {
	return len(sl.items)
}

// SetSelection marks an item as selected; -1 clears the selection
func (sl *ScrollableList) SetSelection(index int) *ScrollableList {
	sl.selection = index
	return sl
}

// Selection returns the selected index or -1
func (sl *ScrollableList) Selection() int {
	return sl.selection
}

// Offset returns the index of the first visible item
func (sl *ScrollableList) Offset() int {
	return sl.offset
}

// adjustOffset scrolls so the selection fits in visible items.
func (sl *ScrollableList) adjustOffset(visible int) {
	if visible <= 0 {
		return
	}
	maxOffset := max(0, len(sl.items)-visible)
	if sl.selection >= 0 {
		if sl.selection < sl.offset {
			sl.offset = sl.selection
		} else if sl.selection >= sl.offset+visible {
			sl.offset = sl.selection - visible + 1
		}
	}
	sl.offset = min(max(sl.offset, 0), maxOffset)
}

// Draw lays out the visible items top to bottom
func (sl *ScrollableList) Draw(screen tcell.Screen) {
	sl.DrawForSubclass(screen, sl)

	x, y, width, height := sl.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	visible := height / sl.itemHeight
	sl.adjustOffset(visible)

	for i := sl.offset; i < len(sl.items) && i < sl.offset+visible; i++ {
		item := sl.items[i]
		item.SetRect(x, y+(i-sl.offset)*sl.itemHeight, width, sl.itemHeight)
		item.Draw(screen)
	}
}
