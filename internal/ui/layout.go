package ui

import "time"

// Screen layout in terminal cells.
const (
	// headerRows covers the status line and the command bar.
	headerRows = 2

	// formPaneWidth is the preferred width of the metadata pane.
	formPaneWidth = 48

	// formPaneMinWidth keeps the metadata pane usable on narrow terminals.
	formPaneMinWidth = 30

	// debugPaneHeight is the debug log box height including borders.
	debugPaneHeight = 7

	// LayoutCompactWidth is the threshold below which the header drops detail.
	LayoutCompactWidth = 100
)

// Modal widths.
const (
	helpModalWidth   = 48
	alertModalWidth  = 56
	inputModalWidth  = 60
	browserModalWide = 76
)

// Timing constants.
const (
	// SavedFlashDuration is how long the save confirmation stays visible.
	SavedFlashDuration = 3 * time.Second
)

// paneLayout is the geometry of the main screen for a terminal size.
type paneLayout struct {
	// Preview pane interior, in screen cells.
	previewX, previewY       int
	previewCols, previewRows int
	previewWidth             int // including borders

	formWidth  int // including borders
	mainHeight int // preview and form boxes
	debugRows  int // debug box height including borders, 0 when hidden
}

func computeLayout(width, height int) paneLayout {
	var l paneLayout
	content := max(height-headerRows, 0)

	l.debugRows = debugPaneHeight
	if content < debugPaneHeight*3 {
		l.debugRows = 0
	}
	l.mainHeight = content - l.debugRows

	l.formWidth = min(formPaneWidth, max(formPaneMinWidth, width/3))
	l.previewWidth = max(width-l.formWidth, 0)

	l.previewX = 1
	l.previewY = headerRows + 1
	l.previewCols = max(l.previewWidth-2, 0)
	l.previewRows = max(l.mainHeight-2, 0)
	return l
}
