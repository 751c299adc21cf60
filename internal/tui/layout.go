package tui

// Layout proportions
const (
	ListColumnPercent = 60 // List share when the inspector is visible

	MinColumnWidth = 20

	// Tab bar on top, single footer line at the bottom
	ChromeHeight = 2
)

// columnLayout holds calculated column widths for the View
type columnLayout struct {
	listWidth      int
	inspectorWidth int // 0 if not shown
}

// calculateColumnLayout splits the width between list and inspector
func (m Model) calculateColumnLayout(availableWidth int) columnLayout {
	if !m.ShowInspector {
		return columnLayout{listWidth: availableWidth}
	}

	listWidth := max(availableWidth*ListColumnPercent/100, MinColumnWidth)
	inspectorWidth := availableWidth - listWidth
	if inspectorWidth < MinColumnWidth {
		// Too narrow for two columns
		return columnLayout{listWidth: availableWidth}
	}
	return columnLayout{listWidth: listWidth, inspectorWidth: inspectorWidth}
}

// updateLayout resizes components to the current window
func (m *Model) updateLayout() {
	contentHeight := max(m.Height-ChromeHeight, 3)
	layout := m.calculateColumnLayout(m.Width)

	m.List.SetSize(layout.listWidth, contentHeight)
	if layout.inspectorWidth > 0 {
		m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
	}
	m.FilterModal.SetSize(m.Width, m.Height)
}
