package ui

// Layout constants for the shell.
const (
	HeaderHeight = 2
	FooterHeight = 1
	InputHeight  = 3
	NoticeHeight = 1

	SidebarWidth       = 28
	CompactModeWidth   = 90
	MinimumWidth       = 40
	DialogMaxWidth     = 64
	DialogMarginH      = 4
	ContentPaddingH    = 4
	MarkdownWrapMargin = 4
)

// Rect is a screen region in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// LayoutConfig provides computed dimensions for a terminal size.
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

func NewLayoutConfig(width, height int) LayoutConfig {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// SidebarWidth returns the recent-chats column width; zero when compact.
func (l LayoutConfig) SidebarWidth() int {
	if l.IsCompact {
		return 0
	}
	return SidebarWidth
}

// MainWidth returns the width left for the active view.
func (l LayoutConfig) MainWidth() int {
	return max(l.TerminalWidth-l.SidebarWidth(), MinimumWidth)
}

// TranscriptHeight returns the height of the chat viewport.
func (l LayoutConfig) TranscriptHeight() int {
	return max(l.TerminalHeight-HeaderHeight-FooterHeight-InputHeight-NoticeHeight, 1)
}

// MarkdownWidth is the word-wrap width for rendered assistant replies.
func (l LayoutConfig) MarkdownWidth() int {
	return max(l.MainWidth()-ContentPaddingH-MarkdownWrapMargin, 20)
}

// DialogRect centers a box of the given rendered size on the screen.
func (l LayoutConfig) DialogRect(w, h int) Rect {
	w = min(w, l.TerminalWidth)
	h = min(h, l.TerminalHeight)
	return Rect{
		X: (l.TerminalWidth - w) / 2,
		Y: (l.TerminalHeight - h) / 2,
		W: w,
		H: h,
	}
}

// DialogWidth is the content width for dialogs.
func (l LayoutConfig) DialogWidth() int {
	return max(min(DialogMaxWidth, l.TerminalWidth-DialogMarginH*2), MinimumWidth/2)
}
