package styles

var (
	IconNotifySuccess = "✓"
	IconNotifyError   = "✗"
	IconNotifyWarning = "!"
	IconNotifyInfo    = "i"
	IconPaused        = "⏸"
	IconPinned        = "•"
)

// Progress bar glyphs.
var (
	BarFilled = "━"
	BarEmpty  = "─"
)
