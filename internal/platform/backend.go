package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Pixel is an allocated color value.
type Pixel uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
}

// Attributes describes a window the window manager has not adopted yet.
type Attributes struct {
	OverrideRedirect bool
	Viewable         bool
	Bounds           Rect
}

// Backend is the set of display-server primitives the window manager core
// is written against. Operations on windows that vanished are not errors;
// implementations swallow those races.
type Backend interface {
	Root() WindowID
	Displays() ([]Display, error)
	AllocColor(name string) (Pixel, error)

	ResolveKey(chord string) (mods uint16, codes []byte, err error)
	ResolveButton(chord string) (mods uint16, button byte, err error)
	CleanMask(state uint16) uint16
	GrabKey(mods uint16, code byte)
	UngrabKeys()
	GrabButton(win WindowID, mods uint16, button byte)
	UngrabButton(win WindowID, mods uint16, button byte)

	// SelectClientInput arms property and focus tracking on a managed
	// window, plus pointer entry when followMouse is set.
	SelectClientInput(win WindowID, followMouse bool)
	SetEnterEvents(win WindowID, enabled bool)
	// SuppressRootNotify stops SubstructureNotify on the root while
	// windows are mapped and unmapped in bulk.
	SuppressRootNotify(suppress bool)

	Map(win WindowID)
	Unmap(win WindowID)
	Move(win WindowID, x, y int)
	MoveResize(win WindowID, bounds Rect)
	SetBorderWidth(win WindowID, width int)
	SetBorderColor(win WindowID, color Pixel)
	Raise(win WindowID)
	SetInputFocus(win WindowID)
	SetActiveWindow(win WindowID)
	ClearActiveWindow()
	SetCurrentDesktop(desktop int)
	Configure(req ConfigureRequest)
	Sync()

	WindowAttributes(win WindowID) (Attributes, error)
	Children() ([]WindowID, error)
	WindowClass(win WindowID) (class, instance string)
	IsTransient(win WindowID) bool
	WindowName(win WindowID) string
	WantsFullscreen(win WindowID) bool
	IsNotification(win WindowID) bool
	IsUrgent(win WindowID) bool
	SetFullscreenState(win WindowID, on bool)
	SupportsDelete(win WindowID) bool
	SendDelete(win WindowID)
	Kill(win WindowID)

	QueryPointer() (x, y int, child WindowID, err error)
	WarpPointer(win WindowID, x, y int)
	GrabPointer() bool
	UngrabPointer()

	// NextEvent blocks for the next event. A returned error is fatal.
	NextEvent() (Event, error)
	Close()
}
