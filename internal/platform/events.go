package platform

// Event is a display-server event relevant to window management.
type Event interface {
	isEvent()
}

// MapRequest asks for a window to be shown.
type MapRequest struct {
	Window WindowID
}

// UnmapNotify reports a window that was hidden.
type UnmapNotify struct {
	Window WindowID
}

// DestroyNotify reports a window that was destroyed.
type DestroyNotify struct {
	Window WindowID
}

// MessageKind classifies client messages.
type MessageKind int

const (
	MessageOther MessageKind = iota
	// MessageFullscreen is a _NET_WM_STATE request naming the fullscreen state.
	MessageFullscreen
	// MessageActivate is a _NET_ACTIVE_WINDOW request.
	MessageActivate
)

// Fullscreen request actions.
const (
	StateRemove = 0
	StateAdd    = 1
	StateToggle = 2
)

// ClientMessage is a state-change request sent by a client.
type ClientMessage struct {
	Window WindowID
	Kind   MessageKind
	Action int
}

// Bits of ConfigureRequest.ValueMask.
const (
	ConfigX uint16 = 1 << iota
	ConfigY
	ConfigWidth
	ConfigHeight
	ConfigBorderWidth
	ConfigSibling
	ConfigStackMode
)

// ConfigureRequest carries a client's geometry and stacking request.
type ConfigureRequest struct {
	Window      WindowID
	X, Y        int
	Width       int
	Height      int
	BorderWidth int
	Sibling     WindowID
	StackMode   byte
	ValueMask   uint16
}

// PropertyNotify reports a property change. Hints is set when the changed
// property is WM_HINTS.
type PropertyNotify struct {
	Window WindowID
	Hints  bool
}

// FocusIn reports that a window received input focus.
type FocusIn struct {
	Window WindowID
}

// Crossing modes and details of EnterNotify.
const (
	CrossingNormal  = 0
	DetailInferior  = 2
	DetailNonlinear = 3
)

// EnterNotify reports the pointer entering a window.
type EnterNotify struct {
	Window WindowID
	Mode   int
	Detail int
}

// KeyPress reports a grabbed key.
type KeyPress struct {
	Keycode byte
	State   uint16
}

// ButtonPress reports a grabbed button.
type ButtonPress struct {
	Window WindowID
	Button byte
	State  uint16
	RootX  int
	RootY  int
}

// MotionNotify reports pointer motion during a pointer grab.
type MotionNotify struct {
	RootX int
	RootY int
}

// ButtonRelease ends a pointer drag.
type ButtonRelease struct {
	Button byte
}

// MappingNotify reports a keyboard remap; key grabs must be reinstalled.
type MappingNotify struct{}

func (MapRequest) isEvent()       {}
func (UnmapNotify) isEvent()      {}
func (DestroyNotify) isEvent()    {}
func (ClientMessage) isEvent()    {}
func (ConfigureRequest) isEvent() {}
func (PropertyNotify) isEvent()   {}
func (FocusIn) isEvent()          {}
func (EnterNotify) isEvent()      {}
func (KeyPress) isEvent()         {}
func (ButtonPress) isEvent()      {}
func (MotionNotify) isEvent()     {}
func (ButtonRelease) isEvent()    {}
func (MappingNotify) isEvent()    {}
