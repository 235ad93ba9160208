package notify

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	method     = busName + ".Notify"

	appName = "mwm"
	icon    = "dialog-information"
	summary = "mwm"
)

// caller is the part of dbus.BusObject used to send notifications.
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Notifier posts desktop notifications over the session bus. Calls are
// flagged NoReplyExpected, so Notify never waits on the notification
// daemon. A Notifier without a bus connection logs and drops everything.
type Notifier struct {
	conn   *dbus.Conn
	obj    caller
	logger *slog.Logger
}

// Connect opens a private session bus connection. Failing to reach the bus
// is not an error: the returned Notifier drops notifications.
func Connect(logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	n := &Notifier{logger: logger}

	conn, err := dbus.SessionBusPrivate()
	if err == nil {
		err = conn.Auth(nil)
		if err == nil {
			err = conn.Hello()
		}
		if err != nil {
			conn.Close()
		}
	}
	if err != nil {
		logger.Warn("session bus unavailable, notifications disabled", "error", err)
		return n
	}

	n.conn = conn
	n.obj = conn.Object(busName, objectPath)
	return n
}

// Notify sends body with the given urgency (0 low, 1 normal, 2 critical)
// and expiry timeout.
func (n *Notifier) Notify(body string, urgency byte, timeout time.Duration) {
	if n.obj == nil {
		n.logger.Debug("notification dropped", "body", body)
		return
	}
	call := n.obj.Call(method, dbus.FlagNoReplyExpected, args(body, urgency, timeout)...)
	if call != nil && call.Err != nil {
		n.logger.Warn("notification failed", "body", body, "error", call.Err)
	}
}

// Close releases the bus connection.
func (n *Notifier) Close() error {
	if n.conn == nil {
		return nil
	}
	if err := n.conn.Close(); err != nil {
		return fmt.Errorf("close session bus: %w", err)
	}
	return nil
}

// args builds the Notify argument list: app name, replaces id, icon,
// summary, body, actions, hints and timeout in milliseconds. D-Bus strings
// must be UTF-8, so invalid sequences in body are replaced.
func args(body string, urgency byte, timeout time.Duration) []interface{} {
	body = strings.ToValidUTF8(body, "\uFFFD")
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgency),
	}
	return []interface{}{
		appName,
		uint32(0),
		icon,
		summary,
		body,
		[]string{},
		hints,
		int32(timeout / time.Millisecond),
	}
}
