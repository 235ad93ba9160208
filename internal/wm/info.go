package wm

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultStatus = "status info"

func (m *Manager) notify(body string, urgency byte, timeout time.Duration) {
	m.notifier.Notify(body, urgency, timeout)
}

// desktopInfo announces the active desktop of mon, counting from 1.
func (m *Manager) desktopInfo(mon *Monitor) {
	m.notify(strconv.Itoa(mon.Current+1), urgencyCritical, 500*time.Millisecond)
}

// clientInfo announces the focused client of mon's active desktop.
func (m *Manager) clientInfo(mon *Monitor) {
	c := m.store.Get(mon.desktop().curr)
	if c == nil {
		return
	}
	urgency := urgencyNormal
	if c.Urgent {
		urgency = urgencyCritical
	}
	m.notify(c.Name, urgency, 500*time.Millisecond)
}

// status announces the first line of the status file.
func (m *Manager) status() {
	m.notify(readStatus(m.cfg.StatusFile), urgencyNormal, time.Second)
}

func readStatus(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return defaultStatus
	}
	defer f.Close()

	line, _ := bufio.NewReader(f).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return defaultStatus
	}
	return line
}

// listClients announces the clients of d in order. The focused one is
// starred and fixed ones are bracketed.
func (m *Manager) listClients(d *Desktop) {
	m.notify(formatClients(m, d), urgencyNormal, 500*time.Millisecond)
}

func formatClients(m *Manager, d *Desktop) string {
	var b strings.Builder
	for i, id := range d.clients {
		c := m.store.Get(id)
		marker := ' '
		if id == d.curr {
			marker = '*'
		}
		name := c.Name
		if c.Fixed {
			name = "[" + name + "]"
		}
		fmt.Fprintf(&b, "%d: %c%s\n", i+1, marker, name)
	}
	return b.String()
}

func (m *Manager) fixedInfo(c *Client) {
	state := "mutable"
	if c.Fixed {
		state = "immutable"
	}
	m.notify(c.Name+" "+state, urgencyNormal, time.Second)
}
