package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/udisondev/monench/internal/model"
)

// Severity ranks a notification.
type Severity int

const (
	SeverityPlain Severity = iota
	SeverityWarn
	SeverityDanger
)

func (s Severity) String() string {
	switch s {
	case SeverityPlain:
		return "plain"
	case SeverityWarn:
		return "warn"
	case SeverityDanger:
		return "danger"
	default:
		return "unknown"
	}
}

// Notifier receives player-facing events. Whether a message is shown is the
// notifier's business; the engine behaves the same either way.
//
// Templates use "{name}" as a placeholder for the monster's name.
type Notifier interface {
	Notify(m *model.Monster, template string, sev Severity)
}

// Render substitutes the monster's name into template.
func Render(m *model.Monster, template string) string {
	return strings.ReplaceAll(template, "{name}", m.Name())
}

// SlogNotifier writes notifications to a slog logger.
type SlogNotifier struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (n SlogNotifier) Notify(m *model.Monster, template string, sev Severity) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if sev >= SeverityWarn {
		level = slog.LevelWarn
	}
	logger.Log(context.Background(), level, Render(m, template),
		"monster", m.ID(),
		"severity", sev.String())
}

// Message is one recorded notification.
type Message struct {
	Monster  uint32
	Text     string
	Severity Severity
}

// Recorder keeps every notification in memory.
type Recorder struct {
	Messages []Message
}

// Notify implements Notifier.
func (r *Recorder) Notify(m *model.Monster, template string, sev Severity) {
	r.Messages = append(r.Messages, Message{
		Monster:  m.ID(),
		Text:     Render(m, template),
		Severity: sev,
	})
}

// Count returns how many recorded messages contain substr.
func (r *Recorder) Count(substr string) int {
	n := 0
	for _, msg := range r.Messages {
		if strings.Contains(msg.Text, substr) {
			n++
		}
	}
	return n
}

type discardNotifier struct{}

func (discardNotifier) Notify(*model.Monster, string, Severity) {}
