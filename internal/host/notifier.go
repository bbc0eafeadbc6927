package host

import "sync"

// Severity of a persistent message
type Severity int

const (
	SeverityMessage Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "message"
	}
}

// Notifier shows and clears the persistent message attached to an instance
type Notifier interface {
	SetPersistentMessage(sev Severity, msg string)
	ClearPersistentMessage()
}

// Banner is a Notifier that remembers the current message and reports
// every change to an optional callback.
type Banner struct {
	mu       sync.Mutex
	severity Severity
	message  string
	shown    bool
	onChange func(shown bool, sev Severity, msg string)
}

// NewBanner creates a Banner. onChange may be nil.
func NewBanner(onChange func(shown bool, sev Severity, msg string)) *Banner {
	return &Banner{onChange: onChange}
}

// OnChange replaces the change callback
func (b *Banner) OnChange(fn func(shown bool, sev Severity, msg string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

// SetPersistentMessage implements Notifier
func (b *Banner) SetPersistentMessage(sev Severity, msg string) {
	b.mu.Lock()
	b.severity, b.message, b.shown = sev, msg, true
	cb := b.onChange
	b.mu.Unlock()

	if cb != nil {
		cb(true, sev, msg)
	}
}

// ClearPersistentMessage implements Notifier
func (b *Banner) ClearPersistentMessage() {
	b.mu.Lock()
	wasShown := b.shown
	b.severity, b.message, b.shown = SeverityMessage, "", false
	cb := b.onChange
	b.mu.Unlock()

	if cb != nil && wasShown {
		cb(false, SeverityMessage, "")
	}
}

// Current returns the message being shown, if any
func (b *Banner) Current() (sev Severity, msg string, shown bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.severity, b.message, b.shown
}
