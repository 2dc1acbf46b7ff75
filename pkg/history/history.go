// Package history abstracts the browser's navigation history for the router.
//
// A History exposes the current raw token (the URL fragment as the platform
// reports it, prefix included, e.g. "#/about?a=1"), lets callers push or
// replace entries, and delivers navigation events to listeners.
//
// Push fires listeners; Replace does not. This mirrors hash navigation in
// browsers, where assigning location.hash raises a hashchange event and
// history.replaceState does not.
package history

// Listener receives the raw token after a navigation event.
type Listener func(token string)

// History is the platform navigation history consumed by the router.
type History interface {
	// Token returns the current raw token.
	Token() string

	// Push adds a new entry and notifies listeners.
	Push(token string)

	// Replace overwrites the current entry without notifying listeners.
	Replace(token string)

	// Listen registers fn for navigation events. The returned function
	// removes the registration; calling it more than once is a no-op.
	Listen(fn Listener) (unlisten func())
}

// Listeners is a registration list shared by History implementations.
// The zero value is ready to use. It is not safe for concurrent use.
type Listeners struct {
	next    int
	entries []listenerEntry
}

type listenerEntry struct {
	id int
	fn Listener
}

// Add registers fn and returns its removal function.
func (l *Listeners) Add(fn Listener) func() {
	l.next++
	id := l.next
	l.entries = append(l.entries, listenerEntry{id: id, fn: fn})
	return func() {
		for i, e := range l.entries {
			if e.id == id {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of registered listeners.
func (l *Listeners) Len() int {
	return len(l.entries)
}

// Notify calls every listener registered at the time of the call.
func (l *Listeners) Notify(token string) {
	snapshot := append([]listenerEntry(nil), l.entries...)
	for _, e := range snapshot {
		e.fn(token)
	}
}
