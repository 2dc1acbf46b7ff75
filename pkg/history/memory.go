package history

// Memory is an in-process History with a back/forward stack.
// It is not safe for concurrent use.
type Memory struct {
	entries   []string
	index     int
	listeners Listeners
}

// NewMemory returns a Memory history whose single entry is token.
func NewMemory(token string) *Memory {
	return &Memory{entries: []string{token}}
}

// Token returns the current entry.
func (m *Memory) Token() string {
	return m.entries[m.index]
}

// Push drops any forward entries, appends token and notifies listeners.
func (m *Memory) Push(token string) {
	m.entries = append(m.entries[:m.index+1], token)
	m.index++
	m.listeners.Notify(token)
}

// Replace overwrites the current entry.
func (m *Memory) Replace(token string) {
	m.entries[m.index] = token
}

// Listen registers fn for navigation events.
func (m *Memory) Listen(fn Listener) func() {
	return m.listeners.Add(fn)
}

// Back moves one entry back and notifies listeners. It reports false at
// the start of the stack.
func (m *Memory) Back() bool {
	return m.Go(-1)
}

// Forward moves one entry forward and notifies listeners. It reports false
// at the end of the stack.
func (m *Memory) Forward() bool {
	return m.Go(1)
}

// Go moves delta entries and notifies listeners.
func (m *Memory) Go(delta int) bool {
	target := m.index + delta
	if delta == 0 || target < 0 || target >= len(m.entries) {
		return false
	}
	m.index = target
	m.listeners.Notify(m.entries[m.index])
	return true
}

// Set changes the current entry as if the user edited the address bar:
// the entry is pushed and listeners are notified.
func (m *Memory) Set(token string) {
	m.Push(token)
}

// Len returns the number of entries in the stack.
func (m *Memory) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the stack.
func (m *Memory) Entries() []string {
	return append([]string(nil), m.entries...)
}

// ListenerCount returns the number of registered listeners.
func (m *Memory) ListenerCount() int {
	return m.listeners.Len()
}
