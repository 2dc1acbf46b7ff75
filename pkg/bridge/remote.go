package bridge

import "github.com/vango-dev/hashroute/pkg/history"

// Remote is a History mirroring a browser's URL fragment.
// Push and Replace update the mirror and forward the new token through
// send. Tokens reported by the browser arrive through Receive.
type Remote struct {
	token     string
	send      func(Message)
	listeners history.Listeners
}

// NewRemote returns a Remote that forwards history changes through send.
func NewRemote(send func(Message)) *Remote {
	return &Remote{send: send}
}

// Token returns the last known fragment.
func (h *Remote) Token() string {
	return h.token
}

// Push records token, tells the client to assign it and notifies listeners.
func (h *Remote) Push(token string) {
	h.token = token
	h.send(Message{Type: TypePush, Hash: token})
	h.listeners.Notify(token)
}

// Replace records token and tells the client to replace its entry.
func (h *Remote) Replace(token string) {
	h.token = token
	h.send(Message{Type: TypeReplace, Hash: token})
}

// Listen registers fn for navigation events.
func (h *Remote) Listen(fn history.Listener) func() {
	return h.listeners.Add(fn)
}

// Seed sets the token reported at connect time without notifying.
func (h *Remote) Seed(token string) {
	h.token = token
}

// Receive records a token reported by the client and notifies listeners.
func (h *Remote) Receive(token string) {
	h.token = token
	h.listeners.Notify(token)
}
