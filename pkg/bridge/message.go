package bridge

// MessageType identifies a bridge frame.
type MessageType string

const (
	// Client to server.
	TypeHello      MessageType = "hello"
	TypeHashChange MessageType = "hashchange"
	TypeEvent      MessageType = "event"

	// Server to client.
	TypeRender  MessageType = "render"
	TypePush    MessageType = "push"
	TypeReplace MessageType = "replace"
	TypeError   MessageType = "error"
)

// Message is a bridge frame in either direction.
type Message struct {
	Type  MessageType `json:"type"`
	Hash  string      `json:"hash,omitempty"`
	HID   string      `json:"hid,omitempty"`
	Event string      `json:"event,omitempty"`
	HTML  string      `json:"html,omitempty"`
	Error string      `json:"error,omitempty"`
}
