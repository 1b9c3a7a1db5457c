package remoteview

import "github.com/Rahulguptaid/ViewModelExample/pkg/validation"

// FrameType identifies a websocket frame.
type FrameType string

// Client to server frames.
const (
	FrameInput  FrameType = "input"
	FrameSubmit FrameType = "submit"
)

// Server to client frames.
const (
	FrameHello    FrameType = "hello"
	FrameField    FrameType = "field"
	FrameLoading  FrameType = "loading"
	FrameAlert    FrameType = "alert"
	FrameRules    FrameType = "rules"
	FrameFinished FrameType = "finished"
)

// Form field names used in input and field frames.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Frame is the JSON message exchanged with the remote view.
type Frame struct {
	Type FrameType `json:"type"`

	// Field and Value carry input and field frames. Field frames are only
	// sent for the email.
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`

	// Loading carries loading frames.
	Loading *bool `json:"loading,omitempty"`

	// Message carries alert frames; nil means the error was cleared.
	Message *string `json:"message,omitempty"`

	// Rules carries rules frames; empty means the form is valid.
	Rules []validation.BrokenRule `json:"rules,omitempty"`

	// ID carries hello frames; UserID carries finished frames.
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id,omitempty"`
}
