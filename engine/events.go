package engine

// EventCode identifies engine notifications pushed to connected frontends.
type EventCode string

const (
	EventPostsReconciled EventCode = "POSTS_RECONCILED"
	EventSyncFailed      EventCode = "SYNC_FAILED"
	EventPostCreated     EventCode = "POST_CREATED"
)

type Event struct {
	Code    EventCode `json:"code"`
	Message string    `json:"message,omitempty"`
	Result  any       `json:"result,omitempty"`
}

// Sink receives engine events. The websocket hub implements it; tests use a
// recording stub.
type Sink interface {
	Publish(event Event)
}

type discardSink struct{}

func (discardSink) Publish(Event) {}

// DiscardSink returns a sink that drops every event.
func DiscardSink() Sink {
	return discardSink{}
}
