package websockets

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeCampaignEvent is for campaign lifecycle notifications.
	MessageTypeCampaignEvent MessageType = "campaignEvent"
)

// Message is the envelope written to clients. For campaign events the
// payload is an events.Event.
type Message struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload"`
}
