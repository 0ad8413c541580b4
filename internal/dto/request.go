package dto

// ClickRequest represents a click captured by the landing page pixel
type ClickRequest struct {
	SessionID      string            `json:"session_id" binding:"required" example:"fb_1723475612_k3d9"`
	Source         string            `json:"source" example:"facebook"`
	Medium         string            `json:"medium" example:"fb_ads"`
	Campaign       string            `json:"campaign" example:"diwali_launch"`
	Content        string            `json:"content" example:"carousel_v2"`
	Placement      string            `json:"placement" example:"instagram_feed"`
	OriginalParams map[string]string `json:"original_params" swaggertype:"object,string" example:"utm_source:facebook,campaign_name:diwali_launch"`
}

// InboundMessageRequest represents a Gallabox inbound-message webhook payload.
// Field names follow the Gallabox camelCase wire format.
type InboundMessageRequest struct {
	ChannelNumber  string `json:"channelNumber" example:"917700099888"`
	ContactID      string `json:"contactId" example:"64f1c9a2e4b0"`
	ConversationID string `json:"conversationId" example:"conv_8821"`
	ContactName    string `json:"contactName" example:"Priya"`
	PhoneNumber    string `json:"phoneNumber" example:"+91 98765 43210"`
	MessageText    string `json:"messageText" example:"Hi, saw your ad"`
	ContextToken   string `json:"contextToken" example:"eyJzZXNzaW9uX2lkIjoiZmJfMSJ9"`
}
