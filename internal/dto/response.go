package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"session_id is required"`
}

// ClickResponse acknowledges a recorded click
type ClickResponse struct {
	SessionID string `json:"session_id" example:"fb_1723475612_k3d9"`
	Status    string `json:"status" example:"created"`
}

// InboundMessageResponse reports the attribution outcome for a webhook event
type InboundMessageResponse struct {
	Status      string `json:"status" example:"processed"`
	SessionID   string `json:"sessionId,omitempty" example:"fb_1723475612_k3d9"`
	Source      string `json:"source,omitempty" example:"facebook"`
	Attribution string `json:"attribution,omitempty" example:"gallabox_id_match"`
}

// ExportResponse summarizes a batch export run
type ExportResponse struct {
	Status   string `json:"status" example:"ok"`
	Selected int    `json:"selected" example:"3"`
	Appended int    `json:"appended" example:"3"`
	Marked   int    `json:"marked" example:"3"`
}
