package service

import (
	"github.com/ahl-official/ahl-utm-tracking/internal/dto"
)

// AttributionServicer defines the interface for click and attribution operations
type AttributionServicer interface {
	RecordClick(req *dto.ClickRequest) (*dto.ClickResponse, error)
	AttributeMessage(req *dto.InboundMessageRequest) (*dto.InboundMessageResponse, error)
}
