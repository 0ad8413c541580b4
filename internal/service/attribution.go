package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ahl-official/ahl-utm-tracking/internal/domain"
	"github.com/ahl-official/ahl-utm-tracking/internal/dto"
	"github.com/ahl-official/ahl-utm-tracking/internal/repository"
)

// ErrMissingPhoneNumber signals an inbound event carrying no resolvable phone number
var ErrMissingPhoneNumber = errors.New("message has no resolvable phone number")

// Defaults applied to click dimensions the pixel did not send
const (
	defaultSource    = "facebook"
	defaultMedium    = "fb_ads"
	defaultDimension = "unknown"
)

// Options configures the attribution service
type Options struct {
	CountryCode   string
	MatchWindow   time.Duration
	CaptureDirect bool
	TargetNumber  string
}

// AttributionService correlates inbound WhatsApp messages with stored clicks
type AttributionService struct {
	repository repository.ClickRepository
	opts       Options
	log        *zap.Logger
}

// NewAttributionService creates a new attribution service
func NewAttributionService(repo repository.ClickRepository, opts Options, log *zap.Logger) *AttributionService {
	return &AttributionService{
		repository: repo,
		opts:       opts,
		log:        log,
	}
}

// matchDecision is the outcome of the strategy chain
type matchDecision struct {
	id          string
	attribution string
	snapshot    domain.UTMSnapshot
	persist     bool
}

// RecordClick stores a click event, applying dimension defaults.
// Repeated session ids are acknowledged without creating a second record.
func (s *AttributionService) RecordClick(req *dto.ClickRequest) (*dto.ClickResponse, error) {
	ctx := context.Background()

	click := &domain.ClickRecord{
		ID:             req.SessionID,
		Source:         defaultString(req.Source, defaultSource),
		Medium:         defaultString(req.Medium, defaultMedium),
		Campaign:       defaultString(req.Campaign, defaultDimension),
		Content:        defaultString(req.Content, defaultDimension),
		Placement:      defaultString(req.Placement, defaultDimension),
		OriginalParams: req.OriginalParams,
		Timestamp:      time.Now(),
	}

	created, err := s.repository.CreateClick(ctx, click)
	if err != nil {
		return nil, fmt.Errorf("failed to store click: %w", err)
	}

	status := "created"
	if created {
		s.log.Info("Click recorded",
			zap.String("session_id", click.ID),
			zap.String("source", click.Source),
			zap.String("campaign", click.Campaign))
	} else {
		status = "exists"
		s.log.Info("Click already recorded", zap.String("session_id", click.ID))
	}

	return &dto.ClickResponse{
		SessionID: click.ID,
		Status:    status,
	}, nil
}

// AttributeMessage runs the strategy chain for an inbound message and
// persists the outcome
func (s *AttributionService) AttributeMessage(req *dto.InboundMessageRequest) (*dto.InboundMessageResponse, error) {
	ctx := context.Background()

	// Events addressed to another WhatsApp channel are acknowledged and skipped
	if req.ChannelNumber != "" && s.opts.TargetNumber != "" {
		eventNumber := domain.NormalizePhone(req.ChannelNumber, s.opts.CountryCode)
		targetNumber := domain.NormalizePhone(s.opts.TargetNumber, s.opts.CountryCode)
		if eventNumber != targetNumber {
			s.log.Info("Skipping event for another channel",
				zap.String("channel_number", req.ChannelNumber))
			return &dto.InboundMessageResponse{Status: "skipped"}, nil
		}
	}

	phone := domain.NormalizePhone(req.PhoneNumber, s.opts.CountryCode)
	if phone == "" {
		s.log.Warn("Rejecting message without phone number",
			zap.String("conversation_id", req.ConversationID))
		return nil, ErrMissingPhoneNumber
	}

	decision, err := s.match(ctx, req, phone)
	if err != nil {
		return nil, err
	}

	if !decision.persist {
		s.log.Info("Ignoring direct message",
			zap.String("conversation_id", req.ConversationID))
		return &dto.InboundMessageResponse{
			Status:      "ignored",
			Attribution: decision.attribution,
		}, nil
	}

	if err := s.applyEngagement(ctx, decision, req, phone); err != nil {
		return nil, err
	}

	s.log.Info("Message attributed",
		zap.String("session_id", decision.id),
		zap.String("attribution", decision.attribution),
		zap.String("phone", phone))

	return &dto.InboundMessageResponse{
		Status:      "processed",
		SessionID:   decision.id,
		Source:      decision.snapshot.Source,
		Attribution: decision.attribution,
	}, nil
}

// match evaluates the strategies in strict priority order, first hit wins
func (s *AttributionService) match(ctx context.Context, req *dto.InboundMessageRequest, phone string) (*matchDecision, error) {
	// Priority 1: context token round-tripped through the channel
	if req.ContextToken != "" {
		token, err := decodeContextToken(req.ContextToken)
		if err != nil {
			// A bad token only disqualifies this strategy
			s.log.Warn("Failed to decode context token", zap.Error(err))
		} else if token.SessionID != "" {
			s.log.Info("Matched click via context token",
				zap.String("session_id", token.SessionID))
			return &matchDecision{
				id:          token.SessionID,
				attribution: domain.AttributionContext,
				snapshot:    token.Snapshot(),
				persist:     true,
			}, nil
		}
	}

	// Priority 2: newest unengaged click inside the match window
	if req.ContactID != "" || req.ConversationID != "" {
		since := time.Now().Add(-s.opts.MatchWindow)
		click, err := s.repository.FindRecentUnengaged(ctx, since)
		if err != nil {
			return nil, fmt.Errorf("failed to query recent clicks: %w", err)
		}
		if click != nil {
			// Gallabox ids attach as soon as a candidate is found, even if a
			// later step short-circuits
			if err := s.repository.SetConversationIdentifiers(ctx, click.ID, req.ContactID, req.ConversationID); err != nil {
				return nil, fmt.Errorf("failed to attach conversation identifiers: %w", err)
			}
			s.log.Info("Matched click via Gallabox identifiers",
				zap.String("session_id", click.ID),
				zap.String("contact_id", req.ContactID))
			return &matchDecision{
				id:          click.ID,
				attribution: domain.AttributionGallaboxID,
				snapshot:    recordSnapshot(click),
				persist:     true,
			}, nil
		}
	}

	// Priority 3: unengaged click with the same normalized phone number
	click, err := s.repository.FindUnengagedByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to query clicks by phone: %w", err)
	}
	if click != nil {
		s.log.Info("Matched click via phone number",
			zap.String("session_id", click.ID),
			zap.String("phone", phone))
		return &matchDecision{
			id:          click.ID,
			attribution: domain.AttributionPhoneMatch,
			snapshot:    recordSnapshot(click),
			persist:     true,
		}, nil
	}

	if req.ConversationID != "" {
		// Priority 4: ongoing direct conversation
		direct, err := s.repository.FindDirectConversation(ctx, req.ConversationID)
		if err != nil {
			return nil, fmt.Errorf("failed to query direct conversations: %w", err)
		}
		if direct != nil {
			if err := s.repository.TouchDirectMessage(ctx, direct.ID, req.MessageText, time.Now()); err != nil {
				return nil, fmt.Errorf("failed to update direct conversation: %w", err)
			}
			s.log.Info("Matched existing direct conversation",
				zap.String("session_id", direct.ID))
			return &matchDecision{
				id:          direct.ID,
				attribution: domain.AttributionExistingDirect,
				snapshot:    recordSnapshot(direct),
				persist:     true,
			}, nil
		}

		// Priority 5: capture a brand-new direct conversation
		if s.opts.CaptureDirect {
			id := newDirectID()
			s.log.Info("Capturing new direct conversation",
				zap.String("session_id", id),
				zap.String("conversation_id", req.ConversationID))
			return &matchDecision{
				id:          id,
				attribution: domain.AttributionNewDirect,
				snapshot:    domain.DirectMessageSnapshot(),
				persist:     true,
			}, nil
		}
	}

	// Priority 6: nothing to attach the message to
	return &matchDecision{attribution: domain.AttributionIgnoredDirect}, nil
}

// applyEngagement persists the match outcome. The upsert is idempotent so
// redelivered webhook events converge on the same record state.
func (s *AttributionService) applyEngagement(ctx context.Context, decision *matchDecision, req *dto.InboundMessageRequest, phone string) error {
	update := repository.EngagementUpdate{
		PhoneNumber:       phone,
		EngagedAt:         time.Now(),
		AttributionSource: decision.attribution,
		ContactID:         req.ContactID,
		ConversationID:    req.ConversationID,
		ContactName:       req.ContactName,
		LastMessage:       req.MessageText,
		Snapshot:          decision.snapshot,
	}

	if err := s.repository.UpsertEngagement(ctx, decision.id, update); err != nil {
		return fmt.Errorf("failed to apply engagement to click %s: %w", decision.id, err)
	}

	return nil
}

// newDirectID builds a practically unique id for a conversation without a click
func newDirectID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("direct_%d_%s", time.Now().UnixMilli(), suffix)
}

func recordSnapshot(click *domain.ClickRecord) domain.UTMSnapshot {
	return domain.UTMSnapshot{
		Source:    click.Source,
		Medium:    click.Medium,
		Campaign:  click.Campaign,
		Content:   click.Content,
		Placement: click.Placement,
	}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
