package service

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/ahl-official/ahl-utm-tracking/internal/domain"
)

// ContextToken is the payload minted at click time and round-tripped
// through the WhatsApp channel as base64-encoded JSON
type ContextToken struct {
	SessionID string `json:"session_id"`
	Source    string `json:"utm_source"`
	Medium    string `json:"utm_medium"`
	Campaign  string `json:"utm_campaign"`
	Content   string `json:"utm_content"`
	Placement string `json:"placement"`
}

// Snapshot returns the token's embedded UTM dimensions
func (t *ContextToken) Snapshot() domain.UTMSnapshot {
	return domain.UTMSnapshot{
		Source:    t.Source,
		Medium:    t.Medium,
		Campaign:  t.Campaign,
		Content:   t.Content,
		Placement: t.Placement,
	}
}

// decodeContextToken parses a base64 JSON context token
func decodeContextToken(raw string) (*ContextToken, error) {
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode context token: %w", err)
	}

	var token ContextToken
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse context token: %w", err)
	}

	return &token, nil
}
