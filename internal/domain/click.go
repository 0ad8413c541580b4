package domain

import "time"

// Attribution source labels, stable values written to the store and the sheet
const (
	AttributionContext        = "context"
	AttributionGallaboxID     = "gallabox_id_match"
	AttributionPhoneMatch     = "phone_match"
	AttributionExistingDirect = "existing_direct"
	AttributionNewDirect      = "new_direct"
	AttributionIgnoredDirect  = "ignored_direct"
)

// SourceDirectMessage marks records created from inbound messages with no prior click.
// These records never participate in phone matching and are excluded from export.
const SourceDirectMessage = "direct_message"

// ClickRecord represents one ad-click session stored in MongoDB.
// Field names stay camelCase because the collection is shared with the
// reporting dashboard that reads the same documents.
type ClickRecord struct {
	ID                string            `bson:"_id"`
	Source            string            `bson:"source"`
	Medium            string            `bson:"medium"`
	Campaign          string            `bson:"campaign"`
	Content           string            `bson:"content"`
	Placement         string            `bson:"placement"`
	OriginalParams    map[string]string `bson:"originalParams,omitempty"`
	HasEngaged        bool              `bson:"hasEngaged"`
	PhoneNumber       string            `bson:"phoneNumber,omitempty"`
	ContactID         string            `bson:"contactId,omitempty"`
	ConversationID    string            `bson:"conversationId,omitempty"`
	ContactName       string            `bson:"contactName,omitempty"`
	LastMessage       string            `bson:"lastMessage,omitempty"`
	AttributionSource string            `bson:"attributionSource,omitempty"`
	Timestamp         time.Time         `bson:"timestamp"`
	EngagedAt         *time.Time        `bson:"engagedAt,omitempty"`
	SyncedToSheets    bool              `bson:"syncedToSheets"`
	LastSynced        *time.Time        `bson:"lastSynced,omitempty"`
}

// UTMSnapshot carries the attribution dimensions applied when a record
// is created by the engagement path instead of a click event.
type UTMSnapshot struct {
	Source    string
	Medium    string
	Campaign  string
	Content   string
	Placement string
}

// DirectMessageSnapshot returns the fixed dimensions for records created
// from conversations that never had a click.
func DirectMessageSnapshot() UTMSnapshot {
	return UTMSnapshot{
		Source:   SourceDirectMessage,
		Medium:   "whatsapp",
		Campaign: "organic",
		Content:  "none",
	}
}
