package export

import (
	"strings"

	"github.com/ahl-official/ahl-utm-tracking/internal/domain"
)

// Cell formats and limits shared with the reporting sheet
const (
	timeFormat    = "2006-01-02 15:04:05"
	maxMessageLen = 150
	engagedYes    = "✅ YES"
	engagedNo     = "❌ NO"
)

// Header returns the expected sheet header row, in column order
func Header() []interface{} {
	return []interface{}{
		"Timestamp",
		"Phone Number",
		"UTM Source",
		"UTM Medium",
		"UTM Campaign",
		"UTM Content",
		"Placement",
		"Engaged",
		"Engaged At",
		"Attribution Source",
		"Contact ID",
		"Conversation ID",
		"Contact Name",
		"Last Message",
	}
}

// Row projects a click record into one sheet row. Attribution dimensions
// prefer the explicit ad-platform parameters captured at click time over
// generic utm_* parameters over the stored field, falling back to the
// ingestion defaults.
func Row(click *domain.ClickRecord) []interface{} {
	engaged := engagedNo
	if click.HasEngaged {
		engaged = engagedYes
	}

	engagedAt := ""
	if click.EngagedAt != nil {
		engagedAt = click.EngagedAt.Format(timeFormat)
	}

	return []interface{}{
		click.Timestamp.Format(timeFormat),
		click.PhoneNumber,
		dimension(click, "facebook", click.Source, "utm_source"),
		dimension(click, "fb_ads", click.Medium, "utm_medium"),
		dimension(click, "unknown", click.Campaign, "campaign_name", "utm_campaign"),
		dimension(click, "unknown", click.Content, "ad_name", "utm_content"),
		dimension(click, "unknown", click.Placement, "placement"),
		engaged,
		engagedAt,
		click.AttributionSource,
		click.ContactID,
		click.ConversationID,
		click.ContactName,
		truncateMessage(click.LastMessage),
	}
}

// dimension resolves one attribution column: the first non-empty original
// query parameter wins, then the stored field, then the default
func dimension(click *domain.ClickRecord, fallback, field string, paramKeys ...string) string {
	for _, key := range paramKeys {
		if v := click.OriginalParams[key]; v != "" {
			return v
		}
	}
	if field != "" {
		return field
	}
	return fallback
}

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// truncateMessage replaces newlines with spaces and caps the message at the
// column limit so one long reply cannot blow up the row. Other whitespace
// stays untouched.
func truncateMessage(message string) string {
	message = newlineReplacer.Replace(message)
	runes := []rune(message)
	if len(runes) <= maxMessageLen {
		return message
	}
	return string(runes[:maxMessageLen])
}
