package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ahl-official/ahl-utm-tracking/internal/domain"
	"github.com/ahl-official/ahl-utm-tracking/internal/repository"
)

var testEngagedTime = time.Date(2026, 8, 14, 10, 32, 15, 0, time.UTC)

func setValue(t *testing.T, set bson.D, key string) interface{} {
	t.Helper()
	for _, e := range set {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

func setHasKey(set bson.D, key string) bool {
	for _, e := range set {
		if e.Key == key {
			return true
		}
	}
	return false
}

func TestEngagementSet_DollarPrefixedMessageStoredVerbatim(t *testing.T) {
	// In a pipeline update a bare string is an aggregation expression, so a
	// reply starting with "$" would resolve as a field path and disappear
	update := repository.EngagementUpdate{
		PhoneNumber:       "919876543210",
		EngagedAt:         testEngagedTime,
		AttributionSource: domain.AttributionGallaboxID,
		ContactName:       "$ramesh$",
		LastMessage:       "$500 budget ok?",
	}

	set := engagementSet(update)

	assert.Equal(t, bson.D{{Key: "$literal", Value: "$500 budget ok?"}}, setValue(t, set, "lastMessage"))
	assert.Equal(t, bson.D{{Key: "$literal", Value: "$ramesh$"}}, setValue(t, set, "contactName"))
	assert.Equal(t, bson.D{{Key: "$literal", Value: "919876543210"}}, setValue(t, set, "phoneNumber"))
	assert.Equal(t, bson.D{{Key: "$literal", Value: domain.AttributionGallaboxID}}, setValue(t, set, "attributionSource"))
}

func TestEngagementSet_SnapshotFallbacksWrappedAsLiterals(t *testing.T) {
	// Snapshot dimensions come from the decoded context token, so they are
	// user-controlled too; only the first $ifNull operand is a field path
	update := repository.EngagementUpdate{
		PhoneNumber:       "919876543210",
		EngagedAt:         testEngagedTime,
		AttributionSource: domain.AttributionContext,
		Snapshot: domain.UTMSnapshot{
			Source:   "$instagram",
			Medium:   "fb_ads",
			Campaign: "diwali_launch",
		},
	}

	set := engagementSet(update)

	source, ok := setValue(t, set, "source").(bson.D)
	assert.True(t, ok)
	operands, ok := source[0].Value.(bson.A)
	assert.True(t, ok)
	assert.Equal(t, "$ifNull", source[0].Key)
	assert.Equal(t, "$source", operands[0])
	assert.Equal(t, bson.D{{Key: "$literal", Value: "$instagram"}}, operands[1])

	engagedAt, ok := setValue(t, set, "engagedAt").(bson.D)
	assert.True(t, ok)
	assert.Equal(t, "$ifNull", engagedAt[0].Key)
	assert.Equal(t, bson.A{"$engagedAt", testEngagedTime}, engagedAt[0].Value)
}

func TestEngagementSet_EmptyIdentifiersOmitted(t *testing.T) {
	update := repository.EngagementUpdate{
		PhoneNumber:       "919876543210",
		EngagedAt:         testEngagedTime,
		AttributionSource: domain.AttributionPhoneMatch,
	}

	set := engagementSet(update)

	// A retry with absent fields must never blank out known values
	assert.False(t, setHasKey(set, "contactId"))
	assert.False(t, setHasKey(set, "conversationId"))
	assert.False(t, setHasKey(set, "contactName"))
	assert.False(t, setHasKey(set, "lastMessage"))

	assert.Equal(t, true, setValue(t, set, "hasEngaged"))
	assert.Equal(t, false, setValue(t, set, "syncedToSheets"))
}

func TestEngagementSet_IdentifiersIncludedWhenPresent(t *testing.T) {
	update := repository.EngagementUpdate{
		PhoneNumber:       "919876543210",
		EngagedAt:         testEngagedTime,
		AttributionSource: domain.AttributionGallaboxID,
		ContactID:         "contact1",
		ConversationID:    "conv1",
	}

	set := engagementSet(update)

	assert.Equal(t, bson.D{{Key: "$literal", Value: "contact1"}}, setValue(t, set, "contactId"))
	assert.Equal(t, bson.D{{Key: "$literal", Value: "conv1"}}, setValue(t, set, "conversationId"))
}
