package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ahl-official/ahl-utm-tracking/internal/domain"
	"github.com/ahl-official/ahl-utm-tracking/internal/repository"
)

// Repository implements ClickRepository for MongoDB
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new MongoDB click repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// EnsureIndexes creates the indexes backing the matcher and export queries
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "hasEngaged", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "phoneNumber", Value: 1}, {Key: "hasEngaged", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "source", Value: 1}}},
		{Keys: bson.D{{Key: "hasEngaged", Value: 1}, {Key: "syncedToSheets", Value: 1}, {Key: "source", Value: 1}, {Key: "timestamp", Value: -1}}},
	}

	if _, err := r.client.Clicks().Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create click indexes: %w", err)
	}

	r.log.Info("MongoDB indexes ensured successfully")
	return nil
}

// CreateClick inserts the record unless its id already exists
func (r *Repository) CreateClick(ctx context.Context, click *domain.ClickRecord) (bool, error) {
	res, err := r.client.Clicks().UpdateOne(ctx,
		bson.M{"_id": click.ID},
		bson.M{"$setOnInsert": click},
		options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("failed to upsert click %s: %w", click.ID, err)
	}

	return res.UpsertedCount > 0, nil
}

// FindRecentUnengaged returns the newest unengaged record created at or after since
func (r *Repository) FindRecentUnengaged(ctx context.Context, since time.Time) (*domain.ClickRecord, error) {
	filter := bson.M{
		"hasEngaged": false,
		"timestamp":  bson.M{"$gte": since},
	}
	return r.findNewest(ctx, filter)
}

// FindUnengagedByPhone returns the newest unengaged non-direct record for the phone number
func (r *Repository) FindUnengagedByPhone(ctx context.Context, phone string) (*domain.ClickRecord, error) {
	filter := bson.M{
		"phoneNumber": phone,
		"hasEngaged":  false,
		"source":      bson.M{"$ne": domain.SourceDirectMessage},
	}
	return r.findNewest(ctx, filter)
}

// FindDirectConversation returns the direct-message record for the conversation id
func (r *Repository) FindDirectConversation(ctx context.Context, conversationID string) (*domain.ClickRecord, error) {
	filter := bson.M{
		"conversationId": conversationID,
		"source":         domain.SourceDirectMessage,
	}
	return r.findNewest(ctx, filter)
}

func (r *Repository) findNewest(ctx context.Context, filter bson.M) (*domain.ClickRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var click domain.ClickRecord
	err := r.client.Clicks().FindOne(ctx, filter, opts).Decode(&click)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query click: %w", err)
	}

	return &click, nil
}

// SetConversationIdentifiers attaches contact/conversation ids to a record,
// skipping empty values
func (r *Repository) SetConversationIdentifiers(ctx context.Context, id, contactID, conversationID string) error {
	set := bson.M{}
	if contactID != "" {
		set["contactId"] = contactID
	}
	if conversationID != "" {
		set["conversationId"] = conversationID
	}
	if len(set) == 0 {
		return nil
	}

	if _, err := r.client.Clicks().UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("failed to set identifiers on click %s: %w", id, err)
	}

	return nil
}

// TouchDirectMessage records the latest message and engagement time on a
// direct-message record
func (r *Repository) TouchDirectMessage(ctx context.Context, id, message string, at time.Time) error {
	set := bson.M{"engagedAt": at}
	if message != "" {
		set["lastMessage"] = message
	}

	if _, err := r.client.Clicks().UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("failed to touch direct click %s: %w", id, err)
	}

	return nil
}

// literal wraps a string for a pipeline update, where a bare string is an
// aggregation expression: a message like "$500 budget ok?" would otherwise
// be evaluated as a field path and silently vanish.
func literal(value string) bson.D {
	return bson.D{{Key: "$literal", Value: value}}
}

// engagementSet builds the $set stage applied by UpsertEngagement. Existing
// UTM fields and the first engagement time win via $ifNull, which keeps
// re-application idempotent; identifier fields only overwrite when the
// event carries a value.
func engagementSet(update repository.EngagementUpdate) bson.D {
	set := bson.D{
		{Key: "hasEngaged", Value: true},
		{Key: "syncedToSheets", Value: false},
		{Key: "attributionSource", Value: literal(update.AttributionSource)},
		{Key: "phoneNumber", Value: literal(update.PhoneNumber)},
		{Key: "engagedAt", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$engagedAt", update.EngagedAt}}}},
		{Key: "timestamp", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$timestamp", update.EngagedAt}}}},
		{Key: "source", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$source", literal(update.Snapshot.Source)}}}},
		{Key: "medium", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$medium", literal(update.Snapshot.Medium)}}}},
		{Key: "campaign", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$campaign", literal(update.Snapshot.Campaign)}}}},
		{Key: "content", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$content", literal(update.Snapshot.Content)}}}},
		{Key: "placement", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$placement", literal(update.Snapshot.Placement)}}}},
	}

	if update.ContactID != "" {
		set = append(set, bson.E{Key: "contactId", Value: literal(update.ContactID)})
	}
	if update.ConversationID != "" {
		set = append(set, bson.E{Key: "conversationId", Value: literal(update.ConversationID)})
	}
	if update.ContactName != "" {
		set = append(set, bson.E{Key: "contactName", Value: literal(update.ContactName)})
	}
	if update.LastMessage != "" {
		set = append(set, bson.E{Key: "lastMessage", Value: literal(update.LastMessage)})
	}

	return set
}

// UpsertEngagement applies an engagement outcome by id, creating the record
// from the snapshot when it does not exist. Idempotent under retry.
func (r *Repository) UpsertEngagement(ctx context.Context, id string, update repository.EngagementUpdate) error {
	pipeline := mongo.Pipeline{bson.D{{Key: "$set", Value: engagementSet(update)}}}

	_, err := r.client.Clicks().UpdateOne(ctx, bson.M{"_id": id}, pipeline, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert engagement on click %s: %w", id, err)
	}

	return nil
}

// FindPendingExport returns engaged, unsynced, non-direct records newest first
func (r *Repository) FindPendingExport(ctx context.Context, limit int) ([]*domain.ClickRecord, error) {
	filter := bson.M{
		"hasEngaged":     true,
		"syncedToSheets": false,
		"source":         bson.M{"$ne": domain.SourceDirectMessage},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.client.Clicks().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending export clicks: %w", err)
	}

	var clicks []*domain.ClickRecord
	if err := cursor.All(ctx, &clicks); err != nil {
		return nil, fmt.Errorf("failed to decode pending export clicks: %w", err)
	}

	return clicks, nil
}

// MarkSynced flags a record as mirrored to the sheet
func (r *Repository) MarkSynced(ctx context.Context, id string, at time.Time) error {
	set := bson.M{
		"syncedToSheets": true,
		"lastSynced":     at,
	}

	if _, err := r.client.Clicks().UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("failed to mark click %s synced: %w", id, err)
	}

	return nil
}

// Watch opens a change stream filtered to engaged, unsynced, non-direct records
func (r *Repository) Watch(ctx context.Context) (repository.ClickStream, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "operationType", Value: bson.D{{Key: "$in", Value: bson.A{"insert", "update", "replace"}}}},
			{Key: "fullDocument.hasEngaged", Value: true},
			{Key: "fullDocument.syncedToSheets", Value: false},
			{Key: "fullDocument.source", Value: bson.D{{Key: "$ne", Value: domain.SourceDirectMessage}}},
		}}},
	}

	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	cs, err := r.client.Clicks().Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open click change stream: %w", err)
	}

	return &clickStream{cs: cs}, nil
}

// Ping checks if the MongoDB connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

// Close closes the MongoDB connection
func (r *Repository) Close() error {
	return r.client.Close()
}
