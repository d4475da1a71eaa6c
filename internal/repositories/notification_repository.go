package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/introhub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationQuery narrows a recipient's notifications. Limit 0 means all.
type NotificationQuery struct {
	ToUserID string
	Type     models.NotificationType
	Limit    int64
}

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	Find(ctx context.Context, q NotificationQuery) ([]models.Notification, error)
	CountUnread(ctx context.Context, toUserID string) (int64, error)
	MarkAllAsRead(ctx context.Context, toUserID string, at time.Time) (int64, error)
	UpdateStatus(ctx context.Context, id string, status *models.NotificationStatus, at time.Time) error
}

type MongoNotificationRepository struct {
	collection *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection(NotificationCollection)}
}

func (r *MongoNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if _, err := r.collection.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

func (r *MongoNotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	var n models.Notification
	err := r.collection.FindOne(ctx, bson.M{"notification_id": id}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// Find returns the recipient's notifications newest first.
func (r *MongoNotificationRepository) Find(ctx context.Context, q NotificationQuery) ([]models.Notification, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if q.Limit > 0 {
		findOptions.SetLimit(q.Limit)
	}

	cursor, err := r.collection.Find(ctx, BuildNotificationFilter(q), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *MongoNotificationRepository) CountUnread(ctx context.Context, toUserID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"to_user_id": toUserID,
		"status":     models.NotificationUnread,
	})
}

// MarkAllAsRead flips only UNREAD records and reports how many changed.
func (r *MongoNotificationRepository) MarkAllAsRead(ctx context.Context, toUserID string, at time.Time) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"to_user_id": toUserID, "status": models.NotificationUnread},
		bson.M{"$set": bson.M{"status": models.NotificationRead, "updatedAt": at}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// UpdateStatus always refreshes updatedAt, and sets status when given.
func (r *MongoNotificationRepository) UpdateStatus(ctx context.Context, id string, status *models.NotificationStatus, at time.Time) error {
	set := bson.M{"updatedAt": at}
	if status != nil {
		set["status"] = *status
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"notification_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func BuildNotificationFilter(q NotificationQuery) bson.M {
	filter := bson.M{"to_user_id": q.ToUserID}
	if q.Type != "" {
		filter["notification_type"] = q.Type
	}
	return filter
}
