package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rankforge/agency-api/internal/core/domain"
)

const collectionNotifications = "notifications"

// NotificationRepository stores the audit trail of delivery attempts.
type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications)}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, n)
	return err
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *NotificationRepository) ListByOrder(ctx context.Context, orderID string) ([]*domain.Notification, error) {
	return r.list(ctx, bson.M{"order_id": orderID})
}

func (r *NotificationRepository) list(ctx context.Context, query bson.M) ([]*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []*domain.Notification
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureIndexes creates lookup indexes for the audit queries.
func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "order_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
