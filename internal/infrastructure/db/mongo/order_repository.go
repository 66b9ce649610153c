package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rankforge/agency-api/internal/core/domain"
	"github.com/rankforge/agency-api/internal/core/ports"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

// Create inserts a new order document.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, o)
	return err
}

// FindByID retrieves an order by id. When userID is non-empty, an additional
// owner filter is applied so non-admin callers cannot see foreign orders.
func (r *OrderRepository) FindByID(ctx context.Context, id string, userID string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if userID != "" {
		filter["user_id"] = userID
	}

	var o domain.Order
	err := r.col.FindOne(ctx, filter).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// List returns orders matching the filter, newest first.
func (r *OrderRepository) List(ctx context.Context, filter ports.ListOrdersFilter) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orders []*domain.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus sets status, notes, and the response timestamp in one write.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, notes string, respondedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":            string(status),
		"admin_notes":       notes,
		"admin_response_at": respondedAt.UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// MarkEmailSent flips the email-sent flag. Called best effort after a
// successful send.
func (r *OrderRepository) MarkEmailSent(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"email_sent":    true,
		"email_sent_at": at.UTC(),
	}}

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// CountByStatus returns how many orders currently hold the given status.
func (r *OrderRepository) CountByStatus(ctx context.Context, status domain.OrderStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"status": string(status)})
}

// EnsureIndexes creates necessary indexes on the orders collection.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
