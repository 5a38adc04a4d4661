package refreshtokens

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CollectionName is the MongoDB collection holding refresh tokens.
const CollectionName = "refresh_tokens"

type tokenDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    string        `bson:"userId"`
	Token     string        `bson:"token"`
	ExpiresAt time.Time     `bson:"expiresAt"`
	CreatedAt time.Time     `bson:"createdAt"`
}

// MongoRepository implements Repository over a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique token index and the user lookup index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("refresh token indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, userID string, token string, expires time.Time) error {
	doc := tokenDoc{UserID: userID, Token: token, ExpiresAt: expires, CreatedAt: time.Now().UTC()}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	return nil
}

func (r *MongoRepository) DeleteForUser(ctx context.Context, token string, userID string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "token", Value: token}, {Key: "userId", Value: userID}})
	if err != nil {
		return false, fmt.Errorf("mongo error: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.D{{Key: "token", Value: token}}); err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	return nil
}

func (r *MongoRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "userId", Value: userID}})
	if err != nil {
		return 0, fmt.Errorf("mongo error: %w", err)
	}
	return res.DeletedCount, nil
}
