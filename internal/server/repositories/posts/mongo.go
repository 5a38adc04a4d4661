package posts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/mongox"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

// CollectionName is the MongoDB collection holding posts.
const CollectionName = "posts"

type postDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	Content   string        `bson:"content"`
	Sender    string        `bson:"sender"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d *postDoc) model() *models.Post {
	return &models.Post{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		Sender:    d.Sender,
		Comments:  []string{},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoRepository implements Repository over a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the sender lookup index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "sender", Value: 1}}})
	if err != nil {
		return fmt.Errorf("post indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	now := time.Now().UTC()
	doc := postDoc{
		ID:        bson.NewObjectID(),
		Title:     post.Title,
		Content:   post.Content,
		Sender:    post.Sender,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return doc.model(), nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := mongox.ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc postDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return doc.model(), nil
}

func (r *MongoRepository) find(ctx context.Context, filter bson.D) ([]postDoc, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return docs, nil
}

func (r *MongoRepository) List(ctx context.Context, sender string) ([]*models.Post, error) {
	filter := bson.D{}
	if sender != "" {
		filter = bson.D{{Key: "sender", Value: sender}}
	}

	docs, err := r.find(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]*models.Post, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].model())
	}
	return result, nil
}

func (r *MongoRepository) ListIDsBySender(ctx context.Context, sender string) ([]string, error) {
	docs, err := r.find(ctx, bson.D{{Key: "sender", Value: sender}})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for i := range docs {
		ids = append(ids, docs[i].ID.Hex())
	}
	return ids, nil
}

func (r *MongoRepository) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	oid, err := mongox.ParseID(post.ID)
	if err != nil {
		return nil, err
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: post.Title},
		{Key: "content", Value: post.Content},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc postDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return doc.model(), nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := mongox.ParseID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MongoRepository) DeleteBySender(ctx context.Context, sender string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "sender", Value: sender}})
	if err != nil {
		return 0, fmt.Errorf("mongo error: %w", err)
	}
	return res.DeletedCount, nil
}
