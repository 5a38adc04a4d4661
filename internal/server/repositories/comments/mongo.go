package comments

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

// CollectionName is the MongoDB collection holding comments.
const CollectionName = "comments"

type commentDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	PostID    string        `bson:"postId"`
	Content   string        `bson:"content"`
	Sender    string        `bson:"sender"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d *commentDoc) model() *models.Comment {
	return &models.Comment{
		ID:        d.ID.Hex(),
		PostID:    d.PostID,
		Content:   d.Content,
		Sender:    d.Sender,
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

// EnsureIndexes creates the postId and sender lookup indexes.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "postId", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "sender", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("comment indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if _, err := mongox.ParseID(comment.PostID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := commentDoc{
		ID:        bson.NewObjectID(),
		PostID:    comment.PostID,
		Content:   comment.Content,
		Sender:    comment.Sender,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return doc.model(), nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	oid, err := mongox.ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc commentDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return doc.model(), nil
}

func (r *MongoRepository) find(ctx context.Context, filter bson.D) ([]commentDoc, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return docs, nil
}

func (r *MongoRepository) List(ctx context.Context, postID string) ([]*models.Comment, error) {
	filter := bson.D{}
	if postID != "" {
		if _, err := mongox.ParseID(postID); err != nil {
			return nil, err
		}
		filter = bson.D{{Key: "postId", Value: postID}}
	}

	docs, err := r.find(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]*models.Comment, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].model())
	}
	return result, nil
}

func (r *MongoRepository) ListIDsByPostIDs(ctx context.Context, postIDs []string) (map[string][]string, error) {
	result := make(map[string][]string)
	if len(postIDs) == 0 {
		return result, nil
	}

	docs, err := r.find(ctx, bson.D{{Key: "postId", Value: bson.D{{Key: "$in", Value: postIDs}}}})
	if err != nil {
		return nil, err
	}
	for i := range docs {
		result[docs[i].PostID] = append(result[docs[i].PostID], docs[i].ID.Hex())
	}
	return result, nil
}

func (r *MongoRepository) Update(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	oid, err := mongox.ParseID(comment.ID)
	if err != nil {
		return nil, err
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: comment.Content},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc commentDoc
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

func (r *MongoRepository) deleteMany(ctx context.Context, filter bson.D) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("mongo error: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MongoRepository) DeleteByPostIDs(ctx context.Context, postIDs []string) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	return r.deleteMany(ctx, bson.D{{Key: "postId", Value: bson.D{{Key: "$in", Value: postIDs}}}})
}

func (r *MongoRepository) DeleteBySender(ctx context.Context, sender string) (int64, error) {
	return r.deleteMany(ctx, bson.D{{Key: "sender", Value: sender}})
}
