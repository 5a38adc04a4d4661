package repomanager

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/comments"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/users"
)

// MongoRepositoryManager vends MongoDB-backed repositories over one database.
type MongoRepositoryManager struct {
	client        *mongo.Client
	users         *users.MongoRepository
	refreshTokens *refreshtokens.MongoRepository
	posts         *posts.MongoRepository
	comments      *comments.MongoRepository
}

func NewMongoRepositoryManager(client *mongo.Client, database string) *MongoRepositoryManager {
	db := client.Database(database)
	return &MongoRepositoryManager{
		client:        client,
		users:         users.NewMongoRepository(db),
		refreshTokens: refreshtokens.NewMongoRepository(db),
		posts:         posts.NewMongoRepository(db),
		comments:      comments.NewMongoRepository(db),
	}
}

// OpenMongo connects to uri and pings the primary.
func OpenMongo(ctx context.Context, uri, database string) (*MongoRepositoryManager, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return NewMongoRepositoryManager(client, database), nil
}

func (m *MongoRepositoryManager) Users() users.Repository                 { return m.users }
func (m *MongoRepositoryManager) RefreshTokens() refreshtokens.Repository { return m.refreshTokens }
func (m *MongoRepositoryManager) Posts() posts.Repository                 { return m.posts }
func (m *MongoRepositoryManager) Comments() comments.Repository           { return m.comments }

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// RunMigrations creates the collection indexes, unique ones included.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	for _, ix := range []indexer{m.users, m.refreshTokens, m.posts, m.comments} {
		if err := ix.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
