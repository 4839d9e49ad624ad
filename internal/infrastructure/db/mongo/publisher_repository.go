package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
)

const collectionPublishers = "publishers"

type PublisherRepository struct {
	col *mongo.Collection
}

func NewPublisherRepository(db *mongo.Database) *PublisherRepository {
	return &PublisherRepository{col: db.Collection(collectionPublishers)}
}

func (r *PublisherRepository) Create(ctx context.Context, p *domain.Publisher) (*domain.Publisher, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPublisherExists
		}
		return nil, err
	}
	return p, nil
}

func (r *PublisherRepository) FindByID(ctx context.Context, id string) (*domain.Publisher, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *PublisherRepository) FindByName(ctx context.Context, name string) (*domain.Publisher, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *PublisherRepository) findOne(ctx context.Context, filter bson.M) (*domain.Publisher, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Publisher
	if err := r.col.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPublisherNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PublisherRepository) List(ctx context.Context) ([]*domain.Publisher, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	publishers := make([]*domain.Publisher, 0)
	for cur.Next(ctx) {
		var p domain.Publisher
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		publishers = append(publishers, &p)
	}
	return publishers, cur.Err()
}

// EnsureIndexes creates the unique name index.
func (r *PublisherRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
