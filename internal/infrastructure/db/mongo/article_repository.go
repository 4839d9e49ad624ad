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
	"github.com/newsroom-io/newsroom-api/internal/core/ports"
)

const collectionArticles = "articles"

type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection(collectionArticles)}
}

// Create inserts a new article document, assigning its ID.
func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Article
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Update replaces the stored document with the given article.
func (r *ArticleRepository) Update(ctx context.Context, a *domain.Article) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// List returns all articles matching the filter in the requested order.
func (r *ArticleRepository) List(ctx context.Context, filter ports.ArticleFilter) ([]*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := buildArticleQuery(filter)

	opts := options.Find().SetSort(sortFor(filter.Sort))
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	articles := make([]*domain.Article, 0)
	for cur.Next(ctx) {
		var a domain.Article
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		articles = append(articles, &a)
	}
	return articles, cur.Err()
}

// Approve is the compare-and-swap transition into the approved state: the
// update matches only while the persisted status is not approved, so two
// racing approvals resolve to exactly one winner.
func (r *ArticleRepository) Approve(ctx context.Context, id string, ts time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$ne": string(domain.StatusApproved)},
	}
	update := bson.M{"$set": bson.M{
		"status":      string(domain.StatusApproved),
		"approved_at": ts.UTC(),
		"updated_at":  ts.UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *ArticleRepository) CountByStatus(ctx context.Context) (map[domain.ArticleStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := make(map[domain.ArticleStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[domain.ArticleStatus(row.Status)] = row.Count
	}
	return counts, cur.Err()
}

func (r *ArticleRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"author_id": authorID})
}

// EnsureIndexes creates the indexes backing the listing queries.
func (r *ArticleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "approved_at", Value: -1}}},
		{Keys: bson.D{{Key: "publisher_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func buildArticleQuery(filter ports.ArticleFilter) bson.M {
	query := bson.M{}

	if filter.Status != "" {
		if filter.VisibleOwnerID != "" {
			// Own articles regardless of status, plus everything matching
			// the status filter.
			query["$or"] = []bson.M{
				{"status": string(filter.Status)},
				{"author_id": filter.VisibleOwnerID},
			}
		} else {
			query["status"] = string(filter.Status)
		}
	}
	if filter.AuthorID != "" {
		query["author_id"] = filter.AuthorID
	}

	if len(filter.PublisherIDs) > 0 || len(filter.AuthorIDs) > 0 {
		subs := make([]bson.M, 0, 2)
		if len(filter.PublisherIDs) > 0 {
			subs = append(subs, bson.M{"publisher_id": bson.M{"$in": filter.PublisherIDs}})
		}
		if len(filter.AuthorIDs) > 0 {
			subs = append(subs, bson.M{"author_id": bson.M{"$in": filter.AuthorIDs}})
		}
		if existing, ok := query["$or"]; ok {
			query["$and"] = []bson.M{{"$or": existing}, {"$or": subs}}
			delete(query, "$or")
		} else {
			query["$or"] = subs
		}
	}

	return query
}

func sortFor(sort ports.ArticleSort) bson.D {
	switch sort {
	case ports.SortNewestCreated:
		return bson.D{{Key: "created_at", Value: -1}}
	case ports.SortOldestCreated:
		return bson.D{{Key: "created_at", Value: 1}}
	default: // SortNewestApproved
		return bson.D{{Key: "approved_at", Value: -1}, {Key: "created_at", Value: -1}}
	}
}
