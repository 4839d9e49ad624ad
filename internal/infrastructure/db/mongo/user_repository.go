package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
)

const (
	collectionUsers    = "users"
	collectionProfiles = "journalist_profiles"
)

type UserRepository struct {
	users    *mongo.Collection
	profiles *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users:    db.Collection(collectionUsers),
		profiles: db.Collection(collectionProfiles),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	if err := r.users.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// SetRole replaces the role in a single document write. Role is the sole
// source of capabilities, so no other bookkeeping is needed.
func (r *UserRepository) SetRole(ctx context.Context, id string, role domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"role":       string(role),
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) AddPublisherSubscription(ctx context.Context, userID, publisherID string) error {
	return r.mutateSubscription(ctx, userID, "subscribed_publisher_ids", "$addToSet", publisherID)
}

func (r *UserRepository) RemovePublisherSubscription(ctx context.Context, userID, publisherID string) error {
	return r.mutateSubscription(ctx, userID, "subscribed_publisher_ids", "$pull", publisherID)
}

func (r *UserRepository) AddJournalistSubscription(ctx context.Context, userID, journalistID string) error {
	return r.mutateSubscription(ctx, userID, "subscribed_journalist_ids", "$addToSet", journalistID)
}

func (r *UserRepository) RemoveJournalistSubscription(ctx context.Context, userID, journalistID string) error {
	return r.mutateSubscription(ctx, userID, "subscribed_journalist_ids", "$pull", journalistID)
}

func (r *UserRepository) mutateSubscription(ctx context.Context, userID, field, op, targetID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		op:     bson.M{field: targetID},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SubscriberEmails returns the distinct, non-empty emails of reader-role
// users subscribed to the publisher or to the author.
func (r *UserRepository) SubscriberEmails(ctx context.Context, publisherID, authorID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"role":  string(domain.RoleReader),
		"email": bson.M{"$nin": bson.A{"", nil}},
		"$or": []bson.M{
			{"subscribed_publisher_ids": publisherID},
			{"subscribed_journalist_ids": authorID},
		},
	}

	values, err := r.users.Distinct(ctx, "email", filter)
	if err != nil {
		return nil, fmt.Errorf("subscriber emails: %w", err)
	}

	emails := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			emails = append(emails, s)
		}
	}
	return emails, nil
}

// EnsureProfile upserts the journalist profile, keeping an existing one
// untouched ($setOnInsert).
func (r *UserRepository) EnsureProfile(ctx context.Context, profile *domain.JournalistProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.profiles.UpdateOne(ctx,
		bson.M{"_id": profile.UserID},
		bson.M{"$setOnInsert": profile},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *UserRepository) FindProfile(ctx context.Context, userID string) (*domain.JournalistProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.JournalistProfile
	if err := r.profiles.FindOne(ctx, bson.M{"_id": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// EnsureIndexes creates the unique username index and the subscription
// lookup indexes used by the fan-out recipient query.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "subscribed_publisher_ids", Value: 1}}},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "subscribed_journalist_ids", Value: 1}}},
	}

	_, err := r.users.Indexes().CreateMany(ctx, indexes)
	return err
}
