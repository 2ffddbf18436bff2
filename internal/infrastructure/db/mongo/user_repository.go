package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/userdir/user-directory/internal/core/domain"
	"github.com/userdir/user-directory/internal/core/ports"
)

const collectionUsers = "users"

// UserRepository is the Mongo-backed users store. Each user is a document in
// the users collection keyed by a store-generated ObjectID hex string.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// Create inserts a new user document with a generated ID and timestamps.
func (r *UserRepository) Create(ctx context.Context, input ports.CreateUserInput, geo domain.Geodata) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	user := domain.User{
		ID:        primitive.NewObjectID().Hex(),
		Name:      input.Name,
		ZipCode:   input.ZipCode,
		Latitude:  geo.Latitude,
		Longitude: geo.Longitude,
		Timezone:  geo.Timezone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.col.InsertOne(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID retrieves a user by ID. Returns (nil, nil) when the document does
// not exist.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var user domain.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindAll returns every user. An empty or missing collection yields an empty
// slice, not an error.
func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]domain.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Update reads the existing document, applies only the fields present in
// patch via $set, and returns the merged view. Returns (nil, nil) when the
// ID is unknown.
func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": patch.UpdatedAt}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.ZipCode != nil {
		set["zip_code"] = *patch.ZipCode
	}
	if patch.Latitude != nil {
		set["latitude"] = *patch.Latitude
	}
	if patch.Longitude != nil {
		set["longitude"] = *patch.Longitude
	}
	if patch.Timezone != nil {
		set["timezone"] = *patch.Timezone
	}

	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return nil, err
	}

	merged := patch.Apply(*existing)
	return &merged, nil
}

// Delete confirms existence, then removes the document. Returns (false, nil)
// when the ID is unknown.
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return false, err
	}
	return true, nil
}
