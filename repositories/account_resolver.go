package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/movekenya/movekenya_backend/models"
)

// AccountSource is one account collection exposing a uniform lookup-by-email
// capability. FindByEmail returns ErrNotFound when no row matches; any other
// error is a store fault.
type AccountSource interface {
	Role() string
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
}

// AccountResolver probes an ordered set of account collections. The order is
// fixed at construction and first match wins: a password failure against an
// earlier collection must not fall through to a later one, so resolution
// stops at the first email hit regardless of what the caller does next.
type AccountResolver struct {
	sources []AccountSource
}

// NewAccountResolver builds a resolver over the given sources, probed in the
// order supplied.
func NewAccountResolver(sources ...AccountSource) *AccountResolver {
	return &AccountResolver{sources: sources}
}

// NewMongoAccountResolver builds the production resolver over the admins,
// users and drivers collections, in that priority order.
func NewMongoAccountResolver(db *mongo.Database) *AccountResolver {
	return NewAccountResolver(
		&mongoAccountSource{coll: db.Collection("admins"), role: models.RoleAdmin},
		&mongoAccountSource{coll: db.Collection("users"), role: models.RoleUser},
		&mongoAccountSource{coll: db.Collection("drivers"), role: models.RoleDriver},
	)
}

// Resolve walks the collections in order and returns the first account whose
// email matches, tagged with the role of the collection it came from.
// ErrNotFound means every collection was exhausted without a hit.
func (r *AccountResolver) Resolve(ctx context.Context, email string) (*models.Account, error) {
	for _, src := range r.sources {
		account, err := src.FindByEmail(ctx, email)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		account.Role = src.Role()
		return account, nil
	}
	return nil, ErrNotFound
}

type mongoAccountSource struct {
	coll *mongo.Collection
	role string
}

func (s *mongoAccountSource) Role() string {
	return s.role
}

func (s *mongoAccountSource) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
