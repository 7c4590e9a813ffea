package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/movekenya/movekenya_backend/config"
	"github.com/movekenya/movekenya_backend/models"
)

// DriverStore is the admin panel's view of the drivers collection.
type DriverStore interface {
	Insert(ctx context.Context, driver *models.Driver) error
	List(ctx context.Context) ([]models.Driver, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// DriverRepository is the Mongo-backed DriverStore.
type DriverRepository struct {
	collection *mongo.Collection
}

func NewDriverRepository(db *mongo.Client) *DriverRepository {
	return &DriverRepository{
		collection: config.GetCollection(db, "drivers"),
	}
}

func (r *DriverRepository) Insert(ctx context.Context, driver *models.Driver) error {
	now := time.Now()
	driver.CreatedAt = now
	driver.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, driver)
	return err
}

// List returns all drivers with the password hash projected away; the admin
// UI has no business seeing credentials.
func (r *DriverRepository) List(ctx context.Context) ([]models.Driver, error) {
	opts := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	drivers := []models.Driver{}
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, err
	}
	return drivers, nil
}

// UpdateStatus sets the status of a driver by id. An id that matches nothing
// is not an error; the update simply touches zero rows.
func (r *DriverRepository) UpdateStatus(ctx context.Context, id, status string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now(),
		},
	}

	_, err = r.collection.UpdateOne(ctx, filter, update)
	return err
}

// Delete removes a driver by id. Deleting an id that no longer exists is a
// no-op, not a failure.
func (r *DriverRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
