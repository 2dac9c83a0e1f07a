// internal/repository/mongo/weekly_workout_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"fitsocial/internal/domain"
	"fitsocial/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const weeklyWorkoutCollectionName = "weekly_workouts"

// mongoWeeklyWorkoutRepository implements repository.WeeklyWorkoutRepository.
type mongoWeeklyWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWeeklyWorkoutRepository creates a new weekly plan repository.
func NewMongoWeeklyWorkoutRepository(db *mongo.Database) repository.WeeklyWorkoutRepository {
	return &mongoWeeklyWorkoutRepository{
		collection: db.Collection(weeklyWorkoutCollectionName),
	}
}

func (r *mongoWeeklyWorkoutRepository) Create(ctx context.Context, plan *domain.WeeklyWorkout) (primitive.ObjectID, error) {
	if plan.CreatedBy == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("weekly workout requires createdBy")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted weekly workout ID")
	}
	return insertedID, nil
}

func (r *mongoWeeklyWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyWorkout, error) {
	var plan domain.WeeklyWorkout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *mongoWeeklyWorkoutRepository) List(ctx context.Context) ([]domain.WeeklyWorkout, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []domain.WeeklyWorkout{}
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Update rewrites all seven day slots at once; cleared days are unset so the
// document mirrors the in-memory plan exactly.
func (r *mongoWeeklyWorkoutRepository) Update(ctx context.Context, plan *domain.WeeklyWorkout) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("weekly workout ID is required for update")
	}

	set := bson.M{
		"weekStartDate": plan.WeekStartDate,
		"updatedAt":     time.Now().UTC(),
	}
	unset := bson.M{}
	days := map[string]*primitive.ObjectID{
		"mondayId":    plan.MondayID,
		"tuesdayId":   plan.TuesdayID,
		"wednesdayId": plan.WednesdayID,
		"thursdayId":  plan.ThursdayID,
		"fridayId":    plan.FridayID,
		"saturdayId":  plan.SaturdayID,
		"sundayId":    plan.SundayID,
	}
	for key, id := range days {
		if id != nil {
			set[key] = id
		} else {
			unset[key] = ""
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": plan.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoWeeklyWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWeeklyWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWeeklyWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdBy", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
