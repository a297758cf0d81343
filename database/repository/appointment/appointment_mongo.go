package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"wellnest/database"
	"wellnest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.MongoClient.Database("wellnest").Collection("appointments")
	return &MongoAppointmentRepo{coll: coll}
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) ListByProviderBetween(
	ctx context.Context,
	providerID string,
	from, to time.Time,
) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"status":      bson.M{"$nin": bson.A{models.AppointmentCancelled, models.AppointmentRejected}},
		"date_time":   bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date_time", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}

// overlapFilter matches appointments still occupying provider time whose
// [date_time, date_time + duration) window intersects [start, end).
func overlapFilter(providerID string, start, end time.Time) bson.M {
	return bson.M{
		"provider_id": providerID,
		"status":      bson.M{"$nin": bson.A{models.AppointmentCancelled, models.AppointmentRejected}},
		"date_time":   bson.M{"$lt": end},
		"$expr": bson.M{
			"$gt": bson.A{
				bson.M{"$add": bson.A{
					"$date_time",
					bson.M{"$multiply": bson.A{"$duration_minutes", 60000}},
				}},
				start,
			},
		},
	}
}

func (r *MongoAppointmentRepo) ReserveTransactionally(ctx context.Context, appt *models.Appointment) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	start := appt.DateTime
	end := appt.End()

	txnFn := func(sc mongo.SessionContext) error {
		count, err := r.coll.CountDocuments(sc, overlapFilter(appt.ProviderID, start, end))
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if count > 0 {
			return ErrSlotConflict
		}
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}

func (r *MongoAppointmentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"status": status}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment %s status: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	return nil
}
