package clientRepo

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

// ClientRepository defines methods for client account data access.
type ClientRepository interface {
	GetByID(id string) (*models.Client, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.Client, error)
}

// MongoClientRepo implements ClientRepository using MongoDB.
type MongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo creates a new instance of ClientRepository using MongoDB.
func NewMongoClientRepo() ClientRepository {
	coll := database.MongoClient.Database("wellnest").Collection("clients")
	return &MongoClientRepo{coll: coll}
}

func (r *MongoClientRepo) GetByID(id string) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var client models.Client
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&client); err != nil {
		return nil, fmt.Errorf("failed to fetch client with id %s: %w", id, err)
	}
	return &client, nil
}

func (r *MongoClientRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var client models.Client
	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&client); err != nil {
		return nil, fmt.Errorf("failed to fetch client with id %s: %w", id, err)
	}
	return &client, nil
}
