package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/restocked/stocklog/internal/domain/models"
	"github.com/restocked/stocklog/internal/repository"
)

// MongoDBRepository implements repository.LogRepository and
// repository.ReportStore backed by MongoDB.
type MongoDBRepository struct {
	client      *mongo.Client
	dbName      string
	logsColl    string
	reportsColl string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:      client,
		dbName:      dbName,
		logsColl:    "daily_logs",
		reportsColl: "spend_reports",
	}, nil
}

// SaveLog inserts a finalized log, assigning an id when one is missing.
func (r *MongoDBRepository) SaveLog(ctx context.Context, log models.DailyLog) (models.DailyLog, error) {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}

	collection := r.client.Database(r.dbName).Collection(r.logsColl)
	if _, err := collection.InsertOne(ctx, log); err != nil {
		return models.DailyLog{}, fmt.Errorf("failed to insert daily log: %w", err)
	}
	return log, nil
}

// GetLogs returns all logs, newest first.
func (r *MongoDBRepository) GetLogs(ctx context.Context) ([]models.DailyLog, error) {
	collection := r.client.Database(r.dbName).Collection(r.logsColl)

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily logs: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var logs []models.DailyLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode daily logs: %w", err)
	}
	return logs, nil
}

// GetLog fetches one log by id.
func (r *MongoDBRepository) GetLog(ctx context.Context, id string) (models.DailyLog, error) {
	collection := r.client.Database(r.dbName).Collection(r.logsColl)

	var log models.DailyLog
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&log)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DailyLog{}, repository.ErrNotFound
	}
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("failed to fetch daily log %s: %w", id, err)
	}
	return log, nil
}

// DeleteLog removes one log by id.
func (r *MongoDBRepository) DeleteLog(ctx context.Context, id string) error {
	collection := r.client.Database(r.dbName).Collection(r.logsColl)

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete daily log %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SaveSpendReport stores a nightly spend snapshot.
func (r *MongoDBRepository) SaveSpendReport(ctx context.Context, report models.DailySpendReport) error {
	collection := r.client.Database(r.dbName).Collection(r.reportsColl)
	if _, err := collection.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert spend report: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
