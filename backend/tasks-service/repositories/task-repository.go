package repositories

import (
	"context"
	"fmt"
	"time"

	"uac-task-viewer/backend/tasks-service/models"
	"uac-task-viewer/logging"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskRepository serves task definitions stored in a MongoDB collection,
// for running the backend without a controller.
type TaskRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewTaskRepository connects to uri and pings the server before returning.
func NewTaskRepository(ctx context.Context, uri, dbName, collectionName string) (*TaskRepository, error) {
	if uri == "" || dbName == "" || collectionName == "" {
		return nil, fmt.Errorf("mongo task source requires MONGO_URI, MONGO_DB_NAME and MONGO_COLLECTION")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("database connection for MongoDB failed: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDB connection ping error: %w", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Using MongoDB collection: %s/%s", dbName, collectionName)

	return &TaskRepository{
		client:     client,
		collection: client.Database(dbName).Collection(collectionName),
	}, nil
}

// ListTasks returns the summary fields of every stored task.
func (r *TaskRepository) ListTasks(ctx context.Context) ([]models.RawTask, error) {
	projection := bson.M{"_id": 0, "name": 1, "description": 1, "summary": 1}
	return r.find(ctx, options.Find().SetProjection(projection).SetSort(bson.D{{Key: "name", Value: 1}}))
}

// ListTasksAdvanced returns the full stored definitions.
func (r *TaskRepository) ListTasksAdvanced(ctx context.Context) ([]models.RawTask, error) {
	return r.find(ctx, options.Find().SetProjection(bson.M{"_id": 0}).SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *TaskRepository) find(ctx context.Context, opts *options.FindOptions) ([]models.RawTask, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.RawTask
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, models.RawTask(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return tasks, nil
}

// Close disconnects the underlying client.
func (r *TaskRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
