package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	MongoClient *mongo.Client
	DB          *mongo.Database
)

func ConnectDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(AppConfig.MongoURI))
	if err != nil {
		Logger.Fatal("Unable to connect to MongoDB", zap.Error(err))
	}

	if err := client.Ping(ctx, nil); err != nil {
		Logger.Fatal("Unable to ping MongoDB", zap.Error(err))
	}

	MongoClient = client
	DB = client.Database(AppConfig.MongoDB)

	if err := ensureIndexes(ctx, DB); err != nil {
		Logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	Logger.Info("Database connected successfully", zap.String("database", AppConfig.MongoDB))
}

// ensureIndexes creates the unique email index so duplicate registrations
// surface as duplicate-key errors instead of silent double inserts.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func CloseDB() {
	if MongoClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := MongoClient.Disconnect(ctx); err != nil {
		Logger.Warn("Failed to disconnect from MongoDB", zap.Error(err))
		return
	}
	Logger.Info("Database connection closed")
}
