package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/Muhammed-Anees-P/go-mongo-generic/mongo"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// NewMongoClient connects and pings the configured server.
func NewMongoClient(ctx context.Context, env *Env, logger *zap.Logger) (mongo.Client, error) {
	client, err := mongo.NewClient(env.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to build mongo client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("connected to mongodb", zap.String("database", env.DBName))
	return client, nil
}

// CloseMongoClient disconnects, logging instead of failing: shutdown paths
// have nowhere useful to send the error.
func CloseMongoClient(ctx context.Context, client mongo.Client, logger *zap.Logger) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("failed to disconnect from mongodb", zap.Error(err))
		return
	}
	logger.Info("disconnected from mongodb")
}
