package bootstrap

import (
	"context"
	"time"

	"github.com/Muhammed-Anees-P/go-mongo-generic/mongo"
	"go.uber.org/zap"
)

// Application bundles the pieces a consumer wires repositories from.
type Application struct {
	Env    *Env
	Logger *zap.Logger
	Mongo  mongo.Client
}

// App loads the environment, builds the logger, and connects to Mongo.
// envFile may be empty.
func App(ctx context.Context, envFile string) (*Application, error) {
	env, err := NewEnv(envFile)
	if err != nil {
		return nil, err
	}

	logger, err := NewLogger(env)
	if err != nil {
		return nil, err
	}

	client, err := NewMongoClient(ctx, env, logger)
	if err != nil {
		return nil, err
	}

	return &Application{Env: env, Logger: logger, Mongo: client}, nil
}

// Database returns the configured database handle.
func (app *Application) Database() mongo.Database {
	return app.Mongo.Database(app.Env.DBName)
}

// Timeout returns the configured per-call deadline for usecases.
func (app *Application) Timeout() time.Duration {
	return time.Duration(app.Env.ContextTimeout) * time.Second
}

// Close tears the application down.
func (app *Application) Close(ctx context.Context) {
	CloseMongoClient(ctx, app.Mongo, app.Logger)
	_ = app.Logger.Sync()
}
