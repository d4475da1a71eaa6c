package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connections
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client

	pool DatabaseConfig
}

// LoadEnv loads a .env file when one is present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, assuming environment variables are set")
	}
}

// InitDB opens the postgres user store and the mongo document store. Both
// are pinged within cfg.Database.ConnectTimeout; on failure nothing is left
// open.
func InitDB(cfg *Config) (*DB, error) {
	if cfg.PostgresUrl == "" {
		return nil, errors.New("POSTGRES_CONN_STR environment variable not set")
	}
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.timeout())
	defer cancel()

	db := &DB{pool: cfg.Database}

	pg, err := openPostgres(ctx, cfg.PostgresUrl, cfg.Database, !cfg.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("connecting to PostgreSQL: %w", err)
	}
	db.Postgres = pg

	client, err := ConnectMongo(ctx, cfg.MongoURI, cfg.Database)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}
	db.Mongo = client

	return db, nil
}

func openPostgres(ctx context.Context, dsn string, pool DatabaseConfig, verbose bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if verbose {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(level)})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	slog.Info("connected to PostgreSQL", "max_open_conns", pool.MaxOpenConns)
	return db, nil
}

func (d DatabaseConfig) timeout() time.Duration {
	if d.ConnectTimeout > 0 {
		return d.ConnectTimeout
	}
	return 10 * time.Second
}

// ConnectMongo opens a client sized by pool and waits for the primary.
func ConnectMongo(ctx context.Context, uri string, pool DatabaseConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(pool.timeout()).
		SetMaxPoolSize(pool.MongoMaxPool)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	slog.Info("connected to MongoDB", "max_pool_size", pool.MongoMaxPool)
	return client, nil
}

// Close releases both connections. It is safe on a partially opened DB.
func (db *DB) Close() {
	if db.Postgres != nil {
		if sqlDB, err := db.Postgres.DB(); err != nil {
			slog.Error("getting SQL DB from GORM", "error", err)
		} else if err := sqlDB.Close(); err != nil {
			slog.Error("closing PostgreSQL connection", "error", err)
		} else {
			slog.Info("PostgreSQL connection closed")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), db.pool.timeout())
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			slog.Error("closing MongoDB connection", "error", err)
		} else {
			slog.Info("MongoDB connection closed")
		}
	}
}
