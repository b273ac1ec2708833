// Package di wires the application's dependencies: the document store, the
// cache backend, the collection services and the HTTP surface.
package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/goliatone/go-campus-api/cache"
	"github.com/goliatone/go-campus-api/courses"
	"github.com/goliatone/go-campus-api/internal/cacheinfra"
	"github.com/goliatone/go-campus-api/internal/config"
	"github.com/goliatone/go-campus-api/internal/httpapi"
	"github.com/goliatone/go-campus-api/internal/mongostore"
	"github.com/goliatone/go-campus-api/students"
)

// memoryScheme selects the in-process cache backend instead of Redis.
const memoryScheme = "memory://"

// Container owns every long-lived dependency and hands out the wired
// singletons. Close releases the external connections.
type Container struct {
	logger *slog.Logger

	mongoClient *mongo.Client
	redisClient *redis.Client

	courseService  *courses.Service
	studentService *students.Service
	handler        http.Handler
}

// New connects to the configured backends and assembles the service graph.
// Both the store and the cache are pinged up front so a misconfigured
// deployment fails at startup rather than on the first request.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connecting to document store: %w", err)
	}
	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		_ = mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("pinging document store: %w", err)
	}

	c := &Container{
		logger:      logger,
		mongoClient: mongoClient,
	}

	cacheStore, err := c.buildCache(ctx, cfg)
	if err != nil {
		_ = mongoClient.Disconnect(ctx)
		return nil, err
	}

	db := mongoClient.Database(cfg.MongoDBName)

	courseStore := mongostore.NewCollection(db.Collection("courses"), mongostore.ModelHandlers[courses.Course]{
		SetID: func(c courses.Course, id primitive.ObjectID) courses.Course {
			c.ID = id
			return c
		},
	})
	studentStore := mongostore.NewCollection(db.Collection("students"), mongostore.ModelHandlers[students.Student]{
		SetID: func(s students.Student, id primitive.ObjectID) students.Student {
			s.ID = id
			return s
		},
	})

	c.courseService = courses.NewService(courseStore, cacheStore, cfg.CourseKeys, cfg.CacheTTL)
	c.studentService = students.NewService(studentStore, cacheStore, cfg.StudentKeys, cfg.CacheTTL)
	c.handler = httpapi.NewHandler(c.courseService, c.studentService, logger)

	return c, nil
}

func (c *Container) buildCache(ctx context.Context, cfg config.Config) (cache.Store, error) {
	if strings.HasPrefix(cfg.CacheURI, memoryScheme) {
		// sturdyc expires with a client-wide TTL, so the configured bound
		// has to be applied here rather than per Set call.
		mcfg := cacheinfra.DefaultMemoryConfig()
		mcfg.TTL = cfg.CacheTTL
		memory, err := cacheinfra.NewMemoryStore(mcfg, c.logger)
		if err != nil {
			return nil, fmt.Errorf("building memory cache: %w", err)
		}
		return memory, nil
	}

	opts, err := redis.ParseURL(cfg.CacheURI)
	if err != nil {
		return nil, fmt.Errorf("parsing cache URI: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}
	c.redisClient = client
	return cacheinfra.NewRedisStore(client, c.logger), nil
}

// Handler returns the fully wired HTTP handler.
func (c *Container) Handler() http.Handler {
	return c.handler
}

// CourseService returns the wired course service.
func (c *Container) CourseService() *courses.Service {
	return c.courseService
}

// StudentService returns the wired student service.
func (c *Container) StudentService() *students.Service {
	return c.studentService
}

// Close releases the store and cache connections.
func (c *Container) Close(ctx context.Context) error {
	var firstErr error
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			firstErr = err
		}
	}
	if err := c.mongoClient.Disconnect(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
