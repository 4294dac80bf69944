package database

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/sync/singleflight"

	"helpdesk/internal/config"
)

// Manager owns the Mongo client for the process. The connection is
// established lazily on first use; concurrent first users share a
// single in-flight dial via singleflight, and a failed dial is not
// cached, so the next caller retries.
type Manager struct {
	cfg   config.Config
	dial  func(ctx context.Context) (*mongo.Client, error)
	group singleflight.Group

	mu     sync.RWMutex
	client *mongo.Client
}

func NewManager(cfg config.Config) *Manager {
	m := &Manager{cfg: cfg}
	m.dial = m.connect
	return m
}

// Database returns the live database handle, dialing if needed.
func (m *Manager) Database(ctx context.Context) (*mongo.Database, error) {
	m.mu.RLock()
	c := m.client
	m.mu.RUnlock()
	if c != nil {
		return c.Database(m.cfg.MongoDB), nil
	}

	v, err, _ := m.group.Do("connect", func() (any, error) {
		m.mu.RLock()
		c := m.client
		m.mu.RUnlock()
		if c != nil {
			return c, nil
		}
		cl, err := m.dial(ctx)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.client = cl
		m.mu.Unlock()
		return cl, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Client).Database(m.cfg.MongoDB), nil
}

func (m *Manager) connect(ctx context.Context) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(m.cfg.MongoURI).
		SetConnectTimeout(m.cfg.ConnectTimeout).
		SetMaxConnIdleTime(m.cfg.SocketTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}

	pctx, cancel := context.WithTimeout(ctx, m.cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	if err := ensureIndexes(pctx, client.Database(m.cfg.MongoDB)); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	c := m.client
	m.client = nil
	m.mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Disconnect(ctx)
}
