package monitor

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Pinger issues a liveness probe against the store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor probes the store on demand. It keeps no state between calls so
// every health request reflects the store at that moment.
type Monitor struct {
	store   Pinger
	timeout time.Duration
	logger  *zap.Logger
}

func New(store Pinger, timeout time.Duration, logger *zap.Logger) *Monitor {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		store:   store,
		timeout: timeout,
		logger:  logger,
	}
}

// Check pings the store and reports the outcome.
func (m *Monitor) Check(ctx context.Context) Status {
	status := Status{LastCheck: time.Now()}
	if m.store == nil {
		status.Detail = "store not configured"
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.store.Ping(ctx); err != nil {
		m.logger.Warn("store ping failed", zap.Error(err))
		status.Detail = err.Error()
		return status
	}
	status.Online = true
	return status
}

// AdminPinger runs the ping admin command, the same probe the mongo shell uses.
type AdminPinger struct {
	Client *mongo.Client
}

func (p AdminPinger) Ping(ctx context.Context) error {
	return p.Client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
