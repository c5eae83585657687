package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casacomune/community-api/pkg/metrics"
)

// Client wraps the PostgreSQL connection pool with domain operations
type Client struct {
	pool *pgxpool.Pool
}

// NewClient creates a new PostgreSQL client
func NewClient(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool}
}

func recordMetrics(operation, status string, duration float64) {
	metrics.DBOperationDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBOperationTotal.WithLabelValues(operation, status).Inc()
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
