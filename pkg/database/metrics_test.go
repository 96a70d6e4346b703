package database

import (
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolStatsCollector_Describe(t *testing.T) {
	c := newPoolStatsCollector(func() *pgxpool.Stat { return nil }, "storefront")

	ch := make(chan *prometheus.Desc, 10)
	c.Describe(ch)
	close(ch)

	var names []string
	for d := range ch {
		names = append(names, d.String())
	}
	require.Len(t, names, 6)
	assert.True(t, strings.Contains(strings.Join(names, " "), "db_pool_acquired_connections"))
	assert.True(t, strings.Contains(strings.Join(names, " "), "db_pool_acquire_duration_seconds_total"))
}

func TestPoolStatsCollector_ImplementsCollector(t *testing.T) {
	var _ prometheus.Collector = newPoolStatsCollector(nil, "storefront")
}
