package cache

import (
	"time"

	"github.com/joseph-ayodele/claims-triage/internal/common"
)

func testPostgresConfig(dsn string) common.CacheConfig {
	return common.CacheConfig{
		Backend: "postgres",
		Postgres: common.DatabaseConfig{
			DSN:         dsn,
			MaxConns:    2,
			DialTimeout: 5 * time.Second,
		},
	}
}
