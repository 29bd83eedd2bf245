// Package redis wraps the go-redis client so repositories depend on a
// narrow, mockable surface instead of the concrete client.
package redis

import (
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mocks/redis.go -package=redismocks -source=interface.go

// Client wraps redis.UniversalClient so repositories work unchanged
// against single-instance, cluster, and test deployments.
type Client interface {
	redis.UniversalClient
}

// Pipeliner wraps redis.Pipeliner for batch operations.
type Pipeliner interface {
	redis.Pipeliner
}
