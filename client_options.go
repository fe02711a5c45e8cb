package pagehighlight

import (
	"time"

	"go.uber.org/zap"
)

const (
	driverMemory = "memory"
	driverBadger = "badger"
	driverRedis  = "redis"
)

// ClientOption configures the Client.
type ClientOption interface {
	apply(*clientConfig)
}

// clientOptionFunc adapts a function to the ClientOption interface.
type clientOptionFunc func(*clientConfig)

func (f clientOptionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string
	addrs    []string
	password string
	path     string

	keyPrefix    string
	uploadTTL    time.Duration
	poolSize     int
	maxBatchSize int

	logger *zap.Logger
}

// WithRedis stores uploads in a Redis instance.
func WithRedis(addr, password string) ClientOption {
	return clientOptionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithBadger stores uploads in an embedded Badger database at path.
func WithBadger(path string) ClientOption {
	return clientOptionFunc(func(c *clientConfig) {
		c.driver = driverBadger
		c.path = path
	})
}

// WithKeyPrefix sets the prefix of every stored key.
func WithKeyPrefix(prefix string) ClientOption {
	return clientOptionFunc(func(c *clientConfig) { c.keyPrefix = prefix })
}

// WithUploadTTL expires uploads after ttl. Zero keeps them forever.
func WithUploadTTL(ttl time.Duration) ClientOption {
	return clientOptionFunc(func(c *clientConfig) { c.uploadTTL = ttl })
}

// WithPoolSize sets the number of goroutines serving MatchBatch.
func WithPoolSize(n int) ClientOption {
	return clientOptionFunc(func(c *clientConfig) { c.poolSize = n })
}

// WithMaxBatchSize caps the number of queries per MatchBatch call.
func WithMaxBatchSize(n int) ClientOption {
	return clientOptionFunc(func(c *clientConfig) { c.maxBatchSize = n })
}

// WithLogger sets the logger used by the client.
func WithLogger(l *zap.Logger) ClientOption {
	return clientOptionFunc(func(c *clientConfig) {
		if l != nil {
			c.logger = l
		}
	})
}
