// Package redis implements db.Store on top of rueidis. It serves both Valkey
// and Redis, which speak the same protocol for the commands used here.
package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/rueidis"

	"github.com/lotego/lotego/internal/db"
)

var _ db.Store = (*Store)(nil)

// clientName is reported through CLIENT SETNAME so page cache connections are
// easy to spot in CLIENT LIST.
const clientName = "lotego-pagecache"

// readyBackoff bounds the delay between readiness pings.
const (
	readyBackoffMin = 50 * time.Millisecond
	readyBackoffMax = time.Second
)

// Config describes how the page cache reaches a Valkey or Redis deployment.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	// Timeout bounds dialing and socket writes. Zero keeps the rueidis defaults.
	Timeout time.Duration
}

// Store is a page cache backend speaking RESP via rueidis.
type Store struct {
	client rueidis.Client
}

// NewStore dials the configured deployment.
func NewStore(cfg Config) (*Store, error) {
	opt, err := clientOption(cfg)
	if err != nil {
		return nil, err
	}
	client, err := rueidis.NewClient(opt)
	if err != nil {
		return nil, &db.Error{Op: db.OpConnect, Err: err}
	}
	return &Store{client: client}, nil
}

// clientOption translates Config into rueidis options. Client-side caching
// stays off: cached pages are already the client-side copy.
func clientOption(cfg Config) (rueidis.ClientOption, error) {
	if len(cfg.Addrs) == 0 {
		return rueidis.ClientOption{}, errors.New("cache addrs is required")
	}
	if cfg.DB < 0 {
		return rueidis.ClientOption{}, fmt.Errorf("cache db must be >= 0, got %d", cfg.DB)
	}
	if cfg.Timeout < 0 {
		return rueidis.ClientOption{}, fmt.Errorf("cache timeout must be >= 0, got %s", cfg.Timeout)
	}

	opt := rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		ClientName:   clientName,
		DisableCache: true,
	}
	if cfg.Timeout > 0 {
		opt.Dialer = net.Dialer{Timeout: cfg.Timeout}
		opt.ConnWriteTimeout = cfg.Timeout
	}
	return opt, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.do(ctx, s.b().Ping().Build()).Error(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady pings right away and then with doubling delays until the
// deployment answers or timeout elapses. The last ping error is returned on
// timeout.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	delay := readyBackoffMin
	for {
		err := s.Ping(ctx)
		if err == nil {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("cache not ready after %s: %w", timeout, err)
		case <-timer.C:
		}
		delay = min(delay*2, readyBackoffMax)
	}
}

func (s *Store) do(ctx context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	return s.client.Do(ctx, cmd)
}

func (s *Store) b() rueidis.Builder {
	return s.client.B()
}
