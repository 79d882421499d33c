// Package peerclient talks to the peer node over a raw TCP connection for
// the handful of operations the document store can't answer (spec.md §1's
// "a few operations... framed binary requests to a peer node"). The wire
// protocol and the merkle-path cryptographic construction are an explicit
// non-goal; this package carries the client shape and connection lifecycle
// only, grounded on the teacher's pkg/rpc.HTTPClient timeout/dial-target
// idiom, adapted to net.Conn framing since nothing in the pack targets a
// Symbol-style packet header.
package peerclient

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/symbol-chain/catapult-gateway/pkg/store"
	"github.com/symbol-chain/catapult-gateway/pkg/utils"
)

// AuditPath resolves the merkle audit path proving a transaction's
// membership at the given block height (spec.md §6.4 supplement).
type AuditPath struct {
	TransactionHash string
	Path            []string
}

// Client is implemented by TCPClient and, in tests, an in-memory fake.
type Client interface {
	AuditPath(ctx context.Context, height uint64, hash string) (AuditPath, error)
}

// Opts configures a TCPClient. Mirrors the teacher's rpc.Opts shape
// (endpoint, timeout) without the token-bucket/circuit-breaker machinery,
// since a single peer node has no fan-out to rate-limit.
type Opts struct {
	Addr    string
	Timeout time.Duration
}

// OptsFromEnv reads PEER_NODE_ADDR (SPEC_FULL.md §6.2).
func OptsFromEnv() Opts {
	return Opts{
		Addr:    utils.Env("PEER_NODE_ADDR", ""),
		Timeout: 10 * time.Second,
	}
}

// TCPClient is the real Client implementation: it dials the peer over
// net.Conn fresh per call rather than pooled, since audit-path requests are
// rare relative to the query surface. It does not frame or send any request
// on the connection (see AuditPath).
type TCPClient struct {
	addr    string
	timeout time.Duration
	logger  *zap.Logger
}

func NewTCPClient(o Opts, logger *zap.Logger) *TCPClient {
	return &TCPClient{addr: o.Addr, timeout: o.Timeout, logger: logger}
}

// AuditPath is unimplemented in detail per spec.md's binary-peer-protocol
// non-goal. It still performs the dial so a misconfigured PEER_NODE_ADDR
// surfaces as a connection error rather than being silently masked, and
// wraps store.ErrNotImplemented so the gateway can map it to a 501.
func (c *TCPClient) AuditPath(ctx context.Context, height uint64, hash string) (AuditPath, error) {
	if c.addr == "" {
		return AuditPath{}, fmt.Errorf("peerclient: PEER_NODE_ADDR not configured: %w", store.ErrNotImplemented)
	}

	dialer := net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return AuditPath{}, fmt.Errorf("peerclient: dial %s: %w", c.addr, err)
	}
	defer conn.Close()

	return AuditPath{}, fmt.Errorf("peerclient: %s: %w", c.addr, store.ErrNotImplemented)
}

// Fake is an in-memory Client for tests: it returns Err when set, otherwise
// the pre-programmed AuditPath for the hash, or an error wrapping
// store.ErrNotImplemented when no path is programmed for it.
type Fake struct {
	Paths map[string]AuditPath
	Err   error
}

func (f *Fake) AuditPath(ctx context.Context, height uint64, hash string) (AuditPath, error) {
	if f.Err != nil {
		return AuditPath{}, f.Err
	}
	path, ok := f.Paths[hash]
	if !ok {
		return AuditPath{}, fmt.Errorf("peerclient: no fake path for %s: %w", hash, store.ErrNotImplemented)
	}
	return path, nil
}
