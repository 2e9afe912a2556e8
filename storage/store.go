// Package storage provides resolution result storage backed by NATS KV.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/capitolstream/rollcall/legis"
	"github.com/capitolstream/rollcall/resolver"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// BucketResolutions is the default KV bucket for resolution results.
const BucketResolutions = "ROLLCALL_RESOLUTIONS"

// Dial connects to a NATS server and returns the connection along with
// its JetStream context.
func Dial(url string) (*nats.Conn, jetstream.JetStream, error) {
	nc, err := nats.Connect(url,
		nats.Name("rollcall"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("get JetStream context: %w", err)
	}

	return nc, js, nil
}

// Store provides resolution result storage operations backed by NATS KV.
// Results are keyed by vote key, so re-resolving a vote overwrites its
// previous result.
type Store struct {
	kv jetstream.KeyValue
}

// NewStore creates a new Store on the named KV bucket, creating the
// bucket if it doesn't exist. An empty bucket name uses BucketResolutions.
func NewStore(ctx context.Context, js jetstream.JetStream, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = BucketResolutions
	}

	kv, err := getOrCreateBucket(ctx, js, bucket)
	if err != nil {
		return nil, fmt.Errorf("create resolutions bucket: %w", err)
	}

	return &Store{kv: kv}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "Roll call vote resolution results",
		History:     5, // Keep last 5 revisions
	})
}

// kvKey maps a vote key to a KV-safe key. NATS KV keys cannot contain
// colons, so "house:2024-02-15:50" is stored as "house.2024-02-15.50".
func kvKey(key legis.VoteKey) string {
	return strings.ReplaceAll(string(key), ":", ".")
}

// Put stores a resolution result, replacing any earlier result for the
// same vote.
func (s *Store) Put(ctx context.Context, res *resolver.Result) error {
	if res == nil || res.VoteKey == "" {
		return fmt.Errorf("result has no vote key")
	}

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if _, err := s.kv.Put(ctx, kvKey(res.VoteKey), data); err != nil {
		return fmt.Errorf("store result %s: %w", res.VoteKey, err)
	}

	return nil
}

// Get retrieves the resolution result for a vote.
func (s *Store) Get(ctx context.Context, key legis.VoteKey) (*resolver.Result, error) {
	entry, err := s.kv.Get(ctx, kvKey(key))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get result %s: %w", key, err)
	}

	var res resolver.Result
	if err := json.Unmarshal(entry.Value(), &res); err != nil {
		return nil, fmt.Errorf("unmarshal result %s: %w", key, err)
	}

	return &res, nil
}

// List returns all stored resolution results.
func (s *Store) List(ctx context.Context) ([]*resolver.Result, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list result keys: %w", err)
	}

	results := make([]*resolver.Result, 0, len(keys))
	for _, key := range keys {
		entry, err := s.kv.Get(ctx, key)
		if err != nil {
			continue // Skip entries that fail to load
		}
		var res resolver.Result
		if err := json.Unmarshal(entry.Value(), &res); err != nil {
			continue
		}
		results = append(results, &res)
	}

	return results, nil
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound)
}
