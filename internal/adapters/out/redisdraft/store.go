// Package redisdraft stores in-progress reconciliation drafts in Redis.
// Drafts are scratch space for a clerk working through a session's outcomes;
// they expire on their own and carry no authority over the ledger.
package redisdraft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/ports"
	"settlement/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "reconciliation:draft:"

// DefaultTTL is how long a draft survives without being re-saved.
const DefaultTTL = 24 * time.Hour

// RedisDraftStore implements ports.DraftStore on top of a Redis client.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftStore creates a draft store. A non-positive ttl falls back to
// DefaultTTL.
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) (*RedisDraftStore, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisDraftStore{client: client, ttl: ttl}, nil
}

// Save stores the draft under the session key, replacing any previous draft
// and resetting the TTL.
func (s *RedisDraftStore) Save(ctx context.Context, sessionID kernel.UUID, draft ports.ReconciliationDraft) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	return s.client.Set(ctx, draftKey(sessionID), payload, s.ttl).Err()
}

// Get retrieves the current draft for a session.
func (s *RedisDraftStore) Get(ctx context.Context, sessionID kernel.UUID) (ports.ReconciliationDraft, error) {
	if err := sessionID.Validate(); err != nil {
		return ports.ReconciliationDraft{}, err
	}

	payload, err := s.client.Get(ctx, draftKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.ReconciliationDraft{}, errs.NewObjectNotFoundError("draft", sessionID.String())
		}
		return ports.ReconciliationDraft{}, err
	}

	var draft ports.ReconciliationDraft
	if err = json.Unmarshal(payload, &draft); err != nil {
		return ports.ReconciliationDraft{}, fmt.Errorf("unmarshal draft: %w", err)
	}

	return draft, nil
}

// Delete removes the draft. Deleting a missing draft is not an error.
func (s *RedisDraftStore) Delete(ctx context.Context, sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	return s.client.Del(ctx, draftKey(sessionID)).Err()
}

func draftKey(sessionID kernel.UUID) string {
	return keyPrefix + sessionID.String()
}
