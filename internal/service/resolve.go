package service

import (
	"context"
	"errors"

	"github.com/haierkeys/fast-note-folder-service/internal/domain"
	"github.com/haierkeys/fast-note-folder-service/pkg/code"

	"github.com/google/uuid"
)

// resolveOwned is the single ownership gate: fetch loads the entity by key without any owner filter,
// the result is classified against the caller. The returned error is a persistence failure, never a not-found.
func resolveOwned[T domain.Owned](ctx context.Context, fetch func(context.Context, uuid.UUID) (T, error), id uuid.UUID, uid int64) (domain.Resolution[T], error) {
	entity, err := fetch(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Classify(entity, false, uid), nil
		}
		return domain.Resolution[T]{}, err
	}
	return domain.Classify(entity, true, uid), nil
}

// outcomeError maps a non-owned outcome to its response code, nil for owned
func outcomeError(o domain.Outcome, notFound, forbidden *code.Code) error {
	switch o {
	case domain.OutcomeOwned:
		return nil
	case domain.OutcomeForbidden:
		return forbidden
	default:
		return notFound
	}
}
