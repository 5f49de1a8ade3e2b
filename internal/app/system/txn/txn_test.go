package txn

import (
	"context"
	"errors"
	"testing"

	"github.com/inspecthub/inspecthub/internal/domain/apperr"
)

type counter struct {
	Value   int
	Version int64
}

func TestApply_Success(t *testing.T) {
	stored := counter{Value: 1}

	got, err := Apply(context.Background(),
		func(ctx context.Context) (counter, error) { return stored, nil },
		func(c *counter) error { c.Value++; return nil },
		func(ctx context.Context, c *counter) error { stored = *c; return nil },
	)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got.Value != 2 || stored.Value != 2 {
		t.Errorf("mutation not applied: got %d, stored %d", got.Value, stored.Value)
	}
}

func TestApply_RetriesOnStale(t *testing.T) {
	loads := 0
	failures := 2

	got, err := Apply(context.Background(),
		func(ctx context.Context) (counter, error) {
			loads++
			return counter{Value: loads}, nil
		},
		func(c *counter) error { c.Value *= 10; return nil },
		func(ctx context.Context, c *counter) error {
			if failures > 0 {
				failures--
				return ErrStale
			}
			return nil
		},
	)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if loads != 3 {
		t.Errorf("expected 3 loads, got %d", loads)
	}
	// The last attempt mutated a fresh snapshot.
	if got.Value != 30 {
		t.Errorf("got %d, want 30", got.Value)
	}
}

func TestApply_GivesUpAfterMaxAttempts(t *testing.T) {
	_, err := Apply(context.Background(),
		func(ctx context.Context) (counter, error) { return counter{}, nil },
		func(c *counter) error { return nil },
		func(ctx context.Context, c *counter) error { return ErrStale },
	)
	if apperr.KindOf(err) != apperr.Unavailable {
		t.Errorf("expected Unavailable after persistent staleness, got %v", err)
	}
}

func TestApply_MutateErrorStopsBeforeWrite(t *testing.T) {
	boom := apperr.E(apperr.Conflict, "You are already a member of this group")
	wrote := false

	_, err := Apply(context.Background(),
		func(ctx context.Context) (counter, error) { return counter{}, nil },
		func(c *counter) error { return boom },
		func(ctx context.Context, c *counter) error { wrote = true; return nil },
	)
	if !errors.Is(err, boom) {
		t.Errorf("expected the mutate error back, got %v", err)
	}
	if wrote {
		t.Error("replace must not run when mutate fails")
	}
}

func TestApply_LoadErrorPassesThrough(t *testing.T) {
	missing := apperr.E(apperr.NotFound, "Group not found")

	_, err := Apply(context.Background(),
		func(ctx context.Context) (counter, error) { return counter{}, missing },
		func(c *counter) error { return nil },
		func(ctx context.Context, c *counter) error { return nil },
	)
	if !errors.Is(err, missing) {
		t.Errorf("expected the load error back, got %v", err)
	}
}
