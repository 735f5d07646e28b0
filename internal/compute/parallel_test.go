package compute

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestMapPreservesOrder(t *testing.T) {
	items := []int{5, 3, 8, 1, 9, 2}
	got, err := Map(context.Background(), 3, items, func(_ context.Context, v int) (int, error) {
		return v * 10, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("results = %d, want %d", len(got), len(items))
	}
	for i, v := range items {
		if got[i] != v*10 {
			t.Errorf("got[%d] = %d, want %d", i, got[i], v*10)
		}
	}
}

func TestMapEmptyInput(t *testing.T) {
	got, err := Map(context.Background(), 2, nil, func(_ context.Context, v int) (int, error) {
		return v, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("results = %d, want 0", len(got))
	}
}

func TestMapPropagatesFirstError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Map(context.Background(), 1, []int{1, 2, 3}, func(_ context.Context, v int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v, nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestMapRespectsLimit(t *testing.T) {
	var current, peak atomic.Int64
	items := make([]int, 32)

	_, err := Map(context.Background(), 4, items, func(_ context.Context, _ int) (int, error) {
		n := current.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		defer current.Add(-1)
		return 0, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peak.Load() > 4 {
		t.Errorf("observed %d concurrent calls, limit was 4", peak.Load())
	}
}

func TestMapCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Map(ctx, 2, []int{1, 2, 3}, func(ctx context.Context, v int) (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return v, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
