// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/venue-engine/internal/pipeline"
	"github.com/pdiddy/venue-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{
		DBPath: filepath.Join(t.TempDir(), "history.db"),
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sum := pipeline.Summary{
		Total:      42,
		Found:      30,
		NotFound:   10,
		Failed:     2,
		Coverage:   types.Coverage{Rating: 40, FSARating: 30, Photos: 35},
		FinishedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := s.Record(ctx, sum); err != nil {
		t.Fatalf("Record: %v", err)
	}

	runs, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len = %d, want 1", len(runs))
	}

	r := runs[0]
	if r.TotalVenues != 42 || r.Found != 30 || r.NotFound != 10 || r.Failed != 2 {
		t.Errorf("run = %+v", r)
	}
	if r.Coverage.Rating != 40 || r.Coverage.FSARating != 30 {
		t.Errorf("coverage = %+v", r.Coverage)
	}
	if !r.FinishedAt.Equal(sum.FinishedAt) {
		t.Errorf("FinishedAt = %v, want %v", r.FinishedAt, sum.FinishedAt)
	}
}

func TestRecentNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		sum := pipeline.Summary{
			Total:      i,
			FinishedAt: time.Date(2026, 3, i, 12, 0, 0, 0, time.UTC),
		}
		if err := s.Record(ctx, sum); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	runs, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len = %d, want 2", len(runs))
	}
	if runs[0].TotalVenues != 3 || runs[1].TotalVenues != 2 {
		t.Errorf("order = %d, %d; want 3, 2", runs[0].TotalVenues, runs[1].TotalVenues)
	}
}

func TestRecentEmpty(t *testing.T) {
	s := newTestStore(t)
	runs, err := s.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("len = %d, want 0", len(runs))
	}
}
