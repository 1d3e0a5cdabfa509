package memory

import (
	"context"
	"testing"
	"time"

	"github.com/hamed0406/oncallsla/internal/domain"
)

func TestMemoryStore_RecordAndList(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if err := s.Bootstrap(ctx); err != nil {
		t.Fatalf("second Bootstrap: %v", err)
	}

	at := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	ind := &domain.Indicator{Datetime: at, Name: "a", SLO: 1, Value: 0, IsBad: true}
	if err := s.Record(ctx, ind); err != nil {
		t.Fatalf("Record: %v", err)
	}

	// mutating the caller's copy must not change history
	ind.Value = 42

	all := s.Records()
	if len(all) != 1 || all[0].Value != 0 || !all[0].IsBad {
		t.Fatalf("unexpected records: %+v", all)
	}
}

func TestMemoryStore_Summary(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)

	recs := []domain.Indicator{
		{Datetime: base.Add(-time.Minute), Name: "a", IsBad: true}, // before window
		{Datetime: base, Name: "a", IsBad: false},
		{Datetime: base.Add(time.Minute), Name: "a", IsBad: true},
		{Datetime: base.Add(time.Minute), Name: "b", IsBad: false},
		{Datetime: base.Add(time.Hour), Name: "b", IsBad: true}, // at window end, excluded
	}
	for i := range recs {
		if err := s.Record(ctx, &recs[i]); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Summary(ctx, base, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 rows, got %+v", got)
	}
	if got[0] != (domain.IndicatorSummary{Name: "a", Total: 2, Bad: 1}) {
		t.Fatalf("row a wrong: %+v", got[0])
	}
	if got[1] != (domain.IndicatorSummary{Name: "b", Total: 1, Bad: 0}) {
		t.Fatalf("row b wrong: %+v", got[1])
	}
}
