package storage

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/hamed0406/oncallsla/internal/config"
	"github.com/hamed0406/oncallsla/internal/repo/memory"
	"github.com/hamed0406/oncallsla/internal/repo/sqlite"
)

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	s, err := Open(ctx, config.Config{DBDriver: "memory"}, log)
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if _, ok := s.(*memory.Store); !ok {
		t.Fatalf("want *memory.Store, got %T", s)
	}

	path := filepath.Join(t.TempDir(), "sla.db")
	s, err = Open(ctx, config.Config{DBDriver: "sqlite", SQLitePath: path}, log)
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*sqlite.Store); !ok {
		t.Fatalf("want *sqlite.Store, got %T", s)
	}
	if err := s.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if _, err := Open(ctx, config.Config{DBDriver: "mysql"}, log); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
