package metadata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fhuszti/medias-metadata-go/internal/mock"
)

func TestBacklogRefresher_RepoError(t *testing.T) {
	relRepo := &mock.MockRelationRepo{StaleErr: errors.New("db fail")}
	svc := NewBacklogRefresher(relRepo, &mock.MockDispatcher{}, 24*time.Hour, fixedClock)

	if _, err := svc.RefreshBacklog(context.Background()); err == nil || err.Error() != "db fail" {
		t.Fatalf("expected db fail, got %v", err)
	}
}

func TestBacklogRefresher_Success(t *testing.T) {
	relRepo := &mock.MockRelationRepo{StaleOut: []string{"m1", "m2"}}
	tasks := &mock.MockDispatcher{}
	svc := NewBacklogRefresher(relRepo, tasks, 24*time.Hour, fixedClock)

	n, err := svc.RefreshBacklog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 queued, got %d", n)
	}
	if !relRepo.StaleBefore.Equal(fixedNow.Add(-24 * time.Hour)) {
		t.Errorf("unexpected cutoff %v", relRepo.StaleBefore)
	}
	if tasks.PreloadItems[0].MediaID != "m1" || tasks.PreloadItems[1].MediaID != "m2" {
		t.Errorf("preload items mismatch: %+v", tasks.PreloadItems)
	}
}

func TestBacklogRefresher_SkipsAlreadyPending(t *testing.T) {
	relRepo := &mock.MockRelationRepo{StaleOut: []string{"m1", "m2", "m3"}}
	tasks := &mock.MockDispatcher{Pending: map[string]bool{"m2": true}}
	svc := NewBacklogRefresher(relRepo, tasks, time.Hour, fixedClock)

	n, err := svc.RefreshBacklog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 newly queued, got %d", n)
	}
	if len(tasks.PreloadItems) != 3 {
		t.Errorf("expected 3 enqueue attempts, got %d", len(tasks.PreloadItems))
	}
}

func TestBacklogRefresher_DispatcherError(t *testing.T) {
	relRepo := &mock.MockRelationRepo{StaleOut: []string{"m1", "m2"}}
	tasks := &mock.MockDispatcher{PreloadErr: errors.New("queue fail")}
	svc := NewBacklogRefresher(relRepo, tasks, time.Hour, fixedClock)

	n, err := svc.RefreshBacklog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 queued, got %d", n)
	}
	if len(tasks.PreloadItems) != 2 {
		t.Fatalf("expected 2 enqueue attempts, got %d", len(tasks.PreloadItems))
	}
}

func TestOrphanPruner(t *testing.T) {
	mdRepo := &mock.MockMetadataRepo{PruneOut: 3}
	n, err := NewOrphanPruner(mdRepo).PruneOrphans(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 || !mdRepo.PruneCalled {
		t.Errorf("expected 3 pruned rows, got %d", n)
	}
}

func TestOrphanPruner_Error(t *testing.T) {
	mdRepo := &mock.MockMetadataRepo{PruneErr: errors.New("db fail")}
	if _, err := NewOrphanPruner(mdRepo).PruneOrphans(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
