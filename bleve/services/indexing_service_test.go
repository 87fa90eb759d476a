package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

func TestConcurrentIndexingSharesOneIndex(t *testing.T) {
	svc := NewIndexingService(zap.NewNop(), t.TempDir())

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			doc := map[string]interface{}{"name": fmt.Sprintf("store-%d", n)}
			if err := svc.IndexDocument("stores", fmt.Sprintf("id-%d", n), doc); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent IndexDocument failed: %v", err)
	}

	if len(svc.indexes) != 1 {
		t.Fatalf("expected a single cached index, got %d", len(svc.indexes))
	}

	result, err := svc.SearchIndex("stores", bleve.NewMatchAllQuery(), writers)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if int(result.Total) != writers {
		t.Errorf("indexed %d documents, search found %d", writers, result.Total)
	}
}

func TestDeleteAllIndicesResetsCache(t *testing.T) {
	svc := NewIndexingService(zap.NewNop(), t.TempDir())

	if err := svc.IndexDocument("stores", "id-1", map[string]interface{}{"name": "a"}); err != nil {
		t.Fatalf("IndexDocument failed: %v", err)
	}
	if err := svc.DeleteAllIndices(); err != nil {
		t.Fatalf("DeleteAllIndices failed: %v", err)
	}
	if len(svc.indexes) != 0 {
		t.Errorf("cache not cleared, %d entries remain", len(svc.indexes))
	}

	// Re-creating after a wipe must work from scratch
	if err := svc.IndexDocument("stores", "id-2", map[string]interface{}{"name": "b"}); err != nil {
		t.Errorf("IndexDocument after wipe failed: %v", err)
	}
}
