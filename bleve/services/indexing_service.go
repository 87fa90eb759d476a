package services

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"go.uber.org/zap"
)

type IndexingServiceInterface interface {
	IndexDocument(indexName, id string, document interface{}) error
	BulkIndexDocuments(indexName string, documents map[string]interface{}) error
	DeleteDocument(indexName, id string) error
	SearchIndex(indexName string, q query.Query, size int) (*bleve.SearchResult, error)
	DeleteAllIndices() error
}

type IndexingService struct {
	mu       sync.Mutex
	indexes  map[string]bleve.Index
	logger   *zap.Logger
	basePath string
}

func NewIndexingService(logger *zap.Logger, basePath string) *IndexingService {
	return &IndexingService{
		indexes:  make(map[string]bleve.Index),
		logger:   logger,
		basePath: basePath,
	}
}

// getOrCreateIndex is called from request handlers and the startup warm
// goroutine concurrently; the lock also keeps two callers from opening
// the same index path twice.
func (s *IndexingService) getOrCreateIndex(indexName string) (bleve.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.indexes[indexName]; ok {
		return idx, nil
	}

	fullPath := fmt.Sprintf("%s/%s.bleve", s.basePath, indexName)
	mapping := bleve.NewIndexMapping()

	idx, err := bleve.Open(fullPath)
	if err != nil {
		// Index does not exist yet, create a new one
		idx, err = bleve.New(fullPath, mapping)
		if err != nil {
			return nil, fmt.Errorf("failed to create index %s: %w", fullPath, err)
		}
	}

	s.indexes[indexName] = idx
	return idx, nil
}

func (s *IndexingService) IndexDocument(indexName, id string, document interface{}) error {
	idx, err := s.getOrCreateIndex(indexName)
	if err != nil {
		return err
	}
	if err := idx.Index(id, document); err != nil {
		s.logger.Error("Failed to index document",
			zap.String("index", indexName),
			zap.String("id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *IndexingService) BulkIndexDocuments(indexName string, documents map[string]interface{}) error {
	idx, err := s.getOrCreateIndex(indexName)
	if err != nil {
		return err
	}

	batch := idx.NewBatch()
	for id, doc := range documents {
		if err := batch.Index(id, doc); err != nil {
			return fmt.Errorf("failed to add document %s to batch: %w", id, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		s.logger.Error("Failed to run index batch", zap.String("index", indexName), zap.Error(err))
		return err
	}
	return nil
}

func (s *IndexingService) DeleteDocument(indexName, id string) error {
	idx, err := s.getOrCreateIndex(indexName)
	if err != nil {
		return err
	}
	return idx.Delete(id)
}

// SearchIndex performs a search and requests stored fields to be included
func (s *IndexingService) SearchIndex(indexName string, q query.Query, size int) (*bleve.SearchResult, error) {
	idx, err := s.getOrCreateIndex(indexName)
	if err != nil {
		s.logger.Error("Could not get or create index", zap.Error(err))
		return nil, err
	}

	searchRequest := bleve.NewSearchRequestOptions(q, size, 0, false)
	searchRequest.Fields = []string{"*"}

	return idx.Search(searchRequest)
}

func (s *IndexingService) DeleteAllIndices() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, idx := range s.indexes {
		if err := idx.Close(); err != nil {
			s.logger.Warn("Failed to close index", zap.String("index", name), zap.Error(err))
		}
		delete(s.indexes, name)
	}

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() && strings.HasSuffix(entry.Name(), ".bleve") {
			if err := os.RemoveAll(fmt.Sprintf("%s/%s", s.basePath, entry.Name())); err != nil {
				return fmt.Errorf("failed to remove index %s: %w", entry.Name(), err)
			}
		}
	}
	return nil
}
