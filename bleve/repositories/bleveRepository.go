package repositories

import (
	"context"

	bleveindex "signops-backend/bleve/services"
	"signops-backend/db/models"
)

const (
	storeIndex   = "stores"
	userIndex    = "users"
	clientIndex  = "clients"
	enquiryIndex = "enquiries"
)

type BleveRepository struct {
	indexer *bleveindex.IndexingService
}

// BleveRepositoryInterface is what the domain controllers see: typed
// index-maintenance hooks called after every create/update.
type BleveRepositoryInterface interface {
	DeleteAllIndices(ctx context.Context) error

	// ==== Store Indexing ====
	IndexSingleStore(store models.Store) error
	IndexExistingStores(stores []models.Store) error
	UpdateStore(store models.Store) error

	// ==== User Indexing ====
	IndexSingleUser(user models.User) error
	IndexExistingUsers(users []models.User) error
	UpdateUser(user models.User) error
	DeleteUser(userID string) error

	// ==== Client Indexing ====
	IndexSingleClient(client models.Client) error
	UpdateClient(client models.Client) error

	// ==== Enquiry Indexing ====
	IndexSingleEnquiry(enquiry models.Enquiry) error
}

// Constructor returning both the struct and the interface
func NewBleveRepository(indexer *bleveindex.IndexingService) (*BleveRepository, BleveRepositoryInterface) {
	repo := &BleveRepository{indexer: indexer}
	return repo, repo
}

func (r *BleveRepository) DeleteAllIndices(ctx context.Context) error {
	return r.indexer.DeleteAllIndices()
}
