package repositories

import (
	"signops-backend/config"
	"signops-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

// storeSearchDoc is the flattened shape indexed for a store.
type storeSearchDoc struct {
	StoreCode  string `json:"store_code"`
	DealerCode string `json:"dealer_code"`
	StoreName  string `json:"store_name"`
	ClientCode string `json:"client_code"`
	Zone       string `json:"zone"`
	State      string `json:"state"`
	City       string `json:"city"`
	Area       string `json:"area"`
	Pincode    string `json:"pincode"`
	PONumber   string `json:"po_number"`
	Status     string `json:"status"`
}

func storeToDoc(store models.Store) storeSearchDoc {
	return storeSearchDoc{
		StoreCode:  store.StoreCode,
		DealerCode: store.DealerCode,
		StoreName:  store.StoreName,
		ClientCode: store.ClientCode,
		Zone:       store.Zone,
		State:      store.State,
		City:       store.City,
		Area:       store.Area,
		Pincode:    store.Pincode,
		PONumber:   store.PONumber,
		Status:     string(store.CurrentStatus),
	}
}

func (r *BleveRepository) IndexSingleStore(store models.Store) error {
	return r.indexer.IndexDocument(storeIndex, store.ID.String(), storeToDoc(store))
}

func (r *BleveRepository) IndexExistingStores(stores []models.Store) error {
	docs := make(map[string]interface{}, len(stores))
	for _, store := range stores {
		docs[store.ID.String()] = storeToDoc(store)
	}
	return r.indexer.BulkIndexDocuments(storeIndex, docs)
}

func (r *BleveRepository) UpdateStore(store models.Store) error {
	return r.indexer.IndexDocument(storeIndex, store.ID.String(), storeToDoc(store))
}

// SearchStores combines exact, prefix and fuzzy matching across the indexed
// store fields, boosted in that order.
func (r *BleveRepository) SearchStores(queryString string) (*bleve.SearchResult, error) {
	booleanQuery := bleve.NewBooleanQuery()

	fieldsToSearch := []string{"store_code", "dealer_code", "store_name", "client_code", "zone", "state", "city", "area", "pincode", "po_number"}

	for _, field := range fieldsToSearch {
		fieldMatchQuery := bleve.NewMatchQuery(queryString)
		fieldMatchQuery.SetField(field)
		fieldMatchQuery.SetBoost(3.0)
		booleanQuery.AddShould(fieldMatchQuery)

		fieldPrefixQuery := bleve.NewPrefixQuery(queryString)
		fieldPrefixQuery.SetField(field)
		fieldPrefixQuery.SetBoost(2.0)
		booleanQuery.AddShould(fieldPrefixQuery)

		fieldFuzzyQuery := bleve.NewFuzzyQuery(queryString)
		fieldFuzzyQuery.SetField(field)
		fieldFuzzyQuery.SetFuzziness(1)
		fieldFuzzyQuery.SetBoost(1.0)
		booleanQuery.AddShould(fieldFuzzyQuery)
	}

	result, err := r.indexer.SearchIndex(storeIndex, booleanQuery, 50)
	if err != nil {
		config.Logger.Error("Store search failed", zap.String("query", queryString), zap.Error(err))
		return nil, err
	}
	return result, nil
}
