package repositories

import (
	"signops-backend/config"
	"signops-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

type clientSearchDoc struct {
	ClientCode string `json:"client_code"`
	ClientName string `json:"client_name"`
	BranchName string `json:"branch_name"`
	GSTNumber  string `json:"gst_number"`
}

func clientToDoc(client models.Client) clientSearchDoc {
	return clientSearchDoc{
		ClientCode: client.ClientCode,
		ClientName: client.ClientName,
		BranchName: client.BranchName,
		GSTNumber:  client.GSTNumber,
	}
}

func (r *BleveRepository) IndexSingleClient(client models.Client) error {
	return r.indexer.IndexDocument(clientIndex, client.ID.String(), clientToDoc(client))
}

func (r *BleveRepository) UpdateClient(client models.Client) error {
	return r.indexer.IndexDocument(clientIndex, client.ID.String(), clientToDoc(client))
}

func (r *BleveRepository) SearchClients(queryString string) (*bleve.SearchResult, error) {
	booleanQuery := bleve.NewBooleanQuery()

	fieldsToSearch := []string{"client_code", "client_name", "branch_name", "gst_number"}

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

	result, err := r.indexer.SearchIndex(clientIndex, booleanQuery, 50)
	if err != nil {
		config.Logger.Error("Client search failed", zap.String("query", queryString), zap.Error(err))
		return nil, err
	}
	return result, nil
}
