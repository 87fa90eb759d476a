package repositories

import (
	"signops-backend/config"
	"signops-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

type enquirySearchDoc struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (r *BleveRepository) IndexSingleEnquiry(enquiry models.Enquiry) error {
	doc := enquirySearchDoc{
		Name:    enquiry.Name,
		Email:   enquiry.Email,
		Phone:   enquiry.Phone,
		Message: enquiry.Message,
		Status:  string(enquiry.Status),
	}
	return r.indexer.IndexDocument(enquiryIndex, enquiry.ID.String(), doc)
}

func (r *BleveRepository) SearchEnquiries(queryString string) (*bleve.SearchResult, error) {
	booleanQuery := bleve.NewBooleanQuery()

	fieldsToSearch := []string{"name", "email", "phone", "message"}

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

	result, err := r.indexer.SearchIndex(enquiryIndex, booleanQuery, 50)
	if err != nil {
		config.Logger.Error("Enquiry search failed", zap.String("query", queryString), zap.Error(err))
		return nil, err
	}
	return result, nil
}
