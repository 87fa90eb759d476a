package repositories

import (
	"signops-backend/config"
	"signops-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

type userSearchDoc struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func userToDoc(user models.User) userSearchDoc {
	doc := userSearchDoc{
		Name:  user.Name,
		Email: user.Email,
	}
	if user.Phone != nil {
		doc.Phone = *user.Phone
	}
	return doc
}

func (r *BleveRepository) IndexSingleUser(user models.User) error {
	return r.indexer.IndexDocument(userIndex, user.ID.String(), userToDoc(user))
}

func (r *BleveRepository) IndexExistingUsers(users []models.User) error {
	docs := make(map[string]interface{}, len(users))
	for _, user := range users {
		docs[user.ID.String()] = userToDoc(user)
	}
	return r.indexer.BulkIndexDocuments(userIndex, docs)
}

func (r *BleveRepository) UpdateUser(user models.User) error {
	return r.indexer.IndexDocument(userIndex, user.ID.String(), userToDoc(user))
}

func (r *BleveRepository) DeleteUser(userID string) error {
	return r.indexer.DeleteDocument(userIndex, userID)
}

func (r *BleveRepository) SearchUsers(queryString string) (*bleve.SearchResult, error) {
	booleanQuery := bleve.NewBooleanQuery()

	fieldsToSearch := []string{"name", "email", "phone"}

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

	result, err := r.indexer.SearchIndex(userIndex, booleanQuery, 50)
	if err != nil {
		config.Logger.Error("User search failed", zap.String("query", queryString), zap.Error(err))
		return nil, err
	}
	return result, nil
}
