package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"signops-backend/db/models"
)

// DeckSlide is one landscape page of the presentation deck: one store with
// its before/after photos and key facts.
type DeckSlide struct {
	StoreCode   string
	StoreName   string
	ClientName  string
	City        string
	State       string
	Zone        string
	Status      string
	BoardType   string
	BoardSize   string
	CompletedOn string
	Photos      []CertificatePhoto
}

// DeckData feeds the bulk presentation template.
type DeckData struct {
	Title       string
	GeneratedOn string
	Slides      []DeckSlide
}

// BuildDeckData flattens a set of stores into presentation slides.
func BuildDeckData(stores []models.Store) DeckData {
	data := DeckData{
		Title:       "Installation Summary",
		GeneratedOn: time.Now().Format("02 Jan 2006"),
	}

	for i := range stores {
		store := &stores[i]
		cert := BuildCertificateData(store)

		slide := DeckSlide{
			StoreCode:   store.StoreCode,
			StoreName:   store.StoreName,
			ClientName:  cert.ClientName,
			City:        store.City,
			State:       store.State,
			Zone:        store.Zone,
			Status:      string(store.CurrentStatus),
			BoardType:   store.BoardType,
			CompletedOn: cert.CompletedOn,
			Photos:      cert.Photos,
		}
		if store.BoardSize != nil {
			slide.BoardSize = store.BoardSize.StringFixed(2) + " sq.ft"
		}
		data.Slides = append(data.Slides, slide)
	}
	return data
}

// GenerateStoreDeck renders a landscape slide deck for the given stores and
// returns the served path of the PDF.
func GenerateStoreDeck(stores []models.Store, filename string) (string, error) {
	data := BuildDeckData(stores)

	tmpl, err := template.New("deck.html").ParseFiles("templates/deck.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse deck template: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute deck template: %v", err)
	}

	pdf, err := RenderHTMLToPDF(buf.String(), true)
	if err != nil {
		return "", fmt.Errorf("failed to render deck pdf: %v", err)
	}
	return SavePDF(pdf, filename)
}

// GenerateBulkCertificates renders one portrait document holding the
// completion certificate of every store, page-broken per store.
func GenerateBulkCertificates(stores []models.Store, filename string) (string, error) {
	type bulkData struct {
		GeneratedOn  string
		Certificates []CertificateData
	}
	data := bulkData{GeneratedOn: time.Now().Format("02 Jan 2006")}
	for i := range stores {
		data.Certificates = append(data.Certificates, BuildCertificateData(&stores[i]))
	}

	tmpl, err := template.New("bulk_certificates.html").ParseFiles("templates/bulk_certificates.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse bulk certificates template: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute bulk certificates template: %v", err)
	}

	pdf, err := RenderHTMLToPDF(buf.String(), false)
	if err != nil {
		return "", fmt.Errorf("failed to render bulk certificates pdf: %v", err)
	}
	return SavePDF(pdf, filename)
}
