package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"signops-backend/db/models"
)

// CertificatePhoto pairs the before and after shots on the certificate.
type CertificatePhoto struct {
	RecceURL        string
	InstallationURL string
}

// CertificateData feeds the completion certificate template.
type CertificateData struct {
	StoreCode    string
	StoreName    string
	ClientName   string
	Address      string
	City         string
	State        string
	Pincode      string
	BoardType    string
	InstalledBy  string
	CompletedOn  string
	GeneratedOn  string
	Photos       []CertificatePhoto
	InvoiceReady bool
}

// BuildCertificateData assembles the completion certificate for a store.
// Installation photos are paired with their recce counterparts by index.
func BuildCertificateData(store *models.Store) CertificateData {
	workflow := store.Workflow.Data()
	recce := store.Recce.Data()
	installation := store.Installation.Data()

	data := CertificateData{
		StoreCode:    store.StoreCode,
		StoreName:    store.StoreName,
		Address:      store.Address,
		City:         store.City,
		State:        store.State,
		Pincode:      store.Pincode,
		BoardType:    store.BoardType,
		GeneratedOn:  time.Now().Format("02 Jan 2006"),
		InvoiceReady: store.InvoiceNumber != "",
	}
	if store.Client != nil {
		data.ClientName = store.Client.ClientName
	}
	if workflow.InstallationAssignedTo != nil {
		data.InstalledBy = workflow.InstallationAssignedTo.Name
	}
	if installation.SubmittedDate != nil {
		data.CompletedOn = installation.SubmittedDate.Format("02 Jan 2006")
	}

	for _, photo := range installation.Photos {
		pair := CertificatePhoto{InstallationURL: photo.FileURL}
		// recce_photo_index addresses the recce photo slice directly
		if idx := photo.ReccePhotoIndex; idx >= 0 && idx < len(recce.Photos) {
			pair.RecceURL = recce.Photos[idx].FileURL
		}
		data.Photos = append(data.Photos, pair)
	}
	return data
}

// GenerateCompletionCertificate renders and saves the certificate PDF.
func GenerateCompletionCertificate(store *models.Store) (string, error) {
	data := BuildCertificateData(store)

	tmpl, err := template.New("certificate.html").ParseFiles("templates/certificate.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse certificate template: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute certificate template: %v", err)
	}

	pdf, err := RenderHTMLToPDF(buf.String(), false)
	if err != nil {
		return "", fmt.Errorf("failed to render certificate pdf: %v", err)
	}

	filename := fmt.Sprintf("certificate_%s_%d.pdf", store.StoreCode, time.Now().Unix())
	return SavePDF(pdf, filename)
}
