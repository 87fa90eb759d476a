package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"signops-backend/db/models"

	"github.com/shopspring/decimal"
)

// RFQLine is one priced element row in the quotation.
type RFQLine struct {
	ElementName string
	Quantity    int
	Area        string
	Rate        string
	RateSource  string
	Amount      string
}

// RFQData feeds the quotation template.
type RFQData struct {
	QuoteNumber string
	GeneratedOn string
	StoreCode   string
	StoreName   string
	Address     string
	City        string
	State       string
	ClientName  string
	ClientCode  string
	GSTNumber   string
	Lines       []RFQLine
	Subtotal    string
	GSTAmount   string
	Total       string
	Notes       string
}

var gstRate = decimal.NewFromFloat(0.18)

// BuildRFQData prices every element line measured during the recce. Client
// override rates win over the catalog standard rate.
func BuildRFQData(store *models.Store, client *models.Client, elements []models.Element) RFQData {
	catalog := make(map[string]models.Element, len(elements))
	for _, el := range elements {
		catalog[el.ID.String()] = el
	}

	data := RFQData{
		QuoteNumber: fmt.Sprintf("RFQ-%s-%s", store.StoreCode, time.Now().Format("20060102")),
		GeneratedOn: time.Now().Format("02 Jan 2006"),
		StoreCode:   store.StoreCode,
		StoreName:   store.StoreName,
		Address:     store.Address,
		City:        store.City,
		State:       store.State,
		ClientCode:  store.ClientCode,
		Notes:       store.Recce.Data().Notes,
	}
	if client != nil {
		data.ClientName = client.ClientName
		data.GSTNumber = client.GSTNumber
	}

	subtotal := decimal.Zero
	for _, photo := range store.Recce.Data().Photos {
		area := photo.Width.Mul(photo.Height)
		for _, line := range photo.Elements {
			rate := decimal.Zero
			rateSource := "standard"
			if el, ok := catalog[line.ElementID.String()]; ok {
				rate = el.StandardRate
			}
			if client != nil {
				if override, ok := client.RateFor(line.ElementID); ok {
					rate = override
					rateSource = "client"
				}
			}

			amount := rate.Mul(area).Mul(decimal.NewFromInt(int64(line.Quantity)))
			subtotal = subtotal.Add(amount)

			data.Lines = append(data.Lines, RFQLine{
				ElementName: line.ElementName,
				Quantity:    line.Quantity,
				Area:        area.StringFixed(2) + " " + string(photo.Unit),
				Rate:        rate.StringFixed(2),
				RateSource:  rateSource,
				Amount:      amount.StringFixed(2),
			})
		}
	}

	gst := subtotal.Mul(gstRate)
	data.Subtotal = subtotal.StringFixed(2)
	data.GSTAmount = gst.StringFixed(2)
	data.Total = subtotal.Add(gst).StringFixed(2)
	return data
}

// GenerateRFQPDF renders and saves the quotation, returning its served path.
func GenerateRFQPDF(store *models.Store, client *models.Client, elements []models.Element) (string, error) {
	data := BuildRFQData(store, client, elements)

	tmpl, err := template.New("rfq.html").ParseFiles("templates/rfq.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse rfq template: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute rfq template: %v", err)
	}

	pdf, err := RenderHTMLToPDF(buf.String(), false)
	if err != nil {
		return "", fmt.Errorf("failed to render rfq pdf: %v", err)
	}

	filename := fmt.Sprintf("rfq_%s_%d.pdf", store.StoreCode, time.Now().Unix())
	return SavePDF(pdf, filename)
}
