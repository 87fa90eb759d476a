package services

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const documentsDir = "./public/documents"

// RenderHTMLToPDF renders an HTML document through headless Chrome. The
// content is served from an ephemeral local HTTP server so relative image
// URLs resolve.
func RenderHTMLToPDF(htmlContent string, landscape bool) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(htmlContent))
	})

	server := &http.Server{Handler: mux}
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	go server.Serve(listener)
	defer server.Close()

	port := listener.Addr().(*net.TCPAddr).Port
	url := fmt.Sprintf("http://localhost:%d", port)

	paperWidth, paperHeight := 8.27, 11.69 // A4 portrait
	if landscape {
		paperWidth, paperHeight = 11.69, 8.27
	}

	var buf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				WithLandscape(landscape).
				WithPreferCSSPageSize(false).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// SavePDF writes a rendered PDF under the public documents directory and
// returns its served path.
func SavePDF(pdf []byte, filename string) (string, error) {
	if err := os.MkdirAll(documentsDir, 0755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(documentsDir, filename)
	if err := os.WriteFile(fullPath, pdf, 0644); err != nil {
		return "", err
	}
	return "public/documents/" + filename, nil
}
