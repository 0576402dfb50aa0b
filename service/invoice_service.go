package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"obraexpress-store/models"
	"obraexpress-store/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// InvoiceService renders payment vouchers as HTML and prints them to
// PDF with headless Chrome.
type InvoiceService struct {
	baseURL string // Base URL the render endpoint is reachable at
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(baseURL string) *InvoiceService {
	return &InvoiceService{baseURL: baseURL}
}

// Ensure InvoiceService implements InvoiceServiceInterface
var _ InvoiceServiceInterface = (*InvoiceService)(nil)

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// companyInfo is the header block of every voucher.
var companyInfo = struct {
	Name    string
	Address string
	Phone   string
	Email   string
	RUT     string
}{
	Name:    "ObraExpress",
	Address: "Av. Providencia 1234, Santiago",
	Phone:   "+56 2 2345 6789",
	Email:   "ventas@obraexpress.cl",
	RUT:     "76.543.210-K",
}

// BuildInvoiceData derives the voucher payload from a paid order.
func BuildInvoiceData(order *models.Order) models.InvoiceData {
	return models.InvoiceData{
		OrderNumber: order.OrderNumber,
		Date:        order.CreatedAt.Format("2006-01-02"),
		Customer:    order.Customer,
		Items:       order.Lines,
		Subtotal:    order.Subtotal,
		IVA:         order.IVA,
		Total:       order.Total,
		Payment: models.PaymentResult{
			Approved:          order.Status == models.OrderStatusPaid,
			AuthorizationCode: order.AuthorizationCode,
			Method:            order.PaymentMethod,
			ProcessedAt:       paidAtLabel(order),
		},
	}
}

func paidAtLabel(order *models.Order) string {
	if order.PaidAt == nil {
		return ""
	}
	return order.PaidAt.Format("02-01-2006 15:04")
}

// RenderInvoiceHTML renders the invoice template for an order. The
// result is both what chromedp prints and what /render/invoice serves.
func (s *InvoiceService) RenderInvoiceHTML(data models.InvoiceData) (string, error) {
	templatePath := filepath.Join("templates", "invoice.html")
	tmpl, err := template.New("invoice.html").Funcs(template.FuncMap{
		"clp": utils.FormatCLP,
	}).ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to load invoice template: %w", err)
	}

	templateData := struct {
		Company any
		Invoice models.InvoiceData
	}{
		Company: companyInfo,
		Invoice: data,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to render invoice template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF prints the invoice render page for a payment token to
// PDF using chromedp.
func (s *InvoiceService) GeneratePDF(ctx context.Context, token string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	chromePath := detectChromePath()
	var allocCtx context.Context
	var allocCancel context.CancelFunc

	if chromePath != "" {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(chromePath),
			chromedp.NoSandbox, // Required for running in Docker/containers
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
		defer allocCancel()
	} else {
		// Let chromedp auto-detect (may fail in containers)
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.NoSandbox,
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
		defer allocCancel()
	}

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/render/invoice?token=%s", s.baseURL, token)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
