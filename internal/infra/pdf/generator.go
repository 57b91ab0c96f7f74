// Package pdf renders warranty certificates and batch serial sheets.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"warranty/internal/domain/service"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const (
	serialsPerPage = 40
	dateLayout     = "02 Jan 2006"
)

type generator struct {
	compress bool
}

// NewGenerator returns an A4 PDF renderer.
func NewGenerator() service.CertificateGenerator {
	return &generator{compress: true}
}

func (g *generator) newDocument(title string) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(g.compress)
	doc.SetTitle(title, true)
	doc.SetCreator("warranty", true)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)

	return doc
}

func (g *generator) GenerateWarrantyCertificate(ctx context.Context, data *service.WarrantyCertificateData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	if data == nil || data.Warranty == nil || data.Item == nil {
		return nil, errors.New("warranty and product item are required")
	}

	doc := g.newDocument("Warranty Certificate " + data.Item.SerialNumber)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 22)
	doc.CellFormat(0, 12, "WARRANTY CERTIFICATE", "", 1, "C", false, 0, "")
	doc.Ln(4)
	rule(doc)

	if data.Store != nil {
		section(doc, "Store")
		field(doc, tr, "Name", data.Store.StoreName)
		field(doc, tr, "Address", data.Store.Address)
		field(doc, tr, "Phone", data.Store.ContactPhone)
	}

	if data.Customer != nil {
		section(doc, "Customer")
		field(doc, tr, "Name", data.Customer.CustomerName)
		field(doc, tr, "Phone", data.Customer.Phone)
		field(doc, tr, "Email", data.Customer.Email)
		field(doc, tr, "Address", data.Customer.Address)
	}

	section(doc, "Product")
	if data.Template != nil {
		field(doc, tr, "Brand", data.Template.Brand)
		field(doc, tr, "Model", data.Template.ProductModel)
		field(doc, tr, "Category", data.Template.Category)
	}
	field(doc, tr, "Serial Number", data.Item.SerialNumber)
	if data.Batch != nil {
		field(doc, tr, "Manufactured", data.Batch.ManufacturingDate.Format(dateLayout))
	}

	section(doc, "Warranty Period")
	field(doc, tr, "Start", data.Warranty.WarrantyStart.Format(dateLayout))
	field(doc, tr, "End", data.Warranty.WarrantyEnd.Format(dateLayout))
	field(doc, tr, "Status", string(data.Warranty.Status))

	if len(data.QRCodePNG) > 0 {
		doc.Ln(6)
		doc.RegisterImageOptionsReader("qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(data.QRCodePNG))
		pageWidth, _ := doc.GetPageSize()
		const size = 45.0
		doc.ImageOptions("qr", (pageWidth-size)/2, doc.GetY(), size, size, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(0, 6, "Scan to verify warranty", "", 1, "C", false, 0, "")
	}

	doc.Ln(8)
	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(110, 110, 110)
	doc.CellFormat(0, 6, "This warranty is valid subject to terms and conditions.", "", 1, "C", false, 0, "")

	return output(doc)
}

func (g *generator) GenerateSerialSheet(ctx context.Context, data *service.SerialSheetData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	if data == nil || data.Batch == nil {
		return nil, errors.New("batch is required")
	}

	doc := g.newDocument("Batch Serial Numbers")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	generatedAt := data.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	header := func(page int) {
		doc.AddPage()
		doc.SetFont("Helvetica", "B", 16)
		doc.CellFormat(0, 10, "PRODUCT BATCH SERIAL NUMBERS", "", 1, "C", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		if data.Store != nil {
			doc.CellFormat(0, 6, tr(data.Store.StoreName), "", 1, "C", false, 0, "")
		}
		if data.Template != nil {
			field(doc, tr, "Product", fmt.Sprintf("%s %s (%s)", data.Template.Brand, data.Template.ProductModel, data.Template.Category))
		}
		field(doc, tr, "Batch", data.Batch.ID.String())
		field(doc, tr, "Manufactured", data.Batch.ManufacturingDate.Format(dateLayout))
		field(doc, tr, "Warranty", fmt.Sprintf("%d months", data.Batch.WarrantyPeriodMonths))
		field(doc, tr, "Quantity", fmt.Sprintf("%d", len(data.Items)))
		field(doc, tr, "Generated", generatedAt.Format(time.RFC1123))
		field(doc, tr, "Page", fmt.Sprintf("%d", page))
		rule(doc)
		doc.SetFont("Courier", "", 10)
	}

	if len(data.Items) == 0 {
		header(1)
		doc.CellFormat(0, 6, "No product items in this batch.", "", 1, "L", false, 0, "")

		return output(doc)
	}

	for i, item := range data.Items {
		if i%serialsPerPage == 0 {
			header(i/serialsPerPage + 1)
		}
		doc.CellFormat(0, 4.5, fmt.Sprintf("%5d.  %s", i+1, item.SerialNumber), "", 1, "L", false, 0, "")
	}

	return output(doc)
}

func section(doc *fpdf.Fpdf, title string) {
	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
}

func field(doc *fpdf.Fpdf, tr func(string) string, label, value string) {
	if value == "" {
		return
	}
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(38, 6, label+":", "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 6, tr(value), "", "L", false)
}

func rule(doc *fpdf.Fpdf) {
	pageWidth, _ := doc.GetPageSize()
	left, _, right, _ := doc.GetMargins()
	y := doc.GetY() + 2
	doc.SetDrawColor(180, 180, 180)
	doc.Line(left, y, pageWidth-right, y)
	doc.SetY(y + 2)
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to render pdf")
	}

	return buf.Bytes(), nil
}
