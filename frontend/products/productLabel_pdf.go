package products

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"warehouse/models"
)

// labelBarcodeValue is the SKU, or P<id> for products without one.
func labelBarcodeValue(p models.Product) string {
	if sku := strings.TrimSpace(p.SKUOrEmpty()); sku != "" {
		return sku
	}
	return fmt.Sprintf("P%08d", p.ID)
}

// renderProductLabelPDF builds a one-page shelf label for p and returns the
// PDF bytes with the encoded barcode value.
func renderProductLabelPDF(p models.Product, printedAt time.Time) ([]byte, string, error) {
	value := labelBarcodeValue(p)
	barcodePNG, err := renderCode128PNG(value, 1000, 240)
	if err != nil {
		return nil, "", fmt.Errorf("encode barcode %q: %w", value, err)
	}

	pdf := gofpdf.New("L", "mm", "A5", "")
	pdf.SetTitle("Product Label", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	margin := 6.0
	innerW := pageW - 2*margin
	pdf.SetLineWidth(0.3)
	pdf.Rect(margin, margin, innerW, pageH-2*margin, "")

	name := orDash(strings.TrimSpace(p.NameOrEmpty()))
	pdf.SetXY(margin+3, margin+3)
	pdf.SetFont("Helvetica", "B", fitFontSize(pdf, 22, 11, name, innerW-6))
	pdf.CellFormat(innerW-6, 11, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetX(margin + 3)
	pdf.CellFormat(innerW/2-3, 7, "Location: "+orDash(p.LocationOrEmpty()), "", 0, "L", false, 0, "")
	pdf.CellFormat(innerW/2-3, 7, "Qty: "+formatQuantity(p), "", 1, "R", false, 0, "")
	pdf.SetX(margin + 3)
	pdf.CellFormat(innerW/2-3, 7, "Price: "+formatPrice(p), "", 0, "L", false, 0, "")
	pdf.CellFormat(innerW/2-3, 7, "Printed: "+printedAt.Format("02/01/2006"), "", 1, "R", false, 0, "")

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	imageName := fmt.Sprintf("product-barcode-%d", p.ID)
	pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))
	imgW := innerW - 16
	imgH := 40.0
	y := pdf.GetY() + 4
	pdf.ImageOptions(imageName, margin+8, y, imgW, imgH, false, opt, 0, "")

	pdf.SetY(y + imgH + 2)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, value, "", 1, "C", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, "", err
	}
	return out.Bytes(), value, nil
}

func fitFontSize(pdf *gofpdf.Fpdf, base, min float64, text string, maxWidth float64) float64 {
	size := base
	pdf.SetFont("Helvetica", "B", size)
	for size > min && pdf.GetStringWidth(text) > maxWidth {
		size -= 0.5
		pdf.SetFont("Helvetica", "B", size)
	}
	return size
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	bounds := scaled.Bounds()
	rgba := image.NewNRGBA(bounds)
	draw.Draw(rgba, bounds, scaled, bounds.Min, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
