// Package pdf lays out a quote as a paginated A4 document: company header,
// centered title, client/date block, line-item table, total, optional notes
// and signature line, and a watermark for unentitled users.
package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/orcapro/orcapro/internal/models"
)

const (
	marginLeft  = 15.0
	marginRight = 195.0
	pageBreakY  = 270.0
	watermark   = "Criado com OrçaPro"
)

var colWidths = [5]float64{40, 60, 20, 30, 30}

// Render produces the PDF bytes for a quote. The watermark is omitted and the
// signature line included only when entitled.
func Render(q *models.Quote, empresa *models.CompanyInfo, cliente *models.Client, entitled bool) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	drawHeader(doc, tr, empresa)

	// Title
	doc.SetFont("Helvetica", "B", 18)
	centerText(doc, tr("ORÇAMENTO"), 58)

	// Client block (left) and date (right)
	doc.SetFont("Helvetica", "B", 11)
	doc.Text(marginLeft, 70, tr("CLIENTE:"))
	doc.SetFont("Helvetica", "", 10)
	doc.Text(marginLeft, 76, tr(cliente.Nome))
	doc.Text(marginLeft, 82, tr("CNPJ/CPF: "+cliente.CNPJ))
	doc.Text(marginLeft, 88, tr("Telefone: "+cliente.Telefone))
	doc.Text(marginLeft, 94, tr("Endereço: "+cliente.Endereco))

	doc.SetFont("Helvetica", "B", 10)
	doc.Text(150, 70, "DATA:")
	doc.SetFont("Helvetica", "", 10)
	doc.Text(150, 76, q.CreatedAt.Format("02/01/2006"))

	finalY := drawItemTable(doc, tr, q.Itens)

	// Total, right aligned
	if finalY+20 > pageBreakY {
		doc.AddPage()
		finalY = 15
	}
	doc.SetFont("Helvetica", "B", 12)
	doc.Text(130, finalY+15, "VALOR TOTAL:")
	doc.SetFont("Helvetica", "B", 14)
	total := tr(money(q.Total))
	doc.Text(175-doc.GetStringWidth(total), finalY+15, total)

	// Notes
	notesEnd := finalY + 15
	if q.Observacoes != "" {
		doc.SetFont("Helvetica", "B", 10)
		doc.Text(marginLeft, finalY+30, tr("OBSERVAÇÕES:"))
		doc.SetFont("Helvetica", "", 9)
		doc.SetXY(marginLeft, finalY+32)
		doc.MultiCell(180, 4.5, tr(q.Observacoes), "", "L", false)
		notesEnd = doc.GetY()
	}

	// Signature line, premium only
	if entitled && q.Assinatura != "" {
		signY := notesEnd + 15
		doc.Line(marginLeft, signY, 85, signY)
		doc.SetFont("Helvetica", "", 9)
		doc.Text(marginLeft, signY+5, tr(q.Assinatura))
		doc.Text(marginLeft, signY+10, tr("Assinatura do Responsável"))
	}

	if !entitled {
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(150, 150, 150)
		centerText(doc, tr(watermark), 285)
		doc.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawHeader(doc *gofpdf.Fpdf, tr func(string) string, empresa *models.CompanyInfo) {
	if empresa.Logo != "" {
		// A broken logo must not break the document.
		addLogo(doc, empresa.Logo)
	}
	doc.SetFont("Helvetica", "B", 16)
	doc.Text(50, 20, tr(empresa.Nome))
	doc.SetFont("Helvetica", "", 9)
	doc.Text(50, 27, tr("CNPJ: "+empresa.CNPJ))
	doc.Text(50, 32, tr(empresa.Endereco))
	doc.Text(50, 37, tr("Tel: "+empresa.Telefone+" | WhatsApp: "+empresa.Whatsapp))
	doc.Text(50, 42, tr("E-mail: "+empresa.Email))
	doc.SetDrawColor(200, 200, 200)
	doc.Line(marginLeft, 48, marginRight, 48)
	doc.SetDrawColor(0, 0, 0)
}

// addLogo decodes a base64 data URL and places it top-left. Anything that
// fails to decode is silently skipped.
func addLogo(doc *gofpdf.Fpdf, dataURL string) {
	payload := dataURL
	imgType := "PNG"
	if strings.HasPrefix(dataURL, "data:") {
		i := strings.Index(dataURL, ",")
		if i < 0 {
			return
		}
		header := dataURL[:i]
		payload = dataURL[i+1:]
		if strings.Contains(header, "jpeg") || strings.Contains(header, "jpg") {
			imgType = "JPG"
		}
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: imgType}
	doc.RegisterImageOptionsReader("logo", opts, bytes.NewReader(raw))
	if doc.Err() {
		doc.ClearError()
		return
	}
	doc.ImageOptions("logo", marginLeft, 10, 30, 30, false, opts, 0, "")
}

// drawItemTable renders the line items starting at y=105, repeating the
// header row after each page break, and returns the y position after the
// last row.
func drawItemTable(doc *gofpdf.Fpdf, tr func(string) string, itens []models.QuoteLineItem) float64 {
	drawTableHead(doc, tr, 105)
	fill := false
	for _, li := range itens {
		cells := [5]string{
			li.Nome,
			li.Descricao,
			strconv.Itoa(li.Quantidade),
			money(li.Preco),
			money(li.Subtotal),
		}
		rowH := rowHeight(doc, tr, cells)
		if doc.GetY()+rowH > pageBreakY {
			doc.AddPage()
			drawTableHead(doc, tr, 15)
		}
		drawRow(doc, tr, cells, rowH, fill)
		fill = !fill
	}
	return doc.GetY()
}

func drawTableHead(doc *gofpdf.Fpdf, tr func(string) string, y float64) {
	doc.SetXY(marginLeft, y)
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(41, 128, 185)
	doc.SetTextColor(255, 255, 255)
	heads := [5]string{"Item", "Descrição", "Qtd", "Valor Unit.", "Subtotal"}
	aligns := [5]string{"L", "L", "C", "R", "R"}
	for i, h := range heads {
		doc.CellFormat(colWidths[i], 7, tr(h), "", 0, aligns[i], true, 0, "")
	}
	doc.Ln(7)
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 9)
}

func rowHeight(doc *gofpdf.Fpdf, tr func(string) string, cells [5]string) float64 {
	lines := 1
	for i, c := range cells {
		n := len(doc.SplitLines([]byte(tr(c)), colWidths[i]-2))
		if n > lines {
			lines = n
		}
	}
	return float64(lines)*4.5 + 2
}

func drawRow(doc *gofpdf.Fpdf, tr func(string) string, cells [5]string, rowH float64, fill bool) {
	y := doc.GetY()
	if fill {
		doc.SetFillColor(245, 245, 245)
		doc.Rect(marginLeft, y, colWidths[0]+colWidths[1]+colWidths[2]+colWidths[3]+colWidths[4], rowH, "F")
	}
	aligns := [5]string{"L", "L", "C", "R", "R"}
	x := marginLeft
	for i, c := range cells {
		doc.SetXY(x, y+1)
		doc.MultiCell(colWidths[i], 4.5, tr(c), "", aligns[i], false)
		x += colWidths[i]
	}
	doc.SetXY(marginLeft, y+rowH)
}

func centerText(doc *gofpdf.Fpdf, s string, y float64) {
	doc.Text((210-doc.GetStringWidth(s))/2, y, s)
}

func money(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}
