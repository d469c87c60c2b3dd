package pdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/orcapro/orcapro/internal/models"
)

func sampleQuote() *models.Quote {
	return &models.Quote{
		ID:        "q1",
		ClienteID: "c1",
		Itens: []models.QuoteLineItem{
			{ItemID: "a", Nome: "Consulting Hour", Descricao: "Hora técnica", Preco: 150, Quantidade: 3, Subtotal: 450},
			{ItemID: "b", Nome: "Parafuso", Preco: 0.5, Quantidade: 100, Subtotal: 50},
		},
		Total:       500,
		Status:      models.StatusPendente,
		Observacoes: "Pagamento em até 30 dias.",
	}
}

func TestRenderProducesPDF(t *testing.T) {
	empresa := &models.CompanyInfo{Nome: "ACME Serviços", Telefone: "11 1234-5678"}
	cliente := &models.Client{Nome: "João da Silva", Telefone: "11 98765-4321"}

	data, err := Render(sampleQuote(), empresa, cliente, false)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", data[:8])
	}
}

func TestRenderEntitledVsWatermarked(t *testing.T) {
	empresa := &models.CompanyInfo{Nome: "ACME"}
	cliente := &models.Client{Nome: "Maria"}
	q := sampleQuote()
	q.Assinatura = "Fulano de Tal"

	free, err := Render(q, empresa, cliente, false)
	if err != nil {
		t.Fatalf("render free: %v", err)
	}
	pro, err := Render(q, empresa, cliente, true)
	if err != nil {
		t.Fatalf("render pro: %v", err)
	}
	if bytes.Equal(free, pro) {
		t.Fatal("watermark and signature must change the output")
	}
}

func TestRenderSkipsBrokenLogo(t *testing.T) {
	empresa := &models.CompanyInfo{Nome: "ACME", Logo: "data:image/png;base64,not-base64!!"}
	cliente := &models.Client{Nome: "Maria"}

	data, err := Render(sampleQuote(), empresa, cliente, true)
	if err != nil {
		t.Fatalf("broken logo must not fail the render: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}
}

func TestRenderManyItemsPaginates(t *testing.T) {
	q := sampleQuote()
	q.Itens = nil
	for i := 0; i < 80; i++ {
		q.Itens = append(q.Itens, models.QuoteLineItem{
			ItemID: strings.Repeat("x", 3), Nome: "Item de teste", Preco: 10, Quantidade: 1, Subtotal: 10,
		})
	}
	q.Total = 800

	small, err := Render(sampleQuote(), &models.CompanyInfo{Nome: "ACME"}, &models.Client{Nome: "Maria"}, true)
	if err != nil {
		t.Fatalf("render small: %v", err)
	}
	data, err := Render(q, &models.CompanyInfo{Nome: "ACME"}, &models.Client{Nome: "Maria"}, true)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// Each page adds a /Page object; 80 rows must not fit on one page.
	if bytes.Count(data, []byte("/Type /Page")) <= bytes.Count(small, []byte("/Type /Page")) {
		t.Fatal("expected a page break with 80 rows")
	}
}
