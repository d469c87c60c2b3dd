// Package registry looks up public company registration data by CNPJ against
// the ReceitaWS-compatible HTTP API.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/orcapro/orcapro/internal/models"
)

var (
	// ErrInvalidTaxID is returned before any network call when the CNPJ has
	// fewer digits than a full registration number.
	ErrInvalidTaxID = errors.New("invalid tax id")
	// ErrNotFound is returned when the registry marks the id as unknown.
	ErrNotFound = errors.New("tax id not found")
)

const cnpjDigits = 14

// CompanyData is the subset of the registry response the profile form uses.
type CompanyData struct {
	Nome     string
	Telefone string
	Endereco string
	Email    string
}

type apiResponse struct {
	Status     string `json:"status"`
	Nome       string `json:"nome"`
	Telefone   string `json:"telefone"`
	Logradouro string `json:"logradouro"`
	Numero     string `json:"numero"`
	Bairro     string `json:"bairro"`
	Municipio  string `json:"municipio"`
	UF         string `json:"uf"`
	Email      string `json:"email"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup resolves a CNPJ. Formatting characters are stripped before the call;
// anything shorter than a full 14-digit number is rejected locally.
func (c *Client) Lookup(ctx context.Context, cnpj string) (*CompanyData, error) {
	digits := stripNonDigits(cnpj)
	if len(digits) < cnpjDigits {
		return nil, ErrInvalidTaxID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/cnpj/"+digits, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if strings.EqualFold(body.Status, "ERROR") {
		return nil, ErrNotFound
	}
	return &CompanyData{
		Nome:     body.Nome,
		Telefone: body.Telefone,
		Endereco: formatEndereco(body),
		Email:    body.Email,
	}, nil
}

// Apply fills company fields only where the registry returned a non-empty
// value; existing values survive empty responses.
func (d *CompanyData) Apply(c *models.CompanyInfo) {
	if d.Nome != "" {
		c.Nome = d.Nome
	}
	if d.Telefone != "" {
		c.Telefone = d.Telefone
	}
	if d.Endereco != "" {
		c.Endereco = d.Endereco
	}
	if d.Email != "" {
		c.Email = d.Email
	}
}

func formatEndereco(r apiResponse) string {
	if r.Logradouro == "" && r.Municipio == "" {
		return ""
	}
	return fmt.Sprintf("%s, %s - %s, %s/%s", r.Logradouro, r.Numero, r.Bairro, r.Municipio, r.UF)
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
