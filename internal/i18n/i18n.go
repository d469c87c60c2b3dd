package i18n

import "strings"

// Default language. The product ships for the Brazilian market; English is
// kept for the API-facing messages.
const defaultLang = "pt"

var translations = map[string]map[string]string{
	"pt": {
		"required":             "Preencha os campos obrigatórios",
		"invalid_credentials":  "Credenciais inválidas",
		"email_taken":          "E-mail já cadastrado",
		"duplicate_item":       "Item já adicionado",
		"no_client_selected":   "Selecione um cliente",
		"no_items":             "Adicione pelo menos um item",
		"not_entitled":         "Recurso disponível no plano PRO",
		"invalid_percent":      "Digite um percentual válido",
		"invalid_tax_id":       "CNPJ inválido",
		"tax_id_not_found":     "CNPJ não encontrado",
		"registry_unavailable": "Erro ao buscar CNPJ",
		"client_not_found":     "Cliente não encontrado",
		"not_found":            "Registro não encontrado",
		"not_configured":       "Banco de dados não configurado",
		"internal_error":       "Ocorreu um erro. Tente novamente.",
	},
	"en": {
		"required":             "Fill in the required fields",
		"invalid_credentials":  "Invalid credentials",
		"email_taken":          "Email already registered",
		"duplicate_item":       "Item already added",
		"no_client_selected":   "Select a client",
		"no_items":             "Add at least one item",
		"not_entitled":         "Feature available on the PRO plan",
		"invalid_percent":      "Enter a valid percentage",
		"invalid_tax_id":       "Invalid tax id",
		"tax_id_not_found":     "Tax id not found",
		"registry_unavailable": "Tax id lookup failed",
		"client_not_found":     "Client not found",
		"not_found":            "Record not found",
		"not_configured":       "Database not configured",
		"internal_error":       "Something went wrong. Try again.",
	},
}

// T translates a message code. Unknown languages fall back to Portuguese;
// unknown codes fall back to the code itself so missing entries stay visible.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := translations[defaultLang][code]; ok {
		return s
	}
	return code
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if i := strings.IndexAny(tag, "-;"); i > 0 {
			tag = tag[:i]
		}
		if _, ok := translations[tag]; ok {
			return tag
		}
	}
	return defaultLang
}
