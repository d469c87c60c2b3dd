package validation

import "testing"

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("nome", "  ", v)
	Required("telefone", "11 98765-4321", v)
	if v["nome"] != "required" {
		t.Fatalf("blank field not flagged: %v", v)
	}
	if _, ok := v["telefone"]; ok {
		t.Fatal("filled field flagged")
	}
}

func TestPositiveFloat(t *testing.T) {
	v := Violations{}
	PositiveFloat("preco", 0, v)
	if v["preco"] != "must_be_positive" {
		t.Fatalf("zero not flagged: %v", v)
	}
	v = Violations{}
	PositiveFloat("preco", 0.01, v)
	if !v.Empty() {
		t.Fatalf("positive value flagged: %v", v)
	}
}

func TestOneOf(t *testing.T) {
	v := Violations{}
	OneOf("categoria", "Serviço", []string{"Produto", "Serviço"}, v)
	if !v.Empty() {
		t.Fatalf("allowed value flagged: %v", v)
	}
	OneOf("categoria", "Outro", []string{"Produto", "Serviço"}, v)
	if v["categoria"] != "invalid_value" {
		t.Fatalf("disallowed value not flagged: %v", v)
	}
}

func TestParsePercent(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10", 10, true},
		{" -5.5 ", -5.5, true},
		{"0", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"10%", 0, false},
	}
	for _, c := range cases {
		got, ok := ParsePercent(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParsePercent(%q) = %v, %v", c.in, got, ok)
		}
	}
}
