package coupang

import "strings"

// Rótulos da taxonomia de marcas do catálogo Coupang. "빠디" existe no
// catálogo mas não é uma marca reportada nas planilhas.
const (
	taxonomyBurdenzero = "부담제로"
	taxonomyPpadi      = "빠디"
	taxonomyJelly      = "기질 젤리"
)

// brandKeywords classifica produtos por palavra-chave no nome. A ordem
// importa: vale a primeira marca cuja lista casar.
var brandKeywords = []struct {
	Name     string
	Keywords []string
}{
	{taxonomyBurdenzero, []string{"부담", "부담제로"}},
	{taxonomyPpadi, []string{"빠디"}},
	{taxonomyJelly, []string{"기질", "젤리", "뉴턴", "뉴턴젤리"}},
}

// ClassifyProduct devolve o rótulo de taxonomia do produto, ou vazio
// quando nenhuma palavra-chave casa.
func ClassifyProduct(productName string) string {
	name := strings.TrimSpace(productName)
	if name == "" {
		return ""
	}

	for _, brand := range brandKeywords {
		for _, keyword := range brand.Keywords {
			if strings.Contains(name, keyword) {
				return brand.Name
			}
		}
	}

	return ""
}
