package coupang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyProduct(t *testing.T) {
	testCases := []struct {
		name     string
		product  string
		expected string
	}{
		{name: "Produto 부담제로", product: "부담제로 곤약젤리 30포", expected: "부담제로"},
		{name: "Palavra parcial 부담", product: "저당 부담 없는 간식", expected: "부담제로"},
		{name: "Produto 빠디", product: "빠디 스틱 10개입", expected: "빠디"},
		{name: "Produto 뉴턴젤리", product: "뉴턴젤리 키즈 포도맛", expected: "기질 젤리"},
		{name: "Palavra 기질", product: "기질 개선 젤리", expected: "기질 젤리"},
		{name: "Produto sem marca", product: "정체불명 상품", expected: ""},
		{name: "Nome vazio", product: "", expected: ""},
		{name: "Apenas espaços", product: "   ", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyProduct(tc.product))
		})
	}
}

func TestClassifyProductFirstMatchWins(t *testing.T) {
	// Nome ambíguo com palavras de duas marcas resolve pela ordem da lista
	assert.Equal(t, "부담제로", ClassifyProduct("부담제로 젤리"))
}
