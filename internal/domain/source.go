package domain

// Source identifica uma fonte de dados da coleta.
type Source string

const (
	SourceMeta       Source = "meta"
	SourceCafe24     Source = "cafe24"
	SourceCoupang    Source = "coupang"
	SourceSmartstore Source = "smartstore"
)

// AllSources lista as fontes na ordem em que aparecem nas colunas do slot.
var AllSources = []Source{SourceMeta, SourceCafe24, SourceCoupang, SourceSmartstore}

// PaidMedia indica se a fonte representa investimento em mídia e não vendas.
func (s Source) PaidMedia() bool {
	return s == SourceMeta
}
