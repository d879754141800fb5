package domain

// Brand identifica uma marca reportada nas planilhas e nos alertas.
type Brand string

const (
	BrandBurdenzero Brand = "burdenzero"
	BrandBrainology Brand = "brainology"
)

// ReportingBrands define a ordem fixa de processamento das marcas.
var ReportingBrands = []Brand{BrandBurdenzero, BrandBrainology}

var brandDisplayNames = map[Brand]string{
	BrandBurdenzero: "부담제로",
	BrandBrainology: "브레인올로지",
}

// Reporting indica se a marca participa das planilhas e do cálculo de KPI.
func (b Brand) Reporting() bool {
	for _, rb := range ReportingBrands {
		if b == rb {
			return true
		}
	}

	return false
}

// DisplayName retorna o nome comercial da marca usado nos alertas.
func (b Brand) DisplayName() string {
	if name, ok := brandDisplayNames[b]; ok {
		return name
	}

	return string(b)
}
