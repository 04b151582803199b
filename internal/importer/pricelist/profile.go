package pricelist

// Profile names the header of each column a price list layout uses.
// Description is optional in every layout.
type Profile struct {
	Name        string
	SKU         string
	PartName    string
	Description string
	Cost        string
	Sale        string
}

func (p Profile) requiredCols() []string {
	return []string{p.SKU, p.PartName, p.Cost, p.Sale}
}

// profiles are tried in order against each row until one matches as header.
// Headers are compared case-insensitively.
var profiles = []Profile{
	{
		Name:        "default",
		SKU:         "sku",
		PartName:    "name",
		Description: "description",
		Cost:        "cost",
		Sale:        "sale",
	},
	{
		Name:        "distribuidor",
		SKU:         "código",
		PartName:    "produto",
		Description: "descrição",
		Cost:        "custo",
		Sale:        "preço venda",
	},
	{
		Name:        "sku-nome",
		SKU:         "sku",
		PartName:    "nome",
		Description: "descrição",
		Cost:        "custo",
		Sale:        "venda",
	},
}
