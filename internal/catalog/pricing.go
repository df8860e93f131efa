package catalog

// PriceItem is one row of the public price list. Unit is empty for flat prices
// and e.g. "buc" or "mp" for per-unit pricing.
type PriceItem struct {
	Name  string     `json:"name"`
	Price PriceRange `json:"price"`
	Unit  string     `json:"unit,omitempty"`
}

// PriceSection groups price rows under a heading.
type PriceSection struct {
	Title string      `json:"title"`
	Items []PriceItem `json:"items"`
}

// Combo is a bundled package sold below the sum of its parts.
type Combo struct {
	Name     string     `json:"name"`
	Includes string     `json:"includes"`
	Price    PriceRange `json:"price"`
	AddOns   []AddOn    `json:"add_ons,omitempty"`
}

// AddOn is an optional extra quoted on top of a combo.
type AddOn struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// ComboSavings is the advertised saving band for combos versus individual prices.
var ComboSavings = PriceRange{Low: 50, High: 100}

// PriceList returns the price sections shown on the pricing page.
func PriceList() []PriceSection {
	return []PriceSection{
		{
			Title: "Textile & Tapițerii",
			Items: []PriceItem{
				{Name: "Canapea 2 locuri", Price: PriceRange{140, 170}},
				{Name: "Canapea 3 locuri", Price: PriceRange{200, 250}},
				{Name: "Colțar (4-6 locuri)", Price: PriceRange{300, 450}},
				{Name: "Saltea single", Price: PriceRange{130, 170}},
				{Name: "Saltea matrimonială", Price: PriceRange{170, 230}},
				{Name: "Fotoliu", Price: PriceRange{50, 80}},
				{Name: "Scaun tapițat", Price: PriceRange{25, 30}, Unit: "buc"},
				{Name: "Interior auto complet", Price: PriceRange{350, 500}},
			},
		},
		{
			Title: "Servicii cu Abur",
			Items: []PriceItem{
				{Name: "Calorifere", Price: PriceRange{25, 40}, Unit: "buc"},
				{Name: "Baie (igienizare)", Price: PriceRange{150, 250}},
				{Name: "Bucătărie (igienizare)", Price: PriceRange{200, 300}},
				{Name: "Gresie/faianță", Price: PriceRange{12, 18}, Unit: "mp"},
			},
		},
		{
			Title: "Servicii Suplimentare",
			Items: []PriceItem{
				{Name: "Tratament anti-miros", Price: PriceRange{50, 80}},
				{Name: "Protecție hidrofobă", Price: PriceRange{120, 200}},
				{Name: "Ozonare auto", Price: PriceRange{100, 150}},
				{Name: "Ozonare cameră", Price: PriceRange{150, 250}},
				{Name: "Lampă UV anti-acarieni", Price: PriceRange{40, 70}},
			},
		},
	}
}

// Combos returns the combo packages.
func Combos() []Combo {
	return []Combo{
		{
			Name:     "Living Curat",
			Includes: "Canapea 3L + 2 fotolii + 4 scaune + covor mic + calorifer",
			Price:    PriceRange{370, 470},
		},
		{
			Name:     "Dormitor Fresh",
			Includes: "Saltea matrimon. + 2 perne + covor + abur zonă pat",
			Price:    PriceRange{270, 350},
		},
		{
			Name:     "Mașină ca Nouă",
			Includes: "Interior auto complet + plafon + plastice șterse",
			Price:    PriceRange{370, 500},
			AddOns: []AddOn{
				{Name: "ozonare", Price: 120},
				{Name: "protecție", Price: 150},
			},
		},
	}
}

// Zones lists the service areas suggested on the confirmation step. The
// location field itself accepts any text.
func Zones() []string {
	return []string{
		"Târgoviște Centru",
		"Micro 3",
		"Micro 11",
		"Valea Voievozilor",
		"Altă zonă",
	}
}
