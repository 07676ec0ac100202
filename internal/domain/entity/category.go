package entity

// Category clasifica un ítem. El conjunto es compartido entre validación y la capa de UI
// (GET /api/catalog/options); texto libre fuera del conjunto se tolera pero no se agrupa.
type Category string

const (
	CategoryInputs      Category = "Insumos"
	CategorySeeds       Category = "Sementes"
	CategoryFertilizers Category = "Fertilizantes"
	CategoryPesticides  Category = "Defensivos"
	CategoryFeed        Category = "Ração"
	CategoryParts       Category = "Peças"
	CategoryFuel        Category = "Combustível"
	CategoryProduction  Category = "Produção"
	CategoryOther       Category = "Outros"
)

// Categories devuelve las categorías conocidas en orden de presentación.
func Categories() []Category {
	return []Category{
		CategoryInputs, CategorySeeds, CategoryFertilizers, CategoryPesticides, CategoryFeed,
		CategoryParts, CategoryFuel, CategoryProduction, CategoryOther,
	}
}

// Known indica si la categoría pertenece al conjunto enumerado.
func (c Category) Known() bool {
	for _, k := range Categories() {
		if k == c {
			return true
		}
	}
	return false
}

// Unit es la unidad de medida de un ítem (texto libre tolerado).
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLiter      Unit = "L"
	UnitMilliliter Unit = "mL"
	UnitSack       Unit = "sc"
	UnitPiece      Unit = "un"
	UnitBox        Unit = "cx"
	UnitTon        Unit = "ton"
)

// Units devuelve las unidades conocidas.
func Units() []Unit {
	return []Unit{UnitKilogram, UnitGram, UnitLiter, UnitMilliliter, UnitSack, UnitPiece, UnitBox, UnitTon}
}

// Known indica si la unidad pertenece al conjunto enumerado.
func (u Unit) Known() bool {
	for _, k := range Units() {
		if k == u {
			return true
		}
	}
	return false
}
