package entity

// Module identifica la colección de inventario a la que pertenece un ítem.
type Module string

const (
	ModuleStock  Module = "estoque" // inventario general de la finca
	ModuleInputs Module = "insumos" // insumos agrícolas (semillas, fertilizantes, defensivos)
)

// Modules devuelve los módulos habilitados, en el orden en que se fusionan en el resumen.
func Modules() []Module {
	return []Module{ModuleStock, ModuleInputs}
}

// ParseModule valida el nombre de módulo recibido en la ruta.
func ParseModule(s string) (Module, bool) {
	m := Module(s)
	switch m {
	case ModuleStock, ModuleInputs:
		return m, true
	}
	return "", false
}

// Label devuelve el nombre legible del módulo ("Estoque", "Insumos").
func (m Module) Label() string {
	switch m {
	case ModuleStock:
		return "Estoque"
	case ModuleInputs:
		return "Insumos"
	}
	return string(m)
}
