package inventory

import "github.com/shopspring/decimal"

// WeightedUnitValue valor unitario del ítem tras una entrada con costo:
// ((saldo × valor) + (entrada × costo)) / (saldo + entrada), a 4 decimales.
// Con saldo resultante nulo el valor pasa a ser el costo de la entrada.
func WeightedUnitValue(balance, unitValue, entrance, entranceCost decimal.Decimal) decimal.Decimal {
	total := balance.Add(entrance)
	if !total.IsPositive() {
		return entranceCost
	}
	stockValue := balance.Mul(unitValue).Add(entrance.Mul(entranceCost))
	return stockValue.Div(total).Round(4)
}
