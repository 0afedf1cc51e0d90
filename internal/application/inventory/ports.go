package inventory

import "context"

// AliasGenerator genera alias (errores fonéticos, nombres en hindi) para un producto nuevo.
// Lo implementa usecase.AliasUseCase; se invoca en segundo plano tras el primer ingreso de stock.
type AliasGenerator interface {
	GenerateForItem(ctx context.Context, itemName string) (int, error)
}
