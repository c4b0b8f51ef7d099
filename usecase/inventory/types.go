package inventory

import "github.com/yaegashi/tgwops/domain/model"

// UseCase wires dependencies for read-only inventory listings.
type UseCase struct {
	InventoryPort model.InventoryPort
}
