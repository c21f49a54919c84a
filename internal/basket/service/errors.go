package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidStoreCap    = errors.New("store cap must be positive")
	ErrUnknownProduct     = errors.New("unknown product")
	ErrInfeasible         = errors.New("no store combination within the cap covers the cart")
	ErrTooManyStores      = errors.New("too many stores to optimize exactly")
	ErrInvalidSelection   = errors.New("selection is not among the offered candidates")
	ErrNoPendingSelection = errors.New("nothing to select from")
	ErrBadSheet           = errors.New("sheet must have at least 3 columns: name, store, price")
)

// UnknownProductsError перечисляет все товары корзины, которых нет в прайсе.
type UnknownProductsError struct {
	Names []string
}

func (e *UnknownProductsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownProduct, strings.Join(e.Names, ", "))
}

func (e *UnknownProductsError) Is(target error) bool { return target == ErrUnknownProduct }

// InfeasibleError: ни одно подмножество из MaxStores магазинов не закрывает корзину.
type InfeasibleError struct {
	MaxStores  int
	Candidates int // магазинов, где есть хоть что-то из корзины
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("%s (cap %d, candidate stores %d)", ErrInfeasible, e.MaxStores, e.Candidates)
}

func (e *InfeasibleError) Is(target error) bool { return target == ErrInfeasible }
