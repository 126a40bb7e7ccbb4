package orders

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kaffecito/kaffecito/pkg/enums"
	pkgerrors "github.com/kaffecito/kaffecito/pkg/errors"
	"github.com/kaffecito/kaffecito/pkg/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// CreateOrderRequest is the canonical order-creation contract.
type CreateOrderRequest struct {
	UserID   int               `json:"usuario_id" validate:"required,gt=0"`
	Status   enums.OrderStatus `json:"estado_pedido" validate:"required"`
	Table    int               `json:"numero_mesa" validate:"gte=0"`
	GroupID  string            `json:"id_grupo_pedido,omitempty"`
	Products []OrderProduct    `json:"productos" validate:"required,min=1,dive"`
}

// OrderProduct is one requested line of a new order.
type OrderProduct struct {
	ProductID int    `json:"id_producto" validate:"required,gt=0"`
	Quantity  int    `json:"cantidad" validate:"required,gte=1"`
	Notes     string `json:"notas,omitempty"`
}

// CreateLineRequest appends a line to an existing order. Subtotal must equal
// unit price × quantity; the caller computes it from the captured price.
type CreateLineRequest struct {
	OrderID   int         `json:"id_pedido" validate:"required,gt=0"`
	ProductID int         `json:"id_producto" validate:"required,gt=0"`
	Quantity  int         `json:"cantidad" validate:"required,gte=1"`
	UnitPrice types.Price `json:"precio_unitario" validate:"required"`
	Subtotal  types.Price `json:"subtotal" validate:"required"`
	Notes     string      `json:"notas,omitempty"`
}

// UpdateLineRequest patches quantity on an existing remote line; subtotal is
// recomputed locally so the invariant subtotal == unit_price × quantity
// holds after the patch.
type UpdateLineRequest struct {
	Quantity int         `json:"cantidad" validate:"required,gte=1"`
	Subtotal types.Price `json:"subtotal" validate:"required"`
	Notes    string      `json:"notas,omitempty"`
}

type updateStatusRequest struct {
	Status enums.OrderStatus `json:"estado"`
}

func validateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			reasons := make([]string, 0, len(errs))
			for _, fieldErr := range errs {
				reasons = append(reasons, fieldErr.Field()+" is invalid")
			}
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid request").WithDetails(reasons)
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request")
	}
	return nil
}
