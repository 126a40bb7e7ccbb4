package orders

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/kaffecito/kaffecito/internal/catalog"
	"github.com/kaffecito/kaffecito/pkg/enums"
	"github.com/kaffecito/kaffecito/pkg/types"
)

// UserRef tolerates the backend's two encodings of the owning user: a bare
// numeric id or an embedded user object.
type UserRef struct {
	ID int
}

func (u *UserRef) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		u.ID = 0
		return nil
	}
	var id types.FlexInt
	if err := json.Unmarshal(raw, &id); err == nil {
		u.ID = id.Int()
		return nil
	}
	var embedded struct {
		ID types.FlexInt `json:"id_usuario"`
	}
	if err := json.Unmarshal(raw, &embedded); err != nil {
		return err
	}
	u.ID = embedded.ID.Int()
	return nil
}

func (u UserRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.ID)
}

// Line is one detalle of an order. UnitPrice is the monetary snapshot taken
// at submission time, not the live product price.
type Line struct {
	ID        int              `json:"id_detalle"`
	OrderID   int              `json:"id_pedido"`
	ProductID int              `json:"id_producto"`
	Quantity  types.FlexInt    `json:"cantidad"`
	UnitPrice types.Price      `json:"precio_unitario"`
	Subtotal  types.Price      `json:"subtotal"`
	Notes     string           `json:"notas,omitempty"`
	Product   *catalog.Product `json:"producto,omitempty"`
	CreatedAt time.Time        `json:"created_at,omitzero"`
	UpdatedAt time.Time        `json:"updated_at,omitzero"`
}

// Order is the backend-owned aggregate; the client never assigns its id or
// group id, it only reads them back.
type Order struct {
	ID        int               `json:"id_pedido"`
	User      UserRef           `json:"usuario_id"`
	Total     types.Price       `json:"total_pedido"`
	Status    enums.OrderStatus `json:"estado_pedido"`
	Table     types.FlexInt     `json:"numero_mesa"`
	GroupID   string            `json:"id_grupo_pedido,omitempty"`
	Notes     string            `json:"notas,omitempty"`
	CreatedAt time.Time         `json:"created_at,omitzero"`
	UpdatedAt time.Time         `json:"updated_at,omitzero"`
	Lines     []Line            `json:"detalles,omitempty"`
}

// LineForProduct returns the order line holding the product, if any.
func (o *Order) LineForProduct(productID int) *Line {
	for i := range o.Lines {
		if o.Lines[i].ProductID == productID {
			return &o.Lines[i]
		}
		if o.Lines[i].Product != nil && o.Lines[i].Product.ID == productID {
			return &o.Lines[i]
		}
	}
	return nil
}
