package checkout

import (
	"context"
	"fmt"

	"github.com/kaffecito/kaffecito/internal/cart"
	"github.com/kaffecito/kaffecito/internal/catalog"
	"github.com/kaffecito/kaffecito/internal/orders"
	"github.com/kaffecito/kaffecito/internal/session"
	"github.com/kaffecito/kaffecito/pkg/enums"
	pkgerrors "github.com/kaffecito/kaffecito/pkg/errors"
	"github.com/kaffecito/kaffecito/pkg/logger"
)

type cartStore interface {
	Items() []cart.Line
	Table() int
	Clear()
}

type identitySource interface {
	Identity() (session.Identity, bool)
}

type orderAPI interface {
	Create(ctx context.Context, req orders.CreateOrderRequest) (*orders.Order, error)
	Get(ctx context.Context, id int) (*orders.Order, error)
	PendingForTable(ctx context.Context, table int) (*orders.Order, error)
	CreateLine(ctx context.Context, req orders.CreateLineRequest) (*orders.Line, error)
	UpdateLine(ctx context.Context, lineID int, req orders.UpdateLineRequest) (*orders.Line, error)
	RecalculateTotal(ctx context.Context, orderID int) error
}

// Service runs the order-submission workflows. Every step is sequential,
// since each request body depends on the previous response, and nothing is
// retried; a failure surfaces to the caller and the user re-triggers.
type Service struct {
	orders orderAPI
	cart   cartStore
	sess   identitySource
	logg   *logger.Logger
}

func NewService(orderSvc orderAPI, cartStore cartStore, sess identitySource, logg *logger.Logger) (*Service, error) {
	if orderSvc == nil {
		return nil, fmt.Errorf("order service required")
	}
	if cartStore == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if sess == nil {
		return nil, fmt.Errorf("identity source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{orders: orderSvc, cart: cartStore, sess: sess, logg: logg}, nil
}

// Submit validates the cart, creates one order from it under the signed-in
// user, and clears the cart once the backend confirms.
func (s *Service) Submit(ctx context.Context) (*orders.Order, error) {
	items := s.cart.Items()
	if err := ValidateCart(items); err != nil {
		return nil, err
	}

	ident, ok := s.sess.Identity()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in before submitting an order")
	}

	req := orders.CreateOrderRequest{
		UserID:   ident.UserID,
		Status:   enums.OrderStatusPending,
		Table:    s.cart.Table(),
		Products: make([]orders.OrderProduct, 0, len(items)),
	}
	for _, line := range items {
		req.Products = append(req.Products, orders.OrderProduct{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Notes:     line.Notes,
		})
	}

	created, err := s.orders.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.cart.Clear()
	s.logg.Info(s.logg.WithOrderID(ctx, created.ID), "order submitted")
	return created, nil
}

// AddToTable adds one product to the table's sitting: if a pending order
// already exists for the table, the product merges into it (summed quantity
// and recomputed subtotal when the line exists, a new line otherwise,
// followed by a total recalculation); without one, a new order is created
// carrying the table number and any group identifier discovered during the
// lookup.
func (s *Service) AddToTable(ctx context.Context, product catalog.Product, qty int, notes string, table int) (*orders.Order, error) {
	if table <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "table number is required").
			WithDetails([]string{"table number is required"})
	}
	if !product.Orderable() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("%s is not available right now", product.Name))
	}
	line := cart.Line{Product: product, Quantity: qty, Notes: notes}
	if err := ValidateCart([]cart.Line{line}); err != nil {
		return nil, err
	}

	ctx = s.logg.WithTable(ctx, table)

	existing, err := s.orders.PendingForTable(ctx, table)
	if err != nil {
		return nil, err
	}

	groupHint := ""
	if existing != nil {
		merged, err := s.mergeIntoOrder(ctx, existing.ID, product, qty, notes)
		if err == nil {
			return merged, nil
		}
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			// the pending order vanished between lookup and merge;
			// keep its group so the sitting still threads together
			groupHint = existing.GroupID
		} else {
			return nil, err
		}
	}

	ident, ok := s.sess.Identity()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in before submitting an order")
	}

	req := orders.CreateOrderRequest{
		UserID:  ident.UserID,
		Status:  enums.OrderStatusPending,
		Table:   table,
		GroupID: groupHint,
		Products: []orders.OrderProduct{{
			ProductID: product.ID,
			Quantity:  qty,
			Notes:     notes,
		}},
	}
	return s.orders.Create(ctx, req)
}

// mergeIntoOrder applies the patch-or-post step against an existing pending
// order, then triggers the backend total recalculation.
func (s *Service) mergeIntoOrder(ctx context.Context, orderID int, product catalog.Product, qty int, notes string) (*orders.Order, error) {
	detail, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if existing := detail.LineForProduct(product.ID); existing != nil {
		newQty := existing.Quantity.Int() + qty
		req := orders.UpdateLineRequest{
			Quantity: newQty,
			Subtotal: existing.UnitPrice.Times(newQty),
			Notes:    notes,
		}
		if req.Notes == "" {
			req.Notes = existing.Notes
		}
		if _, err := s.orders.UpdateLine(ctx, existing.ID, req); err != nil {
			return nil, err
		}
	} else {
		req := orders.CreateLineRequest{
			OrderID:   orderID,
			ProductID: product.ID,
			Quantity:  qty,
			UnitPrice: product.Price,
			Subtotal:  product.Price.Times(qty),
			Notes:     notes,
		}
		if _, err := s.orders.CreateLine(ctx, req); err != nil {
			return nil, err
		}
	}

	if err := s.orders.RecalculateTotal(ctx, orderID); err != nil {
		return nil, err
	}
	return s.orders.Get(ctx, orderID)
}
