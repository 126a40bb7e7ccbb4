package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kaffecito/kaffecito/pkg/enums"
	pkgerrors "github.com/kaffecito/kaffecito/pkg/errors"
	"github.com/kaffecito/kaffecito/pkg/types"
)

type apiClient interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
}

// Service wraps the pedido endpoints. Every call is a single request with no
// retry; errors arrive already normalized by the API client.
type Service struct {
	api apiClient
}

func NewService(api apiClient) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	return &Service{api: api}, nil
}

// Create submits a new order under the canonical contract.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var created Order
	if err := s.api.Post(ctx, "/pedidos", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// List fetches all orders; tabbed views filter client-side rather than
// refetching per status.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, "/pedidos", &raw); err != nil {
		return nil, err
	}
	return decodeOrderList(raw)
}

func (s *Service) Get(ctx context.Context, id int) (*Order, error) {
	var order Order
	if err := s.api.Get(ctx, fmt.Sprintf("/pedidos/%d", id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) ByStatus(ctx context.Context, status enums.OrderStatus) ([]Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown status %q", status))
	}
	var raw json.RawMessage
	if err := s.api.Get(ctx, fmt.Sprintf("/pedidos/estado/%s", status), &raw); err != nil {
		return nil, err
	}
	return decodeOrderList(raw)
}

func (s *Service) ByTable(ctx context.Context, table int) ([]Order, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, fmt.Sprintf("/pedidos/mesa/%d", table), &raw); err != nil {
		return nil, err
	}
	return decodeOrderList(raw)
}

// Mine fetches the signed-in user's orders with their lines preloaded.
func (s *Service) Mine(ctx context.Context) ([]Order, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, "/pedidos/mis-pedidos?include=detalles,detalles.producto", &raw); err != nil {
		return nil, err
	}
	return decodeOrderList(raw)
}

// PendingForTable returns the newest pending order for the table, or nil if
// the table has none. A pending order that carries no group identifier gets
// the GRP_<id> fallback hint so later submissions thread together.
func (s *Service) PendingForTable(ctx context.Context, table int) (*Order, error) {
	list, err := s.ByTable(ctx, table)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}

	var pending []Order
	for _, order := range list {
		if order.Status == enums.OrderStatusPending {
			pending = append(pending, order)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}
	SortForDisplay(pending)

	newest := pending[0]
	if newest.GroupID == "" {
		newest.GroupID = fmt.Sprintf("GRP_%d", newest.ID)
	}
	return &newest, nil
}

// UpdateStatus transitions an order, enforcing the pendiente → en_proceso →
// completado/cancelado machine locally before the request goes out.
func (s *Service) UpdateStatus(ctx context.Context, id int, current, next enums.OrderStatus) (*Order, error) {
	if !current.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeState,
			fmt.Sprintf("order cannot move from %s to %s", current, next))
	}
	var updated Order
	if err := s.api.Patch(ctx, fmt.Sprintf("/pedidos/%d/estado", id), updateStatusRequest{Status: next}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CreateLine appends a line to an existing order.
func (s *Service) CreateLine(ctx context.Context, req CreateLineRequest) (*Line, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var created Line
	if err := s.api.Post(ctx, "/detalle-pedido", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateLine patches an existing line's quantity, subtotal and notes.
func (s *Service) UpdateLine(ctx context.Context, lineID int, req UpdateLineRequest) (*Line, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var updated Line
	if err := s.api.Patch(ctx, fmt.Sprintf("/detalle-pedido/%d", lineID), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// RecalculateTotal asks the backend to refresh the order's total after its
// lines changed.
func (s *Service) RecalculateTotal(ctx context.Context, orderID int) error {
	return s.api.Patch(ctx, fmt.Sprintf("/pedidos/%d/actualizar-total", orderID), struct{}{}, nil)
}

// decodeOrderList accepts the payload shapes the backend uses for order
// collections: a bare array, a {success,data} envelope, or a single object.
func decodeOrderList(raw json.RawMessage) ([]Order, error) {
	var envelope types.DataEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		raw = envelope.Data
	}

	var list []Order
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var single Order
	if err := json.Unmarshal(raw, &single); err == nil && single.ID > 0 {
		return []Order{single}, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "unexpected order payload shape")
}
