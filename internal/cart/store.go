package cart

import (
	"fmt"
	"sync"

	"github.com/kaffecito/kaffecito/internal/catalog"
	pkgerrors "github.com/kaffecito/kaffecito/pkg/errors"
	"github.com/kaffecito/kaffecito/pkg/types"
)

// Line is one cart entry pending submission.
type Line struct {
	Product  catalog.Product
	Quantity int
	Notes    string
}

// Subtotal is the line's price × quantity at cent precision.
func (l Line) Subtotal() types.Price {
	return l.Product.Price.Times(l.Quantity)
}

// Store holds the cart lines in insertion order. Duplicate products merge
// into one line. Mutations are serialized; the store is safe to share.
type Store struct {
	mu    sync.Mutex
	lines []Line
	table int
}

func NewStore() *Store {
	return &Store{}
}

// Add merges qty into an existing line for the same product, overwriting
// notes only when the new ones are non-empty, or appends a new line.
// Products that are inactive or out of stock are rejected.
func (s *Store) Add(product catalog.Product, qty int, notes string) error {
	if product.ID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product has no identifier")
	}
	if !product.Orderable() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s is not available right now", product.Name))
	}
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID == product.ID {
			s.lines[i].Quantity += qty
			if notes != "" {
				s.lines[i].Notes = notes
			}
			return nil
		}
	}
	s.lines = append(s.lines, Line{Product: product, Quantity: qty, Notes: notes})
	return nil
}

// AdjustQuantity applies delta to the line at index, clamping the result at
// 1; dropping a line is Remove, not a decrement past zero.
func (s *Store) AdjustQuantity(index, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) {
		return pkgerrors.New(pkgerrors.CodeValidation, "no such cart line")
	}
	next := s.lines[index].Quantity + delta
	if next < 1 {
		next = 1
	}
	s.lines[index].Quantity = next
	return nil
}

func (s *Store) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) {
		return pkgerrors.New(pkgerrors.CodeValidation, "no such cart line")
	}
	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	return nil
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Items returns a copy of the lines in display order.
func (s *Store) Items() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Line, len(s.lines))
	copy(items, s.lines)
	return items
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Total sums price × quantity over all lines at cent precision.
func (s *Store) Total() types.Price {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cents int64
	for _, line := range s.lines {
		cents += line.Product.Price.Times(line.Quantity).Cents()
	}
	return types.FromCents(cents)
}

func (s *Store) SetTable(table int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
}

func (s *Store) Table() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table
}
