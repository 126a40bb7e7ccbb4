package cart

import (
	"encoding/json"
	"testing"

	"github.com/kaffecito/kaffecito/internal/catalog"
)

func product(id int, name, price string, stock int) catalog.Product {
	p := catalog.Product{ID: id, Name: name, Stock: stock, Active: true}
	if err := json.Unmarshal([]byte(`"`+price+`"`), &p.Price); err != nil {
		panic(err)
	}
	return p
}

func TestAddMergesDuplicateProducts(t *testing.T) {
	store := NewStore()
	latte := product(1, "Latte", "2.50", 10)
	mocha := product(2, "Mocha", "3.00", 10)

	if err := store.Add(latte, 2, ""); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Add(mocha, 1, "sin azúcar"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Add(latte, 3, ""); err != nil {
		t.Fatalf("Add: %v", err)
	}

	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].Product.ID != 1 || items[0].Quantity != 5 {
		t.Fatalf("merge failed: %+v", items[0])
	}
	if items[1].Product.ID != 2 || items[1].Quantity != 1 {
		t.Fatalf("unexpected second line: %+v", items[1])
	}
}

func TestAddOverwritesNotesOnlyWhenNonEmpty(t *testing.T) {
	store := NewStore()
	latte := product(1, "Latte", "2.50", 10)

	if err := store.Add(latte, 1, "con leche de avena"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Add(latte, 1, ""); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := store.Items()[0].Notes; got != "con leche de avena" {
		t.Fatalf("empty notes must not overwrite, got %q", got)
	}

	if err := store.Add(latte, 1, "extra caliente"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := store.Items()[0].Notes; got != "extra caliente" {
		t.Fatalf("non-empty notes must overwrite, got %q", got)
	}
}

func TestAddRejectsUnorderableProducts(t *testing.T) {
	store := NewStore()

	inactive := product(1, "Latte", "2.50", 10)
	inactive.Active = false
	if err := store.Add(inactive, 1, ""); err == nil {
		t.Fatal("expected rejection of inactive product")
	}

	outOfStock := product(2, "Mocha", "3.00", 0)
	if err := store.Add(outOfStock, 1, ""); err == nil {
		t.Fatal("expected rejection of out-of-stock product")
	}
	if store.Len() != 0 {
		t.Fatalf("cart should stay empty, has %d lines", store.Len())
	}
}

func TestAdjustQuantityClampsAtOne(t *testing.T) {
	store := NewStore()
	if err := store.Add(product(1, "Latte", "2.50", 10), 3, ""); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := store.AdjustQuantity(0, -100); err != nil {
		t.Fatalf("AdjustQuantity: %v", err)
	}
	if got := store.Items()[0].Quantity; got != 1 {
		t.Fatalf("expected clamp at 1, got %d", got)
	}

	if err := store.AdjustQuantity(0, 4); err != nil {
		t.Fatalf("AdjustQuantity: %v", err)
	}
	if got := store.Items()[0].Quantity; got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}

	if err := store.AdjustQuantity(7, 1); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
}

func TestRemoveAndClear(t *testing.T) {
	store := NewStore()
	store.Add(product(1, "Latte", "2.50", 10), 1, "")
	store.Add(product(2, "Mocha", "3.00", 10), 1, "")

	if err := store.Remove(0); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	items := store.Items()
	if len(items) != 1 || items[0].Product.ID != 2 {
		t.Fatalf("unexpected items after remove: %+v", items)
	}

	store.Clear()
	if store.Len() != 0 {
		t.Fatal("clear should empty the cart")
	}
}

func TestTotalIsExactWithStringPrices(t *testing.T) {
	store := NewStore()
	store.Add(product(1, "Latte", "2.50", 10), 3, "")
	store.Add(product(2, "Mocha", "3.10", 10), 2, "")

	if got := store.Total().Cents(); got != 750+620 {
		t.Fatalf("expected 1370 cents, got %d", got)
	}
	if got := store.Total().String(); got != "13.70" {
		t.Fatalf("expected 13.70, got %q", got)
	}
}
