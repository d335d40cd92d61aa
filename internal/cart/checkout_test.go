package cart

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/techstore/storefront/internal/session"
	"github.com/techstore/storefront/pkg/models"
)

// fakeStoreAPI records every call the checkout makes.
type fakeStoreAPI struct {
	mu        sync.Mutex
	catalog   []models.Product
	bills     []models.BillCreate
	orders    []models.OrderCreate
	details   []models.OrderDetailCreate
	billErr   error
	orderErr  error
	detailErr error
	calls     []string
}

func (f *fakeStoreAPI) Products(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "products")
	return f.catalog, nil
}

func (f *fakeStoreAPI) CreateBill(ctx context.Context, create models.BillCreate) (*models.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "bill")
	if f.billErr != nil {
		return nil, f.billErr
	}
	f.bills = append(f.bills, create)
	return &models.Bill{ID: 101, BillNumber: create.BillNumber, Total: create.Total, ClientID: create.ClientID}, nil
}

func (f *fakeStoreAPI) CreateOrder(ctx context.Context, create models.OrderCreate) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "order")
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	f.orders = append(f.orders, create)
	return &models.Order{ID: 202, Total: create.Total, ClientID: create.ClientID, BillID: create.BillID}, nil
}

func (f *fakeStoreAPI) CreateOrderDetail(ctx context.Context, create models.OrderDetailCreate) (*models.OrderDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "detail")
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	f.details = append(f.details, create)
	return &models.OrderDetail{ID: len(f.details), OrderID: create.OrderID, ProductID: create.ProductID}, nil
}

func (f *fakeStoreAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func testIdentity() *session.Identity {
	return &session.Identity{ID: 7, Email: "ana@example.com", Name: "Ana"}
}

func TestCheckoutRequiresAuthentication(t *testing.T) {
	fake := &fakeStoreAPI{}
	co := NewCheckout(fake, testLogger())

	c := New()
	c.Add(product(1, "Pulse X2", 749.50))

	_, err := co.Process(context.Background(), nil, c)
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if fake.callCount() != 0 {
		t.Errorf("expected no API calls, got %v", fake.calls)
	}
}

func TestCheckoutEmptyCartMakesNoCalls(t *testing.T) {
	fake := &fakeStoreAPI{}
	co := NewCheckout(fake, testLogger())

	_, err := co.Process(context.Background(), testIdentity(), New())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if fake.callCount() != 0 {
		t.Errorf("expected no API calls, got %v", fake.calls)
	}
}

func TestCheckoutStockViolationsAbortBeforeAnyWrite(t *testing.T) {
	fake := &fakeStoreAPI{
		catalog: []models.Product{
			{ID: 1, Name: "Nebula Book 14", Price: 899.99, Stock: 1},
			// product 2 is gone from the catalog entirely
		},
	}
	co := NewCheckout(fake, testLogger())

	c := New()
	c.Add(models.Product{ID: 1, Name: "Nebula Book 14", Price: 899.99})
	c.SetQuantity(1, 3)
	c.Add(models.Product{ID: 2, Name: "EchoBuds", Price: 89.90})

	_, err := co.Process(context.Background(), testIdentity(), c)

	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected StockError, got %v", err)
	}
	if len(stockErr.Problems) != 2 {
		t.Fatalf("expected 2 accumulated violations, got %d: %v", len(stockErr.Problems), stockErr.Problems)
	}
	msg := stockErr.Error()
	if !strings.Contains(msg, "Nebula Book 14") || !strings.Contains(msg, "EchoBuds") {
		t.Errorf("expected message to name both offending products, got %q", msg)
	}

	for _, call := range fake.calls {
		if call != "products" {
			t.Fatalf("expected only the catalog fetch, saw %v", fake.calls)
		}
	}
	if c.Len() != 2 {
		t.Errorf("cart must be untouched after an aborted checkout, got %d lines", c.Len())
	}
}

func TestCheckoutSuccess(t *testing.T) {
	fake := &fakeStoreAPI{
		catalog: []models.Product{
			{ID: 1, Name: "Keyboard", Price: 20, Stock: 5},
			{ID: 2, Name: "Mouse", Price: 15, Stock: 5},
		},
	}
	co := NewCheckout(fake, testLogger())

	c := New()
	c.Add(models.Product{ID: 1, Name: "Keyboard", Price: 20})
	c.SetQuantity(1, 2)
	c.Add(models.Product{ID: 2, Name: "Mouse", Price: 15})

	receipt, err := co.Process(context.Background(), testIdentity(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receipt.Subtotal != 55 || receipt.Shipping != 10 || receipt.Total != 65 {
		t.Errorf("receipt totals = %v/%v/%v, want 55/10/65", receipt.Subtotal, receipt.Shipping, receipt.Total)
	}
	if receipt.OrderID != 202 || receipt.BillID != 101 {
		t.Errorf("receipt ids = order %d bill %d, want 202/101", receipt.OrderID, receipt.BillID)
	}

	if len(fake.bills) != 1 {
		t.Fatalf("expected 1 bill, got %d", len(fake.bills))
	}
	bill := fake.bills[0]
	if !strings.HasPrefix(bill.BillNumber, "B-") {
		t.Errorf("bill number %q should carry the B- prefix", bill.BillNumber)
	}
	if bill.Total != 65 || bill.ClientID != 7 || bill.PaymentType != models.PaymentTypeCard {
		t.Errorf("unexpected bill payload: %+v", bill)
	}

	if len(fake.orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(fake.orders))
	}
	order := fake.orders[0]
	if order.BillID != 101 || order.Status != models.OrderStatusPending || order.DeliveryMethod != models.DeliveryPickup {
		t.Errorf("unexpected order payload: %+v", order)
	}

	if len(fake.details) != 2 {
		t.Fatalf("expected 2 order details, got %d", len(fake.details))
	}
	for _, d := range fake.details {
		if d.OrderID != 202 {
			t.Errorf("detail references order %d, want 202", d.OrderID)
		}
	}

	// bill strictly precedes order, and all details come after the order
	if fake.calls[0] != "products" || fake.calls[1] != "bill" || fake.calls[2] != "order" {
		t.Errorf("unexpected call sequence: %v", fake.calls)
	}

	if c.Len() != 0 {
		t.Errorf("cart should be cleared after a successful checkout, got %d lines", c.Len())
	}
}

func TestCheckoutBillFailureStopsSequence(t *testing.T) {
	fake := &fakeStoreAPI{
		catalog: []models.Product{{ID: 1, Name: "Keyboard", Price: 20, Stock: 5}},
		billErr: errors.New("boom"),
	}
	co := NewCheckout(fake, testLogger())

	c := New()
	c.Add(models.Product{ID: 1, Name: "Keyboard", Price: 20})

	_, err := co.Process(context.Background(), testIdentity(), c)
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(fake.orders) != 0 || len(fake.details) != 0 {
		t.Errorf("no order or detail may be created after a bill failure: %v", fake.calls)
	}
	if c.Len() != 1 {
		t.Errorf("cart must survive a failed checkout, got %d lines", c.Len())
	}
}

func TestCheckoutDetailFailureKeepsCart(t *testing.T) {
	fake := &fakeStoreAPI{
		catalog:   []models.Product{{ID: 1, Name: "Keyboard", Price: 20, Stock: 5}},
		detailErr: errors.New("detail boom"),
	}
	co := NewCheckout(fake, testLogger())

	c := New()
	c.Add(models.Product{ID: 1, Name: "Keyboard", Price: 20})

	_, err := co.Process(context.Background(), testIdentity(), c)
	if err == nil {
		t.Fatal("expected an error")
	}
	// The bill and order were already created; that is the accepted gap, no
	// rollback happens here.
	if len(fake.bills) != 1 || len(fake.orders) != 1 {
		t.Errorf("expected bill and order to have been created before the failure")
	}
	if c.Len() != 1 {
		t.Errorf("cart must survive a failed checkout, got %d lines", c.Len())
	}
}
