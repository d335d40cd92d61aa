package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/techstore/storefront/internal/session"
	"github.com/techstore/storefront/pkg/models"
)

var (
	ErrNotAuthenticated = errors.New("checkout requires an authenticated session")
	ErrEmptyCart        = errors.New("cart is empty")
)

// StockError reports every cart line that failed the stock check. The
// checkout never creates anything when one of these is returned.
type StockError struct {
	Problems []string
}

func (e *StockError) Error() string {
	return strings.Join(e.Problems, " ")
}

// StoreAPI is the slice of the store API the checkout needs.
type StoreAPI interface {
	Products(ctx context.Context) ([]models.Product, error)
	CreateBill(ctx context.Context, create models.BillCreate) (*models.Bill, error)
	CreateOrder(ctx context.Context, create models.OrderCreate) (*models.Order, error)
	CreateOrderDetail(ctx context.Context, create models.OrderDetailCreate) (*models.OrderDetail, error)
}

// Receipt summarizes a completed purchase.
type Receipt struct {
	OrderID  int     `json:"order_id"`
	BillID   int     `json:"bill_id"`
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
	Lines    int     `json:"lines"`
}

type Checkout struct {
	api    StoreAPI
	logger *logrus.Logger
	now    func() time.Time
}

func NewCheckout(api StoreAPI, logger *logrus.Logger) *Checkout {
	return &Checkout{api: api, logger: logger, now: time.Now}
}

// Process runs the purchase sequence: stock check against a fresh catalog,
// then bill, then order, then one order detail per line. Bill and order are
// strictly sequential since each needs the previous id; the detail calls run
// concurrently with no defined order. There is no rollback: a failure after
// the bill or order was created leaves it behind on the server.
func (co *Checkout) Process(ctx context.Context, identity *session.Identity, c *Cart) (*Receipt, error) {
	if identity == nil {
		return nil, ErrNotAuthenticated
	}
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	products, err := co.api.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to verify stock: %w", err)
	}
	byID := make(map[int]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var problems []string
	for _, item := range items {
		current, ok := byID[item.ID]
		if !ok {
			problems = append(problems, fmt.Sprintf("Product %q is no longer available.", item.Name))
		} else if item.Quantity > current.Stock {
			problems = append(problems, fmt.Sprintf("Not enough stock for %q: available %d, in cart %d.", item.Name, current.Stock, item.Quantity))
		}
	}
	if len(problems) > 0 {
		co.logger.WithField("violations", len(problems)).Warn("Checkout aborted by stock check")
		return nil, &StockError{Problems: problems}
	}

	subtotal, shipping, total := c.Totals()
	now := co.now()

	bill, err := co.api.CreateBill(ctx, models.BillCreate{
		BillNumber:  fmt.Sprintf("B-%d", now.UnixMilli()),
		Date:        now.Format("2006-01-02"),
		Total:       total,
		PaymentType: models.PaymentTypeCard,
		ClientID:    identity.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process purchase: %w", err)
	}

	order, err := co.api.CreateOrder(ctx, models.OrderCreate{
		Total:          total,
		DeliveryMethod: models.DeliveryPickup,
		ClientID:       identity.ID,
		Status:         models.OrderStatusPending,
		BillID:         bill.ID,
		Date:           now.Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process purchase: %w", err)
	}

	// One detail per line, concurrently. A failing call does not cancel the
	// ones already in flight, and nothing compensates for details that did
	// land.
	var wg sync.WaitGroup
	errCh := make(chan error, len(items))
	for _, item := range items {
		wg.Add(1)
		go func(item Item) {
			defer wg.Done()
			_, err := co.api.CreateOrderDetail(ctx, models.OrderDetailCreate{
				OrderID:   order.ID,
				ProductID: item.ID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
			if err != nil {
				errCh <- err
			}
		}(item)
	}
	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return nil, fmt.Errorf("failed to process purchase: %w", err)
	}

	c.Clear()

	receipt := &Receipt{
		OrderID:  order.ID,
		BillID:   bill.ID,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    total,
		Lines:    len(items),
	}
	co.logger.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"bill_id":   bill.ID,
		"client_id": identity.ID,
		"total":     total,
		"lines":     len(items),
	}).Info("Checkout completed")
	return receipt, nil
}
