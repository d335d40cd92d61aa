package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/techstore/storefront/pkg/models"
)

// OrdersByClient lists every order and filters by owner client-side; the API
// exposes only the full collection.
func (c *Client) OrdersByClient(ctx context.Context, clientID int) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/", nil, nil, &orders, "Failed to fetch orders"); err != nil {
		return nil, err
	}
	owned := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.ClientID == clientID {
			owned = append(owned, o)
		}
	}
	return owned, nil
}

func (c *Client) CreateOrder(ctx context.Context, create models.OrderCreate) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders/", nil, create, &order, "Failed to create order"); err != nil {
		return nil, err
	}
	c.logger.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"client_id": create.ClientID,
		"total":     create.Total,
	}).Info("Created order")
	return &order, nil
}

func (c *Client) OrderDetailsByOrder(ctx context.Context, orderID int) ([]models.OrderDetail, error) {
	var details []models.OrderDetail
	if err := c.do(ctx, http.MethodGet, "/order_details/", nil, nil, &details, "Failed to fetch order details"); err != nil {
		return nil, err
	}
	owned := make([]models.OrderDetail, 0, len(details))
	for _, d := range details {
		if d.OrderID == orderID {
			owned = append(owned, d)
		}
	}
	return owned, nil
}

func (c *Client) CreateOrderDetail(ctx context.Context, create models.OrderDetailCreate) (*models.OrderDetail, error) {
	var detail models.OrderDetail
	if err := c.do(ctx, http.MethodPost, "/order_details/", nil, create, &detail, "Failed to create order detail"); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) BillsByClient(ctx context.Context, clientID int) ([]models.Bill, error) {
	var bills []models.Bill
	if err := c.do(ctx, http.MethodGet, "/bills/", nil, nil, &bills, "Failed to fetch bills"); err != nil {
		return nil, err
	}
	owned := make([]models.Bill, 0, len(bills))
	for _, b := range bills {
		if b.ClientID == clientID {
			owned = append(owned, b)
		}
	}
	return owned, nil
}

func (c *Client) CreateBill(ctx context.Context, create models.BillCreate) (*models.Bill, error) {
	var bill models.Bill
	if err := c.do(ctx, http.MethodPost, "/bills/", nil, create, &bill, "Failed to create bill"); err != nil {
		return nil, err
	}
	c.logger.WithFields(logrus.Fields{
		"bill_id":     bill.ID,
		"bill_number": create.BillNumber,
		"total":       create.Total,
	}).Info("Created bill")
	return &bill, nil
}

func (c *Client) UpdateBill(ctx context.Context, id int, update models.BillCreate) (*models.Bill, error) {
	var bill models.Bill
	if err := c.do(ctx, http.MethodPut, "/bills/id/"+strconv.Itoa(id), nil, update, &bill, "Failed to update bill"); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (c *Client) DeleteBill(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/bills/id/"+strconv.Itoa(id), nil, nil, nil, "Failed to delete bill")
}
