package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/techstore/storefront/pkg/models"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the clients endpoint and returns the matching
// client record. Invalid credentials come back as an *Error.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Client, error) {
	var client models.Client
	body := credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/clients/login", nil, body, &client, "Invalid credentials"); err != nil {
		return nil, err
	}
	c.logger.WithField("client_id", client.ID).Info("Client logged in")
	return &client, nil
}

func (c *Client) Clients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := c.do(ctx, http.MethodGet, "/api/v1/clients/", nil, nil, &clients, "Failed to fetch clients"); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *Client) CreateClient(ctx context.Context, create models.ClientCreate) (*models.Client, error) {
	var client models.Client
	if err := c.do(ctx, http.MethodPost, "/api/v1/clients/", nil, create, &client, "Failed to create client"); err != nil {
		return nil, err
	}
	c.logger.WithField("client_id", client.ID).Info("Registered client")
	return &client, nil
}

// Profile fetches the client list and picks out one record; the API has no
// single-client read.
func (c *Client) Profile(ctx context.Context, id int) (*models.Client, error) {
	clients, err := c.Clients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], nil
		}
	}
	return nil, &Error{StatusCode: http.StatusNotFound, Detail: "Client not found"}
}

// AddressesByClient lists all addresses and filters by owner; the API has no
// per-client address read.
func (c *Client) AddressesByClient(ctx context.Context, clientID int) ([]models.Address, error) {
	var addresses []models.Address
	if err := c.do(ctx, http.MethodGet, "/addresses/", nil, nil, &addresses, "Failed to fetch addresses"); err != nil {
		return nil, err
	}
	owned := make([]models.Address, 0, len(addresses))
	for _, a := range addresses {
		if a.ClientID == clientID {
			owned = append(owned, a)
		}
	}
	return owned, nil
}

func (c *Client) CreateAddress(ctx context.Context, create models.AddressCreate) (*models.Address, error) {
	var address models.Address
	if err := c.do(ctx, http.MethodPost, "/addresses/", nil, create, &address, "Failed to create address"); err != nil {
		return nil, err
	}
	return &address, nil
}

func (c *Client) UpdateAddress(ctx context.Context, id int, update models.AddressCreate) (*models.Address, error) {
	var address models.Address
	if err := c.do(ctx, http.MethodPut, "/addresses/id/"+strconv.Itoa(id), nil, update, &address, "Failed to update address"); err != nil {
		return nil, err
	}
	return &address, nil
}

func (c *Client) DeleteAddress(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/addresses/id/"+strconv.Itoa(id), nil, nil, nil, "Failed to delete address")
}
