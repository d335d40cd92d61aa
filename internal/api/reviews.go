package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/techstore/storefront/pkg/models"
)

func (c *Client) ReviewsByProduct(ctx context.Context, productID int) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.do(ctx, http.MethodGet, "/reviews/product/"+strconv.Itoa(productID), nil, nil, &reviews, "Failed to fetch reviews"); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, create models.ReviewCreate) (*models.Review, error) {
	var review models.Review
	if err := c.do(ctx, http.MethodPost, "/reviews/", nil, create, &review, "Failed to create review"); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) UpdateReview(ctx context.Context, id int, update models.ReviewCreate) (*models.Review, error) {
	var review models.Review
	if err := c.do(ctx, http.MethodPut, "/reviews/id/"+strconv.Itoa(id), nil, update, &review, "Failed to update review"); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) DeleteReview(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/reviews/id/"+strconv.Itoa(id), nil, nil, nil, "Failed to delete review")
}
