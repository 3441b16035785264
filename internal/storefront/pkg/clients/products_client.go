package clients

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

const (
	OpProductsPage = "products.page"
	OpProductGet   = "products.get"
)

type ProductClient struct {
	*BaseClient
}

func NewProductClient(base *BaseClient) *ProductClient {
	return &ProductClient{BaseClient: base}
}

// FetchPage returns the raw listing body for one page.
func (c *ProductClient) FetchPage(ctx context.Context, page, limit int) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var body json.RawMessage
	err := c.Get(ctx, OpProductsPage, "/api/product", query, &body)
	return body, err
}

func (c *ProductClient) FetchOne(ctx context.Context, id int64) (json.RawMessage, error) {
	var body json.RawMessage
	err := c.Get(ctx, OpProductGet, "/api/product/"+strconv.FormatInt(id, 10), nil, &body)
	return body, err
}
