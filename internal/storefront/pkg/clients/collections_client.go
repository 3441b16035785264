package clients

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

const (
	OpCollectionsList = "collections.list"
	OpCollectsList    = "collects.list"
)

type CollectionClient struct {
	*BaseClient
}

func NewCollectionClient(base *BaseClient) *CollectionClient {
	return &CollectionClient{BaseClient: base}
}

func (c *CollectionClient) FetchCollections(ctx context.Context) (json.RawMessage, error) {
	var body json.RawMessage
	err := c.Get(ctx, OpCollectionsList, "/api/collection", nil, &body)
	return body, err
}

// FetchCollects asks upstream to filter by collection; callers must not rely on it.
func (c *CollectionClient) FetchCollects(ctx context.Context, collectionID int64) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("collection_id", strconv.FormatInt(collectionID, 10))

	var body json.RawMessage
	err := c.Get(ctx, OpCollectsList, "/api/collect", query, &body)
	return body, err
}
