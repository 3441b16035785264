package clients

import (
	"context"
	"encoding/json"
	"strconv"
)

const (
	OpBlogsList   = "blogs.list"
	OpBlogsDetail = "blogs.detail"
	OpBlogsCount  = "blogs.count"
)

type BlogClient struct {
	*BaseClient
}

func NewBlogClient(base *BaseClient) *BlogClient {
	return &BlogClient{BaseClient: base}
}

func (c *BlogClient) FetchBlogs(ctx context.Context) (json.RawMessage, error) {
	var body json.RawMessage
	err := c.Get(ctx, OpBlogsList, "/api/blog", nil, &body)
	return body, err
}

// FetchBlog returns the blog detail body, which carries its articles.
func (c *BlogClient) FetchBlog(ctx context.Context, blogID int64) (json.RawMessage, error) {
	var body json.RawMessage
	err := c.Get(ctx, OpBlogsDetail, "/api/blog/"+strconv.FormatInt(blogID, 10), nil, &body)
	return body, err
}

func (c *BlogClient) FetchCount(ctx context.Context, blogID int64) (json.RawMessage, error) {
	var body json.RawMessage
	err := c.Get(ctx, OpBlogsCount, "/api/blog/"+strconv.FormatInt(blogID, 10)+"/count", nil, &body)
	return body, err
}
