package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront_api/internal/storefront/business/dto/responses"
	"storefront_api/internal/storefront/business/models"
	"storefront_api/internal/storefront/business/services/parse"
	"storefront_api/pkg/business/service"
	"storefront_api/pkg/cache"
	"storefront_api/pkg/logger"
)

var ErrArticleNotFound = errors.New("article not found")

type BlogSource interface {
	FetchBlogs(ctx context.Context) (json.RawMessage, error)
	FetchBlog(ctx context.Context, blogID int64) (json.RawMessage, error)
	FetchCount(ctx context.Context, blogID int64) (json.RawMessage, error)
}

type BlogEngine struct {
	source BlogSource
	parser parse.ArticleParser
	text   service.ITextService
	cache  *cache.Manager
	ttl    time.Duration
	log    logger.Logger
}

func NewBlogEngine(source BlogSource, text service.ITextService, c *cache.Manager, ttl time.Duration, log logger.Logger) *BlogEngine {
	if text == nil {
		text = service.NewTextService()
	}
	return &BlogEngine{
		source: source,
		parser: parse.NewArticleEngine(text),
		text:   text,
		cache:  c,
		ttl:    ttl,
		log:    logger.OrDiscard(log),
	}
}

func (e *BlogEngine) FetchBlogs(ctx context.Context) ([]models.Blog, error) {
	return cached(ctx, e.cache, "blogs", e.ttl, func(ctx context.Context) ([]models.Blog, error) {
		body, err := e.source.FetchBlogs(ctx)
		if err != nil {
			return nil, err
		}
		res := responses.DecodeList[responses.RawBlog](body, "blogs")
		if !res.Recognized() {
			degrade(e.log, "blogs_envelope", "unrecognized blogs envelope")
		}
		blogs := make([]models.Blog, 0, len(res.Items))
		for _, raw := range res.Items {
			blogs = append(blogs, e.parser.Blog(raw))
		}
		return blogs, nil
	})
}

// FetchBlogDetail returns the published articles of a blog in upstream order.
func (e *BlogEngine) FetchBlogDetail(ctx context.Context, blogID int64) ([]models.Article, error) {
	return cached(ctx, e.cache, fmt.Sprintf("blog:%d:articles", blogID), e.ttl, func(ctx context.Context) ([]models.Article, error) {
		body, err := e.source.FetchBlog(ctx, blogID)
		if err != nil {
			return nil, err
		}
		res := responses.DecodeList[responses.RawArticle](body, "articles", "blog.articles")
		if !res.Recognized() {
			degrade(e.log, "articles_envelope", "blog %d: unrecognized articles envelope", blogID)
		}
		if res.Skipped > 0 {
			degrade(e.log, "article_shape", "blog %d: skipped %d articles", blogID, res.Skipped)
		}
		articles := e.parser.Articles(res.Items)
		for i := range articles {
			if articles[i].BlogID == 0 {
				articles[i].BlogID = blogID
			}
		}
		return articles, nil
	})
}

// FetchArticleCount accepts {count: n} or a bare number; anything else counts as 0.
func (e *BlogEngine) FetchArticleCount(ctx context.Context, blogID int64) (int64, error) {
	body, err := e.source.FetchCount(ctx, blogID)
	if err != nil {
		return 0, err
	}
	n, _, ok := responses.DecodeCount(body, "count")
	if !ok {
		degrade(e.log, "count_envelope", "blog %d: unrecognized count", blogID)
		return 0, nil
	}
	return n, nil
}

func (e *BlogEngine) FindArticle(ctx context.Context, blogID, articleID int64) (*models.Article, error) {
	articles, err := e.FetchBlogDetail(ctx, blogID)
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		if a.ID == articleID {
			a := a
			return &a, nil
		}
	}
	return nil, ErrArticleNotFound
}

// SearchArticles keeps articles whose folded title or summary contains the folded query
// and, when tag is set, that carry the tag. The input is not modified.
func (e *BlogEngine) SearchArticles(articles []models.Article, query, tag string) []models.Article {
	query = strings.TrimSpace(query)
	tag = strings.TrimSpace(tag)

	found := []models.Article{}
	for _, a := range articles {
		if tag != "" && !hasTag(a.Tags, tag) {
			continue
		}
		if query != "" &&
			!e.text.ContainsFolded(a.Title, query) &&
			!e.text.ContainsFolded(a.Summary, query) {
			continue
		}
		found = append(found, a)
	}
	return found
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
