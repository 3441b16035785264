package parse

import (
	"storefront_api/internal/storefront/business/dto/responses"
	"storefront_api/internal/storefront/business/models"
	"storefront_api/pkg/business/service"
)

const (
	DefaultAuthorName = "Admin"
	SummaryLength     = 160
)

type ArticleParser interface {
	Article(raw responses.RawArticle) models.Article
	Articles(raw []responses.RawArticle) []models.Article
	Blog(raw responses.RawBlog) models.Blog
}

// ArticleEngine normalizes blog content. Every field has a fixed fallback order
// over the key names different upstream versions used.
type ArticleEngine struct {
	text service.ITextService
}

func NewArticleEngine(text service.ITextService) *ArticleEngine {
	if text == nil {
		text = service.NewTextService()
	}
	return &ArticleEngine{text: text}
}

func (e *ArticleEngine) Article(raw responses.RawArticle) models.Article {
	content := firstNonEmpty(raw.BodyHTML.String(), raw.Content.String(), raw.Excerpt.String())

	return models.Article{
		ID:          raw.ID.Int64(),
		Title:       raw.Title.String(),
		Handle:      raw.Handle.String(),
		Content:     content,
		Summary:     e.summary(raw, content),
		Image:       articleImage(raw),
		Tags:        append([]string{}, raw.Tags...),
		Author:      articleAuthor(raw),
		BlogID:      raw.BlogID.Int64(),
		BlogHandle:  raw.BlogHandle.String(),
		Published:   isPublished(raw),
		PublishedAt: raw.PublishedAt.String(),
		CreatedAt:   raw.CreatedAt.String(),
		UpdatedAt:   raw.UpdatedAt.String(),
		Views:       raw.Views.Int64(),
		ReadTime:    e.text.ReadTime(content),
	}
}

// Articles keeps only published articles, in upstream order.
func (e *ArticleEngine) Articles(raw []responses.RawArticle) []models.Article {
	articles := make([]models.Article, 0, len(raw))
	for _, r := range raw {
		if a := e.Article(r); a.Published {
			articles = append(articles, a)
		}
	}
	return articles
}

func (e *ArticleEngine) Blog(raw responses.RawBlog) models.Blog {
	return models.Blog{
		ID:        raw.ID.Int64(),
		Title:     raw.Title.String(),
		Handle:    raw.Handle.String(),
		Tags:      raw.Tags.Joined(),
		CreatedAt: raw.CreatedAt.String(),
	}
}

func (e *ArticleEngine) summary(raw responses.RawArticle, content string) string {
	if s := firstNonEmpty(raw.SummaryHTML.String(), raw.Summary.String()); s != "" {
		return s
	}
	plain := e.text.RemoveTags(content)
	if s := e.text.ReduceToLength(plain, SummaryLength); s != "" || plain == "" {
		return s
	}
	// a single word longer than the limit
	runes := []rune(plain)
	if len(runes) > SummaryLength {
		runes = runes[:SummaryLength]
	}
	return string(runes)
}

func articleImage(raw responses.RawArticle) string {
	switch raw.Image.Kind {
	case responses.ImageObject, responses.ImageString:
		if raw.Image.Src != "" {
			return raw.Image.Src
		}
	}
	return raw.FeaturedImage.String()
}

func articleAuthor(raw responses.RawArticle) models.Author {
	switch raw.Author.Kind {
	case responses.AuthorString:
		name := raw.Author.Name
		if name == "" {
			name = DefaultAuthorName
		}
		return models.Author{Name: name, Avatar: raw.AuthorAvatar.String()}
	case responses.AuthorObject:
		obj := raw.Author.Object
		return models.Author{
			Name:   firstNonEmpty(obj.Name.String(), obj.DisplayName.String(), DefaultAuthorName),
			Avatar: firstNonEmpty(obj.Avatar.String(), obj.Image.String()),
		}
	default:
		return models.Author{
			Name:   firstNonEmpty(raw.AuthorName.String(), raw.UserName.String(), DefaultAuthorName),
			Avatar: raw.AuthorAvatar.String(),
		}
	}
}

// isPublished: an explicit boolean wins, otherwise a non-empty published_at.
func isPublished(raw responses.RawArticle) bool {
	if raw.Published.Set {
		return raw.Published.Value
	}
	return raw.PublishedAt != ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
