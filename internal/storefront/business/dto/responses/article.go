package responses

import (
	"bytes"
	"encoding/json"
)

// AuthorKind reports how the upstream encoded an article's author.
type AuthorKind int

const (
	AuthorAbsent AuthorKind = iota
	AuthorString
	AuthorObject
)

type AuthorFields struct {
	Name        FlexString `json:"name"`
	DisplayName FlexString `json:"display_name"`
	Avatar      FlexString `json:"avatar"`
	Image       FlexString `json:"image"`
}

// RawAuthor is either a bare name, an object, or nothing.
type RawAuthor struct {
	Kind   AuthorKind
	Name   string
	Object AuthorFields
}

func (a *RawAuthor) UnmarshalJSON(data []byte) error {
	*a = RawAuthor{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var name string
		if json.Unmarshal(data, &name) == nil {
			*a = RawAuthor{Kind: AuthorString, Name: name}
		}
	case '{':
		var fields AuthorFields
		if json.Unmarshal(data, &fields) == nil {
			*a = RawAuthor{Kind: AuthorObject, Object: fields}
		}
	}
	return nil
}

// ImageKind reports how the upstream encoded an article's image.
type ImageKind int

const (
	ImageAbsent ImageKind = iota
	ImageString
	ImageObject
)

type RawImage struct {
	Kind ImageKind
	Src  string
}

func (i *RawImage) UnmarshalJSON(data []byte) error {
	*i = RawImage{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var src string
		if json.Unmarshal(data, &src) == nil {
			*i = RawImage{Kind: ImageString, Src: src}
		}
	case '{':
		var obj struct {
			Src FlexString `json:"src"`
		}
		if json.Unmarshal(data, &obj) == nil {
			*i = RawImage{Kind: ImageObject, Src: obj.Src.String()}
		}
	}
	return nil
}

// RawArticle carries every key name any upstream version has used for an article.
type RawArticle struct {
	ID            FlexInt      `json:"id"`
	Title         FlexString   `json:"title"`
	Handle        FlexString   `json:"handle"`
	BodyHTML      FlexString   `json:"body_html"`
	Content       FlexString   `json:"content"`
	Excerpt       FlexString   `json:"excerpt"`
	SummaryHTML   FlexString   `json:"summary_html"`
	Summary       FlexString   `json:"summary"`
	Image         RawImage     `json:"image"`
	FeaturedImage FlexString   `json:"featured_image"`
	Tags          FlexTags     `json:"tags"`
	Author        RawAuthor    `json:"author"`
	AuthorName    FlexString   `json:"author_name"`
	UserName      FlexString   `json:"user_name"`
	AuthorAvatar  FlexString   `json:"author_avatar"`
	BlogID        FlexInt      `json:"blog_id"`
	BlogHandle    FlexString   `json:"blog_handle"`
	Published     OptionalBool `json:"published"`
	PublishedAt   FlexString   `json:"published_at"`
	CreatedAt     FlexString   `json:"created_at"`
	UpdatedAt     FlexString   `json:"updated_at"`
	Views         FlexInt      `json:"views"`
}

type RawBlog struct {
	ID        FlexInt    `json:"id"`
	Title     FlexString `json:"title"`
	Handle    FlexString `json:"handle"`
	Tags      FlexTags   `json:"tags"`
	CreatedAt FlexString `json:"created_at"`
}

type RawCollection struct {
	ID          FlexInt    `json:"id"`
	Title       FlexString `json:"title"`
	Handle      FlexString `json:"handle"`
	BodyHTML    FlexString `json:"body_html"`
	Image       RawImage   `json:"image"`
	PublishedAt FlexString `json:"published_at"`
}

type RawCollect struct {
	ID           FlexInt `json:"id"`
	ProductID    FlexInt `json:"product_id"`
	CollectionID FlexInt `json:"collection_id"`
	Position     FlexInt `json:"position"`
}
