package models

type Blog struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Handle    string `json:"handle"`
	Tags      string `json:"tags"`
	CreatedAt string `json:"created_at"`
}

type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Article is the canonical article. Unlike Product, Tags is a list.
type Article struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Handle      string   `json:"handle"`
	Content     string   `json:"content"`
	Summary     string   `json:"summary"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Author      Author   `json:"author"`
	BlogID      int64    `json:"blog_id"`
	BlogHandle  string   `json:"blog_handle"`
	Published   bool     `json:"published"`
	PublishedAt string   `json:"published_at"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	Views       int64    `json:"views"`
	ReadTime    int      `json:"readTime"`
}
