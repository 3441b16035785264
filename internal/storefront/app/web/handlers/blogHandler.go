package handlers

import (
	"net/http"

	"storefront_api/internal/storefront/business/services/get"
	"storefront_api/pkg/logger"
)

type BlogHandler struct {
	blogs *get.BlogEngine
	log   logger.Logger
}

func NewBlogHandler(blogs *get.BlogEngine, log logger.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, log: logger.OrDiscard(log)}
}

func (h *BlogHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.FetchBlogs(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, map[string]interface{}{"blogs": blogs})
}

// ListArticles returns published articles, optionally narrowed by q and tag.
func (h *BlogHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	blogID, err := idParam(r, "blogID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	articles, err := h.blogs.FetchBlogDetail(r.Context(), blogID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	articles = h.blogs.SearchArticles(articles, r.URL.Query().Get("q"), r.URL.Query().Get("tag"))
	writeJSON(w, h.log, http.StatusOK, map[string]interface{}{"blog_id": blogID, "articles": articles})
}

func (h *BlogHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	blogID, err := idParam(r, "blogID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	articleID, err := idParam(r, "articleID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	article, err := h.blogs.FindArticle(r.Context(), blogID, articleID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, map[string]interface{}{"article": article})
}

func (h *BlogHandler) CountArticles(w http.ResponseWriter, r *http.Request) {
	blogID, err := idParam(r, "blogID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	count, err := h.blogs.FetchArticleCount(r.Context(), blogID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, map[string]interface{}{"blog_id": blogID, "count": count})
}
