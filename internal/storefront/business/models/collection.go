package models

type Collection struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	BodyHTML    string `json:"body_html"`
	Image       string `json:"image"`
	PublishedAt string `json:"published_at"`
}

// Collect links one product to one collection.
type Collect struct {
	ID           int64 `json:"id"`
	ProductID    int64 `json:"product_id"`
	CollectionID int64 `json:"collection_id"`
	Position     int64 `json:"position"`
}
