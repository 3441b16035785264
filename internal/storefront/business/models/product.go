package models

import "strings"

// PublishedScopeGlobal marks a product visible on the storefront.
const PublishedScopeGlobal = "global"

type Image struct {
	Src string `json:"src"`
}

// Product is the canonical ("V2") product every handler works with.
// Tags stay a comma-joined string, as the mini app expects.
type Product struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Handle         string    `json:"handle"`
	Images         []Image   `json:"images"`
	Variants       []Variant `json:"variants"`
	Vendor         string    `json:"vendor"`
	ProductType    string    `json:"product_type"`
	Tags           string    `json:"tags"`
	PublishedScope string    `json:"published_scope"`
	BodyHTML       string    `json:"body_html"`
	BodyPlain      string    `json:"body_plain"`
	CreatedAt      string    `json:"created_at"`
	UpdatedAt      string    `json:"updated_at"`
	PublishedAt    string    `json:"published_at"`
}

// Variant prices are whole VND.
type Variant struct {
	ID                  int64  `json:"id"`
	ProductID           int64  `json:"product_id"`
	Title               string `json:"title"`
	Price               int64  `json:"price"`
	CompareAtPrice      int64  `json:"compare_at_price"`
	SKU                 string `json:"sku"`
	InventoryQuantity   int64  `json:"inventory_quantity"`
	InventoryManagement string `json:"inventory_management"`
	Available           bool   `json:"available"`
}

// DefaultVariant is the first variant, the one shown in listings.
func (p Product) DefaultVariant() (Variant, bool) {
	if len(p.Variants) == 0 {
		return Variant{}, false
	}
	return p.Variants[0], true
}

func (p Product) Price() int64 {
	v, _ := p.DefaultVariant()
	return v.Price
}

func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Src
}

// IsVisible treats an empty scope as visible; only an explicit other scope hides a product.
func (p Product) IsVisible() bool {
	return p.PublishedScope == "" || p.PublishedScope == PublishedScopeGlobal
}

func (p Product) TagList() []string {
	tags := []string{}
	for _, tag := range strings.Split(p.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (p Product) HasTag(tag string) bool {
	for _, t := range p.TagList() {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ProductPage is one page of the upstream listing. Total and TotalPages are set
// only when the upstream sent them as numbers.
type ProductPage struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
	Total      *int      `json:"total,omitempty"`
	TotalPages *int      `json:"total_pages,omitempty"`
}

// HasMore uses total_pages when known, otherwise guesses from a full page.
func (p ProductPage) HasMore() bool {
	if p.TotalPages != nil {
		return p.Page < *p.TotalPages
	}
	return len(p.Products) >= p.PerPage
}
