package responses

import (
	"bytes"
	"encoding/json"
)

// ProductShape tells which upstream product format a payload carried.
type ProductShape int

const (
	ProductShapeUnknown ProductShape = iota
	ProductShapeHaravan
	ProductShapeLegacy
)

func (s ProductShape) String() string {
	switch s {
	case ProductShapeHaravan:
		return "haravan"
	case ProductShapeLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

type HaravanImage struct {
	ID       FlexInt    `json:"id"`
	Src      FlexString `json:"src"`
	Position FlexInt    `json:"position"`
}

// HaravanImages accepts both image objects and bare URL strings.
type HaravanImages []HaravanImage

func (h *HaravanImages) UnmarshalJSON(data []byte) error {
	*h = HaravanImages{}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	images := HaravanImages{}
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 {
			continue
		}
		switch item[0] {
		case '"':
			var src string
			if json.Unmarshal(item, &src) == nil && src != "" {
				images = append(images, HaravanImage{Src: FlexString(src)})
			}
		case '{':
			var img HaravanImage
			if json.Unmarshal(item, &img) == nil && img.Src != "" {
				images = append(images, img)
			}
		}
	}
	*h = images
	return nil
}

type HaravanVariant struct {
	ID                  FlexInt      `json:"id"`
	ProductID           FlexInt      `json:"product_id"`
	Title               FlexString   `json:"title"`
	Price               FlexInt      `json:"price"`
	CompareAtPrice      FlexInt      `json:"compare_at_price"`
	SKU                 FlexString   `json:"sku"`
	InventoryQuantity   FlexInt      `json:"inventory_quantity"`
	InventoryManagement FlexString   `json:"inventory_management"`
	Available           OptionalBool `json:"available"`
}

type HaravanProduct struct {
	ID             FlexInt          `json:"id"`
	Title          FlexString       `json:"title"`
	Handle         FlexString       `json:"handle"`
	BodyHTML       FlexString       `json:"body_html"`
	BodyPlain      FlexString       `json:"body_plain"`
	Vendor         FlexString       `json:"vendor"`
	ProductType    FlexString       `json:"product_type"`
	Tags           FlexTags         `json:"tags"`
	PublishedScope FlexString       `json:"published_scope"`
	CreatedAt      FlexString       `json:"created_at"`
	UpdatedAt      FlexString       `json:"updated_at"`
	PublishedAt    FlexString       `json:"published_at"`
	Images         HaravanImages    `json:"images"`
	Variants       []HaravanVariant `json:"variants"`
}

// LegacyProduct is the flat format older endpoints still return.
type LegacyProduct struct {
	ID            FlexInt    `json:"id"`
	Name          FlexString `json:"name"`
	Slug          FlexString `json:"slug"`
	Description   FlexString `json:"description"`
	Price         FlexInt    `json:"price"`
	OriginalPrice FlexInt    `json:"original_price"`
	Image         FlexString `json:"image"`
	Images        FlexTags   `json:"images"`
	Category      FlexString `json:"category"`
	Brand         FlexString `json:"brand"`
	Tags          FlexTags   `json:"tags"`
	Stock         FlexInt    `json:"stock"`
	SKU           FlexString `json:"sku"`
	CreatedAt     FlexString `json:"created_at"`
	UpdatedAt     FlexString `json:"updated_at"`
}

// RawProduct holds exactly one of Haravan or Legacy, selected by Shape.
type RawProduct struct {
	Shape   ProductShape
	Haravan *HaravanProduct
	Legacy  *LegacyProduct
}

func (p *RawProduct) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch {
	case has(probe, "variants") || has(probe, "title") || has(probe, "body_html"):
		var hp HaravanProduct
		if err := json.Unmarshal(data, &hp); err != nil {
			return err
		}
		*p = RawProduct{Shape: ProductShapeHaravan, Haravan: &hp}
	case has(probe, "name"):
		var lp LegacyProduct
		if err := json.Unmarshal(data, &lp); err != nil {
			return err
		}
		*p = RawProduct{Shape: ProductShapeLegacy, Legacy: &lp}
	default:
		*p = RawProduct{Shape: ProductShapeUnknown}
	}
	return nil
}

func has(obj map[string]json.RawMessage, key string) bool {
	v, ok := obj[key]
	return ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
