package parse

import (
	"storefront_api/internal/storefront/business/dto/responses"
	"storefront_api/internal/storefront/business/models"
	"storefront_api/pkg/business/service"
)

// DefaultVariantTitle names the single variant synthesized for legacy products.
const DefaultVariantTitle = "Default Title"

type ProductParser interface {
	Product(raw responses.RawProduct) (models.Product, bool)
	Products(raw []responses.RawProduct) ([]models.Product, int)
}

// ProductEngine converts every known upstream product shape to the canonical product.
type ProductEngine struct {
	text service.ITextService
}

func NewProductEngine(text service.ITextService) *ProductEngine {
	if text == nil {
		text = service.NewTextService()
	}
	return &ProductEngine{text: text}
}

// Product returns false for a shape it does not recognize.
func (e *ProductEngine) Product(raw responses.RawProduct) (models.Product, bool) {
	switch raw.Shape {
	case responses.ProductShapeHaravan:
		if raw.Haravan == nil {
			return models.Product{}, false
		}
		return e.fromHaravan(*raw.Haravan), true
	case responses.ProductShapeLegacy:
		if raw.Legacy == nil {
			return models.Product{}, false
		}
		return e.fromLegacy(*raw.Legacy), true
	default:
		return models.Product{}, false
	}
}

// Products maps a batch and returns how many entries were dropped as unrecognized.
func (e *ProductEngine) Products(raw []responses.RawProduct) ([]models.Product, int) {
	products := make([]models.Product, 0, len(raw))
	dropped := 0
	for _, r := range raw {
		p, ok := e.Product(r)
		if !ok {
			dropped++
			continue
		}
		products = append(products, p)
	}
	return products, dropped
}

func (e *ProductEngine) fromHaravan(hp responses.HaravanProduct) models.Product {
	id := hp.ID.Int64()

	images := make([]models.Image, 0, len(hp.Images))
	for _, img := range hp.Images {
		images = append(images, models.Image{Src: img.Src.String()})
	}

	variants := make([]models.Variant, 0, len(hp.Variants))
	for _, v := range hp.Variants {
		productID := v.ProductID.Int64()
		if productID == 0 {
			productID = id
		}
		available := v.InventoryQuantity > 0 || v.InventoryManagement == ""
		if v.Available.Set {
			available = v.Available.Value
		}
		variants = append(variants, models.Variant{
			ID:                  v.ID.Int64(),
			ProductID:           productID,
			Title:               v.Title.String(),
			Price:               v.Price.Int64(),
			CompareAtPrice:      v.CompareAtPrice.Int64(),
			SKU:                 v.SKU.String(),
			InventoryQuantity:   v.InventoryQuantity.Int64(),
			InventoryManagement: v.InventoryManagement.String(),
			Available:           available,
		})
	}

	bodyHTML, bodyPlain := hp.BodyHTML.String(), hp.BodyPlain.String()
	if bodyPlain == "" {
		bodyPlain = e.text.RemoveTags(bodyHTML)
	}
	if bodyHTML == "" {
		bodyHTML = bodyPlain
	}

	return models.Product{
		ID:             id,
		Title:          hp.Title.String(),
		Handle:         hp.Handle.String(),
		Images:         images,
		Variants:       variants,
		Vendor:         hp.Vendor.String(),
		ProductType:    hp.ProductType.String(),
		Tags:           hp.Tags.Joined(),
		PublishedScope: hp.PublishedScope.String(),
		BodyHTML:       bodyHTML,
		BodyPlain:      bodyPlain,
		CreatedAt:      hp.CreatedAt.String(),
		UpdatedAt:      hp.UpdatedAt.String(),
		PublishedAt:    hp.PublishedAt.String(),
	}
}

// fromLegacy builds a single-variant product; legacy payloads are always storefront-visible.
func (e *ProductEngine) fromLegacy(lp responses.LegacyProduct) models.Product {
	id := lp.ID.Int64()

	images := []models.Image{}
	seen := map[string]struct{}{}
	for _, src := range append([]string{lp.Image.String()}, lp.Images...) {
		if src == "" {
			continue
		}
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		images = append(images, models.Image{Src: src})
	}

	stock := lp.Stock.Int64()
	variant := models.Variant{
		ID:                id,
		ProductID:         id,
		Title:             DefaultVariantTitle,
		Price:             lp.Price.Int64(),
		CompareAtPrice:    lp.OriginalPrice.Int64(),
		SKU:               lp.SKU.String(),
		InventoryQuantity: stock,
		Available:         stock > 0,
	}

	return models.Product{
		ID:             id,
		Title:          lp.Name.String(),
		Handle:         lp.Slug.String(),
		Images:         images,
		Variants:       []models.Variant{variant},
		Vendor:         lp.Brand.String(),
		ProductType:    lp.Category.String(),
		Tags:           lp.Tags.Joined(),
		PublishedScope: models.PublishedScopeGlobal,
		BodyHTML:       lp.Description.String(),
		BodyPlain:      e.text.RemoveTags(lp.Description.String()),
		CreatedAt:      lp.CreatedAt.String(),
		UpdatedAt:      lp.UpdatedAt.String(),
		PublishedAt:    lp.CreatedAt.String(),
	}
}
