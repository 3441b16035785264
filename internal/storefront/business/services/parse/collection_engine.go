package parse

import (
	"storefront_api/internal/storefront/business/dto/responses"
	"storefront_api/internal/storefront/business/models"
)

type CollectionParser interface {
	Collection(raw responses.RawCollection) models.Collection
	Collect(raw responses.RawCollect) models.Collect
}

// CollectionEngine maps collections and their product memberships.
type CollectionEngine struct{}

func NewCollectionEngine() *CollectionEngine {
	return &CollectionEngine{}
}

func (e *CollectionEngine) Collection(raw responses.RawCollection) models.Collection {
	return models.Collection{
		ID:          raw.ID.Int64(),
		Title:       raw.Title.String(),
		Handle:      raw.Handle.String(),
		BodyHTML:    raw.BodyHTML.String(),
		Image:       raw.Image.Src,
		PublishedAt: raw.PublishedAt.String(),
	}
}

func (e *CollectionEngine) Collect(raw responses.RawCollect) models.Collect {
	return models.Collect{
		ID:           raw.ID.Int64(),
		ProductID:    raw.ProductID.Int64(),
		CollectionID: raw.CollectionID.Int64(),
		Position:     raw.Position.Int64(),
	}
}
