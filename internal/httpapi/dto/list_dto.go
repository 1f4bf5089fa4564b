package dto

import (
	"time"

	"kioku/internal/httpapi/models"
)

// CreateListDTO used for POST /api/lists
type CreateListDTO struct {
	Name         string   `json:"name" binding:"required,max=255"`
	Description  *string  `json:"description,omitempty"`
	Icon         *string  `json:"icon,omitempty"`
	Color        *string  `json:"color,omitempty"`
	CoverImage   *string  `json:"cover_image,omitempty"`
	IsPublic     bool     `json:"is_public"`
	MediaItemIDs []string `json:"media_item_ids,omitempty"`
}

// UpdateListDTO used for PUT /api/lists/:id (partial updates allowed)
type UpdateListDTO struct {
	Name         *string   `json:"name,omitempty" binding:"omitempty,max=255"`
	Description  *string   `json:"description,omitempty"`
	Icon         *string   `json:"icon,omitempty"`
	Color        *string   `json:"color,omitempty"`
	CoverImage   *string   `json:"cover_image,omitempty"`
	IsPublic     *bool     `json:"is_public,omitempty"`
	MediaItemIDs *[]string `json:"media_item_ids,omitempty"`
}

type ListResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	Color       *string   `json:"color,omitempty"`
	CoverImage  *string   `json:"cover_image,omitempty"`
	IsPublic    bool      `json:"is_public"`
	ItemIDs     []string  `json:"item_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AddListItemRequest struct {
	MediaItemID string `json:"media_item_id" binding:"required,uuid"`
}

func (d CreateListDTO) ToModel() models.CustomList {
	return models.CustomList{
		Name:        d.Name,
		Description: d.Description,
		Icon:        d.Icon,
		Color:       d.Color,
		CoverImage:  d.CoverImage,
		IsPublic:    d.IsPublic,
	}
}

func (d UpdateListDTO) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if d.Name != nil {
		changes["name"] = *d.Name
	}
	if d.Description != nil {
		changes["description"] = *d.Description
	}
	if d.Icon != nil {
		changes["icon"] = *d.Icon
	}
	if d.Color != nil {
		changes["color"] = *d.Color
	}
	if d.CoverImage != nil {
		changes["cover_image"] = *d.CoverImage
	}
	if d.IsPublic != nil {
		changes["is_public"] = *d.IsPublic
	}
	return changes
}

func FromListToResponse(l models.CustomList) ListResponse {
	itemIDs := make([]string, 0, len(l.MediaItems))
	for _, m := range l.MediaItems {
		itemIDs = append(itemIDs, m.ID)
	}

	return ListResponse{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Icon:        l.Icon,
		Color:       l.Color,
		CoverImage:  l.CoverImage,
		IsPublic:    l.IsPublic,
		ItemIDs:     itemIDs,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
