package dto

import (
	"time"

	"kioku/internal/httpapi/models"
)

// CreateReviewDTO used for POST /api/media/:id/reviews
type CreateReviewDTO struct {
	Rating   int     `json:"rating" binding:"min=0,max=100"`
	Content  *string `json:"content,omitempty"`
	Spoilers bool    `json:"spoilers"`
}

type ReviewResponse struct {
	ID          string    `json:"id"`
	MediaItemID string    `json:"media_item_id"`
	UserID      string    `json:"user_id"`
	Rating      int       `json:"rating"`
	Content     *string   `json:"content,omitempty"`
	Spoilers    bool      `json:"spoilers"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCommentDTO used for POST /api/media/:id/comments
type CreateCommentDTO struct {
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID          string    `json:"id"`
	MediaItemID string    `json:"media_item_id"`
	UserID      string    `json:"user_id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromReviewToResponse(r models.Review) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		MediaItemID: r.MediaItemID,
		UserID:      r.UserID,
		Rating:      r.Rating,
		Content:     r.Content,
		Spoilers:    r.Spoilers,
		CreatedAt:   r.CreatedAt,
	}
}

func FromCommentToResponse(c models.Comment) CommentResponse {
	return CommentResponse{
		ID:          c.ID,
		MediaItemID: c.MediaItemID,
		UserID:      c.UserID,
		Content:     c.Content,
		CreatedAt:   c.CreatedAt,
	}
}
