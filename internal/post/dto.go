// AngelaMos | 2026
// dto.go

package post

import (
	"time"
)

type CreatePostRequest struct {
	Title    string `json:"title"     validate:"required,min=3,max=200"`
	Content  string `json:"content"   validate:"required,min=1"`
	PostType string `json:"post_type" validate:"required,oneof=insights achievements trends announcements"`
	IsPublic *bool  `json:"is_public"`
	Status   string `json:"status"    validate:"omitempty,oneof=draft published"`
}

type UpdatePostRequest struct {
	Title    *string `json:"title"     validate:"omitempty,min=3,max=200"`
	Content  *string `json:"content"   validate:"omitempty,min=1"`
	PostType *string `json:"post_type" validate:"omitempty,oneof=insights achievements trends announcements"`
	IsPublic *bool   `json:"is_public"`
	Status   *string `json:"status"    validate:"omitempty,oneof=draft published archived"`
}

type PostResponse struct {
	ID         int64     `json:"id"`
	AuthorID   int64     `json:"author_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	PostType   string    `json:"post_type"`
	IsFundable bool      `json:"is_fundable"`
	LikesCount int64     `json:"likes_count"`
	ViewsCount int64     `json:"views_count"`
	IsPublic   bool      `json:"is_public"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListPostsParams struct {
	Page     int
	PageSize int
	PostType string
	AuthorID int64
}

func (p *ListPostsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *ListPostsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func toPostResponse(p *Post) *PostResponse {
	return &PostResponse{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		Title:      p.Title,
		Content:    p.Content,
		PostType:   p.PostType,
		IsFundable: p.IsFundable,
		LikesCount: p.LikesCount,
		ViewsCount: p.ViewsCount,
		IsPublic:   p.IsPublic,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toPostResponseList(posts []Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, *toPostResponse(&posts[i]))
	}
	return out
}
