// AngelaMos | 2026
// entity.go

package post

import (
	"time"
)

const (
	TypeInsights      = "insights"
	TypeAchievements  = "achievements"
	TypeTrends        = "trends"
	TypeAnnouncements = "announcements"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type Post struct {
	ID         int64     `db:"id"`
	AuthorID   int64     `db:"author_id"`
	Title      string    `db:"title"`
	Content    string    `db:"content"`
	PostType   string    `db:"post_type"`
	IsFundable bool      `db:"is_fundable"`
	LikesCount int64     `db:"likes_count"`
	ViewsCount int64     `db:"views_count"`
	IsPublic   bool      `db:"is_public"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
