// AngelaMos | 2026
// service.go

package post

import (
	"context"
	"fmt"

	"github.com/fundlift/backend/internal/core"
	"github.com/fundlift/backend/internal/donation"
	"github.com/fundlift/backend/internal/middleware"
)

type Service struct {
	repo     Repository
	students middleware.StudentChecker
}

func NewService(repo Repository, students middleware.StudentChecker) *Service {
	return &Service{repo: repo, students: students}
}

// Create publishes a post. is_fundable is never taken from the request; it
// is recomputed from the author's live verified-student status.
func (s *Service) Create(
	ctx context.Context,
	authorID int64,
	req CreatePostRequest,
) (*PostResponse, error) {
	fundable, err := s.students.IsVerifiedStudent(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	status := req.Status
	if status == "" {
		status = StatusPublished
	}

	post := &Post{
		AuthorID:   authorID,
		Title:      req.Title,
		Content:    req.Content,
		PostType:   req.PostType,
		IsFundable: fundable,
		IsPublic:   isPublic,
		Status:     status,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	return toPostResponse(post), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*PostResponse, error) {
	post, err := s.repo.GetByIDAndBumpViews(ctx, id)
	if err != nil {
		return nil, err
	}

	return toPostResponse(post), nil
}

func (s *Service) Update(
	ctx context.Context,
	requesterID int64,
	isAdmin bool,
	id int64,
	req UpdatePostRequest,
) (*PostResponse, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != requesterID && !isAdmin {
		return nil, fmt.Errorf("update post: %w", core.ErrForbidden)
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.PostType != nil {
		post.PostType = *req.PostType
	}
	if req.IsPublic != nil {
		post.IsPublic = *req.IsPublic
	}
	if req.Status != nil {
		post.Status = *req.Status
	}

	// The author's standing may have changed since the last write.
	fundable, err := s.students.IsVerifiedStudent(ctx, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	post.IsFundable = fundable

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	return toPostResponse(post), nil
}

func (s *Service) Delete(
	ctx context.Context,
	requesterID int64,
	isAdmin bool,
	id int64,
) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if post.AuthorID != requesterID && !isAdmin {
		return fmt.Errorf("delete post: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListPostsParams,
) ([]PostResponse, int, error) {
	params.Normalize()

	posts, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	return toPostResponseList(posts), total, nil
}

func (s *Service) DonationTarget(
	ctx context.Context,
	id int64,
) (*donation.TargetInfo, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &donation.TargetInfo{
		Kind:     donation.TargetPost,
		OwnerID:  post.AuthorID,
		Fundable: post.IsFundable,
	}, nil
}

var _ donation.TargetSource = (*Service)(nil)
