package post

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/cliptube/backend/internal/entity"
	postDto "github.com/cliptube/backend/internal/modules/post/dto"
	postRepo "github.com/cliptube/backend/internal/modules/post/repository"
	"github.com/cliptube/backend/pkg/apperror"
	"github.com/cliptube/backend/pkg/logger"
	"github.com/cliptube/backend/pkg/query"
)

type PostService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *postDto.CreatePostRequest) (*entity.Post, error)
	ListForChannel(ctx context.Context, channelID uuid.UUID, page, pageSize int) (*query.Page[postDto.PostRow], error)
	Update(ctx context.Context, id, ownerID uuid.UUID, req *postDto.UpdatePostRequest) (*entity.Post, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type postService struct {
	postRepo  postRepo.PostRepository
	sanitizer *bluemonday.Policy
}

func NewPostService(posts postRepo.PostRepository) PostService {
	return &postService{
		postRepo:  posts,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *postService) clean(content string) (string, error) {
	cleaned := strings.TrimSpace(s.sanitizer.Sanitize(content))
	if cleaned == "" {
		return "", apperror.New(http.StatusBadRequest, "post content is empty", nil)
	}
	return cleaned, nil
}

func (s *postService) Create(ctx context.Context, ownerID uuid.UUID, req *postDto.CreatePostRequest) (*entity.Post, error) {
	content, err := s.clean(req.Content)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) ListForChannel(ctx context.Context, channelID uuid.UUID, page, pageSize int) (*query.Page[postDto.PostRow], error) {
	return s.postRepo.ListForChannel(ctx, channelID, page, pageSize)
}

func (s *postService) Update(ctx context.Context, id, ownerID uuid.UUID, req *postDto.UpdatePostRequest) (*entity.Post, error) {
	content, err := s.clean(req.Content)
	if err != nil {
		return nil, err
	}

	return s.postRepo.UpdateOwned(ctx, id, ownerID, map[string]any{"content": content})
}

func (s *postService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.postRepo.DeleteOwned(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.postRepo.DeleteEngagementFor(ctx, id); err != nil {
		logger.L().Warn("failed to clear like edges for deleted post", zap.String("post_id", id.String()), zap.Error(err))
	}

	return nil
}
