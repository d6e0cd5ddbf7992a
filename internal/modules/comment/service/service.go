package comment

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/cliptube/backend/internal/entity"
	commentDto "github.com/cliptube/backend/internal/modules/comment/dto"
	commentRepo "github.com/cliptube/backend/internal/modules/comment/repository"
	videoRepo "github.com/cliptube/backend/internal/modules/video/repository"
	"github.com/cliptube/backend/pkg/apperror"
	"github.com/cliptube/backend/pkg/logger"
	"github.com/cliptube/backend/pkg/query"
)

type CommentService interface {
	Add(ctx context.Context, videoID, ownerID uuid.UUID, req *commentDto.AddCommentRequest) (*entity.Comment, error)
	ListForVideo(ctx context.Context, videoID uuid.UUID, page, pageSize int) (*query.Page[commentDto.CommentRow], error)
	Update(ctx context.Context, id, ownerID uuid.UUID, req *commentDto.UpdateCommentRequest) (*entity.Comment, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type commentService struct {
	commentRepo commentRepo.CommentRepository
	videoRepo   videoRepo.VideoRepository
	sanitizer   *bluemonday.Policy
}

func NewCommentService(comments commentRepo.CommentRepository, videos videoRepo.VideoRepository) CommentService {
	return &commentService{
		commentRepo: comments,
		videoRepo:   videos,
		sanitizer:   bluemonday.UGCPolicy(),
	}
}

// clean strips disallowed markup and collapses whitespace. A comment
// that is empty after cleaning is rejected as invalid input.
func (s *commentService) clean(content string) (string, error) {
	cleaned := strings.TrimSpace(s.sanitizer.Sanitize(content))
	if cleaned == "" {
		return "", apperror.New(http.StatusBadRequest, "comment content is empty", nil)
	}
	return cleaned, nil
}

func (s *commentService) Add(ctx context.Context, videoID, ownerID uuid.UUID, req *commentDto.AddCommentRequest) (*entity.Comment, error) {
	content, err := s.clean(req.Content)
	if err != nil {
		return nil, err
	}

	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != ownerID {
		return nil, apperror.ErrNotFoundOrForbidden
	}

	comment := &entity.Comment{
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) ListForVideo(ctx context.Context, videoID uuid.UUID, page, pageSize int) (*query.Page[commentDto.CommentRow], error) {
	return s.commentRepo.ListForVideo(ctx, videoID, page, pageSize)
}

func (s *commentService) Update(ctx context.Context, id, ownerID uuid.UUID, req *commentDto.UpdateCommentRequest) (*entity.Comment, error) {
	content, err := s.clean(req.Content)
	if err != nil {
		return nil, err
	}

	return s.commentRepo.UpdateOwned(ctx, id, ownerID, map[string]any{"content": content})
}

func (s *commentService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.commentRepo.DeleteOwned(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteEngagementFor(ctx, id); err != nil {
		logger.L().Warn("failed to clear like edges for deleted comment", zap.String("comment_id", id.String()), zap.Error(err))
	}

	return nil
}
