package search

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/cliptube/backend/internal/entity"
	"github.com/cliptube/backend/pkg/logger"
)

const videoIndex = "videos"

// SearchService keeps a Meilisearch index of published videos in step
// with the database. Indexing is best-effort: the database row is the
// source of truth, so index failures are logged, never propagated.
type SearchService interface {
	IndexVideo(video *entity.Video)
	RemoveVideo(id string)
	SearchVideos(q string, page, pageSize int) ([]VideoHit, int64, error)
}

type VideoHit struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Duration     float64 `json:"duration"`
	Views        int64   `json:"views"`
	CreatedAt    int64   `json:"created_at"`
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	sortable := []string{"created_at", "views"}
	if _, err := s.client.Index(videoIndex).UpdateSortableAttributes(&sortable); err != nil {
		logger.L().Warn("failed to update videos sortable attributes", zap.Error(err))
	}

	searchable := []string{"title", "description"}
	if _, err := s.client.Index(videoIndex).UpdateSearchableAttributes(&searchable); err != nil {
		logger.L().Warn("failed to update videos searchable attributes", zap.Error(err))
	}
}

func (s *searchService) cleanForIndex(content string) string {
	sanitized := s.sanitizer.Sanitize(content)
	clean := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(clean), " ")
}

func (s *searchService) IndexVideo(video *entity.Video) {
	if !video.IsPublished {
		// Unpublished videos must not be discoverable.
		s.RemoveVideo(video.ID.String())
		return
	}

	doc := VideoHit{
		ID:           video.ID.String(),
		Title:        video.Title,
		Description:  s.cleanForIndex(video.Description),
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		Views:        video.Views,
		CreatedAt:    video.CreatedAt.Unix(),
	}

	primaryKey := "id"
	if _, err := s.client.Index(videoIndex).AddDocuments([]VideoHit{doc}, &primaryKey); err != nil {
		logger.L().Warn("failed to index video", zap.String("video_id", doc.ID), zap.Error(err))
	}
}

func (s *searchService) RemoveVideo(id string) {
	if _, err := s.client.Index(videoIndex).DeleteDocument(id); err != nil {
		logger.L().Warn("failed to remove video from index", zap.String("video_id", id), zap.Error(err))
	}
}

func (s *searchService) SearchVideos(q string, page, pageSize int) ([]VideoHit, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	resp, err := s.client.Index(videoIndex).Search(q, &meilisearch.SearchRequest{
		Offset: int64((page - 1) * pageSize),
		Limit:  int64(pageSize),
	})
	if err != nil {
		return nil, 0, err
	}

	hits := make([]VideoHit, 0, len(resp.Hits))
	for _, raw := range resp.Hits {
		b, err := json.Marshal(raw)
		if err != nil {
			continue
		}
		var hit VideoHit
		if err := json.Unmarshal(b, &hit); err != nil {
			continue
		}
		hits = append(hits, hit)
	}
	return hits, resp.EstimatedTotalHits, nil
}
