package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cliptube/backend/internal/entity"
	playlistDto "github.com/cliptube/backend/internal/modules/playlist/dto"
	"github.com/cliptube/backend/pkg/apperror"
	"github.com/cliptube/backend/pkg/database"
	"github.com/cliptube/backend/pkg/query"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *entity.Playlist) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Playlist, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (*query.Page[playlistDto.PlaylistRow], error)
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch map[string]any) (*entity.Playlist, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error

	AddVideo(ctx context.Context, playlistID, ownerID, videoID uuid.UUID) (bool, error)
	RemoveVideo(ctx context.Context, playlistID, ownerID, videoID uuid.UUID) (bool, error)
	Videos(ctx context.Context, playlistID uuid.UUID, publishedOnly bool, page, pageSize int) (*query.Page[playlistDto.PlaylistVideoRow], error)
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *entity.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

func (r *playlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Playlist, error) {
	var playlist entity.Playlist
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&playlist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFoundOrForbidden
		}
		return nil, err
	}
	return &playlist, nil
}

// ListForOwner aggregates the member count per playlist, which puts it
// outside the listing engine; the pagination meta is built the same way.
func (r *playlistRepository) ListForOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (*query.Page[playlistDto.PlaylistRow], error) {
	page, pageSize = query.Spec{Page: page, PageSize: pageSize}.Clamp()

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Playlist{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]playlistDto.PlaylistRow, 0, pageSize)
	if total > 0 {
		err := r.db.WithContext(ctx).Model(&entity.Playlist{}).
			Select("playlists.id, playlists.name, playlists.description, playlists.created_at, playlists.updated_at, COUNT(playlist_videos.id) AS video_count").
			Joins("LEFT JOIN playlist_videos ON playlist_videos.playlist_id = playlists.id").
			Where("playlists.owner_id = ?", ownerID).
			Group("playlists.id").
			Order("playlists.created_at DESC").
			Order("playlists.id ASC").
			Offset((page - 1) * pageSize).
			Limit(pageSize).
			Scan(&items).Error
		if err != nil {
			return nil, err
		}
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &query.Page[playlistDto.PlaylistRow]{
		Items: items,
		Meta: query.Meta{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			PageSize:    pageSize,
			HasMatches:  total > 0,
		},
	}, nil
}

func (r *playlistRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch map[string]any) (*entity.Playlist, error) {
	return database.UpdateOwned[entity.Playlist](ctx, r.db, id, ownerID, patch)
}

func (r *playlistRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	return database.DeleteOwned[entity.Playlist](ctx, r.db, id, ownerID)
}

// AddVideo appends the video in one INSERT ... SELECT. The SELECT only
// yields a row when the caller owns the playlist and the video exists,
// so the ownership gate and the append are a single statement; the
// unique index absorbs duplicates via ON CONFLICT DO NOTHING. Returns
// whether a row was inserted.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, ownerID, videoID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		INSERT INTO playlist_videos (playlist_id, video_id, position, created_at)
		SELECT p.id, v.id,
		       COALESCE((SELECT MAX(pv.position) + 1 FROM playlist_videos pv WHERE pv.playlist_id = p.id), 0),
		       NOW()
		FROM playlists p
		JOIN videos v ON v.id = ?
		WHERE p.id = ? AND p.owner_id = ?
		ON CONFLICT (playlist_id, video_id) DO NOTHING`,
		videoID, playlistID, ownerID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RemoveVideo deletes the membership row with the ownership gate inside
// the same DELETE. Returns whether a row was removed.
func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, ownerID, videoID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		DELETE FROM playlist_videos
		USING playlists
		WHERE playlist_videos.playlist_id = playlists.id
		  AND playlists.id = ? AND playlists.owner_id = ?
		  AND playlist_videos.video_id = ?`,
		playlistID, ownerID, videoID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *playlistRepository) Videos(ctx context.Context, playlistID uuid.UUID, publishedOnly bool, page, pageSize int) (*query.Page[playlistDto.PlaylistVideoRow], error) {
	spec := query.Spec{
		Filters: []query.Filter{
			{Column: "playlist_videos.playlist_id", Op: query.OpEq, Value: playlistID},
		},
		Joins: []query.Join{
			{
				Table: "videos",
				On:    "videos.id = playlist_videos.video_id",
				Select: []string{
					"videos.id AS video_id",
					"videos.title AS title",
					"videos.thumbnail_url AS thumbnail_url",
					"videos.duration AS duration",
					"videos.views AS views",
				},
			},
			{
				Table: "users",
				On:    "users.id = videos.owner_id",
				Select: []string{
					"users.id AS owner_id",
					"users.username AS owner_username",
				},
			},
		},
		Select: []string{
			"playlist_videos.position AS position",
		},
		Sort:     query.Sort{Column: "playlist_videos.position"},
		TieBreak: "playlist_videos.id",
		Page:     page,
		PageSize: pageSize,
	}

	if publishedOnly {
		spec.Filters = append(spec.Filters, query.Filter{Column: "videos.is_published", Op: query.OpEq, Value: true})
	}

	return query.Run[playlistDto.PlaylistVideoRow](ctx, r.db, &entity.PlaylistVideo{}, spec)
}
