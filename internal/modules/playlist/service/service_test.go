package playlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliptube/backend/internal/entity"
	playlistDto "github.com/cliptube/backend/internal/modules/playlist/dto"
	videoDto "github.com/cliptube/backend/internal/modules/video/dto"
	videoRepo "github.com/cliptube/backend/internal/modules/video/repository"
	"github.com/cliptube/backend/pkg/apperror"
	"github.com/cliptube/backend/pkg/query"
)

type fakePlaylistRepo struct {
	playlists map[uuid.UUID]*entity.Playlist
	members   map[uuid.UUID][]uuid.UUID

	lastPublishedOnly bool
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{
		playlists: map[uuid.UUID]*entity.Playlist{},
		members:   map[uuid.UUID][]uuid.UUID{},
	}
}

func (f *fakePlaylistRepo) Create(_ context.Context, p *entity.Playlist) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	cp := *p
	f.playlists[p.ID] = &cp
	return nil
}

func (f *fakePlaylistRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return nil, apperror.ErrNotFoundOrForbidden
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlaylistRepo) ListForOwner(_ context.Context, _ uuid.UUID, _, _ int) (*query.Page[playlistDto.PlaylistRow], error) {
	return &query.Page[playlistDto.PlaylistRow]{}, nil
}

func (f *fakePlaylistRepo) UpdateOwned(_ context.Context, id, ownerID uuid.UUID, patch map[string]any) (*entity.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok || p.OwnerID != ownerID {
		return nil, apperror.ErrNotFoundOrForbidden
	}
	if name, ok := patch["name"].(string); ok {
		p.Name = name
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlaylistRepo) DeleteOwned(_ context.Context, id, ownerID uuid.UUID) error {
	p, ok := f.playlists[id]
	if !ok || p.OwnerID != ownerID {
		return apperror.ErrNotFoundOrForbidden
	}
	delete(f.playlists, id)
	return nil
}

// AddVideo mirrors the gated INSERT: zero rows when the playlist is not
// owned by the caller or the video is already a member.
func (f *fakePlaylistRepo) AddVideo(_ context.Context, playlistID, ownerID, videoID uuid.UUID) (bool, error) {
	p, ok := f.playlists[playlistID]
	if !ok || p.OwnerID != ownerID {
		return false, nil
	}
	for _, member := range f.members[playlistID] {
		if member == videoID {
			return false, nil
		}
	}
	f.members[playlistID] = append(f.members[playlistID], videoID)
	return true, nil
}

func (f *fakePlaylistRepo) RemoveVideo(_ context.Context, playlistID, ownerID, videoID uuid.UUID) (bool, error) {
	p, ok := f.playlists[playlistID]
	if !ok || p.OwnerID != ownerID {
		return false, nil
	}
	for i, member := range f.members[playlistID] {
		if member == videoID {
			f.members[playlistID] = append(f.members[playlistID][:i], f.members[playlistID][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlaylistRepo) Videos(_ context.Context, _ uuid.UUID, publishedOnly bool, _, _ int) (*query.Page[playlistDto.PlaylistVideoRow], error) {
	f.lastPublishedOnly = publishedOnly
	return &query.Page[playlistDto.PlaylistVideoRow]{}, nil
}

type stubVideoRepo struct {
	existing map[uuid.UUID]bool
}

func (s *stubVideoRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Video, error) {
	if !s.existing[id] {
		return nil, apperror.ErrNotFoundOrForbidden
	}
	return &entity.Video{ID: id}, nil
}

func (s *stubVideoRepo) Create(context.Context, *entity.Video) error { return nil }
func (s *stubVideoRepo) List(context.Context, videoRepo.ListParams) (*query.Page[videoDto.VideoRow], error) {
	return nil, nil
}
func (s *stubVideoRepo) UpdateOwned(context.Context, uuid.UUID, uuid.UUID, map[string]any) (*entity.Video, error) {
	return nil, nil
}
func (s *stubVideoRepo) DeleteOwned(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (s *stubVideoRepo) TakeOwned(context.Context, uuid.UUID, uuid.UUID) (*entity.Video, error) {
	return nil, nil
}
func (s *stubVideoRepo) TogglePublish(context.Context, uuid.UUID, uuid.UUID) (*entity.Video, error) {
	return nil, nil
}
func (s *stubVideoRepo) AddViews(context.Context, uuid.UUID, int64) error     { return nil }
func (s *stubVideoRepo) DeleteEngagementFor(context.Context, uuid.UUID) error { return nil }

func newFixture(t *testing.T) (*fakePlaylistRepo, *stubVideoRepo, PlaylistService, uuid.UUID, uuid.UUID, uuid.UUID) {
	t.Helper()

	playlists := newFakePlaylistRepo()
	videos := &stubVideoRepo{existing: map[uuid.UUID]bool{}}
	svc := NewPlaylistService(playlists, videos)

	owner := uuid.Must(uuid.NewV7())
	p, err := svc.Create(context.Background(), owner, &playlistDto.CreatePlaylistRequest{Name: "Watch later"})
	require.NoError(t, err)

	videoID := uuid.Must(uuid.NewV7())
	videos.existing[videoID] = true

	return playlists, videos, svc, owner, p.ID, videoID
}

func TestAddVideoIsIdempotent(t *testing.T) {
	playlists, _, svc, owner, playlistID, videoID := newFixture(t)

	require.NoError(t, svc.AddVideo(context.Background(), playlistID, owner, videoID))
	require.NoError(t, svc.AddVideo(context.Background(), playlistID, owner, videoID))
	assert.Len(t, playlists.members[playlistID], 1, "duplicate add must not create a second row")
}

func TestAddVideoToSomeoneElsesPlaylist(t *testing.T) {
	playlists, _, svc, _, playlistID, videoID := newFixture(t)

	err := svc.AddVideo(context.Background(), playlistID, uuid.Must(uuid.NewV7()), videoID)
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden)
	assert.Empty(t, playlists.members[playlistID])
}

func TestAddMissingVideo(t *testing.T) {
	_, _, svc, owner, playlistID, _ := newFixture(t)

	err := svc.AddVideo(context.Background(), playlistID, owner, uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden)
}

func TestRemoveVideo(t *testing.T) {
	playlists, _, svc, owner, playlistID, videoID := newFixture(t)

	require.NoError(t, svc.AddVideo(context.Background(), playlistID, owner, videoID))
	require.NoError(t, svc.RemoveVideo(context.Background(), playlistID, owner, videoID))
	assert.Empty(t, playlists.members[playlistID])

	// Removing again is a no-op for the owner.
	require.NoError(t, svc.RemoveVideo(context.Background(), playlistID, owner, videoID))

	// But still indistinguishable from not-found for anyone else.
	err := svc.RemoveVideo(context.Background(), playlistID, uuid.Must(uuid.NewV7()), videoID)
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden)
}

func TestVideosDraftVisibility(t *testing.T) {
	playlists, _, svc, owner, playlistID, _ := newFixture(t)

	_, err := svc.Videos(context.Background(), playlistID, &owner, 1, 10)
	require.NoError(t, err)
	assert.False(t, playlists.lastPublishedOnly, "owner sees drafts")

	other := uuid.Must(uuid.NewV7())
	_, err = svc.Videos(context.Background(), playlistID, &other, 1, 10)
	require.NoError(t, err)
	assert.True(t, playlists.lastPublishedOnly)

	_, err = svc.Videos(context.Background(), playlistID, nil, 1, 10)
	require.NoError(t, err)
	assert.True(t, playlists.lastPublishedOnly)
}
