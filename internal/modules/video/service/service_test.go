package video

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliptube/backend/internal/entity"
	searchService "github.com/cliptube/backend/internal/modules/search/service"
	videoDto "github.com/cliptube/backend/internal/modules/video/dto"
	videoRepo "github.com/cliptube/backend/internal/modules/video/repository"
	"github.com/cliptube/backend/pkg/apperror"
	pkgDto "github.com/cliptube/backend/pkg/dto"
	"github.com/cliptube/backend/pkg/query"
	"github.com/cliptube/backend/pkg/storage"
)

type fakeVideoRepo struct {
	videos     map[uuid.UUID]*entity.Video
	lastParams videoRepo.ListParams
	edgeWipes  []uuid.UUID
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: map[uuid.UUID]*entity.Video{}}
}

func (f *fakeVideoRepo) Create(_ context.Context, v *entity.Video) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.Must(uuid.NewV7())
	}
	cp := *v
	f.videos[v.ID] = &cp
	return nil
}

func (f *fakeVideoRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, apperror.ErrNotFoundOrForbidden
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideoRepo) List(_ context.Context, params videoRepo.ListParams) (*query.Page[videoDto.VideoRow], error) {
	f.lastParams = params
	return &query.Page[videoDto.VideoRow]{Items: []videoDto.VideoRow{}}, nil
}

func (f *fakeVideoRepo) owned(id, ownerID uuid.UUID) (*entity.Video, error) {
	v, ok := f.videos[id]
	if !ok || v.OwnerID != ownerID {
		return nil, apperror.ErrNotFoundOrForbidden
	}
	return v, nil
}

func (f *fakeVideoRepo) UpdateOwned(_ context.Context, id, ownerID uuid.UUID, patch map[string]any) (*entity.Video, error) {
	v, err := f.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	if title, ok := patch["title"].(string); ok {
		v.Title = title
	}
	if desc, ok := patch["description"].(string); ok {
		v.Description = desc
	}
	if thumb, ok := patch["thumbnail_url"].(string); ok {
		v.ThumbnailURL = thumb
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideoRepo) DeleteOwned(_ context.Context, id, ownerID uuid.UUID) error {
	if _, err := f.owned(id, ownerID); err != nil {
		return err
	}
	delete(f.videos, id)
	return nil
}

func (f *fakeVideoRepo) TakeOwned(_ context.Context, id, ownerID uuid.UUID) (*entity.Video, error) {
	v, err := f.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideoRepo) TogglePublish(_ context.Context, id, ownerID uuid.UUID) (*entity.Video, error) {
	v, err := f.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	v.IsPublished = !v.IsPublished
	cp := *v
	return &cp, nil
}

func (f *fakeVideoRepo) AddViews(_ context.Context, id uuid.UUID, delta int64) error {
	if v, ok := f.videos[id]; ok {
		v.Views += delta
	}
	return nil
}

func (f *fakeVideoRepo) DeleteEngagementFor(_ context.Context, id uuid.UUID) error {
	f.edgeWipes = append(f.edgeWipes, id)
	return nil
}

type fakeStorage struct {
	uploads int
	deleted []string
}

func (f *fakeStorage) Upload(_ context.Context, r io.Reader, folder, fileName string) (*storage.UploadInfo, error) {
	f.uploads++
	return &storage.UploadInfo{
		URL:      "https://cdn.example.com/" + folder + "/" + fileName,
		Duration: 42.5,
	}, nil
}

func (f *fakeStorage) Delete(_ context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

type fakeSearch struct {
	indexed []string
	removed []string
}

func (f *fakeSearch) IndexVideo(v *entity.Video) { f.indexed = append(f.indexed, v.ID.String()) }
func (f *fakeSearch) RemoveVideo(id string)      { f.removed = append(f.removed, id) }
func (f *fakeSearch) SearchVideos(string, int, int) ([]searchService.VideoHit, int64, error) {
	return nil, 0, nil
}

type fakeEdges struct {
	counts map[uuid.UUID]int64
	actors map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeEdges() *fakeEdges {
	return &fakeEdges{
		counts: map[uuid.UUID]int64{},
		actors: map[uuid.UUID]map[uuid.UUID]bool{},
	}
}

func (f *fakeEdges) like(actorID, targetID uuid.UUID) {
	if f.actors[targetID] == nil {
		f.actors[targetID] = map[uuid.UUID]bool{}
	}
	f.actors[targetID][actorID] = true
	f.counts[targetID]++
}

func (f *fakeEdges) CountForTarget(_ context.Context, _ entity.TargetKind, targetID uuid.UUID) (int64, error) {
	return f.counts[targetID], nil
}

func (f *fakeEdges) HasEdge(_ context.Context, actorID uuid.UUID, _ entity.TargetKind, targetID uuid.UUID) (bool, error) {
	return f.actors[targetID][actorID], nil
}

func newService(repo *fakeVideoRepo, st *fakeStorage, se *fakeSearch) VideoService {
	return NewVideoService(repo, newFakeEdges(), st, se)
}

func TestPublishStoresUploadsAndIndexes(t *testing.T) {
	repo := newFakeVideoRepo()
	st := &fakeStorage{}
	se := &fakeSearch{}
	svc := newService(repo, st, se)

	owner := uuid.Must(uuid.NewV7())
	req := &videoDto.PublishVideoRequest{Title: "First clip", Description: "hello"}

	detail, err := svc.Publish(context.Background(), owner, req,
		strings.NewReader("video-bytes"), "clip.mp4",
		strings.NewReader("thumb-bytes"), "thumb.jpg")
	require.NoError(t, err)

	assert.Equal(t, owner, detail.OwnerID)
	assert.Equal(t, "First clip", detail.Title)
	assert.Equal(t, 42.5, detail.Duration)
	assert.True(t, detail.IsPublished)
	assert.NotEmpty(t, detail.VideoURL)
	assert.NotEmpty(t, detail.ThumbnailURL)
	assert.Equal(t, 2, st.uploads)
	assert.Len(t, se.indexed, 1)
}

func TestPublishRequiresVideoFile(t *testing.T) {
	svc := newService(newFakeVideoRepo(), &fakeStorage{}, &fakeSearch{})

	_, err := svc.Publish(context.Background(), uuid.Must(uuid.NewV7()),
		&videoDto.PublishVideoRequest{Title: "x", Description: "y"},
		nil, "", nil, "")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.MapErrorToStatus(err))
}

func TestGetByIDHidesDraftsFromOthers(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := newService(repo, &fakeStorage{}, &fakeSearch{})

	owner := uuid.Must(uuid.NewV7())
	other := uuid.Must(uuid.NewV7())
	draft := &entity.Video{OwnerID: owner, Title: "draft", IsPublished: false}
	require.NoError(t, repo.Create(context.Background(), draft))

	_, err := svc.GetByID(context.Background(), draft.ID, nil)
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden, "anonymous viewer")

	_, err = svc.GetByID(context.Background(), draft.ID, &other)
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden, "other user")

	detail, err := svc.GetByID(context.Background(), draft.ID, &owner)
	require.NoError(t, err)
	assert.Equal(t, "draft", detail.Title)
}

func TestGetByIDIncludesLikeState(t *testing.T) {
	repo := newFakeVideoRepo()
	edges := newFakeEdges()
	svc := NewVideoService(repo, edges, &fakeStorage{}, &fakeSearch{})

	owner := uuid.Must(uuid.NewV7())
	fan := uuid.Must(uuid.NewV7())
	stranger := uuid.Must(uuid.NewV7())
	v := &entity.Video{OwnerID: owner, Title: "popular", IsPublished: true}
	require.NoError(t, repo.Create(context.Background(), v))

	edges.like(fan, v.ID)
	edges.like(owner, v.ID)

	detail, err := svc.GetByID(context.Background(), v.ID, &fan)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.Likes)
	assert.True(t, detail.IsLiked)

	detail, err = svc.GetByID(context.Background(), v.ID, &stranger)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.Likes)
	assert.False(t, detail.IsLiked)

	detail, err = svc.GetByID(context.Background(), v.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.Likes)
	assert.False(t, detail.IsLiked, "anonymous viewers have no like state")
}

func TestListSortWhitelist(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := newService(repo, &fakeStorage{}, &fakeSearch{})

	_, err := svc.List(context.Background(), &pkgDto.ListQuery{SortBy: "views", SortDir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, "videos.views", repo.lastParams.SortColumn)
	assert.False(t, repo.lastParams.SortDesc)
	assert.True(t, repo.lastParams.PublishedOnly)

	_, err = svc.List(context.Background(), &pkgDto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "videos.created_at", repo.lastParams.SortColumn)
	assert.True(t, repo.lastParams.SortDesc, "default sort is newest first")

	_, err = svc.List(context.Background(), &pkgDto.ListQuery{SortBy: "owner_id"})
	require.Error(t, err, "unlisted sort keys are rejected")
	assert.Equal(t, 400, apperror.MapErrorToStatus(err))
}

func TestChannelVideosDraftVisibility(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := newService(repo, &fakeStorage{}, &fakeSearch{})

	channel := uuid.Must(uuid.NewV7())
	other := uuid.Must(uuid.NewV7())

	_, err := svc.ChannelVideos(context.Background(), channel, &channel, &pkgDto.ListQuery{})
	require.NoError(t, err)
	assert.False(t, repo.lastParams.PublishedOnly, "owner sees drafts")

	_, err = svc.ChannelVideos(context.Background(), channel, &other, &pkgDto.ListQuery{})
	require.NoError(t, err)
	assert.True(t, repo.lastParams.PublishedOnly, "others see published only")
}

func TestDeleteCleansUpAssetsAndEdges(t *testing.T) {
	repo := newFakeVideoRepo()
	st := &fakeStorage{}
	se := &fakeSearch{}
	svc := newService(repo, st, se)

	owner := uuid.Must(uuid.NewV7())
	v := &entity.Video{
		OwnerID:      owner,
		Title:        "gone",
		VideoURL:     "https://cdn.example.com/videos/gone.mp4",
		ThumbnailURL: "https://cdn.example.com/thumbnails/gone.jpg",
		IsPublished:  true,
	}
	require.NoError(t, repo.Create(context.Background(), v))

	require.NoError(t, svc.Delete(context.Background(), v.ID, owner))

	assert.Empty(t, repo.videos)
	assert.ElementsMatch(t, []string{v.VideoURL, v.ThumbnailURL}, st.deleted)
	assert.Equal(t, []uuid.UUID{v.ID}, repo.edgeWipes)
	assert.Equal(t, []string{v.ID.String()}, se.removed)
}

func TestDeleteByNonOwner(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := newService(repo, &fakeStorage{}, &fakeSearch{})

	owner := uuid.Must(uuid.NewV7())
	v := &entity.Video{OwnerID: owner, Title: "mine", IsPublished: true}
	require.NoError(t, repo.Create(context.Background(), v))

	err := svc.Delete(context.Background(), v.ID, uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden)
	assert.Len(t, repo.videos, 1, "video must survive")
}

func TestTogglePublishReindexes(t *testing.T) {
	repo := newFakeVideoRepo()
	se := &fakeSearch{}
	svc := newService(repo, &fakeStorage{}, se)

	owner := uuid.Must(uuid.NewV7())
	v := &entity.Video{OwnerID: owner, Title: "t", IsPublished: true}
	require.NoError(t, repo.Create(context.Background(), v))

	detail, err := svc.TogglePublish(context.Background(), v.ID, owner)
	require.NoError(t, err)
	assert.False(t, detail.IsPublished)

	detail, err = svc.TogglePublish(context.Background(), v.ID, owner)
	require.NoError(t, err)
	assert.True(t, detail.IsPublished)
	assert.Len(t, se.indexed, 2)
}
