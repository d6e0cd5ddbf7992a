package comment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliptube/backend/internal/entity"
	commentDto "github.com/cliptube/backend/internal/modules/comment/dto"
	videoDto "github.com/cliptube/backend/internal/modules/video/dto"
	videoRepo "github.com/cliptube/backend/internal/modules/video/repository"
	"github.com/cliptube/backend/pkg/apperror"
	"github.com/cliptube/backend/pkg/query"
)

type fakeCommentRepo struct {
	comments  map[uuid.UUID]*entity.Comment
	edgeWipes []uuid.UUID
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[uuid.UUID]*entity.Comment{}}
}

func (f *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) ListForVideo(_ context.Context, _ uuid.UUID, _, _ int) (*query.Page[commentDto.CommentRow], error) {
	return &query.Page[commentDto.CommentRow]{}, nil
}

func (f *fakeCommentRepo) UpdateOwned(_ context.Context, id, ownerID uuid.UUID, patch map[string]any) (*entity.Comment, error) {
	c, ok := f.comments[id]
	if !ok || c.OwnerID != ownerID {
		return nil, apperror.ErrNotFoundOrForbidden
	}
	if content, ok := patch["content"].(string); ok {
		c.Content = content
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) DeleteOwned(_ context.Context, id, ownerID uuid.UUID) error {
	c, ok := f.comments[id]
	if !ok || c.OwnerID != ownerID {
		return apperror.ErrNotFoundOrForbidden
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) DeleteEngagementFor(_ context.Context, id uuid.UUID) error {
	f.edgeWipes = append(f.edgeWipes, id)
	return nil
}

// fakeVideoFinder satisfies only the lookup the comment service needs.
type fakeVideoFinder struct {
	videos map[uuid.UUID]*entity.Video
}

func (f *fakeVideoFinder) FindByID(_ context.Context, id uuid.UUID) (*entity.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, apperror.ErrNotFoundOrForbidden
	}
	return v, nil
}

func (f *fakeVideoFinder) Create(context.Context, *entity.Video) error { return nil }
func (f *fakeVideoFinder) List(context.Context, videoRepo.ListParams) (*query.Page[videoDto.VideoRow], error) {
	return nil, nil
}
func (f *fakeVideoFinder) UpdateOwned(context.Context, uuid.UUID, uuid.UUID, map[string]any) (*entity.Video, error) {
	return nil, nil
}
func (f *fakeVideoFinder) DeleteOwned(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (f *fakeVideoFinder) TakeOwned(context.Context, uuid.UUID, uuid.UUID) (*entity.Video, error) {
	return nil, nil
}
func (f *fakeVideoFinder) TogglePublish(context.Context, uuid.UUID, uuid.UUID) (*entity.Video, error) {
	return nil, nil
}
func (f *fakeVideoFinder) AddViews(context.Context, uuid.UUID, int64) error        { return nil }
func (f *fakeVideoFinder) DeleteEngagementFor(context.Context, uuid.UUID) error    { return nil }

func setup() (*fakeCommentRepo, *fakeVideoFinder, CommentService, uuid.UUID) {
	comments := newFakeCommentRepo()
	videos := &fakeVideoFinder{videos: map[uuid.UUID]*entity.Video{}}
	svc := NewCommentService(comments, videos)

	videoID := uuid.Must(uuid.NewV7())
	videos.videos[videoID] = &entity.Video{ID: videoID, OwnerID: uuid.Must(uuid.NewV7()), IsPublished: true}
	return comments, videos, svc, videoID
}

func TestAddSanitizesContent(t *testing.T) {
	_, _, svc, videoID := setup()
	author := uuid.Must(uuid.NewV7())

	c, err := svc.Add(context.Background(), videoID, author, &commentDto.AddCommentRequest{
		Content: "  nice <script>alert(1)</script> video  ",
	})
	require.NoError(t, err)
	assert.NotContains(t, c.Content, "<script>")
	assert.NotContains(t, c.Content, "alert(1)")
	assert.Equal(t, videoID, c.VideoID)
	assert.Equal(t, author, c.OwnerID)
}

func TestAddRejectsEmptyAfterSanitize(t *testing.T) {
	_, _, svc, videoID := setup()

	_, err := svc.Add(context.Background(), videoID, uuid.Must(uuid.NewV7()), &commentDto.AddCommentRequest{
		Content: "<script>only markup</script>   ",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.MapErrorToStatus(err))
}

func TestAddToMissingOrDraftVideo(t *testing.T) {
	_, videos, svc, videoID := setup()
	author := uuid.Must(uuid.NewV7())

	_, err := svc.Add(context.Background(), uuid.Must(uuid.NewV7()), author, &commentDto.AddCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden, "missing video")

	videos.videos[videoID].IsPublished = false
	_, err = svc.Add(context.Background(), videoID, author, &commentDto.AddCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden, "draft video, non-owner")

	owner := videos.videos[videoID].OwnerID
	_, err = svc.Add(context.Background(), videoID, owner, &commentDto.AddCommentRequest{Content: "hi"})
	assert.NoError(t, err, "draft video, owner")
}

func TestUpdateOwnershipGate(t *testing.T) {
	comments, _, svc, videoID := setup()
	author := uuid.Must(uuid.NewV7())

	c, err := svc.Add(context.Background(), videoID, author, &commentDto.AddCommentRequest{Content: "original"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), c.ID, uuid.Must(uuid.NewV7()), &commentDto.UpdateCommentRequest{Content: "hacked"})
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden)
	assert.Equal(t, "original", comments.comments[c.ID].Content)

	updated, err := svc.Update(context.Background(), c.ID, author, &commentDto.UpdateCommentRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDeleteClearsLikeEdges(t *testing.T) {
	comments, _, svc, videoID := setup()
	author := uuid.Must(uuid.NewV7())

	c, err := svc.Add(context.Background(), videoID, author, &commentDto.AddCommentRequest{Content: "bye"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), c.ID, author))
	assert.Empty(t, comments.comments)
	assert.Equal(t, []uuid.UUID{c.ID}, comments.edgeWipes)
}
