package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Totarae/linkbucket/internal/model"
	"github.com/Totarae/linkbucket/internal/service"
	"github.com/Totarae/linkbucket/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestBucketService_CreateTrimsName(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBucketRepository(ctrl)
	svc := service.NewBucketService(repo, zap.NewNop())

	want := &model.Bucket{ID: "b1", UserID: "u1", Name: "Tech", CreatedAt: time.Now()}
	repo.EXPECT().Create(gomock.Any(), "u1", "Tech").Return(want, nil)

	got, err := svc.Create(context.Background(), "u1", "  Tech \n")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBucketService_CreateValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBucketRepository(ctrl)
	svc := service.NewBucketService(repo, zap.NewNop())

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "spaces only", input: "   "},
		{name: "too long", input: strings.Repeat("x", model.BucketNameMaxLen+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "u1", tt.input)
			require.Error(t, err)
			assert.True(t, model.IsValidation(err))
		})
	}
}

func TestBucketService_CreateMaxLengthAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBucketRepository(ctrl)
	svc := service.NewBucketService(repo, zap.NewNop())

	name := strings.Repeat("я", model.BucketNameMaxLen)
	repo.EXPECT().Create(gomock.Any(), "u1", name).Return(&model.Bucket{Name: name}, nil)

	_, err := svc.Create(context.Background(), "u1", name)
	assert.NoError(t, err)
}

func TestBucketService_CreateConflictPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBucketRepository(ctrl)
	svc := service.NewBucketService(repo, zap.NewNop())

	repo.EXPECT().Create(gomock.Any(), "u1", "Tech").Return(nil, model.ErrConflict)

	_, err := svc.Create(context.Background(), "u1", "Tech")
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestBucketService_RenameValidatesBeforeStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBucketRepository(ctrl)
	svc := service.NewBucketService(repo, zap.NewNop())

	_, err := svc.Rename(context.Background(), "u1", "b1", " ")
	assert.True(t, model.IsValidation(err))

	repo.EXPECT().Rename(gomock.Any(), "u1", "b1", "Work").Return(nil, model.ErrNotFound)
	_, err = svc.Rename(context.Background(), "u1", "b1", "Work ")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLinkService_CreateDerivesDomainAndEnqueues(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLinkRepository(ctrl)
	buckets := mocks.NewMockBucketRepository(ctrl)
	queue := mocks.NewMockEnqueuer(ctrl)
	svc := service.NewLinkService(repo, buckets, queue, zap.NewNop())

	created := &model.Link{ID: "l1", UserID: "u1", URL: "https://www.example.com/a"}
	repo.EXPECT().
		Create(gomock.Any(), "u1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, in model.NewLink) (*model.Link, error) {
			assert.Equal(t, "https://www.example.com/a", in.URL)
			assert.Nil(t, in.Title, "empty title must be stored as null")
			assert.Equal(t, "example.com", model.StringValue(in.Domain))
			return created, nil
		})
	queue.EXPECT().Enqueue(created).Return(nil)

	got, err := svc.Create(context.Background(), "u1", model.CreateLinkRequest{
		URL:   " https://www.example.com/a ",
		Title: model.StringPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestLinkService_CreateEmptyURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.NewLinkService(mocks.NewMockLinkRepository(ctrl), mocks.NewMockBucketRepository(ctrl), nil, zap.NewNop())

	_, err := svc.Create(context.Background(), "u1", model.CreateLinkRequest{URL: "  "})
	assert.True(t, model.IsValidation(err))
}

func TestLinkService_CreateSucceedsWhenQueueFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLinkRepository(ctrl)
	queue := mocks.NewMockEnqueuer(ctrl)
	svc := service.NewLinkService(repo, mocks.NewMockBucketRepository(ctrl), queue, zap.NewNop())

	created := &model.Link{ID: "l1", UserID: "u1", URL: "https://example.com"}
	repo.EXPECT().Create(gomock.Any(), "u1", gomock.Any()).Return(created, nil)
	queue.EXPECT().Enqueue(created).Return(errors.New("queue is full"))

	got, err := svc.Create(context.Background(), "u1", model.CreateLinkRequest{URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "l1", got.ID)
}

func TestLinkService_UpdateBucketRejectsForeignBucket(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLinkRepository(ctrl)
	buckets := mocks.NewMockBucketRepository(ctrl)
	svc := service.NewLinkService(repo, buckets, nil, zap.NewNop())

	foreign := "b-of-u2"
	buckets.EXPECT().GetByID(gomock.Any(), "u1", foreign).Return(nil, model.ErrNotFound)

	_, err := svc.UpdateBucket(context.Background(), "u1", "l1", &foreign)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLinkService_UpdateBucketClear(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLinkRepository(ctrl)
	svc := service.NewLinkService(repo, mocks.NewMockBucketRepository(ctrl), nil, zap.NewNop())

	empty := ""
	repo.EXPECT().UpdateBucket(gomock.Any(), "u1", "l1", nil).Return(&model.Link{ID: "l1"}, nil)

	_, err := svc.UpdateBucket(context.Background(), "u1", "l1", &empty)
	assert.NoError(t, err)
}

func TestLinkService_UpdateBucketOwnBucket(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLinkRepository(ctrl)
	buckets := mocks.NewMockBucketRepository(ctrl)
	svc := service.NewLinkService(repo, buckets, nil, zap.NewNop())

	bucketID := "b1"
	buckets.EXPECT().GetByID(gomock.Any(), "u1", bucketID).Return(&model.Bucket{ID: bucketID, UserID: "u1"}, nil)
	repo.EXPECT().UpdateBucket(gomock.Any(), "u1", "l1", &bucketID).Return(&model.Link{ID: "l1", BucketID: &bucketID}, nil)

	got, err := svc.UpdateBucket(context.Background(), "u1", "l1", &bucketID)
	require.NoError(t, err)
	assert.Equal(t, bucketID, model.StringValue(got.BucketID))
}
