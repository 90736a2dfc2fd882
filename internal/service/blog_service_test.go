package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusclubs/club-blog-service/internal/domain"
	"github.com/campusclubs/club-blog-service/internal/events"
)

func newBlogFixture() (*BlogService, *memBlogs, events.Dispatcher) {
	blogs := newMemBlogs()
	dispatcher := events.NewInMemoryDispatcher()
	return NewBlogService(blogs, dispatcher), blogs, dispatcher
}

func draftBlog(t *testing.T, svc *BlogService, authorID string) *domain.Blog {
	t.Helper()
	blog, err := svc.Create(context.Background(), authorID, "On Gophers", "A field report.")
	require.NoError(t, err)
	return blog
}

func TestCreateStartsAsDraft(t *testing.T) {
	svc, _, _ := newBlogFixture()

	blog := draftBlog(t, svc, "user-1")
	assert.Equal(t, domain.BlogStatusDraft, blog.Status)
	assert.Nil(t, blog.PublishedAt)
}

func TestSubmitOwnDraft(t *testing.T) {
	svc, _, dispatcher := newBlogFixture()
	captured := recordEvents(dispatcher, events.EventBlogSubmitted)

	blog := draftBlog(t, svc, "user-1")
	submitted, err := svc.Submit(context.Background(), "user-1", blog.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BlogStatusPendingReview, submitted.Status)
	assert.Len(t, captured(), 1)
}

func TestSubmitSomeoneElsesDraft(t *testing.T) {
	svc, _, _ := newBlogFixture()

	blog := draftBlog(t, svc, "user-1")
	_, err := svc.Submit(context.Background(), "user-2", blog.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestSubmitNonDraft(t *testing.T) {
	svc, _, _ := newBlogFixture()
	ctx := context.Background()

	blog := draftBlog(t, svc, "user-1")
	_, err := svc.Submit(ctx, "user-1", blog.ID)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "user-1", blog.ID)
	require.Error(t, err)
	assert.Equal(t, "INVALID_TRANSITION", domainCode(t, err))
}

func TestReviewApprovePublishes(t *testing.T) {
	svc, _, dispatcher := newBlogFixture()
	ctx := context.Background()
	captured := recordEvents(dispatcher, events.EventBlogReviewed)

	blog := draftBlog(t, svc, "user-1")
	_, err := svc.Submit(ctx, "user-1", blog.ID)
	require.NoError(t, err)

	published, err := svc.Review(ctx, "admin-1", blog.ID, true, "")
	require.NoError(t, err)
	assert.Equal(t, domain.BlogStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	listed, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Len(t, captured(), 1)
}

func TestReviewRejectKeepsReason(t *testing.T) {
	svc, _, _ := newBlogFixture()
	ctx := context.Background()

	blog := draftBlog(t, svc, "user-1")
	_, err := svc.Submit(ctx, "user-1", blog.ID)
	require.NoError(t, err)

	rejected, err := svc.Review(ctx, "admin-1", blog.ID, false, "needs sources")
	require.NoError(t, err)
	assert.Equal(t, domain.BlogStatusRejected, rejected.Status)
	assert.Equal(t, "needs sources", rejected.RejectionReason)
	assert.Nil(t, rejected.PublishedAt)
}

func TestReviewRequiresPendingReview(t *testing.T) {
	svc, _, _ := newBlogFixture()

	blog := draftBlog(t, svc, "user-1")
	_, err := svc.Review(context.Background(), "admin-1", blog.ID, true, "")
	require.Error(t, err)
	assert.Equal(t, "INVALID_TRANSITION", domainCode(t, err))
}

func TestGetPublishedHidesUnpublished(t *testing.T) {
	svc, _, _ := newBlogFixture()
	ctx := context.Background()

	blog := draftBlog(t, svc, "user-1")
	_, err := svc.GetPublished(ctx, blog.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err), "drafts are invisible to the public surface")

	_, err = svc.GetPublished(ctx, "missing-id")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestListMineIncludesEveryStatus(t *testing.T) {
	svc, _, _ := newBlogFixture()
	ctx := context.Background()

	draftBlog(t, svc, "user-1")
	submitted := draftBlog(t, svc, "user-1")
	_, err := svc.Submit(ctx, "user-1", submitted.ID)
	require.NoError(t, err)
	draftBlog(t, svc, "user-2")

	mine, err := svc.ListMine(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
