package media

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
)

// stubSigner signs every reference deterministically, with optional
// per-reference failures that degrade to empty string.
type stubSigner struct {
	failAll  bool
	failRefs map[string]bool
}

func (s *stubSigner) SignedDownloadURL(_ context.Context, reference string, ttlSeconds int64) string {
	if reference == "" || s.failAll || s.failRefs[reference] {
		return ""
	}
	return fmt.Sprintf("https://stub-signed/%s?ttl=%d", reference, ttlSeconds)
}

func TestPortfolioItemViewSignsKeyAndLeavesKeyUntouched(t *testing.T) {
	signer := NewSigner(&stubSigner{}, 7200)

	item := domain.PortfolioItem{
		ID:       "p1",
		Title:    "Brand launch",
		ImageKey: "portfolio/abc-logo.png",
		ImageURL: "",
	}

	view := signer.PortfolioItemView(context.Background(), item)

	assert.Equal(t, "https://stub-signed/portfolio/abc-logo.png?ttl=7200", view.ImageURL)
	assert.Equal(t, "portfolio/abc-logo.png", view.ImageKey)

	// Original record is never mutated.
	assert.Empty(t, item.ImageURL)
}

func TestPortfolioItemViewFallsBackToLegacyURL(t *testing.T) {
	signer := NewSigner(&stubSigner{}, 7200)

	item := domain.PortfolioItem{
		ID:       "p2",
		ImageURL: "https://my-bucket.s3.us-east-1.amazonaws.com/portfolio/old.png",
	}

	view := signer.PortfolioItemView(context.Background(), item)
	assert.Equal(t,
		"https://stub-signed/https://my-bucket.s3.us-east-1.amazonaws.com/portfolio/old.png?ttl=7200",
		view.ImageURL)
}

func TestTeamMemberViewUsesDefaultTTL(t *testing.T) {
	signer := NewSigner(&stubSigner{}, 0)

	view := signer.TeamMemberView(context.Background(), domain.TeamMember{
		ID:       "t1",
		Name:     "Asha",
		ImageKey: "team/images/asha.jpg",
	})

	assert.Equal(t, "https://stub-signed/team/images/asha.jpg?ttl=7200", view.ImageURL)
	assert.Equal(t, "team/images/asha.jpg", view.ImageKey)
}

func TestDemoContentViewSignsAllThreeFields(t *testing.T) {
	signer := NewSigner(&stubSigner{}, 7200)

	view := signer.DemoContentView(context.Background(), domain.DemoContent{
		ID:           "d1",
		ContentType:  domain.DemoContentTypeVideo,
		VideoKey:     "demo-content/videos/clip.mp4",
		ThumbnailKey: "demo-content/thumbnails/clip.jpg",
	})

	assert.Empty(t, view.ImageURL)
	assert.Equal(t, "https://stub-signed/demo-content/videos/clip.mp4?ttl=7200", view.VideoURL)
	assert.Equal(t, "https://stub-signed/demo-content/thumbnails/clip.jpg?ttl=7200", view.ThumbnailURL)
	assert.Equal(t, "demo-content/videos/clip.mp4", view.VideoKey)
}

func TestListSigningDegradesGracefullyWhenAllSigningFails(t *testing.T) {
	signer := NewSigner(&stubSigner{failAll: true}, 7200)

	items := []domain.DemoContent{
		{ID: "d1", ImageKey: "demo-content/images/a.png"},
		{ID: "d2", VideoKey: "demo-content/videos/b.mp4", ThumbnailKey: "demo-content/thumbnails/b.jpg"},
		{ID: "d3", ImageKey: "demo-content/images/c.png"},
	}

	views := signer.DemoContentViews(context.Background(), items)
	require.Len(t, views, 3)

	for i, view := range views {
		assert.Equal(t, items[i].ID, view.ID)
		assert.Empty(t, view.ImageURL)
		assert.Empty(t, view.VideoURL)
		assert.Empty(t, view.ThumbnailURL)
	}
}

func TestListSigningIsIndependentAcrossEntities(t *testing.T) {
	signer := NewSigner(&stubSigner{failRefs: map[string]bool{"a": true}}, 7200)

	items := []domain.PortfolioItem{
		{ID: "p1", ImageKey: "a"},
		{ID: "p2", ImageKey: "b"},
	}

	views := signer.PortfolioItemViews(context.Background(), items)
	require.Len(t, views, 2)

	assert.Empty(t, views[0].ImageURL)
	assert.Equal(t, "https://stub-signed/b?ttl=7200", views[1].ImageURL)
}

func TestListSigningPreservesOrder(t *testing.T) {
	signer := NewSigner(&stubSigner{}, 7200)

	var members []domain.TeamMember
	for i := 0; i < 20; i++ {
		members = append(members, domain.TeamMember{
			ID:       fmt.Sprintf("t%d", i),
			ImageKey: fmt.Sprintf("team/images/%d.jpg", i),
		})
	}

	views := signer.TeamMemberViews(context.Background(), members)
	require.Len(t, views, 20)
	for i, view := range views {
		assert.Equal(t, members[i].ID, view.ID)
		assert.Equal(t, fmt.Sprintf("https://stub-signed/team/images/%d.jpg?ttl=7200", i), view.ImageURL)
	}
}
