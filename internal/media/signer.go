package media

import (
	"context"
	"sync"

	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
)

// DefaultSignedURLTTL is how long signed media URLs embedded in read
// responses stay valid, in seconds. Two hours: signed URLs land in
// server-rendered initial page loads, and a short TTL caused links to
// expire before clients finished loading images.
const DefaultSignedURLTTL int64 = 7200

// URLSigner resolves a stored media reference into a time-limited URL.
// Implementations must degrade to empty string on failure rather than
// returning an error.
type URLSigner interface {
	SignedDownloadURL(ctx context.Context, reference string, ttlSeconds int64) string
}

// Signer rewrites media references on entity copies into signed URLs
// before they are serialized to callers. Persisted records are never
// mutated; every method operates on a value copy, key fields pass through
// untouched, and URL fields are overwritten with the signed result, which
// may be empty when signing fails.
type Signer struct {
	signer URLSigner
	ttl    int64
}

// NewSigner creates a media signer. A non-positive ttlSeconds falls back
// to DefaultSignedURLTTL.
func NewSigner(signer URLSigner, ttlSeconds int64) *Signer {
	if ttlSeconds <= 0 {
		ttlSeconds = DefaultSignedURLTTL
	}
	return &Signer{signer: signer, ttl: ttlSeconds}
}

// firstRef prefers the canonical key over the legacy URL fallback.
func firstRef(key, url string) string {
	if key != "" {
		return key
	}
	return url
}

// TeamMemberView returns a copy of the member with ImageURL signed.
func (s *Signer) TeamMemberView(ctx context.Context, m domain.TeamMember) domain.TeamMember {
	v := m
	v.ImageURL = s.signer.SignedDownloadURL(ctx, firstRef(m.ImageKey, m.ImageURL), s.ttl)
	return v
}

// PortfolioItemView returns a copy of the item with ImageURL signed.
func (s *Signer) PortfolioItemView(ctx context.Context, p domain.PortfolioItem) domain.PortfolioItem {
	v := p
	v.ImageURL = s.signer.SignedDownloadURL(ctx, firstRef(p.ImageKey, p.ImageURL), s.ttl)
	return v
}

// DemoContentView returns a copy of the item with ImageURL, VideoURL and
// ThumbnailURL each signed from the matching key when present.
func (s *Signer) DemoContentView(ctx context.Context, d domain.DemoContent) domain.DemoContent {
	v := d
	v.ImageURL = s.signer.SignedDownloadURL(ctx, firstRef(d.ImageKey, d.ImageURL), s.ttl)
	v.VideoURL = s.signer.SignedDownloadURL(ctx, firstRef(d.VideoKey, d.VideoURL), s.ttl)
	v.ThumbnailURL = s.signer.SignedDownloadURL(ctx, firstRef(d.ThumbnailKey, d.ThumbnailURL), s.ttl)
	return v
}

// UserView returns a copy of the user with the profile image reference
// resolved into ProfileImageURL.
func (s *Signer) UserProfileImageURL(ctx context.Context, u domain.User) string {
	return s.signer.SignedDownloadURL(ctx, u.ProfileImageKey, s.ttl)
}

// signList fans signing out across a list, one goroutine per entity.
// Entities sign independently; one entity's failures (empty URLs) never
// affect the others, and the call completes only when all have settled.
func signList[T any](ctx context.Context, items []T, sign func(context.Context, T) T) []T {
	views := make([]T, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			views[i] = sign(ctx, item)
		}(i, item)
	}
	wg.Wait()

	return views
}

// TeamMemberViews signs a list of members concurrently.
func (s *Signer) TeamMemberViews(ctx context.Context, members []domain.TeamMember) []domain.TeamMember {
	return signList(ctx, members, s.TeamMemberView)
}

// PortfolioItemViews signs a list of portfolio items concurrently.
func (s *Signer) PortfolioItemViews(ctx context.Context, items []domain.PortfolioItem) []domain.PortfolioItem {
	return signList(ctx, items, s.PortfolioItemView)
}

// DemoContentViews signs a list of demo content items concurrently.
func (s *Signer) DemoContentViews(ctx context.Context, items []domain.DemoContent) []domain.DemoContent {
	return signList(ctx, items, s.DemoContentView)
}
