package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/platinummonkey/quill/pkg/auth"
	"github.com/platinummonkey/quill/pkg/observability"
	"github.com/platinummonkey/quill/pkg/policy"
	"github.com/platinummonkey/quill/pkg/storage"
)

// Searcher narrows a listing to posts matching a query, via the search
// cache.
type Searcher interface {
	Search(ctx context.Context, query string) ([]int64, error)
}

// ReportScheduler enqueues background report generation
type ReportScheduler interface {
	Schedule(userID, postID int64) error
}

// Service composes storage, policy and search into the post operations
type Service struct {
	store   Store
	search  Searcher
	reports ReportScheduler
	logger  *observability.Logger
}

// NewService creates the post access service. reports may be nil when
// report generation is not wired (RequestReport then fails unavailable).
func NewService(store Store, search Searcher, reports ReportScheduler, logger *observability.Logger) *Service {
	return &Service{
		store:   store,
		search:  search,
		reports: reports,
		logger:  logger,
	}
}

// Show returns a single post with its author summary. Missing posts and
// posts the identity may not read are both storage.ErrNotFound.
func (s *Service) Show(ctx context.Context, id int64, identity *auth.User) (*PostResponse, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanRead(post, identity) {
		return nil, storage.ErrNotFound
	}

	author, err := s.store.GetUser(ctx, post.AuthorID)
	if err != nil {
		// A post without its author row is a data integrity failure, not a
		// visibility outcome.
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("author %d missing for post %d", post.AuthorID, post.ID)
		}
		return nil, err
	}

	return render(post, author), nil
}

// Index lists published posts, optionally narrowed by a title search.
// Drafts never appear, not even to their own author, and the search result
// is never re-filtered by identity: the cached id set scopes to published
// posts only.
func (s *Service) Index(ctx context.Context, query string, _ *auth.User) ([]*PostResponse, error) {
	var (
		list []*Post
		err  error
	)

	if query != "" {
		ids, searchErr := s.search.Search(ctx, query)
		if searchErr != nil {
			return nil, searchErr
		}
		list, err = s.store.ListPublishedByIDs(ctx, ids)
	} else {
		list, err = s.store.ListPublished(ctx)
	}
	if err != nil {
		return nil, err
	}

	return s.attachAuthors(ctx, list)
}

// Create persists a new post owned by identity
func (s *Service) Create(ctx context.Context, req CreateRequest, identity *auth.User) (*PostResponse, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}

	post := &Post{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		AuthorID:  identity.ID,
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	return render(post, identity), nil
}

// Update applies the provided fields to a post identity owns. The lookup is
// scoped to the identity's own posts, so someone else's post is
// storage.ErrNotFound rather than forbidden.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest, identity *auth.User) (*PostResponse, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}

	post, err := s.store.GetPostOwned(ctx, id, identity.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	return render(post, identity), nil
}

// RequestReport queues background report generation for a post the identity
// may read. The report is delivered to the identity's email address.
func (s *Service) RequestReport(ctx context.Context, id int64, identity *auth.User) error {
	if identity == nil {
		return ErrUnauthorized
	}

	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanRead(post, identity) {
		return storage.ErrNotFound
	}

	if s.reports == nil {
		return ErrReportUnavailable
	}
	if err := s.reports.Schedule(identity.ID, post.ID); err != nil {
		s.logger.WithError(err).WithField("post_id", post.ID).Warn("failed to schedule report")
		return ErrReportUnavailable
	}
	return nil
}

// attachAuthors batch-loads the author summaries for a listing to avoid one
// user query per post.
func (s *Service) attachAuthors(ctx context.Context, list []*Post) ([]*PostResponse, error) {
	seen := make(map[int64]struct{}, len(list))
	ids := make([]int64, 0, len(list))
	for _, post := range list {
		if _, ok := seen[post.AuthorID]; !ok {
			seen[post.AuthorID] = struct{}{}
			ids = append(ids, post.AuthorID)
		}
	}

	authors, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]*PostResponse, 0, len(list))
	for _, post := range list {
		responses = append(responses, render(post, authors[post.AuthorID]))
	}
	return responses, nil
}

func render(post *Post, author *auth.User) *PostResponse {
	resp := &PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
	}
	if author != nil {
		resp.Author = Author{
			ID:    author.ID,
			Name:  author.Name,
			Email: author.Email,
		}
	}
	return resp
}
