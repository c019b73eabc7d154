package articles

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

var _ articlesRepo = (*repoMock)(nil)

// repoMock is an in-memory articlesRepo for handler tests
type repoMock struct {
	mutex    sync.Mutex
	articles map[int]*Article
	nextID   int
}

func newRepoMock() *repoMock {
	return &repoMock{
		articles: make(map[int]*Article),
		nextID:   1,
	}
}

func (r *repoMock) Create(_ context.Context, article *Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if article.Slug == "" {
		article.Slug = GenerateSlug(article.Title)
	}
	for _, existing := range r.articles {
		if existing.Slug == article.Slug {
			return ErrSlugTaken
		}
	}

	now := time.Now()
	article.ID = r.nextID
	r.nextID++
	article.CreatedAt = now
	article.UpdatedAt = now
	if article.Status == "" {
		article.Status = StatusDraft
	}
	if article.Status == StatusPublished && article.PublishedAt == nil {
		article.PublishedAt = &now
	}
	article.ReadingTime = CalculateReadingTime(article.Content)

	copied := *article
	r.articles[article.ID] = &copied
	return nil
}

func (r *repoMock) Update(_ context.Context, article *Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, found := r.articles[article.ID]
	if !found {
		return ErrArticleNotFound
	}

	existing.Title = article.Title
	existing.Slug = article.Slug
	existing.Content = article.Content
	existing.Description = article.Description
	existing.Categories = article.Categories
	existing.Status = article.Status
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, found := r.articles[id]; !found {
		return ErrArticleNotFound
	}
	delete(r.articles, id)
	return nil
}

func (r *repoMock) GetByID(_ context.Context, id int) (*Article, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	article, found := r.articles[id]
	if !found {
		return nil, ErrArticleNotFound
	}
	copied := *article
	return &copied, nil
}

func (r *repoMock) GetBySlug(_ context.Context, slug string) (*Article, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, article := range r.articles {
		if article.Slug == slug {
			copied := *article
			return &copied, nil
		}
	}
	return nil, ErrArticleNotFound
}

func (r *repoMock) List(_ context.Context, params ListParams) ([]*Article, int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var filtered []*Article
	for _, article := range r.articles {
		if !params.IncludeDrafts && article.Status != StatusPublished {
			continue
		}
		if params.Query != "" && !matchesQuery(article, params.Query) {
			continue
		}
		if params.Category != "" && !hasCategory(article, params.Category) {
			continue
		}
		copied := *article
		filtered = append(filtered, &copied)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := len(filtered)
	start := (params.Page - 1) * params.Size
	if start >= total {
		return nil, total, nil
	}
	end := start + params.Size
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

func (r *repoMock) IncrementViewCount(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	article, found := r.articles[id]
	if !found {
		return ErrArticleNotFound
	}
	article.ViewCount++
	return nil
}

func matchesQuery(article *Article, query string) bool {
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(article.Title), query) ||
		strings.Contains(strings.ToLower(article.Content), query) ||
		strings.Contains(strings.ToLower(article.Description), query)
}

func hasCategory(article *Article, category string) bool {
	for _, c := range article.Categories {
		if c == category {
			return true
		}
	}
	return false
}
