package articles

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"time"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrTitleInvalid    = errors.New("title is required and must be less than 200 characters")
	ErrContentEmpty    = errors.New("content is required")
	ErrSlugInvalid     = errors.New("invalid slug format")
	ErrSlugTaken       = errors.New("slug already taken")
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

const wordsPerMinute = 200

var (
	slugCharsRegex    = regexp.MustCompile(`^[a-zA-Z0-9\-._~:/?#\[\]@!$&'()*+,;=%]+$`)
	nonSlugCharsRegex = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRegex   = regexp.MustCompile(`\s+`)
	dashRunsRegex     = regexp.MustCompile(`-+`)
)

type Article struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Description string     `json:"description,omitempty"`
	Categories  []string   `json:"categories,omitempty"`
	Status      Status     `json:"status"`
	ViewCount   int        `json:"view_count"`
	ReadingTime int        `json:"reading_time"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// CalculateReadingTime estimates the reading time of the content in
// minutes, assuming 200 words per minute, always at least 1
func CalculateReadingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 1
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

// GenerateSlug derives a url friendly slug from the article title
func GenerateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugCharsRegex.ReplaceAllString(slug, "")
	slug = whitespaceRegex.ReplaceAllString(slug, "-")
	slug = dashRunsRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Validate checks the user supplied fields of the article
func (a *Article) Validate() error {
	title := strings.TrimSpace(a.Title)
	if title == "" || len(a.Title) > 200 {
		return ErrTitleInvalid
	}
	if strings.TrimSpace(a.Content) == "" {
		return ErrContentEmpty
	}
	if a.Slug != "" && !slugCharsRegex.MatchString(a.Slug) {
		return ErrSlugInvalid
	}
	return nil
}
