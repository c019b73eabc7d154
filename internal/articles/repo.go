package articles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alcuin/alcuinch/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const articleColumns = `
	id, title, slug, content, description, categories, status,
	view_count, created_at, updated_at, published_at`

type ListParams struct {
	Page     int
	Size     int
	Query    string
	Category string
	// admins also see drafts
	IncludeDrafts bool
}

var _ articlesRepo = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, article *Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	now := time.Now()
	article.CreatedAt = now
	article.UpdatedAt = now
	if article.Slug == "" {
		article.Slug = GenerateSlug(article.Title)
	}
	if article.Status == "" {
		article.Status = StatusDraft
	}
	if article.Status == StatusPublished && article.PublishedAt == nil {
		article.PublishedAt = &now
	}
	article.ReadingTime = CalculateReadingTime(article.Content)

	err := r.db.QueryRow(
		ctx,
		`INSERT INTO articles
			(title, slug, content, description, categories, status, view_count, created_at, updated_at, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $9)
		RETURNING id;`,
		article.Title, article.Slug, article.Content, article.Description,
		article.Categories, article.Status, article.CreatedAt, article.UpdatedAt,
		article.PublishedAt,
	).Scan(&article.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("insert article: %w", err)
	}

	return nil
}

// Update replaces the editable fields of the article. View count and
// creation timestamp are never updated; published_at is set the first
// time the article transitions to published.
func (r *Repo) Update(ctx context.Context, article *Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	now := time.Now()
	article.UpdatedAt = now
	article.ReadingTime = CalculateReadingTime(article.Content)

	tag, err := r.db.Exec(
		ctx,
		`UPDATE articles SET
			title = $1, slug = $2, content = $3, description = $4,
			categories = $5, status = $6, updated_at = $7,
			published_at = CASE
				WHEN $6 = 'published' THEN COALESCE(published_at, $7)
				ELSE NULL
			END
		WHERE id = $8`,
		article.Title, article.Slug, article.Content, article.Description,
		article.Categories, article.Status, article.UpdatedAt, article.ID,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrArticleNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id int) (*Article, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = $1`,
		id,
	)
	return scanArticle(row)
}

func (r *Repo) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+articleColumns+` FROM articles WHERE slug = $1`,
		slug,
	)
	return scanArticle(row)
}

func (r *Repo) List(ctx context.Context, params ListParams) ([]*Article, int, error) {
	where, args := listFilter(params)

	var total int
	if err := r.db.QueryRow(
		ctx, `SELECT COUNT(*) FROM articles`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	args = append(args, limit, offset)
	rows, err := r.db.Query(
		ctx,
		fmt.Sprintf(
			`SELECT %s FROM articles %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
			articleColumns, where, len(args)-1, len(args),
		),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articlesList []*Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		articlesList = append(articlesList, article)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return articlesList, total, nil
}

func (r *Repo) IncrementViewCount(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `UPDATE articles SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func listFilter(params ListParams) (string, []any) {
	var clauses []string
	var args []any

	if !params.IncludeDrafts {
		args = append(args, StatusPublished)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if params.Query != "" {
		args = append(args, "%"+params.Query+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(title ILIKE $%d OR content ILIKE $%d OR description ILIKE $%d)", n, n, n,
		))
	}
	if params.Category != "" {
		args = append(args, params.Category)
		clauses = append(clauses, fmt.Sprintf("$%d = ANY(categories)", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanArticle(row pgx.Row) (*Article, error) {
	var article Article
	err := row.Scan(
		&article.ID, &article.Title, &article.Slug, &article.Content,
		&article.Description, &article.Categories, &article.Status,
		&article.ViewCount, &article.CreatedAt, &article.UpdatedAt,
		&article.PublishedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	article.ReadingTime = CalculateReadingTime(article.Content)
	return &article, nil
}
