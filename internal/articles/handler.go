package articles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alcuin/alcuinch/internal/instrumentation"
	"github.com/alcuin/alcuinch/internal/telemetry/tracing"
	"github.com/alcuin/alcuinch/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type ListResponse struct {
	Articles    []*Article `json:"articles"`
	TotalCount  int        `json:"totalCount"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}

type articleRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Status      Status   `json:"status"`
}

type articlesRepo interface {
	Create(ctx context.Context, article *Article) error
	Update(ctx context.Context, article *Article) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*Article, error)
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	List(ctx context.Context, params ListParams) ([]*Article, int, error)
	IncrementViewCount(ctx context.Context, id int) error
}

type Handler struct {
	repo      articlesRepo
	listCache *ListCache
	instr     *instrumentation.Instrumentation
}

func NewHandler(
	repo articlesRepo,
	listCache *ListCache,
	instr *instrumentation.Instrumentation,
) *Handler {
	return &Handler{
		repo:      repo,
		listCache: listCache,
		instr:     instr,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/articles", handler.handleList).Methods("GET").Name("articles-list")
	router.HandleFunc("/api/articles/{slug}", handler.handleGetBySlug).Methods("GET").Name("article-get")
	router.HandleFunc("/api/articles/{id}/view", handler.handleViewCounted).Methods("POST", "OPTIONS").Name("article-view")

	adminRouter := router.PathPrefix("/api/admin").Subrouter()
	adminRouter.HandleFunc("/articles", handler.handleAdminList).Methods("GET").Name("admin-articles-list")
	adminRouter.HandleFunc("/articles", handler.handleCreate).Methods("POST", "OPTIONS").Name("admin-article-create")
	adminRouter.HandleFunc("/articles/{id}", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("admin-article-update")
	adminRouter.HandleFunc("/articles/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("admin-article-delete")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	handler.serveList(w, r, false)
}

// handleAdminList also includes drafts, it sits behind the auth middleware
func (handler *Handler) handleAdminList(w http.ResponseWriter, r *http.Request) {
	handler.serveList(w, r, true)
}

func (handler *Handler) serveList(w http.ResponseWriter, r *http.Request, includeDrafts bool) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "articlesHandler.list")
	defer span.End()

	params, err := listParamsFromRequest(r)
	if err != nil {
		span.SetStatus(codes.Error, "bad-params")
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	params.IncludeDrafts = includeDrafts

	// drafts never come out of the cache, those lists are per admin
	cacheKey := ""
	if !params.IncludeDrafts {
		cacheKey = fmt.Sprintf(
			"list||%d||%d||%s||%s",
			params.Page, params.Size, params.Query, params.Category,
		)
		if cached, found := handler.listCache.Get(cacheKey); found {
			span.SetStatus(codes.Ok, "ok-cached")
			pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
			return
		}
	}

	articlesList, total, err := handler.repo.List(ctx, params)
	if err != nil {
		log.Errorf("list articles: %s", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "list-err")
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if articlesList == nil {
		articlesList = []*Article{}
	}

	totalPages := total / params.Size
	if total%params.Size > 0 {
		totalPages++
	}

	respJson, err := json.Marshal(ListResponse{
		Articles:    articlesList,
		TotalCount:  total,
		CurrentPage: params.Page,
		TotalPages:  totalPages,
	})
	if err != nil {
		log.Errorf("marshal articles list: %s", err)
		span.SetStatus(codes.Error, "marshal-err")
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if cacheKey != "" {
		handler.listCache.Set(cacheKey, respJson)
	}

	span.SetStatus(codes.Ok, "ok")
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleGetBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "articlesHandler.getBySlug")
	defer span.End()

	slug := mux.Vars(r)["slug"]
	article, err := handler.repo.GetBySlug(ctx, slug)
	if errors.Is(err, ErrArticleNotFound) {
		span.SetStatus(codes.Error, "not-found")
		pkg.WriteJSONError(w, "Article not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get article [%s]: %s", slug, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "get-err")
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	articleJson, err := json.Marshal(article)
	if err != nil {
		log.Errorf("marshal article [%s]: %s", slug, err)
		span.SetStatus(codes.Error, "marshal-err")
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	span.SetStatus(codes.Ok, "ok")
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, articleJson)
}

func (handler *Handler) handleViewCounted(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "articlesHandler.viewCounted")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		span.SetStatus(codes.Error, "bad-id")
		pkg.WriteJSONError(w, "Invalid article id", http.StatusBadRequest)
		return
	}

	if err := handler.repo.IncrementViewCount(ctx, id); err != nil {
		if errors.Is(err, ErrArticleNotFound) {
			span.SetStatus(codes.Error, "not-found")
			pkg.WriteJSONError(w, "Article not found", http.StatusNotFound)
			return
		}
		log.Errorf("increment view count %d: %s", id, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "view-count-err")
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	handler.instr.CounterArticleViews.Inc()
	span.SetStatus(codes.Ok, "ok")
	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}

func (handler *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "articlesHandler.create")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("create article, unmarshal json params: %s", err)
		span.SetStatus(codes.Error, "bad-request")
		pkg.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	article := &Article{
		Title:       req.Title,
		Slug:        req.Slug,
		Content:     req.Content,
		Description: req.Description,
		Categories:  req.Categories,
		Status:      req.Status,
	}

	if err := handler.repo.Create(ctx, article); err != nil {
		handler.writeMutationError(w, span, "create article", err)
		return
	}

	handler.listCache.Clear()
	log.Tracef("new article %d: [%s] added", article.ID, article.Title)
	span.SetStatus(codes.Ok, "ok")

	articleJson, err := json.Marshal(article)
	if err != nil {
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, articleJson, http.StatusCreated)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "articlesHandler.update")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		span.SetStatus(codes.Error, "bad-id")
		pkg.WriteJSONError(w, "Invalid article id", http.StatusBadRequest)
		return
	}

	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("update article, unmarshal json params: %s", err)
		span.SetStatus(codes.Error, "bad-request")
		pkg.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	article := &Article{
		ID:          id,
		Title:       req.Title,
		Slug:        req.Slug,
		Content:     req.Content,
		Description: req.Description,
		Categories:  req.Categories,
		Status:      req.Status,
	}
	if article.Slug == "" {
		article.Slug = GenerateSlug(article.Title)
	}
	if article.Status == "" {
		article.Status = StatusDraft
	}

	if err := handler.repo.Update(ctx, article); err != nil {
		handler.writeMutationError(w, span, "update article", err)
		return
	}

	handler.listCache.Clear()
	span.SetStatus(codes.Ok, "ok")

	updated, err := handler.repo.GetByID(ctx, id)
	if err != nil {
		log.Errorf("update article, get updated %d: %s", id, err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	articleJson, err := json.Marshal(updated)
	if err != nil {
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, articleJson)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "articlesHandler.delete")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "DELETE, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		span.SetStatus(codes.Error, "bad-id")
		pkg.WriteJSONError(w, "Invalid article id", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrArticleNotFound) {
			span.SetStatus(codes.Error, "not-found")
			pkg.WriteJSONError(w, "Article not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete article %d: %s", id, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete-err")
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	handler.listCache.Clear()
	log.Tracef("article %d deleted", id)
	span.SetStatus(codes.Ok, "ok")
	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}

// writeMutationError maps create/update failures to a response, keeping
// validation issues at 400 and slug clashes at 409
func (handler *Handler) writeMutationError(w http.ResponseWriter, span trace.Span, op string, err error) {
	switch {
	case errors.Is(err, ErrArticleNotFound):
		span.SetStatus(codes.Error, "not-found")
		pkg.WriteJSONError(w, "Article not found", http.StatusNotFound)
	case errors.Is(err, ErrSlugTaken):
		span.SetStatus(codes.Error, "slug-taken")
		pkg.WriteJSONError(w, "An article with this slug already exists", http.StatusConflict)
	case errors.Is(err, ErrTitleInvalid), errors.Is(err, ErrContentEmpty), errors.Is(err, ErrSlugInvalid):
		span.SetStatus(codes.Error, "invalid-article")
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", op, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "internal-err")
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func listParamsFromRequest(r *http.Request) (ListParams, error) {
	params := ListParams{
		Page:     1,
		Size:     defaultPageSize,
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return ListParams{}, errors.New("invalid page (has to be a positive number)")
		}
		params.Page = page
	}
	if sizeStr := r.URL.Query().Get("limit"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 || size > maxPageSize {
			return ListParams{}, fmt.Errorf("invalid limit (has to be between 1 and %d)", maxPageSize)
		}
		params.Size = size
	}

	return params, nil
}
