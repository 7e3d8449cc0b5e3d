package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/NailSitePro/salon-platform/internal/audit"
	domain "github.com/NailSitePro/salon-platform/internal/domain/salon"
	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/httpresp"
	"github.com/NailSitePro/salon-platform/internal/middleware"
	"github.com/NailSitePro/salon-platform/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type BlogHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBlogHandler(db *gorm.DB, audit *audit.Dispatcher) *BlogHandler {
	return &BlogHandler{db: db, audit: audit}
}

func (h *BlogHandler) dispatchAudit(c *gin.Context, action, entity string, entityID uint) {
	ev := audit.Event{Action: action, Entity: entity, EntityID: &entityID}
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			ev.UserID = &id
		}
	}
	h.audit.Dispatch(ev)
}

// ======================================================
// REQUESTS
// ======================================================

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Excerpt string `json:"excerpt"`

	CoverImageURL string         `json:"cover_image_url"`
	Category      string         `json:"category"`
	Tags          datatypes.JSON `json:"tags"`

	Published bool `json:"published"`
	Featured  bool `json:"featured"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Excerpt *string `json:"excerpt"`

	CoverImageURL *string         `json:"cover_image_url"`
	Category      *string         `json:"category"`
	Tags          *datatypes.JSON `json:"tags"`

	Published *bool `json:"published"`
	Featured  *bool `json:"featured"`
}

type CreateCommentRequest struct {
	AuthorName  string `json:"author_name" binding:"required"`
	AuthorEmail string `json:"author_email"`
	Content     string `json:"content" binding:"required"`
}

// ======================================================
// POSTS
// ======================================================

func (h *BlogHandler) ListPosts(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.BlogPost{})

	// Only admins see drafts.
	if role, _ := c.Get(middleware.ContextUserRole); role != models.RoleAdmin {
		q = q.Where("published = ?", true)
	}

	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if c.Query("featured") == "true" {
		q = q.Where("featured = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_posts", "Could not list blog posts.")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var posts []models.BlogPost
	if err := q.
		Order("published_at DESC NULLS LAST, created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_posts", "Could not list blog posts.")
		return
	}

	httpresp.List(c, posts, total)
}

func (h *BlogHandler) GetPost(c *gin.Context) {
	slug := c.Param("slug")

	var post models.BlogPost
	err := h.db.WithContext(c.Request.Context()).
		Preload("Comments", "approved = ?", true).
		Where("slug = ?", slug).
		First(&post).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "not_found", "Blog post not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_post", "Could not load the blog post.")
		return
	}

	if role, _ := c.Get(middleware.ContextUserRole); !post.Published && role != models.RoleAdmin {
		httperr.NotFound(c, "not_found", "Blog post not found.")
		return
	}

	// Counted in the database so concurrent readers don't lose increments.
	h.db.WithContext(c.Request.Context()).
		Model(&models.BlogPost{}).
		Where("id = ?", post.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	post.ViewCount++

	httpresp.OK(c, &post)
}

// nextPostSlug slugifies the title and probes numeric suffixes until the
// slug is free, so repeated titles get "-1", "-2" and so on.
func (h *BlogHandler) nextPostSlug(c *gin.Context, title string) (string, error) {
	base := domain.Slugify(title)
	if base == "" {
		base = "post"
	}

	candidate := base
	for n := 1; ; n++ {
		var count int64
		if err := h.db.WithContext(c.Request.Context()).
			Model(&models.BlogPost{}).
			Where("slug = ?", candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = domain.SuffixedSlug(base, n)
	}
}

func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	slug, err := h.nextPostSlug(c, req.Title)
	if err != nil {
		httperr.Internal(c, "failed_to_create_post", "Could not create the blog post.")
		return
	}

	post := models.BlogPost{
		Title:         req.Title,
		Slug:          slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		CoverImageURL: req.CoverImageURL,
		Category:      req.Category,
		Tags:          req.Tags,
		Published:     req.Published,
		Featured:      req.Featured,
	}
	if post.Category == "" {
		post.Category = "other"
	}
	if uid, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := uid.(uint); ok {
			post.AuthorID = &id
		}
	}
	if post.Published {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&post).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			httperr.Conflict(c, "conflict", "A post with this title already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_post", "Could not create the blog post.")
		return
	}

	h.dispatchAudit(c, "blog_post_created", "blog_post", post.ID)

	httpresp.Created(c, &post)
}

func (h *BlogHandler) UpdatePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "Post id must be an integer.")
		return
	}

	var post models.BlogPost
	if err := h.db.WithContext(c.Request.Context()).
		First(&post, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "not_found", "Blog post not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_post", "Could not load the blog post.")
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	if req.Title != nil && *req.Title != "" {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.CoverImageURL != nil {
		post.CoverImageURL = *req.CoverImageURL
	}
	if req.Category != nil && *req.Category != "" {
		post.Category = *req.Category
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
	}
	if req.Featured != nil {
		post.Featured = *req.Featured
	}
	if req.Published != nil {
		if *req.Published && !post.Published {
			now := time.Now().UTC()
			post.PublishedAt = &now
		}
		post.Published = *req.Published
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&post).Error; err != nil {
		httperr.Internal(c, "failed_to_update_post", "Could not save the blog post.")
		return
	}

	h.dispatchAudit(c, "blog_post_updated", "blog_post", post.ID)

	httpresp.OK(c, &post)
}

func (h *BlogHandler) DeletePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "Post id must be an integer.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Delete(&models.BlogPost{}, uint(id))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_post", "Could not delete the blog post.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "not_found", "Blog post not found.")
		return
	}

	h.dispatchAudit(c, "blog_post_deleted", "blog_post", uint(id))

	c.Status(http.StatusNoContent)
}

// ======================================================
// COMMENTS
// ======================================================

func (h *BlogHandler) CreateComment(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "Post id must be an integer.")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	var post models.BlogPost
	if err := h.db.WithContext(c.Request.Context()).
		Where("published = ?", true).
		First(&post, uint(postID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "not_found", "Blog post not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_post", "Could not load the blog post.")
		return
	}

	comment := models.BlogComment{
		BlogPostID:  post.ID,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Content:     req.Content,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&comment).Error; err != nil {
		httperr.Internal(c, "failed_to_create_comment", "Could not submit the comment.")
		return
	}

	httpresp.Created(c, &comment)
}

func (h *BlogHandler) ApproveComment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "Comment id must be an integer.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.BlogComment{}).
		Where("id = ?", uint(id)).
		Update("approved", true)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_approve_comment", "Could not approve the comment.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "not_found", "Comment not found.")
		return
	}

	h.dispatchAudit(c, "blog_comment_approved", "blog_comment", uint(id))

	httpresp.Message(c, "Comment approved.")
}

func (h *BlogHandler) DeleteComment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "Comment id must be an integer.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Delete(&models.BlogComment{}, uint(id))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_comment", "Could not delete the comment.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "not_found", "Comment not found.")
		return
	}

	h.dispatchAudit(c, "blog_comment_deleted", "blog_comment", uint(id))

	c.Status(http.StatusNoContent)
}
