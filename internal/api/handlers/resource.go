package handlers

import (
	"net/http"

	"trove-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ResourceHandler handles HTTP requests for resources
type ResourceHandler struct {
	resourceService service.ResourceServiceInterface
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(resourceService service.ResourceServiceInterface) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
	}
}

// OKResponse acknowledges an operation without a payload
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

// CreateResource handles POST /resources
// @Summary Save a resource
// @Description Validate and store a URL. A missing title or description is filled from the page's own metadata when it can be fetched.
// @Tags resources
// @Accept json
// @Produce json
// @Param resource body service.CreateResourceInput true "Resource data"
// @Success 201 {object} models.Resource "Resource created"
// @Failure 400 {object} ErrorResponse "Invalid JSON or validation failed"
// @Failure 401 {object} ErrorResponse "Missing or malformed Authorization header"
// @Failure 403 {object} ErrorResponse "Invalid API key"
// @Failure 409 {object} ErrorResponse "A resource with this URL already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /resources [post]
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		respondError(c, err)
		return
	}

	resource, err := h.resourceService.CreateResource(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resource)
}

// ListResources handles GET /resources
// @Summary List resources
// @Description Newest first. Follow the returned cursor to read the next page.
// @Tags resources
// @Produce json
// @Param source query string false "Filter by source" Enums(github_star, extension, ios_shortcut, manual)
// @Param cursor query string false "created_at of the last row of the previous page"
// @Param limit query int false "Page size (1-100)" default(50)
// @Success 200 {object} service.ResourceListResponse "One page of resources"
// @Failure 400 {object} ErrorResponse "Invalid source, cursor or limit"
// @Failure 401 {object} ErrorResponse "Missing or malformed Authorization header"
// @Failure 403 {object} ErrorResponse "Invalid API key"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	resp, err := h.resourceService.ListResources(c.Request.Context(), service.ListResourcesQuery{
		Source: queryPtr(c, "source"),
		Cursor: queryPtr(c, "cursor"),
		Limit:  queryPtr(c, "limit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetResource handles GET /resources/:id
// @Summary Get resource by ID
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID (UUID)"
// @Success 200 {object} models.Resource "Resource"
// @Failure 401 {object} ErrorResponse "Missing or malformed Authorization header"
// @Failure 403 {object} ErrorResponse "Invalid API key"
// @Failure 404 {object} ErrorResponse "Resource not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /resources/{id} [get]
func (h *ResourceHandler) GetResource(c *gin.Context) {
	resource, err := h.resourceService.GetResource(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resource)
}

// DeleteResource handles DELETE /resources/:id
// @Summary Delete resource
// @Description Removes the resource and its author links. Author counters are not decremented.
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID (UUID)"
// @Success 200 {object} OKResponse "Deleted"
// @Failure 401 {object} ErrorResponse "Missing or malformed Authorization header"
// @Failure 403 {object} ErrorResponse "Invalid API key"
// @Failure 404 {object} ErrorResponse "Resource not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /resources/{id} [delete]
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	if err := h.resourceService.DeleteResource(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, OKResponse{OK: true})
}

func queryPtr(c *gin.Context, key string) *string {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	return &v
}
