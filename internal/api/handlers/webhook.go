package handlers

import (
	"net/http"

	"trove-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v57/github"
)

// GitHub delivery headers
const (
	HeaderGitHubEvent     = github.EventTypeHeader
	HeaderGitHubDelivery  = github.DeliveryIDHeader
	HeaderGitHubSignature = github.SHA256SignatureHeader
)

// WebhookHandler handles inbound provider webhooks
type WebhookHandler struct {
	webhookService service.WebhookServiceInterface
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(webhookService service.WebhookServiceInterface) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
	}
}

// WebhookResponse acknowledges a webhook delivery
type WebhookResponse struct {
	OK         bool   `json:"ok" example:"true"`
	ResourceID string `json:"resource_id,omitempty" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	Message    string `json:"message,omitempty" example:"Ignored event: push"`
}

// GitHub handles POST /webhooks/github
// @Summary GitHub webhook
// @Description Ingests "star created" events as github_star resources. Authenticated only by the X-Hub-Signature-256 HMAC over the raw body; other events are acknowledged and ignored.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Hub-Signature-256 header string true "sha256=<hex HMAC of the body>"
// @Param X-GitHub-Event header string true "Event type"
// @Param X-GitHub-Delivery header string false "Delivery ID"
// @Success 201 {object} WebhookResponse "Resource created"
// @Success 200 {object} WebhookResponse "Delivery ignored"
// @Failure 400 {object} ErrorResponse "Malformed JSON body"
// @Failure 401 {object} ErrorResponse "Missing signature header"
// @Failure 403 {object} ErrorResponse "Invalid signature"
// @Failure 409 {object} ErrorResponse "Repository already saved"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /webhooks/github [post]
func (h *WebhookHandler) GitHub(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.webhookService.HandleGitHubDelivery(c.Request.Context(), service.GitHubDelivery{
		Event:      c.GetHeader(HeaderGitHubEvent),
		DeliveryID: c.GetHeader(HeaderGitHubDelivery),
		Signature:  c.GetHeader(HeaderGitHubSignature),
		Body:       body,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if !result.Created {
		c.JSON(http.StatusOK, WebhookResponse{OK: true, Message: result.Message})
		return
	}
	c.JSON(http.StatusCreated, WebhookResponse{OK: true, ResourceID: result.ResourceID.String()})
}
