package parsing

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-reader/internal/server/respond"
	"cv-reader/internal/textprovider"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches parse routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/parse-cv", h.parseCV)
	rg.POST("/parse-text", h.parseText)
}

type parseResponse struct {
	Success     bool        `json:"success"`
	Filename    string      `json:"filename,omitempty"`
	Fingerprint string      `json:"fingerprint"`
	Cached      bool        `json:"cached"`
	Data        interface{} `json:"data"`
}

func (h *Handler) parseCV(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	result, err := h.Svc.ParseUpload(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, textprovider.ErrUnsupportedType):
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "only .pdf, .docx and .txt files are supported", nil)
		default:
			// Text extraction failed upstream of the pipeline; reported
			// distinctly from a parse that found nothing.
			respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "could not extract text from document", err.Error())
		}
		return
	}

	c.Set("fingerprint", result.Fingerprint)
	c.Set("cached", result.Cached)
	respond.OK(c, parseResponse{
		Success:     true,
		Filename:    fileHeader.Filename,
		Fingerprint: result.Fingerprint,
		Cached:      result.Cached,
		Data:        result.Record,
	})
}

type parseTextRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) parseText(c *gin.Context) {
	var req parseTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}

	result, err := h.Svc.ParseText(c.Request.Context(), req.Text)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to parse text", err.Error())
		return
	}

	c.Set("fingerprint", result.Fingerprint)
	c.Set("cached", result.Cached)
	respond.OK(c, parseResponse{
		Success:     true,
		Fingerprint: result.Fingerprint,
		Cached:      result.Cached,
		Data:        result.Record,
	})
}
