// ABOUTME: HTTP handlers for GraphQL execution, nutrition lookup and photo upload.
// ABOUTME: REST helpers reply with {"error": ...} bodies on failure.
package graphql

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/harperreed/fittrack/internal/nutrition"
	"github.com/harperreed/fittrack/internal/photo"
)

const codeValidationFailed = "GRAPHQL_VALIDATION_FAILED"

type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func (s *Server) handleGraphQL(c *gin.Context) {
	var req graphQLRequest
	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variables"})
				return
			}
		}
		if declaresMutation(req.Query) {
			c.Header("Allow", http.MethodPost)
			c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "mutations require POST"})
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	resp := s.schema.Exec(c.Request.Context(), req.Query, req.OperationName, req.Variables)
	for _, qerr := range resp.Errors {
		code := codeValidationFailed
		if v, ok := qerr.Extensions["code"].(string); ok {
			code = v
		}
		if code == codeValidationFailed {
			s.logger.Debugw("GraphQL request rejected", "error", qerr.Message)
		} else if code != "NOT_FOUND" && code != "BAD_USER_INPUT" {
			s.logger.Errorw("GraphQL resolver failed", "code", code, "error", qerr.Message, "path", qerr.Path)
		}
		if s.metrics != nil {
			s.metrics.GraphQLErrors.WithLabelValues(code).Inc()
		}
	}

	c.JSON(http.StatusOK, resp)
}

// declaresMutation reports whether any top-level operation in the document
// is a mutation. Comments, strings and selection sets are skipped.
func declaresMutation(query string) bool {
	depth := 0
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '#':
			for i < len(query) && query[i] != '\n' {
				i++
			}
		case ch == '"':
			for i++; i < len(query) && query[i] != '"'; i++ {
				if query[i] == '\\' {
					i++
				}
			}
		case ch == '{':
			depth++
		case ch == '}':
			if depth > 0 {
				depth--
			}
		case depth == 0 && isNameStart(ch):
			start := i
			for i < len(query) && (isNameStart(query[i]) || (query[i] >= '0' && query[i] <= '9')) {
				i++
			}
			if query[start:i] == "mutation" && (start == 0 || query[start-1] != '$') {
				return true
			}
			i--
		}
	}
	return false
}

func isNameStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func (s *Server) handleNutrition(c *gin.Context) {
	if s.nutrition == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "nutrition lookup is not configured"})
		return
	}
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	item, err := s.nutrition.Lookup(c.Request.Context(), query)
	if err != nil {
		var statusErr *nutrition.StatusError
		switch {
		case errors.Is(err, nutrition.ErrNoResults):
			c.JSON(http.StatusNotFound, gin.H{"error": "no nutrition data found"})
		case errors.Is(err, nutrition.ErrEmptyQuery):
			c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		case errors.As(err, &statusErr):
			s.logger.Warnw("Nutrition upstream rejected request", "status", statusErr.StatusCode, "query", query)
			c.JSON(statusErr.StatusCode, gin.H{"error": "failed to fetch nutrition data"})
		default:
			s.logger.Errorw("Nutrition lookup failed", "error", err, "query", query)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch nutrition data"})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

func (s *Server) handleUploadPhoto(c *gin.Context) {
	if s.photos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo upload is not configured"})
		return
	}

	file, err := c.FormFile("profilePhoto")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profilePhoto file is required"})
		return
	}
	if file.Size > s.config.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo is too large"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !photo.SupportedExt(ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo must be a png, jpeg or webp image"})
		return
	}

	if err := os.MkdirAll(s.photos.UploadDir(), 0o750); err != nil {
		s.logger.Errorw("Failed to create upload directory", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process image"})
		return
	}

	raw := filepath.Join(s.photos.UploadDir(), uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, raw); err != nil {
		s.logger.Errorw("Failed to save upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process image"})
		return
	}
	defer func() {
		if err := os.Remove(raw); err != nil && !os.IsNotExist(err) {
			s.logger.Warnw("Failed to remove raw upload", "path", raw, "error", err)
		}
	}()

	url, err := s.photos.Process(c.Request.Context(), raw)
	if err != nil {
		if errors.Is(err, photo.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image"})
			return
		}
		s.logger.Errorw("Photo processing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
