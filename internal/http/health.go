package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booksales/internal/database"
)

// HealthResponse is served by GET /health. Tables holds the row count of
// each catalog table and is empty when the catalog cannot be read.
type HealthResponse struct {
	Status   string           `json:"status"`
	Time     string           `json:"time"`
	Version  string           `json:"version,omitempty"`
	Database string           `json:"database"`
	Tables   map[string]int64 `json:"tables,omitempty"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// Status handles GET /health. The service is healthy only when the
// database answers and every catalog table can be counted.
func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
	}

	if err := h.checkCatalog(c.Request.Context(), &health); err != nil {
		health.Status = "unhealthy"
		health.Database = "error: " + err.Error()
		c.IndentedJSON(http.StatusServiceUnavailable, health)
		return
	}

	health.Database = "ok"
	c.IndentedJSON(http.StatusOK, health)
}

func (h *HealthController) checkCatalog(ctx context.Context, health *HealthResponse) error {
	if h.db == nil {
		return errDatabaseNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return err
	}

	counts, err := h.db.Counts(ctx)
	if err != nil {
		return err
	}
	health.Tables = counts
	return nil
}
