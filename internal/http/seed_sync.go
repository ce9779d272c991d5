package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booksales/internal/scheduler"
)

// SeedSyncResponse describes the periodic seed sync.
type SeedSyncResponse struct {
	Running     bool   `json:"running"`
	Schedule    string `json:"schedule,omitempty"`
	Description string `json:"description,omitempty"`
	NextRun     string `json:"next_run,omitempty"`
}

type SeedSyncController struct {
	sync SeedSyncStatus
}

func NewSeedSyncController(sync SeedSyncStatus) *SeedSyncController {
	return &SeedSyncController{sync: sync}
}

// Status handles GET /api/seed/sync
func (sc *SeedSyncController) Status(c *gin.Context) {
	if sc.sync == nil {
		respondError(c, http.StatusServiceUnavailable, "seed sync not configured")
		return
	}

	response := SeedSyncResponse{
		Running:  sc.sync.IsRunning(),
		Schedule: sc.sync.Schedule(),
	}
	if response.Schedule != "" {
		response.Description = scheduler.GetCronDescription(response.Schedule)
	}
	if next := sc.sync.GetNextRunTime(); next != nil {
		response.NextRun = next.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, response)
}

// RunNow handles POST /api/seed/sync/run
func (sc *SeedSyncController) RunNow(c *gin.Context) {
	if sc.sync == nil {
		respondError(c, http.StatusServiceUnavailable, "seed sync not configured")
		return
	}

	if err := sc.sync.RunNow(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	respondAccepted(c, "seed sync started", nil)
}
