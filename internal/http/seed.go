package http

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/booksales/internal/tasks"
)

// SeedController enqueues background seed loads.
type SeedController struct {
	client   *tasks.Client
	seedFile string
}

// NewSeedController creates a new SeedController. A nil client disables loading.
func NewSeedController(client *tasks.Client, seedFile string) *SeedController {
	return &SeedController{client: client, seedFile: seedFile}
}

// LoadSeedRequest is the request body for POST /api/seed/load.
// Path is resolved against the directory of the configured seed file.
type LoadSeedRequest struct {
	Path string `json:"path,omitempty"`
}

var errPathOutsideSeedDir = errors.New("path must be a .json file inside the seed directory")

// Load handles POST /api/seed/load
func (sc *SeedController) Load(c *gin.Context) {
	if sc.client == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}

	var req LoadSeedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}

	path := sc.seedFile
	if req.Path != "" {
		resolved, err := sc.resolvePath(req.Path)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		path = resolved
	}
	if path == "" {
		respondBadRequest(c, "path is required")
		return
	}

	ids, err := sc.client.Add(tasks.LoadSeedTask{Path: path, Trigger: "api"}).Save()
	if err != nil {
		respondInternalError(c, err, "enqueue seed load")
		return
	}

	respondAccepted(c, "task enqueued", gin.H{
		"task_id": ids[0],
		"type":    tasks.LoadSeedQueueName,
		"path":    path,
	})
}

// resolvePath maps a requested seed path onto the seed directory. Relative
// paths are joined to it and anything that escapes it is rejected.
func (sc *SeedController) resolvePath(requested string) (string, error) {
	dir, err := filepath.Abs(filepath.Dir(sc.seedFile))
	if err != nil {
		return "", err
	}

	path := requested
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errPathOutsideSeedDir
	}
	if filepath.Ext(path) != ".json" {
		return "", errPathOutsideSeedDir
	}
	return path, nil
}

// TaskStatus handles GET /api/tasks/:id
func (sc *SeedController) TaskStatus(c *gin.Context) {
	if sc.client == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}

	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := sc.client.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
