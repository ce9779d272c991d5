package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SalesController struct {
	finder SalesFinder
	stats  StatsReader
}

func NewSalesController(finder SalesFinder, stats StatsReader) *SalesController {
	return &SalesController{
		finder: finder,
		stats:  stats,
	}
}

// Search handles GET /api/sales?publisher=KEY
// A numeric key matches the publisher id, anything else a substring of the name.
func (controller *SalesController) Search(c *gin.Context) {
	key := c.Query("publisher")
	if key == "" {
		respondBadRequest(c, "publisher query parameter is required")
		return
	}
	if controller.finder == nil {
		respondError(c, http.StatusServiceUnavailable, "sales store not configured")
		return
	}

	rows, err := controller.finder.SalesByPublisher(c.Request.Context(), key)
	if err != nil {
		respondInternalError(c, err, "sales search")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"publisher": key, "sales": rows, "count": len(rows)})
}

// Stats handles GET /api/stats
func (controller *SalesController) Stats(c *gin.Context) {
	if controller.stats == nil {
		respondError(c, http.StatusServiceUnavailable, errDatabaseNotConfigured.Error())
		return
	}

	counts, err := controller.stats.Counts(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "catalog stats")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"tables": counts})
}
