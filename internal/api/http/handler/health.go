package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

// Health handles GET /health.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Success: true, Status: "ok"})
}
