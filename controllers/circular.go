package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"leave-management-api/config"
	"leave-management-api/models"
)

type circularRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// GetCirculars returns the latest circulars, newest first.
func GetCirculars(c *gin.Context) {
	limit := 5
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	var rows []models.Circular
	if err := config.DB.Order("date_posted DESC").Limit(limit).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch circulars"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"circulars": rows, "total": len(rows)})
}

// PublishCircular creates a new circular (HOD only, enforced by the route).
func PublishCircular(c *gin.Context) {
	var req circularRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	circular := models.Circular{
		Title:    strings.TrimSpace(req.Title),
		Content:  strings.TrimSpace(req.Content),
		PostedBy: c.GetString("username"),
	}
	if err := config.DB.Create(&circular).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish circular"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Circular published successfully",
		"circular": circular,
	})
}
