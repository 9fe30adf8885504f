package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetStaffID extracts the staff ID from the Gin context
func GetStaffID(c *gin.Context) *uuid.UUID {
	staffIDVal, exists := c.Get("staff_id")
	if !exists {
		return nil
	}
	staffID, ok := staffIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &staffID
}

// GetStaffName extracts the staff name from the Gin context
func GetStaffName(c *gin.Context) string {
	name, exists := c.Get("staff_name")
	if !exists {
		return ""
	}
	return name.(string)
}
