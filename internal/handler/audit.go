package handler

import (
	"net/http"
	"strconv"

	"github.com/AndrianinaH/cyberzone-finance/internal/models"
	"github.com/AndrianinaH/cyberzone-finance/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListAuditLogs pages through the caller's own audit trail, newest first.
func ListAuditLogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page <= 0 {
			page = 1
		}
		size, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if size <= 0 || size > 100 {
			size = 20
		}

		base := db.Model(&models.AuditLog{}).Where("user_id = ?", user.ID)

		var total int64
		if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to count logs")
			return
		}

		var logs []models.AuditLog
		if err := base.Session(&gorm.Session{}).
			Order("id DESC").
			Limit(size).
			Offset((page - 1) * size).
			Find(&logs).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load logs")
			return
		}

		items := make([]gin.H, 0, len(logs))
		for _, l := range logs {
			items = append(items, gin.H{
				"id":         l.ID,
				"method":     l.Method,
				"path":       l.Path,
				"action":     l.Action,
				"ip":         l.IP,
				"created_at": l.CreatedAt,
			})
		}

		util.Success(c, util.Response{
			"logs":  items,
			"total": total,
			"page":  page,
			"limit": size,
		})
	}
}
