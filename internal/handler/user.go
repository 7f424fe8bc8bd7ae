package handler

import (
	"net/http"

	"github.com/AndrianinaH/cyberzone-finance/internal/models"
	"github.com/AndrianinaH/cyberzone-finance/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetMe returns the current logged-in user (requires AuthMiddleware).
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		},
	})
}

// ListUsers returns id+name of every user, for the responsible picker.
func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); !ok {
			return
		}

		var users []models.User
		if err := db.Select("id", "name").Order("name ASC").Find(&users).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load users")
			return
		}

		items := make([]gin.H, 0, len(users))
		for _, u := range users {
			items = append(items, gin.H{"id": u.ID, "name": u.Name})
		}

		util.Success(c, util.Response{
			"users": items,
		})
	}
}
