package handler

import (
	"net/http"
	"strings"

	"github.com/AndrianinaH/cyberzone-finance/internal/models"
	"github.com/AndrianinaH/cyberzone-finance/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UpdateProfileReq updates name/email of the current user.
type UpdateProfileReq struct {
	Name  string `json:"name" binding:"required,max=64"`
	Email string `json:"email" binding:"required,max=128"`
}

// ChangePasswordReq changes the current user's password.
type ChangePasswordReq struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// UpdateProfile updates the current user's name and email.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req UpdateProfileReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Name == "" || !emailRe.MatchString(req.Email) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name and a valid email are required")
			return
		}

		// email must not belong to another user
		var other models.User
		err := db.Where("email = ? AND id <> ?", req.Email, user.ID).First(&other).Error
		if err == nil {
			util.Error(c, http.StatusConflict, util.CodeInvariant, "email already in use")
			return
		}
		if err != gorm.ErrRecordNotFound {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check email")
			return
		}

		if err := db.Model(user).Updates(map[string]interface{}{
			"name":  req.Name,
			"email": req.Email,
		}).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update profile")
			return
		}

		user.Name = req.Name
		user.Email = req.Email

		util.Success(c, util.Response{
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
			},
		})
	}
}

// ChangePassword verifies the current password and stores a new hash.
func ChangePassword(db *gorm.DB, bcryptCost int) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req ChangePasswordReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "current password is incorrect")
			return
		}

		if !isStrongPassword(req.NewPassword) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
				"password must be 8-32 characters with upper, lower and digit")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
			return
		}

		if err := db.Model(user).Update("password_hash", string(hash)).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update password")
			return
		}

		util.Success(c, util.Response{
			"message": "password updated, please log in again",
		})
	}
}
