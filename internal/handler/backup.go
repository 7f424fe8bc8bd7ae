package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/AndrianinaH/cyberzone-finance/internal/models"
	"github.com/AndrianinaH/cyberzone-finance/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupHandler writes JSON snapshots of one user's movements and trosa to
// the backup directory and serves them back.
type BackupHandler struct {
	DB        *gorm.DB
	BackupDir string
}

func NewBackupHandler(db *gorm.DB, backupDir string) *BackupHandler {
	return &BackupHandler{
		DB:        db,
		BackupDir: backupDir,
	}
}

type backupData struct {
	UserID    uint              `json:"user_id"`
	Created   time.Time         `json:"created"`
	Movements []models.Movement `json:"movements"`
	Trosa     []models.Trosa    `json:"trosa"`
}

// CreateBackup snapshots the caller's data into a new backup file.
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var movements []models.Movement
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date ASC, id ASC").
		Find(&movements).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load movements")
		return
	}

	var trosaList []models.Trosa
	if err := h.DB.Preload("Payments").
		Where("user_id = ?", user.ID).
		Order("id ASC").
		Find(&trosaList).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load trosa")
		return
	}

	data := backupData{
		UserID:    user.ID,
		Created:   time.Now(),
		Movements: movements,
		Trosa:     trosaList,
	}
	raw, err := json.MarshalIndent(&data, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to serialize backup")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create backup dir")
		return
	}

	id := uuid.New().String()
	fileName := fmt.Sprintf("backup_%s_%s.json", time.Now().Format("20060102_150405"), id[:8])
	if err := os.WriteFile(filepath.Join(h.BackupDir, fileName), raw, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write backup")
		return
	}

	backup := models.Backup{
		ID:        id,
		UserID:    user.ID,
		FileName:  fileName,
		SizeBytes: int64(len(raw)),
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to record backup")
		return
	}

	util.Success(c, util.Response{
		"backup": gin.H{
			"id":         backup.ID,
			"file_name":  backup.FileName,
			"size_bytes": backup.SizeBytes,
			"created_at": backup.CreatedAt,
		},
	})
}

// ListBackups returns the caller's backups, newest first.
func (h *BackupHandler) ListBackups(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var backups []models.Backup
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&backups).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load backups")
		return
	}

	items := make([]gin.H, 0, len(backups))
	for _, b := range backups {
		items = append(items, gin.H{
			"id":         b.ID,
			"file_name":  b.FileName,
			"size_bytes": b.SizeBytes,
			"created_at": b.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"backups": items,
	})
}

// DownloadBackup streams a backup file back to its owner.
func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var backup models.Backup
	if err := h.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&backup).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load backup")
		}
		return
	}

	path := filepath.Join(h.BackupDir, backup.FileName)
	if _, err := os.Stat(path); err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup file missing")
		return
	}

	c.FileAttachment(path, backup.FileName)
}

// DeleteBackup removes a backup record and its file.
func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var backup models.Backup
	if err := h.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&backup).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load backup")
		}
		return
	}

	_ = os.Remove(filepath.Join(h.BackupDir, backup.FileName))

	if err := h.DB.Delete(&backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete backup")
		return
	}

	util.Success(c, util.Response{
		"message": "backup deleted",
	})
}
