package main

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"depenses/models"
	"depenses/pkg/ocr"
)

const maxReceiptSize = 5 * 1024 * 1024

// uploadReceiptHandler stores a receipt image and tries to turn it into an
// expense via OCR. When no amount can be read the receipt row is kept with
// Failed set so it can be fixed by hand instead of vanishing.
func (a *App) uploadReceiptHandler(c *gin.Context) {
	user := currentUser(c)
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "file missing"})
		return
	}
	if file.Size > maxReceiptSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "file too large (max 5MB)"})
		return
	}

	// duplicate upload returns the existing record
	var existing models.Receipt
	if err := a.db.Where("user_id = ? AND file_name = ?", user.ID, file.Filename).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "receipt": existing})
		return
	}

	dir := filepath.Join(a.cfg.UploadBase, "receipts")
	if err := os.MkdirAll(dir, 0755); err != nil {
		a.log.Error("mkdir receipts", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	fullPath := filepath.Join(dir, file.Filename)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		a.log.Error("save receipt", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}

	receipt := models.Receipt{
		UserID:      user.ID,
		FileName:    file.Filename,
		StorePath:   fullPath,
		ContentType: file.Header.Get("Content-Type"),
	}

	result, err := ocr.ExtractAmountFromImage(fullPath)
	if err != nil {
		receipt.Failed = true
		receipt.FailedReason = err.Error()
		a.log.Warn("receipt ocr failed", "file", file.Filename, "err", err)
	} else {
		expense := models.Expense{
			UserID:      user.ID,
			Amount:      result.Amount,
			Description: "Receipt " + file.Filename,
			Category:    "receipt",
			Date:        time.Now(),
		}
		if err := a.db.Create(&expense).Error; err != nil {
			a.log.Error("create expense from receipt", "err", err)
			receipt.Failed = true
			receipt.FailedReason = "expense creation failed"
		} else {
			receipt.ExpenseID = &expense.ID
		}
	}

	if err := a.db.Create(&receipt).Error; err != nil {
		a.log.Error("save receipt record", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "receipt": receipt})
}

// listReceiptsHandler returns the caller's receipts; admins see the whole
// household's.
func (a *App) listReceiptsHandler(c *gin.Context) {
	user := currentUser(c)
	q := a.db.Model(&models.Receipt{})
	if !user.IsAdmin {
		q = q.Where("user_id = ?", user.ID)
	}
	var receipts []models.Receipt
	if err := q.Order("id desc").Limit(200).Find(&receipts).Error; err != nil {
		a.log.Error("list receipts", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "receipts": receipts})
}
