// receipt_watch imports receipts dropped into a folder. New image files are
// OCR'd and recorded as expenses for the configured user; files whose amount
// cannot be read are kept as failed Receipt rows for manual review.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"depenses/models"
	"depenses/pkg/ocr"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func main() {
	dir := flag.String("dir", "receipts-inbox", "directory to watch for receipt images")
	userID := flag.Uint("user", 0, "user id imported expenses belong to (required)")
	flag.Parse()
	if *userID == 0 {
		log.Fatal("-user is required")
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	var user models.User
	if err := db.First(&user, *userID).Error; err != nil {
		log.Fatalf("user %d not found: %v", *userID, err)
	}

	if err := os.MkdirAll(*dir, 0755); err != nil {
		log.Fatalf("failed to create watch dir: %v", err)
	}

	// catch up on files already present before watching
	entries, _ := os.ReadDir(*dir)
	for _, e := range entries {
		if !e.IsDir() {
			importReceipt(db, user.ID, filepath.Join(*dir, e.Name()))
		}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("watcher: %v", err)
	}
	defer w.Close()
	if err := w.Add(*dir); err != nil {
		log.Fatalf("watch %s: %v", *dir, err)
	}
	log.Printf("watching %s for user %s (id=%d)", *dir, user.Username, user.ID)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				// give the writer a moment to finish the file
				time.Sleep(500 * time.Millisecond)
				importReceipt(db, user.ID, ev.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

func importReceipt(db *gorm.DB, userID uint, path string) {
	name := filepath.Base(path)
	if !imageExts[strings.ToLower(filepath.Ext(name))] {
		return
	}
	var existing models.Receipt
	if err := db.Where("user_id = ? AND file_name = ?", userID, name).First(&existing).Error; err == nil {
		log.Printf("skip %s: already imported (receipt id=%d)", name, existing.ID)
		return
	}

	receipt := models.Receipt{UserID: userID, FileName: name, StorePath: path}
	result, err := ocr.ExtractAmountFromImage(path)
	if err != nil {
		receipt.Failed = true
		receipt.FailedReason = err.Error()
		log.Printf("ocr failed for %s: %v", name, err)
	} else {
		expense := models.Expense{
			UserID:      userID,
			Amount:      result.Amount,
			Description: "Receipt " + name,
			Category:    "receipt",
			Date:        time.Now(),
		}
		if err := db.Create(&expense).Error; err != nil {
			receipt.Failed = true
			receipt.FailedReason = "expense creation failed"
			log.Printf("expense for %s: %v", name, err)
		} else {
			receipt.ExpenseID = &expense.ID
			log.Printf("imported %s: %s (confidence %.1f, matched %q)", name, result.Amount, result.Confidence, result.Raw)
		}
	}
	if err := db.Create(&receipt).Error; err != nil {
		log.Printf("save receipt row for %s: %v", name, err)
	}
}
