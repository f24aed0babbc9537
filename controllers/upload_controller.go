package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/abhishekkumar914/inventory-management/config"
	"github.com/abhishekkumar914/inventory-management/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadAadhaarPhoto stores the photo under a random name and returns the
// public URL. The content type is sniffed from the file bytes, not trusted
// from the client header.
func UploadAadhaarPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "No file selected", err)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		utils.Error(c, http.StatusBadRequest, "File size must be less than 5MB", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to read file", err)
		return
	}
	head := make([]byte, 512)
	n, _ := f.Read(head)
	f.Close()

	contentType := http.DetectContentType(head[:n])
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		utils.Error(c, http.StatusBadRequest, "Invalid file type. Please upload JPG, PNG, or WEBP.", nil)
		return
	}

	dir := filepath.Join(config.Get().Upload.Dir, "aadhaar-photos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to prepare upload directory", err)
		return
	}

	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(dir, name)); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to save file", err)
		return
	}

	utils.Success(c, "File uploaded successfully", gin.H{
		"url": "/uploads/aadhaar-photos/" + name,
	})
}
