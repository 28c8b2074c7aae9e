package handler

import (
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Decoders for upload validation.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadSize caps uploads at 5MB; larger files are rejected before
// anything touches disk.
const maxUploadSize = 5 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadBlogImage stores an image for post content and covers.
func (a *API) UploadBlogImage(c *gin.Context) {
	a.handleUpload(c, "blog")
}

// UploadSiteAsset stores a site asset such as the logo.
func (a *API) UploadSiteAsset(c *gin.Context) {
	a.handleUpload(c, "site")
}

func (a *API) handleUpload(c *gin.Context, bucket string) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no image in request")
		return
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		respondError(c, http.StatusBadRequest, "only image files are allowed")
		return
	}

	if file.Size > maxUploadSize {
		respondError(c, http.StatusBadRequest, "image exceeds the 5MB limit")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		respondError(c, http.StatusBadRequest, "unsupported image format")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read image")
		return
	}
	if _, _, err := image.DecodeConfig(src); err != nil {
		src.Close()
		respondError(c, http.StatusBadRequest, "file is not a valid image")
		return
	}
	src.Close()

	targetDir := filepath.Join(a.uploadDir, bucket)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		respondError(c, http.StatusInternalServerError, "could not prepare upload directory")
		return
	}

	newFilename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(targetDir, newFilename)); err != nil {
		respondError(c, http.StatusInternalServerError, "could not save image")
		return
	}

	fileURL := fmt.Sprintf("%s/%s/%s", a.uploadURL, bucket, newFilename)
	c.JSON(http.StatusOK, gin.H{"url": fileURL})
}
