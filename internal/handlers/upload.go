package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Rickychen930/giftforyou-sub002/internal/config"
)

const maxUploadBytes = 5 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func validImageExt(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext, allowedImageExts[ext]
}

// UploadImage stores a bouquet image under the uploads directory and returns
// its public path.
func UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/uploads"
		defer handlePanic(c, route)

		file, err := c.FormFile("image")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "image file required")
			return
		}

		if file.Size > maxUploadBytes {
			respondWithError(c, http.StatusBadRequest, route, "image too large")
			return
		}

		ext, ok := validImageExt(file.Filename)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "unsupported image type")
			return
		}

		uploadDir := filepath.Join(config.AppEnv.UploadDir, "uploads")
		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			log.Println("[UPLOAD] [ERROR] mkdir failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "upload failed")
			return
		}

		filename := uuid.NewString() + ext
		target := filepath.Join(uploadDir, filename)

		if err := c.SaveUploadedFile(file, target); err != nil {
			log.Println("[UPLOAD] [ERROR] save failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "upload failed")
			return
		}

		publicPath := fmt.Sprintf("/uploads/%s", filename)
		log.Println("[UPLOAD] [INFO] image stored:", publicPath)
		c.JSON(http.StatusCreated, gin.H{"path": publicPath})
	}
}
