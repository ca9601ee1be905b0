package handlers

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"backend/pkg/cloudinary"
)

const maxImageSize = 5 << 20

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// validateUploadFile gates type and size before any bytes leave the server.
func validateUploadFile(file *multipart.FileHeader) error {
	contentType := strings.ToLower(strings.TrimSpace(file.Header.Get("Content-Type")))
	if _, ok := allowedImageTypes[contentType]; !ok {
		return fmt.Errorf("invalid file type. Only images are allowed (JPEG, PNG, WEBP, GIF)")
	}
	if file.Size > maxImageSize {
		return fmt.Errorf("file too large. Maximum size is 5MB")
	}
	return nil
}

func uploadFileName() string {
	return fmt.Sprintf("%d-%06d", time.Now().UnixMilli(), rand.Intn(1000000))
}

/*
POST /admin/api/upload
- validates the image, then delegates hosting to Cloudinary
- responds with the hosted URL the menu item form stores
*/
func UploadImage(uploader *cloudinary.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/upload"
		defer handlePanic(c, route)

		if !uploader.Configured() {
			respondWithError(c, http.StatusInternalServerError, route,
				"Cloudinary is not configured. Please set CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "no file uploaded")
			return
		}

		if err := validateUploadFile(file); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		src, err := file.Open()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to read upload")
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to read upload")
			return
		}

		result, err := uploader.Upload(uploadFileName(), data)
		if err != nil {
			log.Println("[UPLOAD] [ERROR] cloudinary upload failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "failed to upload file")
			return
		}

		log.Printf("[%s] uploaded %s (%d bytes)", route, result.PublicID, len(data))
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"url":      result.SecureURL,
			"publicId": result.PublicID,
		})
	}
}
