package handlers

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"strings"

	"recipes_backend/logger"
	"recipes_backend/models"
	"recipes_backend/store"

	"github.com/nfnt/resize"
)

const (
	defaultImageHeight = 500
	maxImageHeight     = 2000
	maxImageWidth      = 4000

	// Limits on the upstream image, checked before it is decoded.
	maxSourceBytes     = 10 << 20
	maxSourceDimension = 10000
)

// RecipeImage fetches the image referenced by a recipe's imageURL field,
// resizes it to the requested height keeping the aspect ratio, and returns it.
func RecipeImage(st store.Store, client *http.Client, w http.ResponseWriter, r *http.Request) {
	recipeID, ok := recipeIDFromPath(st, w, r)
	if !ok {
		return
	}

	newHeight := uint(defaultImageHeight)
	if h := r.URL.Query().Get("height"); h != "" {
		parsed, err := strconv.Atoi(h)
		if err != nil || parsed <= 0 || parsed > maxImageHeight {
			writeMessage(w, r, http.StatusBadRequest, "Invalid 'height' query parameter")
			return
		}
		newHeight = uint(parsed)
	}

	recipe, err := st.FindOne(r.Context(), recipeID)
	if err != nil {
		writeStoreError(w, r, "Failed to retrieve recipe", err)
		return
	}
	if recipe == nil {
		writeMessage(w, r, http.StatusNotFound, "Recipe not found")
		return
	}
	imageURL, _ := recipe[models.ImageURLField].(string)
	if imageURL == "" {
		writeMessage(w, r, http.StatusNotFound, "Recipe has no image")
		return
	}

	rlog := logger.FromContext(r.Context()).WithField("imageURL", imageURL)

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, imageURL, nil)
	if err != nil {
		rlog.WithError(err).Info("Invalid image URL")
		writeMessage(w, r, http.StatusBadGateway, "Failed to fetch image")
		return
	}
	resp, err := client.Do(req)
	if err != nil {
		rlog.WithError(err).Warn("Failed to fetch image")
		writeMessage(w, r, http.StatusBadGateway, "Failed to fetch image")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		rlog.WithField("status", resp.StatusCode).Warn("Image upstream returned an error")
		writeMessage(w, r, http.StatusBadGateway, "Failed to fetch image")
		return
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes+1))
	if err != nil {
		rlog.WithError(err).Warn("Failed to read image")
		writeMessage(w, r, http.StatusBadGateway, "Failed to fetch image")
		return
	}
	if len(data) > maxSourceBytes {
		rlog.Warn("Image exceeds the size limit")
		writeMessage(w, r, http.StatusBadGateway, "Image is too large")
		return
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		writeMessage(w, r, http.StatusUnsupportedMediaType, "Unsupported image format")
		return
	}
	if err != nil {
		rlog.WithError(err).Warn("Failed to decode image")
		writeMessage(w, r, http.StatusBadGateway, "Failed to decode image")
		return
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > maxSourceDimension || cfg.Height > maxSourceDimension {
		rlog.WithField("width", cfg.Width).WithField("height", cfg.Height).Warn("Image dimensions out of range")
		writeMessage(w, r, http.StatusBadGateway, "Image dimensions are not supported")
		return
	}

	// Calculate new width while maintaining aspect ratio
	aspectRatio := float64(cfg.Width) / float64(cfg.Height)
	newWidth := uint(float64(newHeight) * aspectRatio)
	if newWidth == 0 {
		newWidth = 1
	}
	if newWidth > maxImageWidth {
		writeMessage(w, r, http.StatusBadGateway, "Image dimensions are not supported")
		return
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		rlog.WithError(err).Warn("Failed to decode image")
		writeMessage(w, r, http.StatusBadGateway, "Failed to decode image")
		return
	}
	resized := resize.Resize(newWidth, newHeight, img, resize.Lanczos3)

	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		w.Header().Set("Content-Type", "image/jpeg")
		err = jpeg.Encode(w, resized, nil)
	case "png":
		w.Header().Set("Content-Type", "image/png")
		err = png.Encode(w, resized)
	default:
		writeMessage(w, r, http.StatusUnsupportedMediaType, "Unsupported image format")
		return
	}
	if err != nil {
		rlog.WithError(err).Error("Failed to encode image")
	}
}
