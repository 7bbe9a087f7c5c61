package handlers

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Lcsmrct/AMBEAUTY/internal/metrics"
	"github.com/Lcsmrct/AMBEAUTY/internal/models"
	"github.com/Lcsmrct/AMBEAUTY/internal/store"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

type MediaHandler struct {
	Store     store.Store
	UploadDir string
}

const maxUploadSize = 50 << 20 // 50MB, videos included

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".webm": true,
}

// Upload accepts a multipart gallery upload from an admin. Images are
// re-encoded as JPEG capped at 1200px width; videos are stored verbatim.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// MaxBytesReader enforces the cap; the ParseMultipartForm argument is
	// only the in-memory spill threshold.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large, max 50MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "a file is required")
		return
	}
	defer file.Close()

	category := r.FormValue("category")
	if category == "" {
		category = "general"
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	var filename, mediaType string
	switch {
	case ext == ".png" || ext == ".jpg" || ext == ".jpeg":
		filename, err = h.saveImage(file, ext)
		mediaType = models.MediaImage
	case videoExtensions[ext]:
		filename, err = h.saveVideo(file, ext)
		mediaType = models.MediaVideo
	default:
		writeError(w, http.StatusBadRequest, "unsupported file type: use png, jpg, jpeg, mp4, mov or webm")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save file")
		return
	}

	item := &models.MediaItem{
		ID:           uuid.NewString(),
		Filename:     filename,
		OriginalName: header.Filename,
		Category:     category,
		MediaType:    mediaType,
		URL:          "/uploads/" + filename,
		UploadedAt:   time.Now().UTC(),
	}
	if err := h.Store.CreateMediaItem(item); err != nil {
		os.Remove(filepath.Join(h.UploadDir, filename))
		writeStoreError(w, err, "", "a file with this name already exists")
		return
	}

	metrics.IncMediaUploaded(mediaType)
	writeJSON(w, http.StatusCreated, item)
}

func (h *MediaHandler) saveImage(file io.Reader, ext string) (string, error) {
	var img image.Image
	var err error
	if ext == ".png" {
		img, err = png.Decode(file)
	} else {
		img, err = jpeg.Decode(file)
	}
	if err != nil {
		return "", err
	}

	// Cap width at 1200px, preserve aspect ratio.
	if img.Bounds().Dx() > 1200 {
		img = resize.Resize(1200, 0, img, resize.Lanczos3)
	}

	filename := uuid.NewString() + ".jpg"
	out, err := os.Create(filepath.Join(h.UploadDir, filename))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", err
	}
	return filename, nil
}

func (h *MediaHandler) saveVideo(file io.Reader, ext string) (string, error) {
	filename := uuid.NewString() + ext
	out, err := os.Create(filepath.Join(h.UploadDir, filename))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}
	return filename, nil
}

func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListMediaItems(r.URL.Query().Get("category"))
	if err != nil {
		writeStoreError(w, err, "", "")
		return
	}
	if items == nil {
		items = []models.MediaItem{}
	}
	writeJSON(w, http.StatusOK, items)
}
