package store

import (
	"github.com/Lcsmrct/AMBEAUTY/internal/models"
)

func (s *SQLStore) CreateMediaItem(m *models.MediaItem) error {
	query := `INSERT INTO media (id, filename, original_name, category, media_type, url, uploaded_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.DB.Exec(query, m.ID, m.Filename, m.OriginalName, m.Category, m.MediaType, m.URL, m.UploadedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (s *SQLStore) ListMediaItems(category string) ([]models.MediaItem, error) {
	query := `SELECT id, filename, original_name, category, media_type, url, uploaded_at FROM media`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY uploaded_at DESC`

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MediaItem
	for rows.Next() {
		var m models.MediaItem
		if err := rows.Scan(&m.ID, &m.Filename, &m.OriginalName, &m.Category, &m.MediaType, &m.URL, &m.UploadedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
