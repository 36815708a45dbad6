package service

import (
	"fmt"

	"gorm.io/gorm"
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// Offset of the first row on the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// paginate counts every row matched by db and loads the requested page.
func paginate[T any](db *gorm.DB, page Page) ([]T, int64, error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count rows: %w", err)
	}

	var results []T
	if err := db.Offset(page.Offset()).Limit(page.Size).Find(&results).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to load page: %w", err)
	}
	return results, total, nil
}
