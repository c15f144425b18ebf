package scope

import "gorm.io/gorm"

// MaxPageSize caps any paginated listing.
const MaxPageSize = 100

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// Paginate limits a listing to one page. A non-positive limit leaves the
// query unbounded; larger limits are clamped to MaxPageSize.
func Paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		if limit > MaxPageSize {
			limit = MaxPageSize
		}
		if offset < 0 {
			offset = 0
		}
		return db.Limit(limit).Offset(offset)
	}
}
