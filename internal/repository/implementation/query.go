package implementation

import (
	"context"
	"errors"

	"promptly-be/internal/repository/specification"

	"gorm.io/gorm"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// first returns the first row of M matching specs, or nil without an error
// when there is none.
func first[M any](ctx context.Context, db *gorm.DB, specs ...specification.Specification) (*M, error) {
	var m M
	if err := applySpecifications(db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func find[M any](ctx context.Context, db *gorm.DB, specs ...specification.Specification) ([]*M, error) {
	var rows []*M
	if err := applySpecifications(db.WithContext(ctx), specs...).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func count[M any](ctx context.Context, db *gorm.DB, specs ...specification.Specification) (int64, error) {
	var n int64
	if err := applySpecifications(db.WithContext(ctx).Model(new(M)), specs...).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
