package repository

import (
	"context"

	"hospital-directory/internal/domain/entity"
)

// RecordStore loads directory datasets from their tabular source. Loads never
// fail: an unreadable or malformed source yields an empty slice.
type RecordStore interface {
	LoadDoctors(ctx context.Context) []entity.Doctor
	LoadHospitals(ctx context.Context) []entity.Hospital
}
