package repository

import (
	"context"
	"time"

	"doctor-directory/internal/domain/entity"
)

// DoctorSource delivers the full doctor list from wherever it lives.
type DoctorSource interface {
	FetchDoctors(ctx context.Context) ([]entity.Doctor, error)
}

// DoctorCache stores raw directory payloads. Get returns found=false on a miss.
type DoctorCache interface {
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}
