package repository

import (
	"context"
	"time"

	"doctor-directory/internal/domain/entity"
	domainRepo "doctor-directory/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const DoctorCacheKey = "directory:doctors"

type payloadFetcher interface {
	fetchPayload(ctx context.Context) ([]byte, error)
}

// CachedDoctorSource keeps the upstream payload in a DoctorCache.
// Concurrent misses share a single upstream request.
type CachedDoctorSource struct {
	upstream payloadFetcher
	cache    domainRepo.DoctorCache
	ttl      time.Duration
	log      *logrus.Logger
	group    singleflight.Group
}

func NewCachedDoctorSource(url string, timeout time.Duration, cache domainRepo.DoctorCache, ttl time.Duration, log *logrus.Logger) *CachedDoctorSource {
	return &CachedDoctorSource{
		upstream: &httpDoctorSource{url: url, client: newHTTPClient(timeout)},
		cache:    cache,
		ttl:      ttl,
		log:      log,
	}
}

func (s *CachedDoctorSource) FetchDoctors(ctx context.Context) ([]entity.Doctor, error) {
	payload, found, err := s.cache.Get(ctx, DoctorCacheKey)
	if err != nil {
		s.log.Warnf("Failed to read doctor cache: %+v", err)
	}
	if found {
		doctors, err := decodeDoctors(payload)
		if err == nil {
			return doctors, nil
		}
		s.log.Warnf("Discarding cached doctor payload: %+v", err)
	}

	// The shared fetch must not fail for every waiter when the first caller goes away.
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(DoctorCacheKey, func() (interface{}, error) {
		return s.upstream.fetchPayload(shared)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		payload = res.Val.([]byte)
	}

	doctors, err := decodeDoctors(payload)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, DoctorCacheKey, payload, s.ttl); err != nil {
		s.log.Warnf("Failed to write doctor cache: %+v", err)
	}
	return doctors, nil
}
