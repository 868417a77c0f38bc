package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	doctorCacheKey = "doctors:all"
	doctorCacheTTL = 5 * time.Minute
)

// DoctorCache caches the serialized public doctor directory. The listing
// endpoint is unauthenticated and hit by every booking form load, so a short
// TTL plus invalidation on writes keeps it off the database.
type DoctorCache interface {
	// Get returns the cached listing, or (nil, false) on a miss.
	Get(ctx context.Context) ([]byte, bool)
	Set(ctx context.Context, data []byte)
	Invalidate(ctx context.Context)
}

type doctorCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewDoctorCacheService(redisClient *redis.Client, log *logrus.Logger) DoctorCache {
	return &doctorCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

// Redis errors count as misses so the caller falls through to the database.
func (s *doctorCacheService) Get(ctx context.Context) ([]byte, bool) {
	data, err := s.redisClient.Get(ctx, doctorCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warnf("Failed to read doctor cache: %+v", err)
		}
		return nil, false
	}
	return data, true
}

// Set stores the serialized doctor listing. Best effort.
func (s *doctorCacheService) Set(ctx context.Context, data []byte) {
	if err := s.redisClient.Set(ctx, doctorCacheKey, data, doctorCacheTTL).Err(); err != nil {
		s.log.Warnf("Failed to write doctor cache: %+v", err)
	}
}

// Invalidate drops the cached listing after a doctor create or update.
func (s *doctorCacheService) Invalidate(ctx context.Context) {
	if err := s.redisClient.Del(ctx, doctorCacheKey).Err(); err != nil {
		s.log.Warnf("Failed to invalidate doctor cache: %+v", err)
	}
}
