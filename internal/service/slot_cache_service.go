package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinic-scheduling-api/internal/delivery/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for computed day views
	slotViewKeyPrefix = "slots:"

	// Cached day views are a read-side acceleration only; the booking
	// path re-checks capacity against the ledger, so a short TTL is
	// enough to bound staleness for bookings made outside this process.
	slotViewTTL = 60 * time.Second
)

// SlotCacheService caches computed day slot views in Redis, keyed by
// doctor and date. Every booking mutation and availability change for
// a doctor invalidates the affected day so the next read recomputes.
//
// All failures are non-fatal: a broken cache degrades to recomputing.
type SlotCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotCacheService(redisClient *redis.Client, log *logrus.Logger) *SlotCacheService {
	return &SlotCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

func slotViewKey(doctorID uuid.UUID, date string) string {
	return fmt.Sprintf("%s%s:%s", slotViewKeyPrefix, doctorID, date)
}

// Get returns the cached day view, or nil on miss or any cache error.
func (s *SlotCacheService) Get(ctx context.Context, doctorID uuid.UUID, date string) *dto.AvailableSlotsResponse {
	if s == nil || s.redisClient == nil {
		return nil
	}

	raw, err := s.redisClient.Get(ctx, slotViewKey(doctorID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Failed to read slot view cache for doctor %s on %s: %+v", doctorID, date, err)
		}
		return nil
	}

	var view dto.AvailableSlotsResponse
	if err := json.Unmarshal(raw, &view); err != nil {
		s.log.Warnf("Corrupt slot view cache entry for doctor %s on %s: %+v", doctorID, date, err)
		return nil
	}
	return &view
}

// Set stores the computed day view.
func (s *SlotCacheService) Set(ctx context.Context, doctorID uuid.UUID, date string, view *dto.AvailableSlotsResponse) {
	if s == nil || s.redisClient == nil || view == nil {
		return
	}

	raw, err := json.Marshal(view)
	if err != nil {
		s.log.Warnf("Failed to marshal slot view for doctor %s on %s: %+v", doctorID, date, err)
		return
	}

	if err := s.redisClient.Set(ctx, slotViewKey(doctorID, date), raw, slotViewTTL).Err(); err != nil {
		s.log.Warnf("Failed to write slot view cache for doctor %s on %s: %+v", doctorID, date, err)
	}
}

// InvalidateDay drops the cached view for one doctor/date.
func (s *SlotCacheService) InvalidateDay(ctx context.Context, doctorID uuid.UUID, date string) {
	if s == nil || s.redisClient == nil {
		return
	}

	if err := s.redisClient.Del(ctx, slotViewKey(doctorID, date)).Err(); err != nil {
		s.log.Warnf("Failed to invalidate slot view cache for doctor %s on %s: %+v", doctorID, date, err)
	}
}

// InvalidateDoctor drops all cached views for a doctor, used when
// availability configuration changes affect every future date.
func (s *SlotCacheService) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) {
	if s == nil || s.redisClient == nil {
		return
	}

	pattern := fmt.Sprintf("%s%s:*", slotViewKeyPrefix, doctorID)
	iter := s.redisClient.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.log.Warnf("Failed to scan slot view cache for doctor %s: %+v", doctorID, err)
		return
	}

	if len(keys) == 0 {
		return
	}
	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		s.log.Warnf("Failed to invalidate slot view cache for doctor %s: %+v", doctorID, err)
	}
}
