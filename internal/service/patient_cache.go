package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hospital-management/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	patientCacheKeyPrefix = "patient:"
	// deletedPatient marks an id whose row is gone, so a slow reader cannot
	// put it back.
	deletedPatient = "deleted"
)

// PatientCache is a read-through copy of patient rows keyed by id.
type PatientCache interface {
	// Get returns nil, nil on a miss or for a deleted id.
	Get(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	// Set stores patient unless the cache already holds a newer copy
	// (by UpdatedAt) or the id was deleted.
	Set(ctx context.Context, patient *entity.Patient) error
	// Delete marks ids as deleted until the TTL runs out.
	Delete(ctx context.Context, ids ...uuid.UUID) error
}

type redisPatientCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisPatientCache(redisClient *redis.Client, ttl time.Duration) PatientCache {
	return &redisPatientCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func patientCacheKey(id uuid.UUID) string {
	return patientCacheKeyPrefix + id.String()
}

func (c *redisPatientCache) Get(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	raw, err := c.redisClient.Get(ctx, patientCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if string(raw) == deletedPatient {
		return nil, nil
	}

	var patient entity.Patient
	if err := json.Unmarshal(raw, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (c *redisPatientCache) Set(ctx context.Context, patient *entity.Patient) error {
	raw, err := json.Marshal(patient)
	if err != nil {
		return err
	}
	key := patientCacheKey(patient.ID)

	err = c.redisClient.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		case string(current) == deletedPatient:
			return nil
		default:
			var cached entity.Patient
			if json.Unmarshal(current, &cached) == nil && cached.UpdatedAt.After(patient.UpdatedAt) {
				return nil
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, c.ttl)
			return nil
		})
		return err
	}, key)

	// Another writer touched the key first; its value wins.
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *redisPatientCache) Delete(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := c.redisClient.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.Set(ctx, patientCacheKey(id), deletedPatient, c.ttl)
		}
		return nil
	})
	return err
}
