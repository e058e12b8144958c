package employee

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/shared/contextutil"
	"go-workforce/internal/shared/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	EmployeeListKeyPrefix     = "employees:list:"
	EmployeeListGenerationKey = "employees:list:gen"
	defaultListCacheTTL       = 30 * time.Minute
)

// GetEmployeeListKey names the cached list for one status flag at one cache
// generation. Every write bumps the generation, so a fill that started
// before a write lands on a key no later read uses.
func GetEmployeeListKey(generation int64, status bool) string {
	return EmployeeListKeyPrefix + strconv.FormatInt(generation, 10) + ":" + strconv.FormatBool(status)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Replace(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	PartialUpdate(ctx context.Context, req PatchEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context, status bool) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	SoftDelete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	cacheTTL time.Duration
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

// NewServiceWithOutbox records a lifecycle event in the same transaction as
// every write. A nil outbox disables events and a nil rdb disables caching.
func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outboxRepo,
		rdb:      rdb,
		cacheTTL: defaultListCacheTTL,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

// WithCacheTTL overrides the list cache TTL of a service built by this package.
func WithCacheTTL(svc Service, ttl time.Duration) Service {
	if s, ok := svc.(*service); ok && ttl > 0 {
		s.cacheTTL = ttl
	}
	return svc
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", deref(req.Email)),
	)

	empl := ToEntity(req)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}
		return s.recordEvent(ctx, tx, events.EmployeeCreated, empl)
	})
	if err != nil {
		s.logger.Error("create employee failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateListCache(ctx)
	metrics.EmployeeOperationsTotal.WithLabelValues("create").Inc()
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID),
	)

	return ToResponse(*empl), nil
}

// Replace overwrites every field of an existing record. Existence is checked
// by the caller.
func (s *service) Replace(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if req.ID == nil || *req.ID == "" {
		return EmployeeResponse{}, employeeerrors.ErrInvalidID
	}
	s.logger.Debug("replace employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", *req.ID),
	)

	empl := ToReplacement(req)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}
		return s.recordEvent(ctx, tx, events.EmployeeUpdated, empl)
	})
	if err != nil {
		s.logger.Error("replace employee failed",
			zap.String("request_id", rid),
			zap.String("employee_id", empl.ID),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	s.invalidateListCache(ctx)
	metrics.EmployeeOperationsTotal.WithLabelValues("replace").Inc()
	s.logger.Info("replace employee success", zap.String("employee_id", empl.ID))

	return ToResponse(*empl), nil
}

func (s *service) PartialUpdate(ctx context.Context, req PatchEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if req.ID == nil || *req.ID == "" {
		return EmployeeResponse{}, employeeerrors.ErrInvalidID
	}
	id := *req.ID
	s.logger.Debug("partial update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	var updated *Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qrepo := s.repo.WithTx(tx)

		existing, err := qrepo.FindByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}

		MergeNonNull(existing, req)
		if err := qrepo.Save(ctx, existing); err != nil {
			return mapRepositoryError(err)
		}

		updated = existing
		return s.recordEvent(ctx, tx, events.EmployeeUpdated, existing)
	})
	if err != nil {
		s.logger.Error("partial update employee failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	s.invalidateListCache(ctx)
	metrics.EmployeeOperationsTotal.WithLabelValues("partial_update").Inc()
	s.logger.Info("partial update employee success", zap.String("employee_id", id))

	return ToResponse(*updated), nil
}

// List returns the records whose status equals the given flag. Records are
// cached, never views, so the tier is computed on every read.
func (s *service) List(ctx context.Context, status bool) ([]EmployeeResponse, error) {
	s.logger.Debug("list employees requested", zap.Bool("status", status))

	cacheKey, cacheable := s.listCacheKey(ctx, status)
	if cacheable {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var empls []Employee
			if json.Unmarshal(cached, &empls) == nil {
				metrics.EmployeeListCacheTotal.WithLabelValues("hit").Inc()
				return ToListResponse(empls), nil
			}
		}
		metrics.EmployeeListCacheTotal.WithLabelValues("miss").Inc()
	}

	flightKey := cacheKey
	if !cacheable {
		flightKey = "nocache:" + strconv.FormatBool(status)
	}

	// the flight is shared, so one caller going away must not fail the others
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(flightKey, func() (any, error) {
		empls, err := s.repo.FindAll(flightCtx, status)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		if cacheable {
			if data, err := json.Marshal(empls); err == nil {
				if err := s.rdb.Set(flightCtx, cacheKey, data, s.cacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee list failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return empls, nil
	})
	if err != nil {
		s.logger.Error("list employees failed", zap.Bool("status", status), zap.Error(err))
		return nil, err
	}

	return ToListResponse(v.([]Employee)), nil
}

// listCacheKey reads the current cache generation. The list is served
// uncached when redis is absent or the generation cannot be read.
func (s *service) listCacheKey(ctx context.Context, status bool) (string, bool) {
	if s.rdb == nil {
		return "", false
	}

	gen, err := s.rdb.Get(ctx, EmployeeListGenerationKey).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		gen = 0
	case err != nil:
		s.logger.Warn("read employee list generation failed", zap.Error(err))
		return "", false
	}

	return GetEmployeeListKey(gen, status), true
}

// GetByID does not filter on status: soft-deleted records stay readable.
func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return ToResponse(*empl), nil
}

// SoftDelete flips status to false. Deleting an inactive record again succeeds.
func (s *service) SoftDelete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("soft delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qrepo := s.repo.WithTx(tx)

		empl, err := qrepo.FindByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}

		empl.Status = false
		if err := qrepo.Save(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}
		return s.recordEvent(ctx, tx, events.EmployeeDeactivated, empl)
	})
	if err != nil {
		s.logger.Error("soft delete employee failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return err
	}

	s.invalidateListCache(ctx)
	metrics.EmployeeOperationsTotal.WithLabelValues("soft_delete").Inc()
	s.logger.Info("soft delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) Exists(ctx context.Context, id string) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		s.logger.Error("check employee existence failed", zap.String("employee_id", id), zap.Error(err))
		return false, mapRepositoryError(err)
	}
	return exists, nil
}

func (s *service) recordEvent(ctx context.Context, tx *gorm.DB, eventType string, empl *Employee) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	payload, err := json.Marshal(events.EmployeeLifecycleEvent{
		EventType:  eventType,
		RequestID:  rid,
		EmployeeID: empl.ID,
		Email:      empl.Email,
		Status:     empl.Status,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, &kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   empl.ID,
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// invalidateListCache moves readers to a new cache generation. Entries of
// older generations are never read again and expire with their TTL.
func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}

	if err := s.rdb.Incr(context.WithoutCancel(ctx), EmployeeListGenerationKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache",
			zap.String("key", EmployeeListGenerationKey),
			zap.Error(err),
		)
	}
}
