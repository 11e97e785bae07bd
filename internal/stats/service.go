package stats

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// cacheTTL bounds staleness of dashboard aggregates.
const cacheTTL = 5 * time.Minute

const cachePrefix = "stats:"

// Service serves dashboard aggregates through a Redis read-through cache.
// A nil cache client degrades to direct queries.
type Service struct {
	logger *slog.Logger
	repo   Repository
	cache  *redis.Client
}

// NewService constructs a Service.
func NewService(logger *slog.Logger, repo Repository, cache *redis.Client) *Service {
	return &Service{logger: logger, repo: repo, cache: cache}
}

// cached runs compute through the cache under the given key. Cache failures
// are logged and fall through to the database.
func cached[T any](ctx context.Context, s *Service, key string, compute func(context.Context) (T, error)) (T, error) {
	var zero T
	if s.cache != nil {
		data, err := s.cache.Get(ctx, cachePrefix+key).Bytes()
		if err == nil {
			var v T
			if err := json.Unmarshal(data, &v); err == nil {
				return v, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("stats cache read failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	v, err := compute(ctx)
	if err != nil {
		return zero, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(v); err == nil {
			if err := s.cache.Set(ctx, cachePrefix+key, data, cacheTTL).Err(); err != nil {
				s.logger.Warn("stats cache write failed", slog.String("key", key), slog.Any("error", err))
			}
		}
	}
	return v, nil
}

func (s *Service) TotalEmployees(ctx context.Context) (CountStat, error) {
	return cached(ctx, s, "total_employee", s.repo.TotalEmployees)
}

func (s *Service) TotalDepartments(ctx context.Context) (CountStat, error) {
	return cached(ctx, s, "total_dept", s.repo.TotalDepartments)
}

func (s *Service) AverageSalary(ctx context.Context) (AvgSalStat, error) {
	return cached(ctx, s, "avg_sal", s.repo.AverageSalary)
}

func (s *Service) EmployeesPerDept(ctx context.Context) ([]DeptCount, error) {
	return cached(ctx, s, "dept-emp", s.repo.EmployeesPerDept)
}

func (s *Service) EmployeesPerJob(ctx context.Context) ([]JobCount, error) {
	return cached(ctx, s, "job-emp", s.repo.EmployeesPerJob)
}

func (s *Service) SalaryPerDept(ctx context.Context) ([]DeptTotal, error) {
	return cached(ctx, s, "dept-sal", s.repo.SalaryPerDept)
}

func (s *Service) SalaryPerJob(ctx context.Context) ([]JobTotal, error) {
	return cached(ctx, s, "job-sal", s.repo.SalaryPerJob)
}

// Warmup recomputes every aggregate concurrently so the dashboard's first
// paint after a deploy or cache flush hits warm keys.
func (s *Service) Warmup(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { _, err := s.TotalEmployees(ctx); return err })
	g.Go(func() error { _, err := s.TotalDepartments(ctx); return err })
	g.Go(func() error { _, err := s.AverageSalary(ctx); return err })
	g.Go(func() error { _, err := s.EmployeesPerDept(ctx); return err })
	g.Go(func() error { _, err := s.EmployeesPerJob(ctx); return err })
	g.Go(func() error { _, err := s.SalaryPerDept(ctx); return err })
	g.Go(func() error { _, err := s.SalaryPerJob(ctx); return err })
	return g.Wait()
}

// Invalidate drops every cached aggregate.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	keys := []string{"total_employee", "total_dept", "avg_sal", "dept-emp", "job-emp", "dept-sal", "job-sal"}
	for i, k := range keys {
		keys[i] = cachePrefix + k
	}
	return s.cache.Del(ctx, keys...).Err()
}
