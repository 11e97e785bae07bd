package stats

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type countingStatsRepo struct {
	Repository

	totalCalls int
	deptCalls  int
}

func (r *countingStatsRepo) TotalEmployees(_ context.Context) (CountStat, error) {
	r.totalCalls++
	return CountStat{Count: 14}, nil
}

func (r *countingStatsRepo) TotalDepartments(_ context.Context) (CountStat, error) {
	return CountStat{Count: 4}, nil
}

func (r *countingStatsRepo) AverageSalary(_ context.Context) (AvgSalStat, error) {
	return AvgSalStat{AvgSal: 2073}, nil
}

func (r *countingStatsRepo) EmployeesPerDept(_ context.Context) ([]DeptCount, error) {
	r.deptCalls++
	return []DeptCount{{DName: "SALES", Count: 6}}, nil
}

func (r *countingStatsRepo) EmployeesPerJob(_ context.Context) ([]JobCount, error) {
	return []JobCount{{Job: "CLERK", Count: 4}}, nil
}

func (r *countingStatsRepo) SalaryPerDept(_ context.Context) ([]DeptTotal, error) {
	return []DeptTotal{{DName: "SALES", Total: 9400}}, nil
}

func (r *countingStatsRepo) SalaryPerJob(_ context.Context) ([]JobTotal, error) {
	return []JobTotal{{Job: "CLERK", Total: 4150}}, nil
}

func newCachedService(t *testing.T) (*Service, *countingStatsRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	repo := &countingStatsRepo{}
	return NewService(testLogger(), repo, client), repo, mr
}

func TestCachedStatHitsDatabaseOnce(t *testing.T) {
	svc, repo, _ := newCachedService(t)
	ctx := context.Background()

	first, err := svc.TotalEmployees(ctx)
	require.NoError(t, err)
	second, err := svc.TotalEmployees(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.totalCalls)
}

func TestCacheExpiryRecomputes(t *testing.T) {
	svc, repo, mr := newCachedService(t)
	ctx := context.Background()

	_, err := svc.EmployeesPerDept(ctx)
	require.NoError(t, err)
	mr.FastForward(cacheTTL + 1)
	_, err = svc.EmployeesPerDept(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.deptCalls)
}

func TestWarmupPopulatesAllKeys(t *testing.T) {
	svc, _, mr := newCachedService(t)

	require.NoError(t, svc.Warmup(context.Background()))

	for _, key := range []string{"total_employee", "total_dept", "avg_sal", "dept-emp", "job-emp", "dept-sal", "job-sal"} {
		assert.True(t, mr.Exists(cachePrefix+key), key)
	}
}

func TestInvalidateDropsKeys(t *testing.T) {
	svc, repo, _ := newCachedService(t)
	ctx := context.Background()

	_, err := svc.TotalEmployees(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx))
	_, err = svc.TotalEmployees(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.totalCalls)
}

func TestNilCacheFallsThrough(t *testing.T) {
	repo := &countingStatsRepo{}
	svc := NewService(testLogger(), repo, nil)

	_, err := svc.TotalEmployees(context.Background())
	require.NoError(t, err)
	_, err = svc.TotalEmployees(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.totalCalls)
}
