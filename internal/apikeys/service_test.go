package apikeys

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingKeyRepo struct {
	Repository

	created Key
}

func (r *recordingKeyRepo) Create(_ context.Context, empNo int64, apiKey string, keyName *string, expiresAt *time.Time) (Key, error) {
	r.created = Key{KeyID: 1, EmpNo: empNo, APIKey: apiKey, KeyName: keyName, Status: StatusActive, ExpiresAt: expiresAt}
	return r.created, nil
}

func TestIssueGeneratesHexKey(t *testing.T) {
	repo := &recordingKeyRepo{}
	svc := NewService(repo)

	key, plain, err := svc.Issue(context.Background(), 7839, nil, nil)
	require.NoError(t, err)

	assert.Len(t, plain, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", plain)
	assert.Equal(t, plain, repo.created.APIKey)
	assert.Equal(t, StatusActive, key.Status)
}

func TestIssueKeysAreUnique(t *testing.T) {
	svc := NewService(&recordingKeyRepo{})

	_, first, err := svc.Issue(context.Background(), 7839, nil, nil)
	require.NoError(t, err)
	_, second, err := svc.Issue(context.Background(), 7839, nil, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
