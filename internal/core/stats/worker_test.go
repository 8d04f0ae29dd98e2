package stats

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"checkroute/internal/domain/method"
	"checkroute/internal/domain/resolution"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo feeds canned unprocessed resolutions and records usage folds
type fakeRepo struct {
	unprocessed []*resolution.Resolution
	usage       map[string]int64 // "merchantID/kind" -> count
	processed   []int64
	upsertErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{usage: make(map[string]int64)}
}

func (f *fakeRepo) Save(ctx context.Context, res *resolution.Resolution) error { return nil }

func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*resolution.Resolution, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) FindByMerchantID(ctx context.Context, merchantID int64, limit, offset int) ([]*resolution.Resolution, error) {
	return nil, nil
}

func (f *fakeRepo) FindUnprocessed(ctx context.Context, limit int) ([]*resolution.Resolution, error) {
	if limit > len(f.unprocessed) {
		limit = len(f.unprocessed)
	}
	out := make([]*resolution.Resolution, limit)
	copy(out, f.unprocessed[:limit])
	return out, nil
}

func (f *fakeRepo) MarkProcessed(ctx context.Context, id int64, status resolution.ProcessingStatus) error {
	f.processed = append(f.processed, id)
	for i, r := range f.unprocessed {
		if r.ID == id {
			f.unprocessed = append(f.unprocessed[:i], f.unprocessed[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeRepo) UpsertUsage(ctx context.Context, merchantID int64, widgetKind string, delta int64) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.usage[usageKey(merchantID, widgetKind)] += delta
	return nil
}

func (f *fakeRepo) UsageByMerchant(ctx context.Context, merchantID int64) (map[string]int64, error) {
	return nil, nil
}

func usageKey(merchantID int64, kind string) string {
	return fmt.Sprintf("%d/%s", merchantID, kind)
}

func mustResolution(t *testing.T, id, merchantID int64, kind string, matched bool) *resolution.Resolution {
	t.Helper()
	res, err := resolution.New(merchantID, method.Descriptor{ID: "m"}, kind, "rule", matched)
	require.NoError(t, err)
	res.ID = id
	return res
}

func TestTick_FoldsUsage(t *testing.T) {
	repo := newFakeRepo()
	repo.unprocessed = []*resolution.Resolution{
		mustResolution(t, 1, 1, "hosted", true),
		mustResolution(t, 2, 1, "hosted", true),
		mustResolution(t, 3, 1, "credit_card", true),
		mustResolution(t, 4, 2, "hosted", true),
	}

	w := NewWorker(repo)
	w.Tick(context.Background())

	assert.Equal(t, int64(2), repo.usage[usageKey(1, "hosted")])
	assert.Equal(t, int64(1), repo.usage[usageKey(1, "credit_card")])
	assert.Equal(t, int64(1), repo.usage[usageKey(2, "hosted")])
	assert.Len(t, repo.processed, 4)
	assert.Empty(t, repo.unprocessed)
}

func TestTick_UnmatchedCountsAsNone(t *testing.T) {
	repo := newFakeRepo()
	repo.unprocessed = []*resolution.Resolution{
		mustResolution(t, 1, 1, "", false),
	}

	w := NewWorker(repo)
	w.Tick(context.Background())

	assert.Equal(t, int64(1), repo.usage[usageKey(1, "none")])
}

func TestTick_UpsertFailureLeavesRowPending(t *testing.T) {
	repo := newFakeRepo()
	repo.upsertErr = errors.New("db down")
	repo.unprocessed = []*resolution.Resolution{
		mustResolution(t, 1, 1, "hosted", true),
	}

	w := NewWorker(repo)
	w.Tick(context.Background())

	assert.Empty(t, repo.processed)
	assert.Len(t, repo.unprocessed, 1)
}

func TestTick_EmptyBatchIsANoop(t *testing.T) {
	repo := newFakeRepo()
	w := NewWorker(repo)
	w.Tick(context.Background())
	assert.Empty(t, repo.usage)
}
