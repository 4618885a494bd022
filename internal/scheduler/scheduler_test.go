package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
	"github.com/yourusername/shopify-tag-bot/internal/usecase"
)

type fakeSync struct {
	runs atomic.Int32
}

func (f *fakeSync) Scan(ctx context.Context) (*usecase.ScanResult, error) {
	return &usecase.ScanResult{}, nil
}

func (f *fakeSync) Apply(ctx context.Context, result *usecase.ScanResult) (*entity.SyncReport, error) {
	return &entity.SyncReport{}, nil
}

func (f *fakeSync) RunAuto(ctx context.Context) (*entity.SyncReport, error) {
	f.runs.Add(1)
	return &entity.SyncReport{Mode: "auto"}, nil
}

func (f *fakeSync) RecentRuns(ctx context.Context, limit int) ([]entity.SyncReport, error) {
	return nil, nil
}

func TestSchedulerRunsPeriodically(t *testing.T) {
	sync := &fakeSync{}
	s := NewScheduler(sync, 10*time.Millisecond)

	assert.True(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	// Ikkinchi Start hech narsa qilmaydi
	assert.False(t, s.Start(context.Background()))

	time.Sleep(55 * time.Millisecond)
	assert.True(t, s.Stop())
	assert.False(t, s.IsRunning())

	runs := sync.runs.Load()
	assert.GreaterOrEqual(t, runs, int32(2))

	// To'xtagandan keyin yangi runlar bo'lmaydi
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, runs, sync.runs.Load())

	// Ikkinchi Stop hech narsa qilmaydi
	assert.False(t, s.Stop())
}

func TestSchedulerRestart(t *testing.T) {
	sync := &fakeSync{}
	s := NewScheduler(sync, 10*time.Millisecond)

	assert.True(t, s.Start(context.Background()))
	assert.True(t, s.Stop())

	assert.True(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.True(t, s.Stop())
}
