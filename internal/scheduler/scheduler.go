package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/yourusername/shopify-tag-bot/internal/usecase"
)

// Scheduler belgilangan intervalda avtomatik teg sinxronizatsiyasini ishga tushiradi
type Scheduler struct {
	syncUseCase usecase.SyncUseCase
	interval    time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewScheduler yangi Scheduler yaratish
func NewScheduler(syncUseCase usecase.SyncUseCase, interval time.Duration) *Scheduler {
	return &Scheduler{
		syncUseCase: syncUseCase,
		interval:    interval,
	}
}

// Start avtomatik sinxronizatsiyani yoqish; allaqachon yoniq bo'lsa false qaytaradi
func (s *Scheduler) Start(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return false
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.loop(runCtx)

	log.Printf("⏰ Avtomatik sinxronizatsiya yoqildi (har %s da)", s.interval)
	return true
}

// Stop avtomatik sinxronizatsiyani o'chirish; yoniq bo'lmasa false qaytaradi
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return false
	}

	s.cancel()
	<-s.done
	s.running = false

	log.Printf("⏰ Avtomatik sinxronizatsiya o'chirildi")
	return true
}

// IsRunning scheduler yoniq yoki yo'qligini tekshirish
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	report, err := s.syncUseCase.RunAuto(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrNoMappings) {
			log.Printf("⏰ Avtomatik run o'tkazib yuborildi: mappinglar yo'q")
			return
		}
		log.Printf("❌ Avtomatik run xato bilan tugadi: %v", err)
		return
	}

	log.Printf("⏰ Avtomatik run tugadi: %d skan, %d yangilandi, %d xato",
		report.Scanned, report.Updated, report.Failed)
}
