package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
	"github.com/yourusername/shopify-tag-bot/internal/domain/repository"
)

// ScanResult katalog skanidan chiqqan natija
type ScanResult struct {
	Worklist []entity.WorklistItem
	Scanned  int
}

// SyncUseCase teg sinxronizatsiyasi bilan bog'liq business logic
type SyncUseCase interface {
	// Scan katalogni skan qilib, teg qo'shilishi kerak bo'lgan mahsulotlarni topish
	Scan(ctx context.Context) (*ScanResult, error)

	// Apply worklistni katalogga qo'llash (interaktiv yo'l, tasdiqdan keyin)
	Apply(ctx context.Context, result *ScanResult) (*entity.SyncReport, error)

	// RunAuto tasdiqsiz to'liq run (scheduler uchun)
	RunAuto(ctx context.Context) (*entity.SyncReport, error)

	// RecentRuns so'nggi run natijalarini olish
	RecentRuns(ctx context.Context, limit int) ([]entity.SyncReport, error)
}

type syncUseCase struct {
	mappingRepo repository.MappingRepository
	catalogRepo repository.CatalogRepository
	runRepo     repository.RunRepository
	pageLimit   int

	// Interaktiv va avtomatik runlar bitta processda yashaydi;
	// bir vaqtda faqat bitta run ishlashi uchun mutex.
	runMu sync.Mutex
}

// NewSyncUseCase yangi SyncUseCase yaratish
func NewSyncUseCase(
	mappingRepo repository.MappingRepository,
	catalogRepo repository.CatalogRepository,
	runRepo repository.RunRepository,
	pageLimit int,
) SyncUseCase {
	if pageLimit <= 0 {
		pageLimit = 250
	}
	return &syncUseCase{
		mappingRepo: mappingRepo,
		catalogRepo: catalogRepo,
		runRepo:     runRepo,
		pageLimit:   pageLimit,
	}
}

// Scan katalogni skan qilib, teg qo'shilishi kerak bo'lgan mahsulotlarni topish
func (u *syncUseCase) Scan(ctx context.Context) (*ScanResult, error) {
	u.runMu.Lock()
	defer u.runMu.Unlock()

	mappings, err := u.mappingRepo.LoadMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("mappinglarni yuklab bo'lmadi: %w", err)
	}

	// Mapping bo'lmasa katalogga murojaat qilmaymiz
	if len(mappings) == 0 {
		return &ScanResult{}, nil
	}

	session, err := u.catalogRepo.OpenSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("katalog sessiyasini ochib bo'lmadi: %w", err)
	}
	defer session.Close()

	return u.scanPages(ctx, session, mappings)
}

// scanPages sahifalab skan qilish
func (u *syncUseCase) scanPages(ctx context.Context, session repository.CatalogSession, mappings map[string][]string) (*ScanResult, error) {
	result := &ScanResult{}
	pageInfo := ""

	for {
		page, err := session.FetchPage(ctx, pageInfo, u.pageLimit)
		if err != nil {
			return nil, fmt.Errorf("katalog sahifasini olib bo'lmadi: %w", err)
		}

		for _, product := range page.Products {
			result.Scanned++

			desired, mapped := mappings[product.ProductType]
			if !mapped {
				continue
			}

			if missing := TagsToAdd(product.Tags, desired); len(missing) > 0 {
				result.Worklist = append(result.Worklist, entity.WorklistItem{
					Product:   product,
					TagsToAdd: missing,
				})
			}
		}

		log.Printf("🔎 %d ta mahsulot tekshirildi...", result.Scanned)

		if page.NextPage == "" {
			break
		}
		pageInfo = page.NextPage
	}

	log.Printf("Jami %d ta mahsulot tekshirildi, %d tasiga teg qo'shish kerak.", result.Scanned, len(result.Worklist))
	return result, nil
}

// Apply worklistni katalogga qo'llash (interaktiv yo'l, tasdiqdan keyin)
func (u *syncUseCase) Apply(ctx context.Context, result *ScanResult) (*entity.SyncReport, error) {
	u.runMu.Lock()
	defer u.runMu.Unlock()

	return u.apply(ctx, result, "interactive")
}

// RunAuto tasdiqsiz to'liq run (scheduler uchun)
func (u *syncUseCase) RunAuto(ctx context.Context) (*entity.SyncReport, error) {
	u.runMu.Lock()
	defer u.runMu.Unlock()

	log.Printf("⏰ Avtomatik teg sinxronizatsiyasi boshlandi...")

	mappings, err := u.mappingRepo.LoadMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("mappinglarni yuklab bo'lmadi: %w", err)
	}
	if len(mappings) == 0 {
		return nil, ErrNoMappings
	}

	session, err := u.catalogRepo.OpenSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("katalog sessiyasini ochib bo'lmadi: %w", err)
	}
	defer session.Close()

	result, err := u.scanPages(ctx, session, mappings)
	if err != nil {
		return nil, err
	}

	return u.applyWith(ctx, session, result, "auto")
}

// apply yangi sessiya ochib worklistni qo'llash
func (u *syncUseCase) apply(ctx context.Context, result *ScanResult, mode string) (*entity.SyncReport, error) {
	session, err := u.catalogRepo.OpenSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("katalog sessiyasini ochib bo'lmadi: %w", err)
	}
	defer session.Close()

	return u.applyWith(ctx, session, result, mode)
}

// applyWith worklist elementlarini birma-bir qo'llash.
// Bitta mahsulotdagi xatolik batchni to'xtatmaydi.
func (u *syncUseCase) applyWith(ctx context.Context, session repository.CatalogSession, result *ScanResult, mode string) (*entity.SyncReport, error) {
	report := &entity.SyncReport{
		RunID:     uuid.New().String(),
		Mode:      mode,
		Scanned:   result.Scanned,
		Matched:   len(result.Worklist),
		StartedAt: time.Now(),
	}

	for _, item := range result.Worklist {
		// Skan paytidagi teglardan merge qilamiz, qayta fetch yo'q
		merged := MergeTags(item.Product.Tags, item.TagsToAdd)

		if err := session.UpdateTags(ctx, item.Product.ID, merged); err != nil {
			report.Failed++
			log.Printf("❌ '%s' mahsulotini yangilab bo'lmadi: %v", item.Product.Title, err)
			continue
		}

		report.Updated++
		log.Printf("✅ '%s' uchun teglar qo'shildi: %s", item.Product.Title, FormatTags(item.TagsToAdd, 120))
	}

	report.FinishedAt = time.Now()
	log.Printf("Yangilangan mahsulotlar: %d/%d", report.Updated, report.Matched)

	if err := u.runRepo.LogRun(ctx, *report); err != nil {
		log.Printf("Run tarixini saqlab bo'lmadi: %v", err)
	}

	return report, nil
}

// RecentRuns so'nggi run natijalarini olish
func (u *syncUseCase) RecentRuns(ctx context.Context, limit int) ([]entity.SyncReport, error) {
	return u.runRepo.RecentRuns(ctx, limit)
}
