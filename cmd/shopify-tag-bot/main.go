package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/yourusername/shopify-tag-bot/config"
	"github.com/yourusername/shopify-tag-bot/internal/delivery/telegram"
	"github.com/yourusername/shopify-tag-bot/internal/domain/repository"
	"github.com/yourusername/shopify-tag-bot/internal/infrastructure/gemini"
	"github.com/yourusername/shopify-tag-bot/internal/infrastructure/parser"
	"github.com/yourusername/shopify-tag-bot/internal/infrastructure/shopify"
	"github.com/yourusername/shopify-tag-bot/internal/infrastructure/storage"
	"github.com/yourusername/shopify-tag-bot/internal/scheduler"
	"github.com/yourusername/shopify-tag-bot/internal/usecase"
)

func main() {
	// Konfiguratsiyani yuklash
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Konfiguratsiya yuklanmadi: %v", err)
	}

	// SQLite store (mapping + run tarixi)
	store, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Baza ochilmadi: %v", err)
	}
	defer store.Close()

	adminRepo := storage.NewMemoryAdminRepository()
	mappingParser := parser.NewMappingParser()
	catalogRepo := shopify.NewClient(cfg.ShopifyShopURL, cfg.ShopifyAPIVersion, cfg.ShopifyAccessToken)

	// Gemini ixtiyoriy - API key bo'lmasa /suggest o'chiq ishlaydi
	var aiRepo repository.AIRepository
	if cfg.GeminiAPIKey != "" {
		aiRepo, err = gemini.NewGeminiClient(cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Gemini client yaratilmadi: %v", err)
		}
		defer aiRepo.Close()
	} else {
		log.Println("GEMINI_API_KEY yo'q - AI teg takliflari o'chirilgan")
	}

	mappingUseCase := usecase.NewMappingUseCase(store, adminRepo, mappingParser, aiRepo)
	syncUseCase := usecase.NewSyncUseCase(store, catalogRepo, store, cfg.PageLimit)
	adminUseCase := usecase.NewAdminUseCase(adminRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Baza bo'sh bo'lsa, default mapping faylidan yuklab olamiz
	bootstrapMappings(ctx, cfg, store, mappingUseCase)

	sched := scheduler.NewScheduler(syncUseCase, cfg.AutoSyncInterval)

	handler, err := telegram.NewBotHandler(cfg.TelegramToken, adminUseCase, mappingUseCase, syncUseCase, sched)
	if err != nil {
		log.Fatalf("Bot yaratilmadi: %v", err)
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("To'xtatish signali olindi...")
		sched.Stop()
		cancel()
	}()

	if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Bot xato bilan to'xtadi: %v", err)
	}
}

// bootstrapMappings baza bo'sh bo'lsa, MAPPING_FILE dan boshlang'ich yuklash
func bootstrapMappings(ctx context.Context, cfg *config.Config, store *storage.SQLiteStore, mappingUseCase usecase.MappingUseCase) {
	count, err := store.Count(ctx)
	if err != nil {
		log.Printf("Mappinglar sonini olib bo'lmadi: %v", err)
		return
	}
	if count > 0 {
		log.Printf("📋 Bazada %d ta mapping mavjud", count)
		return
	}

	if _, err := os.Stat(cfg.MappingFile); err != nil {
		log.Printf("Boshlang'ich mapping fayli topilmadi (%s), bo'sh baza bilan davom etamiz", cfg.MappingFile)
		return
	}

	imported, err := mappingUseCase.ImportFromFile(ctx, 0, cfg.MappingFile)
	if err != nil {
		log.Printf("Boshlang'ich mappinglarni yuklab bo'lmadi: %v", err)
		return
	}
	log.Printf("📦 %s faylidan %d ta mapping yuklandi", cfg.MappingFile, imported)
}
