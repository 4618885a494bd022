package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/shopify-tag-bot/internal/scheduler"
	"github.com/yourusername/shopify-tag-bot/internal/usecase"
)

// pendingRun tasdiq kutayotgan skan natijasi
type pendingRun struct {
	Result *usecase.ScanResult
	ChatID int64
	SentAt time.Time
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot            *tgbotapi.BotAPI
	adminUseCase   usecase.AdminUseCase
	mappingUseCase usecase.MappingUseCase
	syncUseCase    usecase.SyncUseCase
	scheduler      *scheduler.Scheduler

	runMu       sync.RWMutex
	pendingRuns map[int64]pendingRun

	// Admin login kutilayotgan userlar
	awaitingPassword map[int64]bool
	mu               sync.RWMutex
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(
	token string,
	adminUseCase usecase.AdminUseCase,
	mappingUseCase usecase.MappingUseCase,
	syncUseCase usecase.SyncUseCase,
	sched *scheduler.Scheduler,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &BotHandler{
		bot:              bot,
		adminUseCase:     adminUseCase,
		mappingUseCase:   mappingUseCase,
		syncUseCase:      syncUseCase,
		scheduler:        sched,
		pendingRuns:      make(map[int64]pendingRun),
		awaitingPassword: make(map[int64]bool),
	}, nil
}

// Start botni ishga tushirish
func (h *BotHandler) Start(ctx context.Context) error {
	log.Printf("Bot @%s ishga tushdi!", h.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			log.Println("Bot to'xtatilmoqda...")
			return ctx.Err()
		case update := <-updates:
			if update.CallbackQuery != nil {
				go h.handleCallback(ctx, update.CallbackQuery)
				continue
			}

			if update.Message == nil {
				continue
			}

			go h.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage xabarni qayta ishlash
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	// Fayl yuborilgan bo'lsa
	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	// Parol kutilayotgan bo'lsa
	if h.isAwaitingPassword(userID) {
		h.handlePasswordInput(ctx, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	h.sendMessage(message.Chat.ID, "Komandalar ro'yxati uchun /help ni bosing.")
}

// handleCommand komandalarni qayta ishlash
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		h.sendMessage(message.Chat.ID, h.getWelcomeMessage())
	case "help":
		h.sendMessage(message.Chat.ID, h.getHelpMessage())
	case "admin":
		h.handleAdminCommand(ctx, message)
	case "logout":
		h.handleLogoutCommand(ctx, message)
	case "mappings":
		h.handleMappingsCommand(ctx, message)
	case "set":
		h.handleSetCommand(ctx, message)
	case "remove":
		h.handleRemoveCommand(ctx, message)
	case "import":
		h.handleImportCommand(ctx, message)
	case "run":
		h.handleRunCommand(ctx, message)
	case "auto":
		h.handleAutoCommand(ctx, message, true)
	case "autooff":
		h.handleAutoCommand(ctx, message, false)
	case "status":
		h.handleStatusCommand(ctx, message)
	case "suggest":
		h.handleSuggestCommand(ctx, message)
	default:
		h.sendMessage(message.Chat.ID, "Noma'lum komanda. /help yordam uchun.")
	}
}

// handleAdminCommand admin login boshlash
func (h *BotHandler) handleAdminCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	// Allaqachon admin bo'lsa
	isAdmin, _ := h.adminUseCase.IsAdmin(ctx, userID)
	if isAdmin {
		h.sendMessage(message.Chat.ID, "Siz allaqachon admin sifatida tizimga kirgansiz!")
		return
	}

	// Parol kutish rejimini yoqish
	h.setAwaitingPassword(userID, true)
	h.sendMessage(message.Chat.ID, "🔐 Admin parolini kiriting:")
}

// handlePasswordInput parol kiritilganini qayta ishlash
func (h *BotHandler) handlePasswordInput(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	password := message.Text

	// Parol kutish rejimini o'chirish
	h.setAwaitingPassword(userID, false)

	// Xabarni o'chirish (xavfsizlik uchun)
	deleteMsg := tgbotapi.NewDeleteMessage(message.Chat.ID, message.MessageID)
	h.bot.Send(deleteMsg)

	// Login urinishi
	success, err := h.adminUseCase.Login(ctx, userID, password)
	if err != nil {
		log.Printf("Login error: %v", err)
		h.sendMessage(message.Chat.ID, "❌ Login xatosi yuz berdi.")
		return
	}

	if !success {
		h.sendMessage(message.Chat.ID, "❌ Noto'g'ri parol!")
		return
	}

	welcomeMsg := `✅ Admin panelga xush kelibsiz!

🔧 Admin imkoniyatlari:
• /mappings - Tur-teg mappinglar ro'yxati
• /set <tur> | <teg1;teg2> - Mapping qo'shish yoki yangilash
• /remove <tur> - Mappingni o'chirish
• /import - Excel/CSV fayldan mappinglarni yuklash
• /run - Katalogni skan qilib, teg qo'shishni boshlash
• /auto va /autooff - Avtomatik sinxronizatsiya
• /status - So'nggi runlar va scheduler holati
• /suggest <tur> - AI teg takliflari
• /logout - Admin paneldan chiqish`

	h.sendMessage(message.Chat.ID, welcomeMsg)
}

// handleLogoutCommand admin logout
func (h *BotHandler) handleLogoutCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	isAdmin, _ := h.adminUseCase.IsAdmin(ctx, userID)
	if !isAdmin {
		h.sendMessage(message.Chat.ID, "Siz admin emassiz.")
		return
	}

	if err := h.adminUseCase.Logout(ctx, userID); err != nil {
		h.sendMessage(message.Chat.ID, "Logout xatosi.")
		return
	}

	h.sendMessage(message.Chat.ID, "✅ Admin paneldan chiqdingiz.")
}

// handleMappingsCommand mappinglar ro'yxatini ko'rsatish
func (h *BotHandler) handleMappingsCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message) {
		return
	}

	mappings, err := h.mappingUseCase.List(ctx)
	if err != nil {
		log.Printf("List mappings error: %v", err)
		h.sendMessage(message.Chat.ID, "❌ Mappinglarni yuklashda xatolik.")
		return
	}

	if len(mappings) == 0 {
		h.sendMessage(message.Chat.ID, "Mappinglar hali yo'q. /set yoki /import bilan qo'shing.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 Jami %d ta mapping:\n\n", len(mappings)))
	for i, m := range mappings {
		sb.WriteString(fmt.Sprintf("%d. %s → %s\n", i+1, m.ProductType, usecase.FormatTags(m.TagList(), 80)))
	}

	h.sendMessage(message.Chat.ID, sb.String())
}

// handleSetCommand mapping qo'shish: /set Tur | teg1;teg2
func (h *BotHandler) handleSetCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message) {
		return
	}

	args := message.CommandArguments()
	parts := strings.SplitN(args, "|", 2)
	if len(parts) != 2 {
		h.sendMessage(message.Chat.ID, "Format: /set <mahsulot turi> | <teg1;teg2;teg3>")
		return
	}

	productType := strings.TrimSpace(parts[0])
	tags := strings.TrimSpace(parts[1])

	if err := h.mappingUseCase.Set(ctx, message.From.ID, productType, tags); err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			h.sendMessage(message.Chat.ID, "❌ Mahsulot turi va teglar bo'sh bo'lmasligi kerak.")
			return
		}
		log.Printf("Set mapping error: %v", err)
		h.sendMessage(message.Chat.ID, "❌ Mappingni saqlashda xatolik.")
		return
	}

	h.sendMessage(message.Chat.ID, fmt.Sprintf("✅ Saqlandi: %s → %s", productType, tags))
}

// handleRemoveCommand mappingni o'chirish: /remove Tur
func (h *BotHandler) handleRemoveCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message) {
		return
	}

	productType := strings.TrimSpace(message.CommandArguments())
	if productType == "" {
		h.sendMessage(message.Chat.ID, "Format: /remove <mahsulot turi>")
		return
	}

	removed, err := h.mappingUseCase.Remove(ctx, message.From.ID, productType)
	if err != nil {
		log.Printf("Remove mapping error: %v", err)
		h.sendMessage(message.Chat.ID, "❌ Mappingni o'chirishda xatolik.")
		return
	}

	if !removed {
		h.sendMessage(message.Chat.ID, fmt.Sprintf("'%s' uchun mapping topilmadi.", productType))
		return
	}

	h.sendMessage(message.Chat.ID, fmt.Sprintf("✅ '%s' mappingi o'chirildi.", productType))
}

// handleImportCommand import yo'riqnomasi
func (h *BotHandler) handleImportCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message) {
		return
	}

	h.sendMessage(message.Chat.ID, `📤 Mappinglarni yuklash uchun Excel (.xlsx) yoki CSV faylni botga yuboring.

Fayl quyidagi ustunlarni o'z ichiga olishi kerak:
- product_type / tipo_produto
- tags (";" bilan ajratilgan)

Mavjud turlar yangilanadi, yangilari qo'shiladi.`)
}

// handleDocumentMessage fayl yuborilganda
func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	// Admin tekshirish
	isAdmin, _ := h.adminUseCase.IsAdmin(ctx, userID)
	if !isAdmin {
		h.sendMessage(message.Chat.ID, "❌ Fayllarni faqat adminlar yuklashi mumkin. /admin komandasi bilan admin bo'ling.")
		return
	}

	doc := message.Document

	// Fayl hajmini tekshirish (5MB)
	if doc.FileSize > 5*1024*1024 {
		h.sendMessage(message.Chat.ID, "❌ Fayl hajmi 5MB dan oshmasligi kerak!")
		return
	}

	// Fayl turini tekshirish
	if !strings.HasSuffix(doc.FileName, ".xlsx") && !strings.HasSuffix(doc.FileName, ".csv") {
		h.sendMessage(message.Chat.ID, "❌ Faqat .xlsx yoki .csv fayllari qabul qilinadi!")
		return
	}

	h.sendMessage(message.Chat.ID, "⏳ Fayl yuklanmoqda va qayta ishlanmoqda...")

	// Faylni yuklash
	fileBytes, err := h.downloadFile(doc.FileID)
	if err != nil {
		log.Printf("File download error: %v", err)
		h.sendMessage(message.Chat.ID, "❌ Faylni yuklashda xatolik yuz berdi.")
		return
	}

	count, err := h.mappingUseCase.ImportFromBytes(ctx, userID, fileBytes, doc.FileName)
	if err != nil {
		log.Printf("Import error: %v", err)
		h.sendMessage(message.Chat.ID, fmt.Sprintf("❌ Mappinglarni yuklashda xatolik: %v", err))
		return
	}

	h.sendMessage(message.Chat.ID, fmt.Sprintf(`✅ Mappinglar muvaffaqiyatli yuklandi!

📦 Yuklangan mappinglar: %d ta
📄 Fayl: %s

/mappings - Ro'yxatni ko'rish
/run - Katalogni sinxronlash`, count, doc.FileName))
}

// handleRunCommand katalogni skan qilib, tasdiq so'rash
func (h *BotHandler) handleRunCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message) {
		return
	}

	h.sendMessage(message.Chat.ID, "🔎 Katalog skan qilinmoqda, bu biroz vaqt olishi mumkin...")

	result, err := h.syncUseCase.Scan(ctx)
	if err != nil {
		log.Printf("Scan error: %v", err)
		h.sendMessage(message.Chat.ID, "❌ Katalogni skan qilishda xatolik yuz berdi.")
		return
	}

	if result.Scanned == 0 {
		h.sendMessage(message.Chat.ID, "Skan qilinadigan narsa topilmadi: mappinglar yo'q yoki katalog bo'sh. /set yoki /import bilan mapping qo'shing.")
		return
	}

	if len(result.Worklist) == 0 {
		h.sendMessage(message.Chat.ID, fmt.Sprintf("✅ %d ta mahsulot tekshirildi — hammasi joyida, teg qo'shish kerak emas.", result.Scanned))
		return
	}

	h.savePendingRun(message.From.ID, pendingRun{
		Result: result,
		ChatID: message.Chat.ID,
		SentAt: time.Now(),
	})

	preview := buildWorklistPreview(result, 10)

	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Ha ✅", "run_yes"),
			tgbotapi.NewInlineKeyboardButtonData("Yo'q ❌", "run_no"),
		),
	)

	msg := tgbotapi.NewMessage(message.Chat.ID, preview)
	msg.ReplyMarkup = markup
	h.bot.Send(msg)
}

// handleCallback inline tugmalarni qayta ishlash
func (h *BotHandler) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Tugma bosilganini tasdiqlash
	h.bot.Request(tgbotapi.NewCallback(callback.ID, ""))

	userID := callback.From.ID

	switch callback.Data {
	case "run_yes":
		pending, ok := h.takePendingRun(userID)
		if !ok {
			h.sendMessage(callback.Message.Chat.ID, "Tasdiqlanadigan run topilmadi. /run ni qaytadan bosing.")
			return
		}

		h.sendMessage(pending.ChatID, "⏳ Teglar qo'llanmoqda...")

		report, err := h.syncUseCase.Apply(ctx, pending.Result)
		if err != nil {
			log.Printf("Apply error: %v", err)
			h.sendMessage(pending.ChatID, "❌ Teglarni qo'llashda xatolik yuz berdi.")
			return
		}

		h.sendMessage(pending.ChatID, fmt.Sprintf(`✅ Sinxronizatsiya tugadi!

🔎 Tekshirildi: %d ta mahsulot
✅ Yangilandi: %d/%d
❌ Xato: %d`, report.Scanned, report.Updated, report.Matched, report.Failed))

	case "run_no":
		if _, ok := h.takePendingRun(userID); ok {
			h.sendMessage(callback.Message.Chat.ID, "Bekor qilindi. Hech narsa o'zgartirilmadi.")
		}
	}
}

// handleAutoCommand avtomatik sinxronizatsiyani boshqarish
func (h *BotHandler) handleAutoCommand(ctx context.Context, message *tgbotapi.Message, enable bool) {
	if !h.requireAdmin(ctx, message) {
		return
	}

	if h.scheduler == nil {
		h.sendMessage(message.Chat.ID, "Scheduler sozlanmagan.")
		return
	}

	if enable {
		if h.scheduler.Start(context.Background()) {
			h.sendMessage(message.Chat.ID, "⏰ Avtomatik sinxronizatsiya yoqildi.")
		} else {
			h.sendMessage(message.Chat.ID, "Avtomatik sinxronizatsiya allaqachon yoniq.")
		}
		return
	}

	if h.scheduler.Stop() {
		h.sendMessage(message.Chat.ID, "⏰ Avtomatik sinxronizatsiya o'chirildi.")
	} else {
		h.sendMessage(message.Chat.ID, "Avtomatik sinxronizatsiya yoniq emas.")
	}
}

// handleStatusCommand so'nggi runlar va scheduler holati
func (h *BotHandler) handleStatusCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message) {
		return
	}

	var sb strings.Builder

	if h.scheduler != nil && h.scheduler.IsRunning() {
		sb.WriteString("⏰ Avtomatik sinxronizatsiya: yoniq\n\n")
	} else {
		sb.WriteString("⏰ Avtomatik sinxronizatsiya: o'chiq\n\n")
	}

	runs, err := h.syncUseCase.RecentRuns(ctx, 5)
	if err != nil {
		log.Printf("Recent runs error: %v", err)
		sb.WriteString("Run tarixini yuklab bo'lmadi.")
		h.sendMessage(message.Chat.ID, sb.String())
		return
	}

	if len(runs) == 0 {
		sb.WriteString("Hali birorta run bo'lmagan.")
		h.sendMessage(message.Chat.ID, sb.String())
		return
	}

	sb.WriteString("📜 So'nggi runlar:\n")
	for _, r := range runs {
		sb.WriteString(fmt.Sprintf("• %s [%s] — skan: %d, yangilandi: %d, xato: %d\n",
			r.StartedAt.Format("02.01 15:04"), r.Mode, r.Scanned, r.Updated, r.Failed))
	}

	h.sendMessage(message.Chat.ID, sb.String())
}

// handleSuggestCommand AI teg takliflari: /suggest Tur
func (h *BotHandler) handleSuggestCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message) {
		return
	}

	productType := strings.TrimSpace(message.CommandArguments())
	if productType == "" {
		h.sendMessage(message.Chat.ID, "Format: /suggest <mahsulot turi>")
		return
	}

	// "typing" indikatori
	typingAction := tgbotapi.NewChatAction(message.Chat.ID, tgbotapi.ChatTyping)
	h.bot.Send(typingAction)

	tags, err := h.mappingUseCase.SuggestTags(ctx, productType)
	if err != nil {
		log.Printf("Suggest error: %v", err)
		h.sendMessage(message.Chat.ID, fmt.Sprintf("❌ Taklif olib bo'lmadi: %v", err))
		return
	}

	h.sendMessage(message.Chat.ID, fmt.Sprintf(`💡 '%s' uchun teg takliflari:

%s

Saqlash uchun:
/set %s | %s`, productType, strings.Join(tags, ", "), productType, strings.Join(tags, ";")))
}

// requireAdmin admin bo'lmasa xabar yuborib false qaytaradi
func (h *BotHandler) requireAdmin(ctx context.Context, message *tgbotapi.Message) bool {
	isAdmin, _ := h.adminUseCase.IsAdmin(ctx, message.From.ID)
	if !isAdmin {
		h.sendMessage(message.Chat.ID, "❌ Bu komanda faqat adminlar uchun. /admin bilan tizimga kiring.")
		return false
	}
	return true
}

// buildWorklistPreview worklistdan tasdiq xabarini yasash
func buildWorklistPreview(result *usecase.ScanResult, limit int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔎 %d ta mahsulot tekshirildi.\n%d tasiga teg qo'shish kerak:\n\n", result.Scanned, len(result.Worklist)))

	shown := len(result.Worklist)
	if shown > limit {
		shown = limit
	}
	for i := 0; i < shown; i++ {
		item := result.Worklist[i]
		sb.WriteString(fmt.Sprintf("• %s → +%s\n", item.Product.Title, usecase.FormatTags(item.TagsToAdd, 60)))
	}
	if len(result.Worklist) > limit {
		sb.WriteString(fmt.Sprintf("... va yana %d ta\n", len(result.Worklist)-limit))
	}

	sb.WriteString("\nTeglarni qo'llaymizmi?")
	return sb.String()
}

// downloadFile Telegram dan faylni yuklash
func (h *BotHandler) downloadFile(fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	fileURL := file.Link(h.bot.Token)
	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// isAwaitingPassword parol kutilayotganini tekshirish
func (h *BotHandler) isAwaitingPassword(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.awaitingPassword[userID]
}

// setAwaitingPassword parol kutish rejimini o'rnatish
func (h *BotHandler) setAwaitingPassword(userID int64, awaiting bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if awaiting {
		h.awaitingPassword[userID] = true
	} else {
		delete(h.awaitingPassword, userID)
	}
}

// savePendingRun tasdiq kutayotgan runni saqlash
func (h *BotHandler) savePendingRun(userID int64, run pendingRun) {
	h.runMu.Lock()
	defer h.runMu.Unlock()
	h.pendingRuns[userID] = run
}

// takePendingRun runni olib, ro'yxatdan o'chirish
func (h *BotHandler) takePendingRun(userID int64) (pendingRun, bool) {
	h.runMu.Lock()
	defer h.runMu.Unlock()
	run, ok := h.pendingRuns[userID]
	if ok {
		delete(h.pendingRuns, userID)
	}
	return run, ok
}

// sendMessage oddiy xabar yuborish
func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Xabar yuborishda xatolik: %v", err)
	}
}

// getWelcomeMessage boshlang'ich xabar
func (h *BotHandler) getWelcomeMessage() string {
	return `👋 Salom! Men Shopify katalogida mahsulot turlariga qarab teglarni avtomatik qo'shadigan botman.

Boshqarish uchun /admin bilan tizimga kiring.
Komandalar ro'yxati: /help`
}

// getHelpMessage yordam xabari
func (h *BotHandler) getHelpMessage() string {
	return `📖 Komandalar:

/admin - Admin sifatida kirish
/logout - Admin paneldan chiqish

🏷 Mappinglar:
/mappings - Tur-teg mappinglar ro'yxati
/set <tur> | <teg1;teg2> - Mapping qo'shish yoki yangilash
/remove <tur> - Mappingni o'chirish
/import - Excel/CSV fayldan yuklash
/suggest <tur> - AI teg takliflari

🔄 Sinxronizatsiya:
/run - Katalogni skan qilib, tasdiq bilan teg qo'shish
/auto - Avtomatik sinxronizatsiyani yoqish
/autooff - Avtomatik sinxronizatsiyani o'chirish
/status - So'nggi runlar va scheduler holati`
}
