package gemini

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/yourusername/shopify-tag-bot/internal/domain/repository"
	"google.golang.org/api/option"
)

type geminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	sem    chan struct{}
	mu     sync.Mutex
	last   time.Time
	delay  time.Duration
}

// NewGeminiClient yangi Gemini AI client yaratish
func NewGeminiClient(apiKey string) (repository.AIRepository, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash-exp")

	// Model konfiguratsiyasi - aniq javoblar uchun
	model.SetTemperature(0.3)
	model.SetTopK(20)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(512)

	// System instruction - e-commerce teg maslahatchisi sifatida
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{
			genai.Text(`Sen e-commerce do'koni uchun teg (tag) maslahatchisissan.

VAZIFA: Berilgan mahsulot turi uchun qidiruv va filtrlashga yordam beradigan teglar taklif qil.

QOIDALAR:
1. FAQAT teglar ro'yxatini qaytar - hech qanday izoh, sarlavha yoki raqamlash YO'Q
2. Teglarni vergul bilan ajrat: tag1, tag2, tag3
3. 3 tadan 7 tagacha teg taklif qil
4. Teglar qisqa bo'lsin (1-3 so'z), kichik harflarda
5. Mavjud mappinglardagi teg uslubiga moslash - xuddi shu tilda va formatda yoz
6. Mahsulot turining o'zini teg sifatida takrorlama`),
		},
	}

	return &geminiClient{
		client: client,
		model:  model,
		sem:    make(chan struct{}, 3), // bir vaqtda 3 ta so'rovdan oshirma
		delay:  350 * time.Millisecond, // minimal interval
	}, nil
}

// SuggestTags mahsulot turi uchun teg takliflarini yaratish
func (g *geminiClient) SuggestTags(ctx context.Context, productType string, existing map[string][]string) ([]string, error) {
	release := g.acquire()
	defer release()

	var prompt strings.Builder
	if len(existing) > 0 {
		prompt.WriteString("Do'kondagi mavjud mappinglar (uslub namunasi):\n")
		types := make([]string, 0, len(existing))
		for t := range existing {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			prompt.WriteString(fmt.Sprintf("- %s: %s\n", t, strings.Join(existing[t], ", ")))
		}
		prompt.WriteString("\n")
	}
	prompt.WriteString(fmt.Sprintf("Mahsulot turi: %s\nTeglar taklif qil.", productType))

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no response candidates")
	}

	tags := parseTagList(extractText(resp))
	if len(tags) == 0 {
		return nil, fmt.Errorf("no tags in AI response")
	}
	return tags, nil
}

// parseTagList AI javobidan teglar ro'yxatini ajratib olish
func parseTagList(text string) []string {
	// Ba'zan model qatorlarga bo'lib yozadi, hammasini vergulga keltiramiz
	text = strings.ReplaceAll(text, "\n", ",")

	var tags []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(text, ",") {
		tag := strings.TrimSpace(part)
		tag = strings.Trim(tag, "-•*\"'")
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// extractText javobdan textni ajratib olish
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				result.WriteString(fmt.Sprintf("%v", part))
			}
		}
	}
	return result.String()
}

func (g *geminiClient) acquire() func() {
	g.sem <- struct{}{}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if g.last.IsZero() {
		g.last = now
	} else {
		if sleep := g.delay - now.Sub(g.last); sleep > 0 {
			time.Sleep(sleep)
			now = time.Now()
		}
		g.last = now
	}

	return func() {
		<-g.sem
	}
}

// Close client ni yopish
func (g *geminiClient) Close() error {
	return g.client.Close()
}
