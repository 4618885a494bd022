package usecase

import (
	"sort"
	"strings"

	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
)

// ShopifyTagSeparator Shopify teglar uchun ishlatadigan ajratgich.
// Aynan shu format bilan yozilishi SHART, aks holda Shopify maydonni
// noto'g'ri parse qiladi.
const ShopifyTagSeparator = ", "

// SplitShopifyTags Shopify tag stringini teglar ro'yxatiga ajratish
func SplitShopifyTags(tags string) []string {
	if tags == "" {
		return nil
	}
	return strings.Split(tags, ShopifyTagSeparator)
}

// TagsToAdd mahsulotning hozirgi teglariga qarab yetishmayotgan teglarni aniqlash.
// Natija desiredTags tartibida qaytadi; solishtirish case-sensitive.
func TagsToAdd(currentTags string, desiredTags []string) []string {
	current := make(map[string]struct{})
	for _, tag := range SplitShopifyTags(currentTags) {
		current[tag] = struct{}{}
	}

	var missing []string
	for _, tag := range desiredTags {
		if _, exists := current[tag]; !exists {
			missing = append(missing, tag)
		}
	}
	return missing
}

// MergeTags hozirgi va yangi teglarni birlashtirib, Shopify formatda qaytarish.
// Natija leksikografik tartibda — qayta ishga tushirishda teg tartibi
// o'zgarmasligi uchun (idempotent).
func MergeTags(currentTags string, tagsToAdd []string) string {
	merged := make(map[string]struct{})
	for _, tag := range SplitShopifyTags(currentTags) {
		merged[tag] = struct{}{}
	}
	for _, tag := range tagsToAdd {
		merged[tag] = struct{}{}
	}

	all := make([]string, 0, len(merged))
	for tag := range merged {
		all = append(all, tag)
	}
	sort.Strings(all)

	return strings.Join(all, ShopifyTagSeparator)
}

// FormatTags teglar ro'yxatini ";" bilan birlashtirib, uzun bo'lsa kesish
func FormatTags(tags []string, maxLength int) string {
	joined := strings.Join(tags, entity.TagSeparator)
	if len(joined) > maxLength {
		return joined[:maxLength] + "..."
	}
	return joined
}
