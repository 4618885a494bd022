package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitShopifyTags(t *testing.T) {
	assert.Nil(t, SplitShopifyTags(""))
	assert.Equal(t, []string{"sale"}, SplitShopifyTags("sale"))
	assert.Equal(t, []string{"old", "sale", "new"}, SplitShopifyTags("old, sale, new"))
}

func TestTagsToAdd(t *testing.T) {
	tests := []struct {
		name        string
		currentTags string
		desiredTags []string
		want        []string
	}{
		{
			name:        "bo'sh mahsulotga hamma teglar qo'shiladi",
			currentTags: "",
			desiredTags: []string{"sale", "new"},
			want:        []string{"sale", "new"},
		},
		{
			name:        "mavjud teglar o'tkazib yuboriladi",
			currentTags: "old, sale",
			desiredTags: []string{"sale", "new"},
			want:        []string{"new"},
		},
		{
			name:        "hammasi mavjud bo'lsa bo'sh natija",
			currentTags: "sale, new",
			desiredTags: []string{"sale", "new"},
			want:        nil,
		},
		{
			name:        "solishtirish case-sensitive",
			currentTags: "Sale",
			desiredTags: []string{"sale"},
			want:        []string{"sale"},
		},
		{
			name:        "natija desired tartibida",
			currentTags: "x",
			desiredTags: []string{"c", "a", "b"},
			want:        []string{"c", "a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TagsToAdd(tt.currentTags, tt.desiredTags))
		})
	}
}

func TestMergeTags(t *testing.T) {
	tests := []struct {
		name        string
		currentTags string
		tagsToAdd   []string
		want        string
	}{
		{
			name:        "birlashtirilib leksikografik tartiblanadi",
			currentTags: "old, sale",
			tagsToAdd:   []string{"new"},
			want:        "new, old, sale",
		},
		{
			name:        "bo'sh mahsulot",
			currentTags: "",
			tagsToAdd:   []string{"b", "a"},
			want:        "a, b",
		},
		{
			name:        "dublikatlar yo'qoladi",
			currentTags: "sale, sale",
			tagsToAdd:   []string{"sale"},
			want:        "sale",
		},
		{
			name:        "qo'shiladigan teg bo'lmasa ham tartib normalizatsiya qilinadi",
			currentTags: "b, a",
			tagsToAdd:   nil,
			want:        "a, b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeTags(tt.currentTags, tt.tagsToAdd))
		})
	}
}

// Merge qilingandan keyin qayta skan hech narsa topmasligi kerak.
func TestMergeTagsIdempotent(t *testing.T) {
	desired := []string{"sale", "new", "winter"}

	merged := MergeTags("old, sale", TagsToAdd("old, sale", desired))
	assert.Empty(t, TagsToAdd(merged, desired))

	// Ikkinchi merge natijani o'zgartirmaydi
	assert.Equal(t, merged, MergeTags(merged, TagsToAdd(merged, desired)))
}

func TestFormatTags(t *testing.T) {
	assert.Equal(t, "a;b;c", FormatTags([]string{"a", "b", "c"}, 100))
	assert.Equal(t, "aaaa...", FormatTags([]string{"aaaaaa"}, 4))
	assert.Equal(t, "", FormatTags(nil, 10))
}
