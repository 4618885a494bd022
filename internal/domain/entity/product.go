package entity

import "time"

// Product Shopify katalogidagi mahsulot
type Product struct {
	ID          int64
	Title       string
	ProductType string
	Tags        string // Shopify formatida: ", " bilan ajratilgan
}

// ProductPage katalogdan olingan bitta sahifa
type ProductPage struct {
	Products []Product
	NextPage string // keyingi sahifa uchun page_info cursor, bo'sh = oxirgi sahifa
}

// WorklistItem teg qo'shilishi kerak bo'lgan mahsulot
type WorklistItem struct {
	Product   Product
	TagsToAdd []string
}

// SyncReport bitta sync run natijasi
type SyncReport struct {
	RunID      string
	Mode       string // "interactive" yoki "auto"
	Scanned    int
	Matched    int
	Updated    int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
}
