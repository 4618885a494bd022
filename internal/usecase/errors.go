package usecase

import "errors"

var (
	// ErrValidation majburiy maydon bo'sh
	ErrValidation = errors.New("product type va tags bo'sh bo'lmasligi kerak")

	// ErrNoMappings bazada hech qanday mapping yo'q
	ErrNoMappings = errors.New("bazada mapping topilmadi")

	// ErrSourceData import fayli yoki kerakli ustunlar topilmadi
	ErrSourceData = errors.New("import faylida kerakli ma'lumot topilmadi")
)
