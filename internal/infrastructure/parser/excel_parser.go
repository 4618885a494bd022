package parser

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
	"github.com/yourusername/shopify-tag-bot/internal/domain/repository"
)

type mappingParser struct{}

// NewMappingParser yangi mapping parser yaratish
func NewMappingParser() repository.MappingParser {
	return &mappingParser{}
}

// ParseMappings fayldan mapping qatorlarini o'qish (.xlsx yoki .csv)
func (p *mappingParser) ParseMappings(ctx context.Context, filePath string) ([]entity.MappingRow, error) {
	if strings.EqualFold(filepath.Ext(filePath), ".csv") {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open csv file: %w", err)
		}
		defer f.Close()
		return p.parseCSV(f)
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return p.parseExcelFile(f)
}

// ParseMappingsFromBytes byte array dan parse qilish
func (p *mappingParser) ParseMappingsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.MappingRow, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return p.parseCSV(bytes.NewReader(data))
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	return p.parseExcelFile(f)
}

// parseExcelFile Excel faylni parse qilish
func (p *mappingParser) parseExcelFile(f *excelize.File) ([]entity.MappingRow, error) {
	// Birinchi sheet ni olish
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	return p.parseRows(rows)
}

// parseCSV CSV ma'lumotlarni parse qilish
func (p *mappingParser) parseCSV(r io.Reader) ([]entity.MappingRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // qatorlar uzunligi har xil bo'lishi mumkin

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return p.parseRows(rows)
}

// parseRows header qatoridan ustunlarni aniqlab, mapping qatorlarini yig'ish
func (p *mappingParser) parseRows(rows [][]string) ([]entity.MappingRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("mapping file is empty")
	}

	log.Printf("📋 Mapping file header: %v", rows[0])
	log.Printf("📊 Total rows: %d", len(rows))

	typeCol, tagsCol, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var mappings []entity.MappingRow
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) <= typeCol || len(row) <= tagsCol {
			continue
		}

		productType := strings.TrimSpace(row[typeCol])
		tags := strings.TrimSpace(row[tagsCol])

		// Bo'sh qatorlarni skip qilish
		if productType == "" || tags == "" {
			continue
		}

		mappings = append(mappings, entity.MappingRow{
			ProductType: productType,
			Tags:        tags,
		})
	}

	log.Printf("📦 Total mappings parsed: %d", len(mappings))

	if len(mappings) == 0 {
		return nil, fmt.Errorf("no valid mappings found in file (parsed %d rows, but all were invalid)", len(rows)-1)
	}

	return mappings, nil
}

// mapColumns header qatoridan product_type va tags ustunlarini topish
func mapColumns(header []string) (typeCol, tagsCol int, err error) {
	typeCol, tagsCol = -1, -1

	for i, col := range header {
		colName := strings.ToLower(strings.TrimSpace(col))

		switch {
		// PRODUCT TYPE variants
		case contains(colName, "product_type", "tipo_produto", "product type", "tipo", "type", "tur", "тип"):
			if typeCol == -1 {
				typeCol = i
				log.Printf("✅ Mapped 'product_type' to column %d ('%s')", i, colName)
			}

		// TAGS variants
		case contains(colName, "tags", "teglar", "etiquetas", "тег", "tag"):
			if tagsCol == -1 {
				tagsCol = i
				log.Printf("✅ Mapped 'tags' to column %d ('%s')", i, colName)
			}
		}
	}

	// Header topilmasa, birinchi ikki ustun default
	if typeCol == -1 && tagsCol == -1 && len(header) >= 2 {
		log.Printf("⚠️ No known columns found, using columns 0 and 1")
		return 0, 1, nil
	}

	if typeCol == -1 {
		return 0, 0, fmt.Errorf("product_type column not found in header: %v", header)
	}
	if tagsCol == -1 {
		return 0, 0, fmt.Errorf("tags column not found in header: %v", header)
	}

	return typeCol, tagsCol, nil
}

// contains tekshirish uchun helper
func contains(str string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(str, keyword) {
			return true
		}
	}
	return false
}
