// =============================================================================
// EDIFACT PRICAT Generator - Excel Catalog Loader
// =============================================================================
//
// This module reads a product catalog from an Excel workbook into the
// in-memory Message the pipeline consumes. It is an input adapter only: it
// performs no validation beyond basic workbook shape, leaving the real rule
// checks to the validation package so every input path is judged by the same
// rules.
//
// WORKBOOK LAYOUT:
//
//   Sheet "Message" - key/value rows:
//       message_ref      | MSG123
//       doc_code         | 9
//       doc_number       | PRICAT2023
//       currency         | EUR
//       edifact_version  | D:96A:UN
//
//   Sheet "Parties" - header row then one party per row:
//       qualifier | id
//       BY        | BUYER001
//
//   Sheet "Items" - header row then one item per row:
//       product_code | description | price  | quantity | unit
//       P1001        | Product 1   | 125.99 | 10       | PCE
//
//   Header matching is case-insensitive; column order is free. Prices and
//   quantities are carried as the raw cell text so the exact-decimal
//   normalizer sees what the spreadsheet held, not a float round-trip.
//
// =============================================================================

package xlsxloader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/AScotM/edifact-pricat/internal/catalog"
)

// Sheet names the loader expects.
const (
	messageSheet = "Message"
	partiesSheet = "Parties"
	itemsSheet   = "Items"
)

// Load reads a catalog workbook into a Message. Missing optional cells stay
// empty and pick up their defaults downstream; a missing Items or Parties
// sheet is an error because an empty catalog can never validate.
func Load(path string) (*catalog.Message, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog workbook: %w", err)
	}
	defer f.Close()

	msg := &catalog.Message{}

	if err := loadMessageSheet(f, msg); err != nil {
		return nil, err
	}
	if err := loadPartiesSheet(f, msg); err != nil {
		return nil, err
	}
	if err := loadItemsSheet(f, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// loadMessageSheet fills the top-level fields from key/value rows.
func loadMessageSheet(f *excelize.File, msg *catalog.Message) error {
	rows, err := f.GetRows(messageSheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", messageSheet, err)
	}

	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(row[0]))
		value := strings.TrimSpace(row[1])

		switch key {
		case "message_ref":
			msg.MessageRef = value
		case "doc_code":
			msg.DocCode = value
		case "doc_number":
			msg.DocNumber = value
		case "currency":
			msg.Currency = value
		case "edifact_version":
			msg.EdifactVersion = value
		}
	}

	return nil
}

// loadPartiesSheet fills the party list from a header row plus data rows.
func loadPartiesSheet(f *excelize.File, msg *catalog.Message) error {
	rows, err := f.GetRows(partiesSheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", partiesSheet, err)
	}
	if len(rows) < 2 {
		return fmt.Errorf("sheet %s has no party rows", partiesSheet)
	}

	columns := headerIndex(rows[0])

	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		msg.Parties = append(msg.Parties, catalog.Party{
			Qualifier: cell(row, columns["qualifier"]),
			ID:        cell(row, columns["id"]),
		})
	}

	return nil
}

// loadItemsSheet fills the item list from a header row plus data rows.
func loadItemsSheet(f *excelize.File, msg *catalog.Message) error {
	rows, err := f.GetRows(itemsSheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", itemsSheet, err)
	}
	if len(rows) < 2 {
		return fmt.Errorf("sheet %s has no item rows", itemsSheet)
	}

	columns := headerIndex(rows[0])

	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		msg.Items = append(msg.Items, catalog.LineItem{
			ProductCode: cell(row, columns["product_code"]),
			Description: cell(row, columns["description"]),
			Price:       cell(row, columns["price"]),
			Quantity:    cell(row, columns["quantity"]),
			Unit:        cell(row, columns["unit"]),
		})
	}

	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// headerIndex maps lower-cased header names to their column positions.
// Unknown headers are kept too; lookups of absent names return the -1
// sentinel via the explicit initialization below.
func headerIndex(header []string) map[string]int {
	columns := map[string]int{
		"qualifier":    -1,
		"id":           -1,
		"product_code": -1,
		"description":  -1,
		"price":        -1,
		"quantity":     -1,
		"unit":         -1,
	}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return columns
}

// cell returns the trimmed cell at the given index, or "" when the column is
// absent or the row is short. excelize trims trailing empty cells from rows,
// so short rows are normal.
func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
