package excel

import (
	"fmt"

	"github.com/example/lingoladder/internal/vocabulary"
	"github.com/xuri/excelize/v2"
)

// exportSheet is the default sheet of a new workbook.
const exportSheet = "Sheet1"

// Export writes every language of table to an xlsx file at path, one column
// per language code.
func Export(table *vocabulary.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for col, lang := range table.Languages() {
		words, _ := table.Words(lang.Code)

		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		column := make([]interface{}, 0, len(words)+1)
		column = append(column, lang.Code)
		for _, w := range words {
			column = append(column, w)
		}
		if err := f.SetSheetCol(exportSheet, cell, &column); err != nil {
			return fmt.Errorf("failed to write %s column: %w", lang.Code, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
