package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tonneli/tonneli/internal/model"
)

const xlsxSheet = "Schedule"

// XLSX writes a workbook with a short header block followed by one row per
// pickup: date, weekday, fraction, note.
func XLSX(w io.Writer, s Schedule) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}

	set := func(cell string, value any) {
		_ = file.SetCellValue(xlsxSheet, cell, value)
	}

	set("A1", "City")
	set("B1", s.City.Name)
	set("A2", "Address")
	set("B2", addressCell(s.Address))
	set("A3", "From")
	set("B3", s.Range.Start.Format(model.DateLayout))
	set("A4", "To")
	set("B4", s.Range.End.Format(model.DateLayout))

	tableRow := 6
	for i, header := range []string{"Date", "Weekday", "Fraction", "Note"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}
	for i, e := range Events(s.Events) {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), e.Date)
		set(fmt.Sprintf("B%d", row), e.Weekday)
		set(fmt.Sprintf("C%d", row), e.Label)
		set(fmt.Sprintf("D%d", row), e.Note)
	}

	_ = file.SetColWidth(xlsxSheet, "A", "A", 14)
	_ = file.SetColWidth(xlsxSheet, "B", "B", 12)
	_ = file.SetColWidth(xlsxSheet, "C", "C", 24)
	_ = file.SetColWidth(xlsxSheet, "D", "D", 36)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func addressCell(a model.Address) string {
	if a.Label != "" {
		return a.Label
	}
	return string(a.ID)
}
