package export

import (
	"fmt"

	"github.com/frahmantamala/shift-tracker/internal/shift"
	"github.com/xuri/excelize/v2"
)

var (
	itineraryHeader = []string{"Name", "ID", "Schichtnummer", "Kunde", "Auto", "Datum", "Startzeit", "Endzeit"}
	hoursHeader     = []string{"Name", "ID", "Datum", "Stunden"}
	mixedHeader     = append(append([]string{}, itineraryHeader...), "Stunden")
)

type layout int

const (
	layoutItinerary layout = iota
	layoutHours
	layoutMixed
)

// chooseLayout picks the column set from the schemas present in rows.
func chooseLayout(rows []Row) layout {
	var itinerary, hours bool
	for _, r := range rows {
		if shift.Schema(r.Schema) == shift.SchemaHours {
			hours = true
		} else {
			itinerary = true
		}
	}
	switch {
	case hours && itinerary:
		return layoutMixed
	case hours:
		return layoutHours
	default:
		return layoutItinerary
	}
}

func (l layout) header() []string {
	switch l {
	case layoutHours:
		return hoursHeader
	case layoutMixed:
		return mixedHeader
	default:
		return itineraryHeader
	}
}

func (l layout) cells(r Row) []interface{} {
	datum := r.Datum.Format(shift.DateLayout)

	var hours interface{} = ""
	if r.TotalHours.Valid {
		hours = r.TotalHours.Decimal.InexactFloat64()
	}

	if l == layoutHours {
		return []interface{}{r.Name, r.UniqueID, datum, hours}
	}

	cells := []interface{}{
		r.Name,
		r.UniqueID,
		r.ShiftNumber.String,
		r.Kunde.String,
		r.Auto.String,
		datum,
		shift.FormatClock(r.StartTime.String),
		shift.FormatClock(r.EndTime.String),
	}
	if l == layoutMixed {
		cells = append(cells, hours)
	}
	return cells
}

// BuildWorkbook renders rows into a single-sheet xlsx workbook, header row first.
func BuildWorkbook(sheet string, rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	l := chooseLayout(rows)
	header := l.header()

	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := l.cells(r)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
