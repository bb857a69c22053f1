package workbook

import (
	"log/slog"

	"peoplecli/internal/config"
	"peoplecli/pkg/contracts/domain"
)

// Headcount and exits sheet headers.
const (
	hdrEmployeeName = "Employee Name"
	hdrDepartment   = "Department"
	hdrOrg          = "Org"
	hdrManager      = "Manager"
	hdrEmpCountry   = "Country"
	hdrStartDate    = "Start Date"
	hdrLastDate     = "Last Date"
	hdrLevelDist    = "Level distinction"
	hdrPaybandGran  = "Payband (granular)"
	hdrBaseAnnual   = "Base Annual Compensation"
	hdrTotalEquity  = "Current total Equity"
	hdrPerfScore    = "Perf Score H1 25"
	hdrRegrettable  = "Regrettable"
)

// Headcount extracts the current headcount sheet.
func (r *Reader) Headcount() ([]domain.Employee, error) {
	rows, err := r.sheetRows(config.SheetHeadcount)
	if err != nil {
		return nil, err
	}

	headerRow, cols, err := findHeaderRow(rows,
		hdrEmployeeName, hdrDepartment, hdrOrg, hdrEmpCountry,
		hdrStartDate, hdrLevelDist, hdrPaybandGran)
	if err != nil {
		return nil, err
	}

	optional := optionalColumns(rows[headerRow],
		hdrManager, hdrBaseAnnual, hdrTotalEquity, hdrPerfScore)

	var employees []domain.Employee
	for _, row := range rows[headerRow+1:] {
		name := cell(row, cols[hdrEmployeeName])
		if name == "" {
			continue
		}

		start, _ := domain.ParseDate(cell(row, cols[hdrStartDate]))

		emp := domain.Employee{
			Name:             name,
			Department:       cell(row, cols[hdrDepartment]),
			Org:              cell(row, cols[hdrOrg]),
			Country:          cell(row, cols[hdrEmpCountry]),
			StartDate:        start,
			LevelDistinction: cell(row, cols[hdrLevelDist]),
			PaybandGranular:  cell(row, cols[hdrPaybandGran]),
		}
		if idx, ok := optional[hdrManager]; ok {
			emp.Manager = cell(row, idx)
		}
		if idx, ok := optional[hdrBaseAnnual]; ok {
			emp.CurrentBase = parseOptionalFloat(cell(row, idx))
		}
		if idx, ok := optional[hdrTotalEquity]; ok {
			emp.CurrentEquity = parseOptionalFloat(cell(row, idx))
		}
		if idx, ok := optional[hdrPerfScore]; ok {
			emp.PerfScore = cell(row, idx)
		}

		employees = append(employees, emp)
	}

	slog.Info("Extracted current headcount",
		slog.Int("count", len(employees)),
		slog.String("sheet", config.SheetHeadcount))

	return employees, nil
}

// Exits extracts the exits sheet.
func (r *Reader) Exits() ([]domain.ExitRecord, error) {
	rows, err := r.sheetRows(config.SheetExits)
	if err != nil {
		return nil, err
	}

	headerRow, cols, err := findHeaderRow(rows,
		hdrEmployeeName, hdrDepartment, hdrOrg, hdrEmpCountry,
		hdrStartDate, hdrLastDate)
	if err != nil {
		return nil, err
	}

	optional := optionalColumns(rows[headerRow],
		hdrManager, hdrLevelDist, hdrRegrettable)

	var exits []domain.ExitRecord
	for _, row := range rows[headerRow+1:] {
		name := cell(row, cols[hdrEmployeeName])
		if name == "" {
			continue
		}

		start, _ := domain.ParseDate(cell(row, cols[hdrStartDate]))
		last, _ := domain.ParseDate(cell(row, cols[hdrLastDate]))

		exit := domain.ExitRecord{
			Name:       name,
			Department: cell(row, cols[hdrDepartment]),
			Org:        cell(row, cols[hdrOrg]),
			Country:    cell(row, cols[hdrEmpCountry]),
			StartDate:  start,
			LastDate:   last,
		}
		if idx, ok := optional[hdrManager]; ok {
			exit.Manager = cell(row, idx)
		}
		if idx, ok := optional[hdrLevelDist]; ok {
			exit.LevelDistinction = cell(row, idx)
		}
		if idx, ok := optional[hdrRegrettable]; ok {
			exit.Regrettable = cell(row, idx)
		}

		exits = append(exits, exit)
	}

	slog.Info("Extracted exit records",
		slog.Int("count", len(exits)),
		slog.String("sheet", config.SheetExits))

	return exits, nil
}
