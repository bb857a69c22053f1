package workbook

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"peoplecli/internal/config"
	apperrors "peoplecli/internal/errors"
	"peoplecli/pkg/contracts/domain"
)

// levelCodePattern matches payband level codes: L1..Ln for individual
// contributors, M1..Mn for managers.
var levelCodePattern = regexp.MustCompile(`^([LM])(\d+)$`)

// paybandBlock ties a role category to its Early/Seasoned/Veteran
// column triplet.
type paybandBlock struct {
	role     string
	firstCol int
}

// Paybands extracts the payband sheet. The sheet is not a flat table:
// role categories sit in a banner row, each spanning an
// Early/Seasoned/Veteran column triplet, and every level contributes a
// stack of four value rows (cash base, equity value, equity units,
// annual total). The walk below flattens that structure into one
// PaybandEntry per (role, level, seniority).
func (r *Reader) Paybands() ([]domain.PaybandEntry, error) {
	rows, err := r.sheetRows(config.SheetPaybands)
	if err != nil {
		return nil, err
	}

	seniorityRow, groups := findSeniorityGroups(rows)
	if seniorityRow < 0 {
		return nil, apperrors.NewValidationError(
			"payband sheet has no Early/Seasoned/Veteran column groups", nil)
	}

	roles := findRoleBanner(rows, seniorityRow)
	if len(roles) == 0 {
		return nil, apperrors.NewValidationError(
			"payband sheet has no role category banner row", nil)
	}

	blocks := make([]paybandBlock, 0, len(roles))
	for i, role := range roles {
		if i >= len(groups) {
			break
		}
		blocks = append(blocks, paybandBlock{role: role, firstCol: groups[i]})
	}

	var entries []domain.PaybandEntry
	compID := 1

	for _, block := range blocks {
		for rowIdx := seniorityRow + 1; rowIdx+3 < len(rows); {
			levelCode, levelID, found := findLevelCode(rows[rowIdx])
			if !found || !isCashRow(rows[rowIdx]) {
				rowIdx++
				continue
			}

			for s, seniority := range []string{
				domain.SeniorityEarly, domain.SenioritySeasoned, domain.SeniorityVeteran,
			} {
				col := block.firstCol + s
				cashBase, _ := parseInt(cell(rows[rowIdx], col))
				equityValue, _ := parseInt(cell(rows[rowIdx+1], col))
				equityUnits, _ := parseInt(cell(rows[rowIdx+2], col))
				annualTotal, _ := parseInt(cell(rows[rowIdx+3], col))

				// Empty seniority columns happen where a band does not
				// exist for a level; skip rather than emit zero rows.
				if cashBase == 0 && equityValue == 0 && annualTotal == 0 {
					continue
				}

				entries = append(entries, domain.PaybandEntry{
					CompID:       compID,
					RoleCategory: block.role,
					LevelID:      levelID,
					LevelCode:    levelCode,
					SeniorityID:  domain.SeniorityID(seniority),
					Seniority:    seniority,
					CashBase:     cashBase,
					EquityValue:  equityValue,
					EquityUnits:  equityUnits,
					AnnualTotal:  annualTotal,
				})
				compID++
			}

			rowIdx += 4
		}
	}

	if len(entries) == 0 {
		return nil, apperrors.NewValidationError("payband sheet yielded no entries", nil)
	}

	slog.Info("Extracted payband entries",
		slog.Int("count", len(entries)),
		slog.Int("roles", len(blocks)),
		slog.String("sheet", config.SheetPaybands))

	return entries, nil
}

// findSeniorityGroups locates the row holding Early/Seasoned/Veteran
// column triplets and returns the starting column of each triplet.
func findSeniorityGroups(rows [][]string) (int, []int) {
	for i, row := range rows {
		var groups []int
		for j := 0; j+2 < len(row); j++ {
			if cell(row, j) == domain.SeniorityEarly &&
				cell(row, j+1) == domain.SenioritySeasoned &&
				cell(row, j+2) == domain.SeniorityVeteran {
				groups = append(groups, j)
			}
		}
		if len(groups) > 0 {
			return i, groups
		}
	}
	return -1, nil
}

// findRoleBanner collects role category names from the banner rows
// above the seniority row, in column order.
func findRoleBanner(rows [][]string, seniorityRow int) []string {
	for i := 0; i < seniorityRow; i++ {
		var roles []string
		for _, c := range rows[i] {
			if name := strings.TrimSpace(c); name != "" {
				roles = append(roles, name)
			}
		}
		if len(roles) > 0 {
			return roles
		}
	}
	return nil
}

// findLevelCode scans the leading columns of a row for a level code.
func findLevelCode(row []string) (string, int, bool) {
	limit := 5
	if len(row) < limit {
		limit = len(row)
	}
	for j := 0; j < limit; j++ {
		v := cell(row, j)
		if m := levelCodePattern.FindStringSubmatch(v); m != nil {
			id, _ := strconv.Atoi(m[2])
			return v, id, true
		}
	}
	return "", 0, false
}

// isCashRow reports whether the row's description column marks the
// start of a level's four-row value stack.
func isCashRow(row []string) bool {
	return strings.Contains(strings.ToLower(cell(row, 1)), "cash")
}
