// Package damage reconciles the before and after defect inventories of a
// returned item.
package damage

import "sheerent-backend/internal/domain"

// Compare adjudicates two defect inventories. A class counts as damage only
// when its occurrence count increased; decreases and disappearing classes
// never offset an increase elsewhere. Missing keys are treated as zero, so
// the result is independent of which classes each inventory happens to
// mention and of iteration order.
func Compare(before, after domain.DefectInventory) domain.DamageReport {
	increases := make(map[string]int)
	for class, afterCount := range after {
		if inc := afterCount - before[class]; inc > 0 {
			increases[class] = inc
		}
	}
	return domain.DamageReport{
		Detected:  len(increases) > 0,
		Increases: increases,
	}
}
