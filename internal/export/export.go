// Package export serializes a finished session report for external
// consumers: verbatim JSON, plus an .xlsx coaching workbook for reviewers
// who live in spreadsheets.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/amrassal1991/MockCall/internal/rubric"
	"github.com/amrassal1991/MockCall/internal/types"
)

// WriteJSON writes the report verbatim as indented JSON.
func WriteJSON(report types.SessionReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteWorkbook writes the report as a three-sheet workbook: Summary,
// Sections, Coaching.
func WriteWorkbook(report types.SessionReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"Scenario", report.CallSummary.Scenario},
		{"End reason", report.CallSummary.EndReason},
		{"Duration (s)", report.CallSummary.DurationSeconds},
		{"Turns", report.CallSummary.TurnCount},
		{"Average score", report.QualityMetrics.AverageScore},
		{"Percentage", report.QualityMetrics.Percentage},
		{"Performance tier", report.QualityMetrics.PerformanceTier},
		{"Promoter probability", report.BusinessMetrics.PromoterProbability},
		{"Resolution rate", report.BusinessMetrics.ResolutionRate},
		{"Sales opportunity", report.BusinessMetrics.SalesOpportunity},
		{"First-call resolution", report.BusinessMetrics.FirstCallResolution},
		{"Satisfaction tier", report.BusinessMetrics.SatisfactionTier},
	}
	for i, row := range summaryRows {
		if err := f.SetSheetRow(summary, "A"+strconv.Itoa(i+1), &row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	const sections = "Sections"
	if _, err := f.NewSheet(sections); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	header := []interface{}{"Section", "Average", "Max", "Percentage", "Applicable turns", "Trend"}
	if err := f.SetSheetRow(sections, "A1", &header); err != nil {
		return fmt.Errorf("write sections header: %w", err)
	}
	rowIdx := 2
	for _, id := range rubric.SectionOrder {
		bd, ok := report.QualityMetrics.Sections[id]
		if !ok {
			continue
		}
		row := []interface{}{string(id), bd.AverageScore, bd.MaxScore, bd.Percentage, bd.ApplicableTurns, bd.Trend}
		if err := f.SetSheetRow(sections, "A"+strconv.Itoa(rowIdx), &row); err != nil {
			return fmt.Errorf("write section row: %w", err)
		}
		rowIdx++
	}

	const coaching = "Coaching"
	if _, err := f.NewSheet(coaching); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	coachingRows := [][]interface{}{
		{"Priority", report.CoachingPlan.Priority},
		{"Recommendation", report.CoachingPlan.Recommendation},
		{},
		{"Focus area", "Percentage", "Advice"},
	}
	for _, fa := range report.CoachingPlan.FocusAreas {
		coachingRows = append(coachingRows, []interface{}{fa.Name, fa.Percentage, fa.Advice})
	}
	coachingRows = append(coachingRows, []interface{}{})
	for _, s := range report.CoachingPlan.Strengths {
		coachingRows = append(coachingRows, []interface{}{"Strength", s})
	}
	for i, row := range coachingRows {
		if len(row) == 0 {
			continue
		}
		r := row
		if err := f.SetSheetRow(coaching, "A"+strconv.Itoa(i+1), &r); err != nil {
			return fmt.Errorf("write coaching row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
