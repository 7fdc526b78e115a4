package services

import (
	"bytes"
	"fmt"

	"agroai-api/internal/models"

	"github.com/xuri/excelize/v2"
)

// RecommendationSheet is the sheet name of the exported workbook
const RecommendationSheet = "Tavsiyalar"

var recommendationHeader = []interface{}{
	"Ekin", "Sabab", "Xarajat ($)", "Sof Foyda ($)", "Risk (%)", "Muddat (oy)",
}

// ExportService writes recommendation results to Excel workbooks
type ExportService struct{}

// NewExportService creates a new ExportService
func NewExportService() *ExportService {
	return &ExportService{}
}

// RecommendationsWorkbook renders recs as an .xlsx file with a cost/profit column chart
func (es *ExportService) RecommendationsWorkbook(recs []models.CropRecommendation) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", RecommendationSheet)

	if err := f.SetSheetRow(RecommendationSheet, "A1", &recommendationHeader); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, rec := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			rec.CropName,
			rec.Reason,
			rec.EstimatedCost,
			rec.EstimatedProfit,
			rec.RiskFactor,
			rec.DurationMonths,
		}
		if err := f.SetSheetRow(RecommendationSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	if len(recs) > 0 {
		if err := es.addFinanceChart(f, len(recs)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func (es *ExportService) addFinanceChart(f *excelize.File, rows int) error {
	last := rows + 1
	categories := fmt.Sprintf("'%s'!$A$2:$A$%d", RecommendationSheet, last)
	return f.AddChart(RecommendationSheet, "H2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$C$1", RecommendationSheet),
				Categories: categories,
				Values:     fmt.Sprintf("'%s'!$C$2:$C$%d", RecommendationSheet, last),
			},
			{
				Name:       fmt.Sprintf("'%s'!$D$1", RecommendationSheet),
				Categories: categories,
				Values:     fmt.Sprintf("'%s'!$D$2:$D$%d", RecommendationSheet, last),
			},
		},
	})
}
