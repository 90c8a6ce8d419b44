package scoring

import "github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"

// BatchDocument is one document's inputs to batch scoring: the latest
// predicted result (nil when no run produced one) and the golden reference
// (nil when nobody hand-labeled this document).
type BatchDocument struct {
	ID        string
	Stem      string
	Predicted *payload.Value
	Golden    *payload.Value
}

// DocumentScore is the per-document row of the batch scoring report.
type DocumentScore struct {
	DocumentID      string  `json:"document_id"`
	Stem            string  `json:"stem"`
	Covered         bool    `json:"covered"`
	TotalFields     int     `json:"total_fields"`
	CorrectFields   int     `json:"correct_fields"`
	AccuracyPercent float64 `json:"accuracy_percent"`
}

// BatchReport summarizes extraction quality across a batch. Accuracy is
// computed over aggregated field counts, not an average of per-document
// ratios, and only over documents that have both a prediction and a golden.
type BatchReport struct {
	DocumentsTotal   int             `json:"documents_total"`
	CoveredDocuments int             `json:"covered_documents"`
	CoveragePercent  float64         `json:"coverage_percent"`
	FieldsTotal      int             `json:"fields_total"`
	FieldsCorrect    int             `json:"fields_correct"`
	AccuracyPercent  float64         `json:"accuracy_percent"`
	Documents        []DocumentScore `json:"documents"`
}

// ScoreBatch builds the batch report. A document is covered when a
// predicted result exists and contains a non-empty value for every required
// section; with no required sections, existence of any prediction suffices.
func ScoreBatch(batch []BatchDocument, requiredSections []string) BatchReport {
	report := BatchReport{
		DocumentsTotal: len(batch),
		Documents:      make([]DocumentScore, 0, len(batch)),
	}

	var fields Counts
	for _, doc := range batch {
		row := DocumentScore{
			DocumentID: doc.ID,
			Stem:       doc.Stem,
			Covered:    isCovered(doc.Predicted, requiredSections),
		}
		if row.Covered {
			report.CoveredDocuments++
		}

		if doc.Predicted != nil && doc.Golden != nil {
			counts := Compare(*doc.Predicted, *doc.Golden)
			row.TotalFields = counts.Total
			row.CorrectFields = counts.Correct
			row.AccuracyPercent = counts.AccuracyPercent()
			fields.Add(counts)
		}

		report.Documents = append(report.Documents, row)
	}

	report.FieldsTotal = fields.Total
	report.FieldsCorrect = fields.Correct
	report.AccuracyPercent = fields.AccuracyPercent()
	if report.DocumentsTotal > 0 {
		report.CoveragePercent = float64(report.CoveredDocuments) / float64(report.DocumentsTotal) * 100
	}

	return report
}

func isCovered(predicted *payload.Value, requiredSections []string) bool {
	if predicted == nil {
		return false
	}
	for _, name := range requiredSections {
		section, ok := predicted.Field(name)
		if !ok || section.IsEmpty() {
			return false
		}
	}
	return true
}
