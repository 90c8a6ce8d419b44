package extractions

import (
	"encoding/json"
	"fmt"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/query"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "extractions", "e").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("stem", "Stem").
	Project("status", "Status").
	Project("message", "Message").
	Project("result", "Result").
	Project("coached_fields", "CoachedFields").
	Project("receipt_count", "ReceiptCount").
	Project("started_at", "StartedAt").
	Project("finished_at", "FinishedAt").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanExtraction(s repository.Scanner) (Extraction, error) {
	var e Extraction
	var rawResult []byte

	err := s.Scan(
		&e.ID,
		&e.DocumentID,
		&e.Stem,
		&e.Status,
		&e.Message,
		&rawResult,
		&e.CoachedFields,
		&e.ReceiptCount,
		&e.StartedAt,
		&e.FinishedAt,
		&e.CreatedAt,
	)
	if err != nil {
		return e, err
	}

	if len(rawResult) > 0 {
		var v payload.Value
		if err := json.Unmarshal(rawResult, &v); err != nil {
			return e, fmt.Errorf("decode result: %w", err)
		}
		e.Result = v
	}

	return e, nil
}
