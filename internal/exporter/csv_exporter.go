package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"safenotice/internal/safety"
)

// csvColumns defines the column order for the item-request export. The admin
// dashboard downloads this file for distribution planning.
var csvColumns = []string{
	"requestedAt",
	"itemName",
	"requester",
	"department",
	"quantity",
	"status",
	"note",
	"updatedAt",
}

// RequestCSVExporter exports item requests to CSV format.
type RequestCSVExporter struct{}

// NewRequestCSVExporter creates a new exporter.
func NewRequestCSVExporter() *RequestCSVExporter {
	return &RequestCSVExporter{}
}

// Export writes requests to the given writer in CSV format.
func (e *RequestCSVExporter) Export(w io.Writer, requests []safety.Request) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, req := range requests {
		if err := writer.Write(requestToRow(req)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

func requestToRow(req safety.Request) []string {
	return []string{
		req.CreatedAt.Format(time.RFC3339),
		req.ItemName,
		req.Requester,
		req.Department,
		strconv.Itoa(req.Quantity),
		string(req.Status),
		req.Note,
		req.UpdatedAt.Format(time.RFC3339),
	}
}
