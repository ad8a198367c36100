package exporter

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"

	"safenotice/internal/safety"
)

func TestExportWritesHeaderAndRows(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	requests := []safety.Request{
		{
			ID:         uuid.New(),
			ItemName:   "안전모",
			Requester:  "김철수",
			Department: "생산 1팀",
			Quantity:   2,
			Status:     safety.StatusApproved,
			Note:       "사이즈 L",
			CreatedAt:  created,
			UpdatedAt:  created.Add(time.Hour),
		},
	}

	var buf bytes.Buffer
	if err := NewRequestCSVExporter().Export(&buf, requests); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV is unreadable: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	if rows[0][0] != "requestedAt" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	row := rows[1]
	if row[1] != "안전모" || row[2] != "김철수" || row[4] != "2" || row[5] != "approved" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestExportEmptyList(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRequestCSVExporter().Export(&buf, nil); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV is unreadable: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
