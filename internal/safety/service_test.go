package safety

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func seedItem(t *testing.T, svc *Service) Item {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), ItemInput{
		Name:        "안전모",
		Description: "경량 안전모",
	})
	if err != nil {
		t.Fatalf("CreateItem returned error: %v", err)
	}
	return item
}

func TestCreateRequestStartsPending(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	item := seedItem(t, svc)

	req, err := svc.CreateRequest(context.Background(), RequestInput{
		ItemID:     item.ID,
		Requester:  "김철수",
		Department: "생산 1팀",
		Quantity:   2,
	})
	if err != nil {
		t.Fatalf("CreateRequest returned error: %v", err)
	}
	if req.Status != StatusPending {
		t.Fatalf("new request status = %s, want pending", req.Status)
	}
	if req.ItemName != "안전모" {
		t.Fatalf("item name not denormalized: %q", req.ItemName)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	item := seedItem(t, svc)

	cases := []struct {
		name  string
		input RequestInput
	}{
		{"missing requester", RequestInput{ItemID: item.ID, Quantity: 1}},
		{"zero quantity", RequestInput{ItemID: item.ID, Requester: "김철수", Quantity: 0}},
		{"excessive quantity", RequestInput{ItemID: item.ID, Requester: "김철수", Quantity: maxQuantity + 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateRequest(context.Background(), tc.input)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreateRequestUnknownItem(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	_, err := svc.CreateRequest(context.Background(), RequestInput{
		ItemID:    uuid.New(),
		Requester: "김철수",
		Quantity:  1,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRequestStatus(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	item := seedItem(t, svc)

	req, err := svc.CreateRequest(context.Background(), RequestInput{
		ItemID:    item.ID,
		Requester: "김철수",
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("CreateRequest returned error: %v", err)
	}

	updated, err := svc.UpdateRequestStatus(context.Background(), req.ID, StatusApproved)
	if err != nil {
		t.Fatalf("UpdateRequestStatus returned error: %v", err)
	}
	if updated.Status != StatusApproved {
		t.Fatalf("status = %s, want approved", updated.Status)
	}

	_, err = svc.UpdateRequestStatus(context.Background(), req.ID, RequestStatus("shipped"))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}
}

func TestListRequestsFilterByStatus(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	item := seedItem(t, svc)
	ctx := context.Background()

	first, _ := svc.CreateRequest(ctx, RequestInput{ItemID: item.ID, Requester: "김철수", Quantity: 1})
	if _, err := svc.CreateRequest(ctx, RequestInput{ItemID: item.ID, Requester: "이영희", Quantity: 3}); err != nil {
		t.Fatalf("CreateRequest returned error: %v", err)
	}
	if _, err := svc.UpdateRequestStatus(ctx, first.ID, StatusApproved); err != nil {
		t.Fatalf("UpdateRequestStatus returned error: %v", err)
	}

	approved := StatusApproved
	list, err := svc.ListRequests(ctx, RequestFilter{Status: &approved})
	if err != nil {
		t.Fatalf("ListRequests returned error: %v", err)
	}
	if len(list) != 1 || list[0].ID != first.ID {
		t.Fatalf("unexpected filtered list: %+v", list)
	}
}
