package announce

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCreateValidAnnouncement(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	created, err := svc.Create(context.Background(), CreateInput{
		Title:   "  안전 점검 안내  ",
		Content: "금주 금요일 전사 안전 점검이 진행됩니다.",
		Pinned:  true,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Title != "안전 점검 안내" {
		t.Fatalf("title not trimmed: %q", created.Title)
	}
	if !created.Pinned {
		t.Fatal("pinned flag lost")
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"empty title", CreateInput{Content: "내용"}},
		{"empty content", CreateInput{Title: "제목"}},
		{"title too long", CreateInput{Title: strings.Repeat("a", maxTitleLength+1), Content: "내용"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestListOrdersPinnedFirst(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Title: "일반 공지", Content: "내용"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := svc.Create(ctx, CreateInput{Title: "고정 공지", Content: "내용", Pinned: true}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	list, err := svc.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 announcements, got %d", len(list))
	}
	if list[0].Title != "고정 공지" {
		t.Fatalf("pinned announcement should come first, got %q", list[0].Title)
	}
}

func TestUpdateMissingAnnouncement(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	created, err := svc.Create(context.Background(), CreateInput{Title: "제목", Content: "내용"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	_, err = svc.Update(context.Background(), created.ID, UpdateInput{Title: "새 제목", Content: "내용"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
