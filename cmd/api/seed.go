package main

import (
	"time"

	"github.com/google/uuid"

	"safenotice/internal/announce"
	"safenotice/internal/safety"
)

// seedAnnouncements returns demo notices for local development.
func seedAnnouncements() []announce.Announcement {
	now := time.Now().UTC()

	return []announce.Announcement{
		{
			ID:        uuid.New(),
			Title:     "안전보건 게시판 오픈 안내",
			Content:   "안전보건 공지사항 게시판이 오픈되었습니다. 주요 안전 공지와 물품 신청은 이 게시판을 통해 진행됩니다.",
			Pinned:    true,
			CreatedAt: now.Add(-72 * time.Hour),
			UpdatedAt: now.Add(-72 * time.Hour),
		},
		{
			ID:        uuid.New(),
			Title:     "3분기 정기 안전교육 일정",
			Content:   "3분기 정기 안전교육은 매주 수요일 오후 2시에 진행됩니다. 부서별 일정은 담당자에게 문의해주세요.",
			CreatedAt: now.Add(-48 * time.Hour),
			UpdatedAt: now.Add(-48 * time.Hour),
		},
		{
			ID:        uuid.New(),
			Title:     "여름철 온열질환 예방 수칙",
			Content:   "폭염 기간에는 시간당 10분 이상 휴식하고 충분한 수분을 섭취해주세요. 이상 증상 발생 시 즉시 관리자에게 보고 바랍니다.",
			CreatedAt: now.Add(-24 * time.Hour),
			UpdatedAt: now.Add(-24 * time.Hour),
		},
	}
}

// seedSafetyItems returns demo protective equipment for local development.
func seedSafetyItems() []safety.Item {
	now := time.Now().UTC()

	names := []struct {
		name        string
		description string
	}{
		{"안전모", "KCs 인증 산업용 안전모"},
		{"보안경", "김서림 방지 코팅 보안경"},
		{"방진 마스크", "1급 방진 마스크, 교체형 필터"},
		{"안전 장갑", "절단 방지 코팅 장갑"},
		{"귀마개", "일회용 폼 귀마개, 50쌍 단위"},
	}

	items := make([]safety.Item, 0, len(names))
	for _, n := range names {
		items = append(items, safety.Item{
			ID:          uuid.New(),
			Name:        n.name,
			Description: n.description,
			CreatedAt:   now,
		})
	}
	return items
}
