package service

import (
	"context"
	"log/slog"
	"time"

	"panel_web/internal/models"
	"panel_web/internal/repository"
)

const panelDateLayout = "2006-01-02"

type PlanningService struct {
	panelRepo      repository.PanelRepository
	invitationRepo repository.InvitationRepository
	now            func() time.Time
}

func NewPlanningService(panelRepo repository.PanelRepository, invitationRepo repository.InvitationRepository) *PlanningService {
	return &PlanningService{
		panelRepo:      panelRepo,
		invitationRepo: invitationRepo,
		now:            time.Now,
	}
}

// PanelWithRole 是行程視圖中的座談，附上主體的角色標籤
type PanelWithRole struct {
	models.Panel
	UserRole PanelRole `json:"user_role"`
}

// BuildUserPanelSet 合併「我擁有的座談」與「我受邀且已接受的座談」。
// 座談與邀請來自兩個獨立的資料表，無法依賴後端做關聯查詢，
// 所以在這裡做用戶端式的調和；重複執行必須得到相同結果。
//
// 邀請表缺席（可選子系統未建立）時降級為空集合，不讓整個列表失敗。
func (s *PlanningService) BuildUserPanelSet(ctx context.Context, user *models.User) ([]PanelWithRole, error) {
	panels, err := s.panelRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	invitations, err := s.invitationRepo.FindAcceptedByEmail(ctx, user.Email)
	if err != nil {
		if !repository.IsMissingTable(err) {
			return nil, err
		}
		slog.Warn("invitations table missing, treating as empty", "user_id", user.ID)
		invitations = nil
	}

	set := make([]PanelWithRole, 0, len(panels))
	for i := range panels {
		role, ok := ResolveRole(user, &panels[i], invitations)
		if !ok {
			continue
		}
		set = append(set, PanelWithRole{Panel: panels[i], UserRole: role})
	}
	return set, nil
}

// UpcomingPanels 過濾行程集合，只留日期在今天（含）之後的座談。
// 以本地日曆日比較，日期截斷到午夜，不比較時間戳。
func (s *PlanningService) UpcomingPanels(ctx context.Context, user *models.User) ([]PanelWithRole, error) {
	set, err := s.BuildUserPanelSet(ctx, user)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	upcoming := make([]PanelWithRole, 0, len(set))
	for _, p := range set {
		day, err := time.ParseInLocation(panelDateLayout, p.Date, now.Location())
		if err != nil {
			// 日期格式不明的座談無從比較，不列入即將到來的行程
			continue
		}
		if !day.Before(today) {
			upcoming = append(upcoming, p)
		}
	}
	return upcoming, nil
}
