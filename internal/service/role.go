package service

import (
	"panel_web/internal/models"
)

// PanelRole 定義主體與座談之間的關係標籤
type PanelRole string

const (
	RoleCreator     PanelRole = "créateur"
	RoleModerator   PanelRole = "modérateur"
	RolePanelist    PanelRole = "panéliste"
	RoleParticipant PanelRole = "participant"
)

// ResolveRole 判定主體與座談的關係。比對順序固定，第一個符合者勝出：
//  1. 擁有者 → créateur
//  2. 與談人名單中的電子郵件 → panéliste
//  3. 主持人電子郵件 → modérateur
//  4. 此座談有已接受的邀請 → participant
//
// 都不符合時回傳 ok=false，表示此座談不在主體的工作集合中。
// 擁有者的優先權是絕對的，不受其他條件影響。
func ResolveRole(user *models.User, panel *models.Panel, invitations []models.Invitation) (PanelRole, bool) {
	if panel.OwnerID == user.ID {
		return RoleCreator, true
	}
	if panel.HasPanelist(user.Email) {
		return RolePanelist, true
	}
	if panel.HasModerator(user.Email) {
		return RoleModerator, true
	}
	for _, inv := range invitations {
		if inv.PanelID == panel.ID &&
			inv.Status == models.InvitationStatusAccepted &&
			user.EmailEquals(inv.PanelistEmail) {
			return RoleParticipant, true
		}
	}
	return "", false
}

// 以下是各管理介面獨立檢查的權限判斷，刻意不合併成單一等級：
// 儀表板的編輯/刪除只開放給擁有者，投票管理開放給擁有者或主持人，
// 與談人只能回答被指派的問題。

// CanManagePanel 檢查主體是否能編輯或刪除座談（僅限擁有者）
func CanManagePanel(user *models.User, panel *models.Panel) bool {
	return panel.OwnerID == user.ID
}

// CanManagePolls 檢查主體是否能管理座談的投票（擁有者或主持人）
func CanManagePolls(user *models.User, panel *models.Panel) bool {
	return panel.OwnerID == user.ID || panel.HasModerator(user.Email)
}

// CanAnswerQuestion 檢查主體是否能切換問題的已回答狀態
// （僅限問題指派的與談人）
func CanAnswerQuestion(user *models.User, question *models.Question) bool {
	return question.PanelistEmail != "" && user.EmailEquals(question.PanelistEmail)
}
