package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"panel_web/internal/models"
	"panel_web/internal/repository"
)

type PollService struct {
	pollRepo  repository.PollRepository
	panelRepo repository.PanelRepository
	feed      *ChangeFeed
}

func NewPollService(pollRepo repository.PollRepository, panelRepo repository.PanelRepository, feed *ChangeFeed) *PollService {
	return &PollService{
		pollRepo:  pollRepo,
		panelRepo: panelRepo,
		feed:      feed,
	}
}

// OptionResult 是單一選項的聚合結果
type OptionResult struct {
	ID         uint   `json:"id"`
	Label      string `json:"label"`
	VoteCount  int    `json:"vote_count"`
	Percentage int    `json:"percentage"`
}

// PollResult 是整個投票的聚合結果
type PollResult struct {
	ID              uint           `json:"id"`
	PanelID         uint           `json:"panel_id"`
	Question        string         `json:"question"`
	CreatedAt       time.Time      `json:"created_at"`
	Options         []OptionResult `json:"options"`
	TotalVotes      int            `json:"total_votes"`
	UniqueVoters    int            `json:"unique_voters"`
	WinnerOptionID  *uint          `json:"winner_option_id"`
	EngagementScore int            `json:"engagement_score"`
}

// AggregatePoll 把原始的選項與票數資料轉為聚合結果。
//
// unique_voters 統計整個投票中出現過的不同非匿名投票者，
// 跨所有選項去重，不是按選項各自計算。
// 勝出選項取得票數最高者，同票時以先出現者為準；
// 零票的投票沒有勝出選項。
// engagement_score = round(unique_voters / total_votes * 100)，
// 衡量的是重複投票的程度，不是參與率。
func AggregatePoll(poll *models.Poll) PollResult {
	result := PollResult{
		ID:        poll.ID,
		PanelID:   poll.PanelID,
		Question:  poll.Question,
		CreatedAt: poll.CreatedAt,
		Options:   make([]OptionResult, 0, len(poll.Options)),
	}

	voters := make(map[uint]struct{})
	total := 0
	for _, opt := range poll.Options {
		total += len(opt.Votes)
		for _, vote := range opt.Votes {
			if vote.VoterID != nil {
				voters[*vote.VoterID] = struct{}{}
			}
		}
	}
	result.TotalVotes = total
	result.UniqueVoters = len(voters)

	bestCount := 0
	for _, opt := range poll.Options {
		count := len(opt.Votes)
		result.Options = append(result.Options, OptionResult{
			ID:         opt.ID,
			Label:      opt.Label,
			VoteCount:  count,
			Percentage: roundPercent(count, total),
		})
		if count > bestCount {
			bestCount = count
			id := opt.ID
			result.WinnerOptionID = &id
		}
	}

	result.EngagementScore = roundPercent(result.UniqueVoters, total)
	return result
}

// roundPercent 計算 round(part/total*100)，total 為 0 時回傳 0
func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// SortByVotes 依總票數由高到低排序，同票維持原有順序（穩定排序）
func SortByVotes(results []PollResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalVotes > results[j].TotalVotes
	})
}

// CreatePoll 建立投票與選項，僅限座談的擁有者或主持人
func (s *PollService) CreatePoll(ctx context.Context, user *models.User, panelID uint, question string, optionLabels []string) (*models.Poll, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question", ErrValidation)
	}
	if len(optionLabels) < 2 {
		return nil, fmt.Errorf("%w: 至少需要兩個選項", ErrValidation)
	}

	panel, err := s.panelRepo.FindByID(ctx, panelID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !CanManagePolls(user, panel) {
		return nil, ErrNotAuthorized
	}

	poll := &models.Poll{
		PanelID:  panelID,
		Question: question,
	}
	for i, label := range optionLabels {
		poll.Options = append(poll.Options, models.PollOption{
			Label:    label,
			Position: i,
		})
	}

	if err := s.pollRepo.Create(ctx, poll); err != nil {
		return nil, err
	}
	slog.Info("poll created", "poll_id", poll.ID, "panel_id", panelID)
	s.feed.Notify(panelID, "polls", ChangeInsert)
	return poll, nil
}

// DeletePoll 刪除投票，僅限座談擁有者
func (s *PollService) DeletePoll(ctx context.Context, user *models.User, pollID uint) error {
	poll, err := s.pollRepo.FindByID(ctx, pollID)
	if err != nil {
		return mapNotFound(err)
	}
	panel, err := s.panelRepo.FindByID(ctx, poll.PanelID)
	if err != nil {
		return mapNotFound(err)
	}
	if !CanManagePanel(user, panel) {
		return ErrNotAuthorized
	}
	if err := s.pollRepo.Delete(ctx, pollID); err != nil {
		return err
	}
	s.feed.Notify(panel.ID, "polls", ChangeDelete)
	return nil
}

// Vote 投下一票。user 為 nil 時是匿名投票
func (s *PollService) Vote(ctx context.Context, user *models.User, optionID uint) error {
	option, err := s.pollRepo.FindOptionByID(ctx, optionID)
	if err != nil {
		return mapNotFound(err)
	}

	vote := &models.PollVote{OptionID: optionID}
	if user != nil {
		id := user.ID
		vote.VoterID = &id
	}
	if err := s.pollRepo.AddVote(ctx, vote); err != nil {
		return err
	}

	poll, err := s.pollRepo.FindByID(ctx, option.PollID)
	if err == nil {
		s.feed.Notify(poll.PanelID, "poll_votes", ChangeInsert)
	}
	return nil
}

// ListByPanel 列出座談的所有投票的聚合結果，預設依建立時間由新到舊
func (s *PollService) ListByPanel(ctx context.Context, panelID uint) ([]PollResult, error) {
	polls, err := s.pollRepo.FindByPanelID(ctx, panelID)
	if err != nil {
		return nil, err
	}

	results := make([]PollResult, 0, len(polls))
	for i := range polls {
		results = append(results, AggregatePoll(&polls[i]))
	}
	return results, nil
}

// GetPoll 取得單一投票的聚合結果
func (s *PollService) GetPoll(ctx context.Context, pollID uint) (*PollResult, error) {
	poll, err := s.pollRepo.FindByID(ctx, pollID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	result := AggregatePoll(poll)
	return &result, nil
}
