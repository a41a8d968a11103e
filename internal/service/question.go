package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"panel_web/internal/models"
	"panel_web/internal/repository"
)

type QuestionService struct {
	questionRepo repository.QuestionRepository
	feed         *ChangeFeed
}

func NewQuestionService(questionRepo repository.QuestionRepository, feed *ChangeFeed) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		feed:         feed,
	}
}

// QuestionInput 定義觀眾提問的欄位
type QuestionInput struct {
	PanelID       uint
	Content       string
	IsAnonymous   bool
	AuthorName    string
	PanelistEmail string
}

func (s *QuestionService) ListByPanel(ctx context.Context, panelID uint) ([]models.Question, error) {
	return s.questionRepo.FindByPanelID(ctx, panelID)
}

func (s *QuestionService) CreateQuestion(ctx context.Context, input QuestionInput) (*models.Question, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: content", ErrValidation)
	}

	question := &models.Question{
		PanelID:       input.PanelID,
		Content:       input.Content,
		IsAnonymous:   input.IsAnonymous,
		AuthorName:    input.AuthorName,
		PanelistEmail: input.PanelistEmail,
	}
	if input.IsAnonymous {
		question.AuthorName = ""
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	s.feed.Notify(input.PanelID, "questions", ChangeInsert)
	return question, nil
}

// ToggleAnswered 切換問題的已回答狀態，
// 僅限電子郵件與問題指派的與談人相符的主體
func (s *QuestionService) ToggleAnswered(ctx context.Context, user *models.User, questionID uint) (*models.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !CanAnswerQuestion(user, question) {
		return nil, ErrNotAuthorized
	}

	question.IsAnswered = !question.IsAnswered
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	slog.Info("question answered toggled", "question_id", questionID, "is_answered", question.IsAnswered)
	s.feed.Notify(question.PanelID, "questions", ChangeUpdate)
	return question, nil
}

// AddResponse 在問題下新增一則回覆
func (s *QuestionService) AddResponse(ctx context.Context, questionID uint, content string) (*models.QuestionResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content", ErrValidation)
	}

	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	response := &models.QuestionResponse{
		QuestionID: questionID,
		Content:    content,
	}
	if err := s.questionRepo.AddResponse(ctx, response); err != nil {
		return nil, err
	}
	s.feed.Notify(question.PanelID, "questions", ChangeUpdate)
	return response, nil
}
