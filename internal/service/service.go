package service

import (
	"panel_web/internal/repository"
	"panel_web/internal/storage"
	"panel_web/internal/transcriber"
)

type Services struct {
	User       *UserService
	Panel      *PanelService
	Invitation *InvitationService
	Planning   *PlanningService
	Poll       *PollService
	Question   *QuestionService
	Session    *SessionService
	ChangeFeed *ChangeFeed
}

func NewServices(repos *repository.Repositories, store storage.ObjectStore, stt transcriber.Transcriber) *Services {
	feed := NewChangeFeed()

	return &Services{
		User:       NewUserService(repos.User),
		Panel:      NewPanelService(repos.Panel),
		Invitation: NewInvitationService(repos.Invitation, repos.Panel),
		Planning:   NewPlanningService(repos.Panel, repos.Invitation),
		Poll:       NewPollService(repos.Poll, repos.Panel, feed),
		Question:   NewQuestionService(repos.Question, feed),
		Session:    NewSessionService(repos.Session, store, stt),
		ChangeFeed: feed,
	}
}
