package repository

import "panel_web/internal/storage"

type Repositories struct {
	User       UserRepository
	Panel      PanelRepository
	Invitation InvitationRepository
	Question   QuestionRepository
	Poll       PollRepository
	Session    SessionRepository
	Stats      StatsRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Panel:      NewPanelRepository(db),
		Invitation: NewInvitationRepository(db),
		Question:   NewQuestionRepository(db),
		Poll:       NewPollRepository(db),
		Session:    NewSessionRepository(db),
		Stats:      NewStatsRepository(db),
	}
}
