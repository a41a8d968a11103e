package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"panel_web/internal/models"
	"panel_web/internal/transcriber"
)

// 測試用的記憶體替身，實作各 repository 介面

type fakePanelRepo struct {
	panels     []models.Panel
	findAllErr error
}

func (f *fakePanelRepo) Create(ctx context.Context, panel *models.Panel) error {
	panel.ID = uint(len(f.panels) + 1)
	f.panels = append(f.panels, *panel)
	return nil
}

func (f *fakePanelRepo) FindByID(ctx context.Context, id uint) (*models.Panel, error) {
	for i := range f.panels {
		if f.panels[i].ID == id {
			p := f.panels[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePanelRepo) Update(ctx context.Context, panel *models.Panel) error {
	for i := range f.panels {
		if f.panels[i].ID == panel.ID {
			f.panels[i] = *panel
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePanelRepo) Delete(ctx context.Context, id uint) error {
	for i := range f.panels {
		if f.panels[i].ID == id {
			f.panels = append(f.panels[:i], f.panels[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePanelRepo) FindAll(ctx context.Context) ([]models.Panel, error) {
	if f.findAllErr != nil {
		return nil, f.findAllErr
	}
	out := make([]models.Panel, len(f.panels))
	copy(out, f.panels)
	return out, nil
}

type fakeInvitationRepo struct {
	invitations []models.Invitation
	acceptedErr error
}

func (f *fakeInvitationRepo) Create(ctx context.Context, invitation *models.Invitation) error {
	invitation.ID = uint(len(f.invitations) + 1)
	f.invitations = append(f.invitations, *invitation)
	return nil
}

func (f *fakeInvitationRepo) FindByID(ctx context.Context, id uint) (*models.Invitation, error) {
	for i := range f.invitations {
		if f.invitations[i].ID == id {
			inv := f.invitations[i]
			return &inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInvitationRepo) FindByEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	u := models.User{Email: email}
	var out []models.Invitation
	for _, inv := range f.invitations {
		if u.EmailEquals(inv.PanelistEmail) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) FindAcceptedByEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	if f.acceptedErr != nil {
		return nil, f.acceptedErr
	}
	u := models.User{Email: email}
	var out []models.Invitation
	for _, inv := range f.invitations {
		if inv.Status == models.InvitationStatusAccepted && u.EmailEquals(inv.PanelistEmail) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) FindByPanelID(ctx context.Context, panelID uint) ([]models.Invitation, error) {
	var out []models.Invitation
	for _, inv := range f.invitations {
		if inv.PanelID == panelID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) UpdateStatus(ctx context.Context, id uint, status models.InvitationStatus) error {
	for i := range f.invitations {
		if f.invitations[i].ID == id {
			f.invitations[i].Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeQuestionRepo struct {
	questions []models.Question
	responses []models.QuestionResponse
}

func (f *fakeQuestionRepo) Create(ctx context.Context, question *models.Question) error {
	question.ID = uint(len(f.questions) + 1)
	f.questions = append(f.questions, *question)
	return nil
}

func (f *fakeQuestionRepo) FindByID(ctx context.Context, id uint) (*models.Question, error) {
	for i := range f.questions {
		if f.questions[i].ID == id {
			q := f.questions[i]
			return &q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuestionRepo) FindByPanelID(ctx context.Context, panelID uint) ([]models.Question, error) {
	var out []models.Question
	for _, q := range f.questions {
		if q.PanelID == panelID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) Update(ctx context.Context, question *models.Question) error {
	for i := range f.questions {
		if f.questions[i].ID == question.ID {
			f.questions[i] = *question
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeQuestionRepo) AddResponse(ctx context.Context, response *models.QuestionResponse) error {
	response.ID = uint(len(f.responses) + 1)
	f.responses = append(f.responses, *response)
	return nil
}

type fakePollRepo struct {
	polls []models.Poll
	votes []models.PollVote
}

func (f *fakePollRepo) Create(ctx context.Context, poll *models.Poll) error {
	poll.ID = uint(len(f.polls) + 1)
	for i := range poll.Options {
		poll.Options[i].ID = poll.ID*100 + uint(i)
		poll.Options[i].PollID = poll.ID
	}
	f.polls = append(f.polls, *poll)
	return nil
}

func (f *fakePollRepo) FindByID(ctx context.Context, id uint) (*models.Poll, error) {
	for i := range f.polls {
		if f.polls[i].ID == id {
			p := f.polls[i]
			p.Options = append([]models.PollOption(nil), p.Options...)
			for j := range p.Options {
				for _, v := range f.votes {
					if v.OptionID == p.Options[j].ID {
						p.Options[j].Votes = append(p.Options[j].Votes, v)
					}
				}
			}
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePollRepo) FindByPanelID(ctx context.Context, panelID uint) ([]models.Poll, error) {
	var out []models.Poll
	for _, p := range f.polls {
		if p.PanelID == panelID {
			full, err := f.FindByID(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			out = append(out, *full)
		}
	}
	return out, nil
}

func (f *fakePollRepo) FindOptionByID(ctx context.Context, id uint) (*models.PollOption, error) {
	for _, p := range f.polls {
		for _, opt := range p.Options {
			if opt.ID == id {
				o := opt
				return &o, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePollRepo) Delete(ctx context.Context, id uint) error {
	for i := range f.polls {
		if f.polls[i].ID == id {
			f.polls = append(f.polls[:i], f.polls[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePollRepo) AddVote(ctx context.Context, vote *models.PollVote) error {
	vote.ID = uint(len(f.votes) + 1)
	f.votes = append(f.votes, *vote)
	return nil
}

type fakeUserRepo struct {
	users []models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = uint(len(f.users) + 1)
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	probe := models.User{Email: email}
	for i := range f.users {
		if probe.EmailEquals(f.users[i].Email) {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	for i := range f.users {
		if f.users[i].ID == user.ID {
			f.users[i] = *user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// transcriptSnapshot 記錄每次 Update 寫回的逐字稿進度
type transcriptSnapshot struct {
	text       string
	confidence float64
}

type fakeSessionRepo struct {
	sessions  []models.RecordingSession
	createErr error
	snapshots []transcriptSnapshot
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *models.RecordingSession) error {
	if f.createErr != nil {
		return f.createErr
	}
	session.ID = uint(len(f.sessions) + 1)
	f.sessions = append(f.sessions, *session)
	return nil
}

func (f *fakeSessionRepo) FindByID(ctx context.Context, id uint) (*models.RecordingSession, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			s := f.sessions[i]
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSessionRepo) FindByPanelistID(ctx context.Context, panelistID uint) ([]models.RecordingSession, error) {
	var out []models.RecordingSession
	for _, s := range f.sessions {
		if s.PanelistID == panelistID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, session *models.RecordingSession) error {
	for i := range f.sessions {
		if f.sessions[i].ID == session.ID {
			f.sessions[i] = *session
			if session.Transcript != nil && session.TranscriptConfidence != nil {
				f.snapshots = append(f.snapshots, transcriptSnapshot{
					text:       *session.Transcript,
					confidence: *session.TranscriptConfidence,
				})
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeObjectStore struct {
	objects   map[string][]byte
	mimes     map[string]string
	uploadErr error
	lastKey   string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		objects: make(map[string][]byte),
		mimes:   make(map[string]string),
	}
}

func (f *fakeObjectStore) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.objects[key] = body
	f.mimes[key] = contentType
	f.lastKey = key
	return "https://store.test/" + key, nil
}

func (f *fakeObjectStore) Download(ctx context.Context, key string) ([]byte, string, error) {
	body, ok := f.objects[key]
	if !ok {
		return nil, "", errors.New("object not found: " + key)
	}
	return body, f.mimes[key], nil
}

type fakeTranscriber struct {
	partials []transcriber.Result
	final    transcriber.Result
	err      error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string, onProgress transcriber.ProgressFunc) (transcriber.Result, error) {
	for _, p := range f.partials {
		if onProgress != nil {
			onProgress(p.Text, p.Confidence)
		}
	}
	if f.err != nil {
		return transcriber.Result{}, f.err
	}
	return f.final, nil
}

type fakeDevice struct {
	mime       string
	raw        []byte
	level      float64
	acquireErr error
	drainErr   error
	acquired   bool
	released   bool
}

func (f *fakeDevice) Acquire(ctx context.Context) error {
	if f.acquireErr != nil {
		return f.acquireErr
	}
	f.acquired = true
	return nil
}

func (f *fakeDevice) MimeType() string { return f.mime }
func (f *fakeDevice) Level() float64   { return f.level }

func (f *fakeDevice) Drain() ([]byte, error) {
	if f.drainErr != nil {
		return nil, f.drainErr
	}
	return f.raw, nil
}

func (f *fakeDevice) Release() { f.released = true }

type fakeEncoder struct {
	mime       string
	encoded    []byte
	encodeErr  error
	called     bool
	sourceMime string
}

func (f *fakeEncoder) MimeType() string { return f.mime }

func (f *fakeEncoder) Encode(raw []byte, sourceMime string) ([]byte, error) {
	f.called = true
	f.sourceMime = sourceMime
	if f.encodeErr != nil {
		return nil, f.encodeErr
	}
	return f.encoded, nil
}

// fakeClock 讓測試能精確控制牆鐘的前進
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
