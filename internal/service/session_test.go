package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"panel_web/internal/models"
	"panel_web/internal/transcriber"
)

func sessionUser() *models.User {
	u := &models.User{Email: "bob@x.com", DisplayName: "Bob"}
	u.ID = 2
	return u
}

func TestSaveRecordingValidation(t *testing.T) {
	repo := &fakeSessionRepo{}
	store := newFakeObjectStore()
	svc := NewSessionService(repo, store, &fakeTranscriber{})
	ctx := context.Background()

	_, err := svc.SaveRecording(ctx, sessionUser(), SaveRecordingInput{
		PanelID:  1,
		Title:    "  ",
		Artifact: Artifact{Bytes: []byte("x"), MimeType: "audio/mpeg"},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("blank title err = %v, want ErrValidation", err)
	}

	_, err = svc.SaveRecording(ctx, sessionUser(), SaveRecordingInput{
		PanelID: 1,
		Title:   "我的錄音",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("empty artifact err = %v, want ErrValidation", err)
	}

	// 驗證失敗不應該碰到物件儲存
	if len(store.objects) != 0 {
		t.Fatal("validation failures must not upload anything")
	}
}

func TestSaveRecordingSuccess(t *testing.T) {
	repo := &fakeSessionRepo{}
	store := newFakeObjectStore()
	svc := NewSessionService(repo, store, &fakeTranscriber{})

	session, err := svc.SaveRecording(context.Background(), sessionUser(), SaveRecordingInput{
		PanelID:         7,
		Title:           "開場討論",
		Artifact:        Artifact{Bytes: []byte("mp3-bytes"), MimeType: "audio/mpeg"},
		DurationSeconds: 42,
	})
	if err != nil {
		t.Fatalf("SaveRecording: %v", err)
	}

	if !strings.HasPrefix(store.lastKey, "recordings/7/") || !strings.HasSuffix(store.lastKey, ".mp3") {
		t.Fatalf("object key = %q", store.lastKey)
	}
	if session.Status != models.SessionStatusCompleted {
		t.Fatalf("status = %q, want completed", session.Status)
	}
	if session.AudioURL != "https://store.test/"+store.lastKey {
		t.Fatalf("audio url = %q", session.AudioURL)
	}
	if session.PanelistID != 2 || session.PanelistEmail != "bob@x.com" {
		t.Fatalf("panelist = %d %q", session.PanelistID, session.PanelistEmail)
	}
	if len(repo.sessions) != 1 {
		t.Fatalf("stored sessions = %d, want 1", len(repo.sessions))
	}
}

// 先上傳、成功後才寫中繼資料：上傳失敗不能留下懸空的資料列
func TestSaveRecordingUploadFailureLeavesNoRow(t *testing.T) {
	repo := &fakeSessionRepo{}
	store := newFakeObjectStore()
	store.uploadErr = errors.New("bucket unavailable")
	svc := NewSessionService(repo, store, &fakeTranscriber{})

	_, err := svc.SaveRecording(context.Background(), sessionUser(), SaveRecordingInput{
		PanelID:  1,
		Title:    "開場討論",
		Artifact: Artifact{Bytes: []byte("x"), MimeType: "audio/mpeg"},
	})
	if err == nil {
		t.Fatal("expected upload error")
	}
	if len(repo.sessions) != 0 {
		t.Fatal("no metadata row may exist after a failed upload")
	}
}

func TestTranscribe(t *testing.T) {
	repo := &fakeSessionRepo{}
	store := newFakeObjectStore()
	stt := &fakeTranscriber{
		partials: []transcriber.Result{
			{Text: "bonjour", Confidence: 40},
			{Text: "bonjour à tous", Confidence: 30}, // 供應商回報的信心值下滑
		},
		final: transcriber.Result{Text: "bonjour à tous et bienvenue", Confidence: 92},
	}
	svc := NewSessionService(repo, store, stt)
	user := sessionUser()

	session, err := svc.SaveRecording(context.Background(), user, SaveRecordingInput{
		PanelID:  1,
		Title:    "開場",
		Artifact: Artifact{Bytes: []byte("mp3"), MimeType: "audio/mpeg"},
	})
	if err != nil {
		t.Fatalf("SaveRecording: %v", err)
	}
	repo.snapshots = nil

	got, err := svc.Transcribe(context.Background(), user, session.ID)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if got.Transcript == nil || *got.Transcript != "bonjour à tous et bienvenue" {
		t.Fatalf("transcript = %v", got.Transcript)
	}
	if got.TranscriptConfidence == nil || *got.TranscriptConfidence != 92 {
		t.Fatalf("confidence = %v", got.TranscriptConfidence)
	}
	if got.Status != models.SessionStatusCompleted {
		t.Fatalf("status = %q, want completed", got.Status)
	}

	// 寫回的信心值必須單調不降，即使供應商回報下滑
	last := 0.0
	for i, snap := range repo.snapshots {
		if snap.confidence < last {
			t.Fatalf("snapshot %d confidence %v < previous %v", i, snap.confidence, last)
		}
		last = snap.confidence
	}
	if len(repo.snapshots) < 2 {
		t.Fatalf("expected partial transcripts to be persisted, got %d", len(repo.snapshots))
	}
}

func TestTranscribeNotOwner(t *testing.T) {
	repo := &fakeSessionRepo{}
	store := newFakeObjectStore()
	svc := NewSessionService(repo, store, &fakeTranscriber{})

	session, err := svc.SaveRecording(context.Background(), sessionUser(), SaveRecordingInput{
		PanelID:  1,
		Title:    "開場",
		Artifact: Artifact{Bytes: []byte("x"), MimeType: "audio/mpeg"},
	})
	if err != nil {
		t.Fatalf("SaveRecording: %v", err)
	}

	other := &models.User{Email: "eve@x.com"}
	other.ID = 99
	if _, err := svc.Transcribe(context.Background(), other, session.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}
}

// 辨識失敗時狀態退回 completed，之後可以重試
func TestTranscribeFailureReverts(t *testing.T) {
	repo := &fakeSessionRepo{}
	store := newFakeObjectStore()
	stt := &fakeTranscriber{err: errors.New("speech backend down")}
	svc := NewSessionService(repo, store, stt)
	user := sessionUser()

	session, err := svc.SaveRecording(context.Background(), user, SaveRecordingInput{
		PanelID:  1,
		Title:    "開場",
		Artifact: Artifact{Bytes: []byte("x"), MimeType: "audio/mpeg"},
	})
	if err != nil {
		t.Fatalf("SaveRecording: %v", err)
	}

	if _, err := svc.Transcribe(context.Background(), user, session.ID); err == nil {
		t.Fatal("expected transcription error")
	}
	stored, _ := repo.FindByID(context.Background(), session.ID)
	if stored.Status != models.SessionStatusCompleted {
		t.Fatalf("status after failure = %q, want completed", stored.Status)
	}
}

func TestUpdateTranscript(t *testing.T) {
	repo := &fakeSessionRepo{}
	store := newFakeObjectStore()
	stt := &fakeTranscriber{final: transcriber.Result{Text: "texte brut", Confidence: 80}}
	svc := NewSessionService(repo, store, stt)
	user := sessionUser()

	session, err := svc.SaveRecording(context.Background(), user, SaveRecordingInput{
		PanelID:  1,
		Title:    "開場",
		Artifact: Artifact{Bytes: []byte("x"), MimeType: "audio/mpeg"},
	})
	if err != nil {
		t.Fatalf("SaveRecording: %v", err)
	}

	// 還沒有逐字稿之前不能編輯
	if _, err := svc.UpdateTranscript(context.Background(), user, session.ID, "edited"); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	if _, err := svc.Transcribe(context.Background(), user, session.ID); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	updated, err := svc.UpdateTranscript(context.Background(), user, session.ID, "texte corrigé")
	if err != nil {
		t.Fatalf("UpdateTranscript: %v", err)
	}
	if *updated.Transcript != "texte corrigé" {
		t.Fatalf("transcript = %q", *updated.Transcript)
	}
}

func TestExtForMime(t *testing.T) {
	cases := map[string]string{
		"audio/mpeg":  ".mp3",
		"audio/wav":   ".wav",
		"audio/webm":  ".webm",
		"audio/ogg":   ".ogg",
		"application": ".bin",
	}
	for mime, want := range cases {
		if got := extForMime(mime); got != want {
			t.Errorf("extForMime(%q) = %q, want %q", mime, got, want)
		}
	}
}
