package service

import (
	"context"
	"errors"
	"testing"

	"panel_web/internal/models"
)

func TestCreateQuestion(t *testing.T) {
	repo := &fakeQuestionRepo{}
	svc := NewQuestionService(repo, nil)
	ctx := context.Background()

	if _, err := svc.CreateQuestion(ctx, QuestionInput{PanelID: 1, Content: "  "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank content err = %v, want ErrValidation", err)
	}

	q, err := svc.CreateQuestion(ctx, QuestionInput{
		PanelID: 1, Content: "預算怎麼分配？", AuthorName: "Alice",
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if q.AuthorName != "Alice" || q.IsAnswered {
		t.Fatalf("question = %+v", q)
	}

	// 匿名提問不保留作者名稱
	anon, err := svc.CreateQuestion(ctx, QuestionInput{
		PanelID: 1, Content: "匿名提問", AuthorName: "Alice", IsAnonymous: true,
	})
	if err != nil {
		t.Fatalf("CreateQuestion anonymous: %v", err)
	}
	if anon.AuthorName != "" {
		t.Fatalf("anonymous question kept author name %q", anon.AuthorName)
	}
}

func TestToggleAnswered(t *testing.T) {
	repo := &fakeQuestionRepo{}
	svc := NewQuestionService(repo, nil)
	ctx := context.Background()

	q, err := svc.CreateQuestion(ctx, QuestionInput{
		PanelID: 1, Content: "給 Bob 的問題", PanelistEmail: "bob@x.com",
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	eve := &models.User{Email: "eve@x.com"}
	eve.ID = 9
	if _, err := svc.ToggleAnswered(ctx, eve, q.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}

	bob := &models.User{Email: "BOB@x.com"}
	bob.ID = 2
	toggled, err := svc.ToggleAnswered(ctx, bob, q.ID)
	if err != nil {
		t.Fatalf("ToggleAnswered: %v", err)
	}
	if !toggled.IsAnswered {
		t.Fatal("expected question to be marked answered")
	}

	toggled, err = svc.ToggleAnswered(ctx, bob, q.ID)
	if err != nil {
		t.Fatalf("ToggleAnswered back: %v", err)
	}
	if toggled.IsAnswered {
		t.Fatal("expected question to be marked unanswered again")
	}
}

func TestAddResponse(t *testing.T) {
	repo := &fakeQuestionRepo{}
	svc := NewQuestionService(repo, nil)
	ctx := context.Background()

	q, err := svc.CreateQuestion(ctx, QuestionInput{PanelID: 1, Content: "提問"})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	if _, err := svc.AddResponse(ctx, q.ID, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank response err = %v, want ErrValidation", err)
	}
	if _, err := svc.AddResponse(ctx, 999, "回覆"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing question err = %v, want ErrNotFound", err)
	}

	resp, err := svc.AddResponse(ctx, q.ID, "這是回覆")
	if err != nil {
		t.Fatalf("AddResponse: %v", err)
	}
	if resp.QuestionID != q.ID {
		t.Fatalf("response question = %d, want %d", resp.QuestionID, q.ID)
	}
}
