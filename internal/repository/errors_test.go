package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsMissingTable(t *testing.T) {
	missing := &pgconn.PgError{Code: "42P01", Message: "relation \"invitations\" does not exist"}
	if !IsMissingTable(missing) {
		t.Fatal("42P01 must be classified as missing table")
	}
	if !IsMissingTable(fmt.Errorf("query failed: %w", missing)) {
		t.Fatal("wrapped 42P01 must be classified as missing table")
	}
	if IsMissingTable(&pgconn.PgError{Code: "42703"}) {
		t.Fatal("undefined_column must not be classified as missing table")
	}
	if IsMissingTable(gorm.ErrRecordNotFound) {
		t.Fatal("record not found must not be classified as missing table")
	}
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, true},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, false},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"record not found", gorm.ErrRecordNotFound, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"wrapped deadlock", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "40P01"}), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTransient(tc.err); got != tc.want {
				t.Fatalf("IsTransient(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

// 暫時性錯誤重試到上限，非暫時性錯誤只嘗試一次
func TestWithRetry(t *testing.T) {
	tries := 0
	err := withRetry(context.Background(), func(ctx context.Context) error {
		tries++
		return &pgconn.PgError{Code: "40001"}
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if tries != maxTries {
		t.Fatalf("tries = %d, want %d", tries, maxTries)
	}

	tries = 0
	permanent := errors.New("bad input")
	err = withRetry(context.Background(), func(ctx context.Context) error {
		tries++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("err = %v, want wrapped permanent error", err)
	}
	if tries != 1 {
		t.Fatalf("tries = %d, want 1 for a permanent error", tries)
	}
}

func TestWithRetryRecoversAfterTransientFailure(t *testing.T) {
	tries := 0
	err := withRetry(context.Background(), func(ctx context.Context) error {
		tries++
		if tries == 1 {
			return &pgconn.PgError{Code: "08006"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("withRetry: %v", err)
	}
	if tries != 2 {
		t.Fatalf("tries = %d, want 2", tries)
	}
}
