package repository

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// 每次資料庫操作的整體時限
	opTimeout = 10 * time.Second
	// 最多嘗試次數（首次 + 重試）
	maxTries = 3
)

// withRetry 在儲存層邊界套用時限與有上限的指數退避。
// 只有 IsTransient 判定的暫時性錯誤才會重試。
func withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxTries-1), ctx)
	return backoff.Retry(func() error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if IsTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}, bo)
}
