package repository

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsMissingTable 回報錯誤是否屬於「資料表不存在」這一類。
// 可選子系統（如邀請表）缺席時，呼叫端可據此降級為空結果而不是失敗。
func IsMissingTable(err error) bool {
	var pgErr *pgconn.PgError
	// 42P01 = undefined_table
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}

// IsTransient 回報錯誤是否屬於可重試的暫時性網路錯誤。
// 授權、驗證、查無資料等錯誤永遠不重試。
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08 連線例外
		if strings.HasPrefix(pgErr.Code, "08") {
			return true
		}
		switch pgErr.Code {
		case "57P01", // admin_shutdown
			"40001", // serialization_failure
			"40P01": // deadlock_detected
			return true
		}
	}
	return false
}
