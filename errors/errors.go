package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")
	ErrEmptyWords  = fmt.Errorf("no words have been found")

	ErrWalletNotConnected  = fmt.Errorf("wallet is not connected")
	ErrWalletConnecting    = fmt.Errorf("wallet connection already in progress")
	ErrEmptyMessage        = fmt.Errorf("message is empty")
	ErrMessageTooLong      = fmt.Errorf("message exceeds the maximum length")
	ErrMessageNotFound     = fmt.Errorf("message not found")
	ErrUnknownView         = fmt.Errorf("unknown view")
	ErrModerationForbidden = fmt.Errorf("moderation requires the admin capability")
	ErrStoreClosed         = fmt.Errorf("session store is closed")
	ErrInvalidToken        = fmt.Errorf("invalid admin token")
	ErrInvalidProbability  = fmt.Errorf("feed probability must be between 0 and 1")
	ErrUnknownAction       = fmt.Errorf("unknown moderation action")
	ErrInvalidInterval     = fmt.Errorf("feed interval must be positive")
)
