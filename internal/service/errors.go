package service

import (
	"errors"
	"fmt"
)

var (
	ErrGuestNotFound   = errors.New("guest not found")
	ErrTierNotFound    = errors.New("tier not found")
	ErrNotEnrolled     = errors.New("guest is not enrolled in the loyalty program")
	ErrAlreadyEnrolled = errors.New("guest is already enrolled in the loyalty program")
	ErrInvalidAmount   = errors.New("invalid points amount")
	ErrNegativeBalance = errors.New("point balance cannot go negative")
)

// InsufficientBalanceError carries both sides of a failed redemption so
// callers can show the shortfall.
type InsufficientBalanceError struct {
	Available int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient points: available %d, requested %d", e.Available, e.Requested)
}
