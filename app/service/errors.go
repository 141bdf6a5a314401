package service

import "errors"

var (
	ErrPlanNotFound         = errors.New("plan not found")
	ErrInvalidBillingPeriod = errors.New("invalid billing period")
	ErrInvalidTheme         = errors.New("invalid theme")
)
