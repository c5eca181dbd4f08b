package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrForbidden          = errors.New("access forbidden")

	ErrSessionExpired = errors.New("session expired")
	ErrSessionRevoked = errors.New("session revoked")

	ErrCustomerNotFound = errors.New("customer not found")
	ErrPlanNotFound     = errors.New("plan not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrDuplicateInvoice = errors.New("invoice already exists for this period")

	ErrInvalidTransition        = errors.New("invalid invoice status transition")
	ErrInvalidPercentage        = errors.New("percentage must be between 0 and 100")
	ErrCommissionNotFound       = errors.New("commission not found")
	ErrCommissionSettingMissing = errors.New("commission setting not found")

	ErrPageNotFound   = errors.New("page not found")
	ErrSliderNotFound = errors.New("slider not found")
	ErrSlugTaken      = errors.New("slug already in use")
)
