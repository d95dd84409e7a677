package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrLeadMissingTier   = errors.New("lead missing tier")
	ErrTierNotConfigured = errors.New("missing priceId for tier")
	ErrInvalidSignature  = errors.New("invalid webhook signature")
)
