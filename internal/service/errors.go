package service

import "errors"

// 业务层的哨兵错误，handler 通过 errors.Is 映射为 HTTP 状态码。
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrItemNotFound       = errors.New("schedule item not found")
	ErrNotCompletable     = errors.New("schedule item cannot be completed")
	ErrUnknownItemType    = errors.New("unknown schedule item type")
	ErrEmptyMessage       = errors.New("message is empty")
	ErrMessageTooLong     = errors.New("message is too long")
	ErrDiseaseNotFound    = errors.New("disease not found")
)
