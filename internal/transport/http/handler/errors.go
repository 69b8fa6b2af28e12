package handler

const (
	errInternalServer = "Internal server error"
	errInvalidEmail   = "Invalid email address"
	errInvalidCodeFmt = "Invalid verification code format"
	errInvalidCode    = "Invalid or expired verification code"
)
