package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008

	// Ledger codes
	InsufficientPoints Code = 200001
	OptimisticLock     Code = 200002

	// Sweepstakes codes
	DrawingClosed     Code = 300001
	InvalidTransition Code = 300002
	IneligibleUser    Code = 300003
)
