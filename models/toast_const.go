package models

type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastWarning ToastLevel = "warning"
	ToastInfo    ToastLevel = "info"
)

type ToastCode string

const (
	ToastCodeOperationDone  ToastCode = "OPERATION_DONE"
	ToastCodeRemoteFailed   ToastCode = "REMOTE_FAILED"
	ToastCodeStateConflict  ToastCode = "STATE_CONFLICT"
	ToastCodeListLoadFailed ToastCode = "LIST_LOAD_FAILED"
	ToastCodeSessionExpired ToastCode = "SESSION_EXPIRED"
	ToastCodeOtpResendReady ToastCode = "OTP_RESEND_READY"
)

var toastLevels = map[ToastCode]ToastLevel{
	ToastCodeOperationDone:  ToastSuccess,
	ToastCodeRemoteFailed:   ToastError,
	ToastCodeStateConflict:  ToastWarning,
	ToastCodeListLoadFailed: ToastError,
	ToastCodeSessionExpired: ToastWarning,
	ToastCodeOtpResendReady: ToastInfo,
}

func (c ToastCode) Level() ToastLevel {
	if level, ok := toastLevels[c]; ok {
		return level
	}
	return ToastInfo
}
