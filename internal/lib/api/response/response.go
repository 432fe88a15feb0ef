package response

const (
	StatusOK    = "ok"
	StatusError = "error"
)

type Response struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func OK() Response {
	return Response{
		Status: StatusOK,
	}
}

func Message(msg string) Response {
	return Response{
		Status:  StatusOK,
		Message: msg,
	}
}

func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError reports every violated rule at once.
func ValidationError(errs []string) Response {
	return Response{
		Status: StatusError,
		Errors: errs,
	}
}
