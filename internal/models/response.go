package models

type Response struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	Error    string      `json:"error,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

func SuccessResponse(data interface{}, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}

// RedirectResponse is an error the client should answer by going to redirect.
func RedirectResponse(err string, redirect string) Response {
	return Response{
		Success:  false,
		Error:    err,
		Redirect: redirect,
	}
}
