package serverutils

// BaseResponse is the success envelope: {message, userId, data}.
type BaseResponse[T any] struct {
	Message string `json:"message"`
	UserId  string `json:"userId,omitempty"`
	Data    T      `json:"data"`
}

type ErrorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func SuccessResponse[T any](message string, data T) *BaseResponse[T] {
	return &BaseResponse[T]{
		Message: message,
		Data:    data,
	}
}

// ForUser stamps the authenticated subject onto the envelope.
func (r *BaseResponse[T]) ForUser(userId string) *BaseResponse[T] {
	r.UserId = userId
	return r
}

func ErrorResponse(message string) *ErrorBody {
	return &ErrorBody{
		Error:   true,
		Message: message,
	}
}
