package model

// Response is the uniform envelope returned by every booking operation.
// Exactly one of Payload and ErrorMessage is meaningful.
type Response struct {
	Payload      string `json:"payload"`
	ErrorMessage string `json:"errorMessage"`
	ResponseCode int    `json:"responseCode"`
}

func (r *Response) IsSuccess() bool {
	return r.ResponseCode >= 200 && r.ResponseCode < 300
}
