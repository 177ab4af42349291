package models

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// OperationResult is the JSON body returned by every action route.
type OperationResult struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func Success(message string) OperationResult {
	return OperationResult{Status: ResultSuccess, Message: message}
}

func Failure(message string) OperationResult {
	return OperationResult{Status: ResultFailure, Message: message}
}
