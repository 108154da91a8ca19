package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "laundry/pkg/errors"
	"laundry/pkg/model"
)

func BuildSuccessResponse(payload string) *model.Response {
	return &model.Response{
		Payload:      payload,
		ErrorMessage: "",
		ResponseCode: http.StatusOK,
	}
}

func BuildErrorResponse(errorMessage string, responseCode int) *model.Response {
	return &model.Response{
		Payload:      "",
		ErrorMessage: errorMessage,
		ResponseCode: responseCode,
	}
}

// BuildJSONResponse serializes data as the success payload.
func BuildJSONResponse(data any) (*model.Response, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return BuildSuccessResponse(string(payload)), nil
}

// BuildResponseFromError maps a classified error onto the envelope. Errors
// that carry no classification become the generic 500.
func BuildResponseFromError(err error) *model.Response {
	appErr := apperrors.AsAppError(err)
	return BuildErrorResponse(appErr.Message, appErr.StatusCode())
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteResponse writes the envelope with its response code as HTTP status.
func WriteResponse(w http.ResponseWriter, resp *model.Response) error {
	return WriteJSON(w, resp.ResponseCode, resp)
}
