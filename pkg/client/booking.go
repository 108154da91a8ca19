package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"laundry/pkg/model"
)

// BookingClient talks to the laundry booking API. Every call returns the raw
// response; Decode* helpers unpack the envelope.
type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) Book(ctx context.Context, req model.BookingRequest) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/bookings", req)
}

func (c *BookingClient) BookRaw(ctx context.Context, rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw(ctx, "/api/v1/bookings", rawBody)
}

func (c *BookingClient) ListBookedTimes(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/bookings/booked-times")
}

func (c *BookingClient) Cancel(ctx context.Context, bookingID, houseID string) (*Response, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(bookingID) + "/cancel"
	return c.httpClient.POST(ctx, path, model.CancelRequest{HouseID: houseID})
}

// DecodeEnvelope returns the response envelope. A non-nil error means the
// body was not an envelope at all.
func DecodeEnvelope(resp *Response) (*model.Response, error) {
	var envelope model.Response
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response envelope: %w", err)
	}
	return &envelope, nil
}

func DecodeConfirmation(resp *Response) (*model.BookingConfirmation, error) {
	var confirmation model.BookingConfirmation
	if err := decodePayload(resp, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func DecodeBookedTimes(resp *Response) ([]model.BookedTime, error) {
	var bookedTimes []model.BookedTime
	if err := decodePayload(resp, &bookedTimes); err != nil {
		return nil, err
	}
	return bookedTimes, nil
}

func decodePayload(resp *Response, target any) error {
	envelope, err := DecodeEnvelope(resp)
	if err != nil {
		return err
	}
	if !envelope.IsSuccess() {
		return fmt.Errorf("request failed with %d: %s", envelope.ResponseCode, envelope.ErrorMessage)
	}
	if err := json.Unmarshal([]byte(envelope.Payload), target); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}
