package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	bookingserrors "laundry/internal/bookings/errors"
	"laundry/internal/bookings/events"
	"laundry/internal/bookings/repository"
	"laundry/internal/bookings/validator"
	"laundry/pkg/config"
	apperrors "laundry/pkg/errors"
	"laundry/pkg/logger"
	"laundry/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type mockBookingRepository struct {
	findActiveForHouseFunc       func(ctx context.Context, houseID model.HouseID) (*model.Booking, error)
	findActiveForRoomAndSlotFunc func(ctx context.Context, roomID model.LaundryRoomID, start, end time.Time) (*model.Booking, error)
	findActiveFunc               func(ctx context.Context, id model.BookingID, houseID model.HouseID) (*model.Booking, error)
	findActiveInRangeFunc        func(ctx context.Context, from, to time.Time) ([]*model.Booking, error)
	createIfHouseIdleFunc        func(ctx context.Context, booking *model.Booking) error
	updateStatusFunc             func(ctx context.Context, id model.BookingID, from, to model.BookingStatus) error
}

func (m *mockBookingRepository) FindActiveForHouse(ctx context.Context, houseID model.HouseID) (*model.Booking, error) {
	if m.findActiveForHouseFunc != nil {
		return m.findActiveForHouseFunc(ctx, houseID)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindActiveForRoomAndSlot(ctx context.Context, roomID model.LaundryRoomID, start, end time.Time) (*model.Booking, error) {
	if m.findActiveForRoomAndSlotFunc != nil {
		return m.findActiveForRoomAndSlotFunc(ctx, roomID, start, end)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindActive(ctx context.Context, id model.BookingID, houseID model.HouseID) (*model.Booking, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx, id, houseID)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindActiveInRange(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	if m.findActiveInRangeFunc != nil {
		return m.findActiveInRangeFunc(ctx, from, to)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) CreateIfHouseIdle(ctx context.Context, booking *model.Booking) error {
	if m.createIfHouseIdleFunc != nil {
		return m.createIfHouseIdleFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id model.BookingID, from, to model.BookingStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, from, to)
	}
	return nil
}

func (m *mockBookingRepository) Ping(ctx context.Context) error {
	return nil
}

type recordingPublisher struct {
	created   []*model.Booking
	cancelled []*model.Booking
	err       error
}

func (p *recordingPublisher) BookingCreated(ctx context.Context, b *model.Booking) error {
	p.created = append(p.created, b)
	return p.err
}

func (p *recordingPublisher) BookingCancelled(ctx context.Context, b *model.Booking) error {
	p.cancelled = append(p.cancelled, b)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// ────────────────────────────────────────────────
// Fixtures
// ────────────────────────────────────────────────

var now = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func referenceStore() *repository.MemoryStore {
	store := repository.NewMemoryStore()
	store.PutHouse(model.House{ID: 1, StreetAddress: "Elm", HouseNumber: "1", City: "Springfield"})
	store.PutHouse(model.House{ID: 2, StreetAddress: "Oak", HouseNumber: "2", City: "Springfield"})
	store.PutLaundryRoom(model.LaundryRoom{
		ID:            1,
		Name:          "Basement",
		StartHour:     8,
		EndHour:       20,
		MinSlotLength: 10,
		MaxSlotLength: 90,
		BookingWindow: 30,
	})
	return store
}

func testConfig() *config.Config {
	return &config.Config{
		BookedTimesHorizon: config.DefaultBookedTimesHorizon,
		Log:                logger.Discard(),
	}
}

func newService(repo repository.BookingRepository, store *repository.MemoryStore, pub events.Publisher) BookingService {
	v := validator.NewBookingValidator(store.Houses(), store.LaundryRooms(), clock, logger.Discard())
	return NewBookingService(repo, v, pub, clock, testConfig())
}

func request(houseID string, start, end time.Time) *model.BookingRequest {
	return &model.BookingRequest{
		LaundryRoomID:       "1",
		HouseID:             houseID,
		BookingStartTimeUTC: model.FormatInstant(start),
		BookingEndTimeUTC:   model.FormatInstant(end),
	}
}

func withHouse(req *model.BookingRequest, houseID string) *model.BookingRequest {
	clone := *req
	clone.HouseID = houseID
	return &clone
}

func requireAppError(t *testing.T, err error, wantStatus int, wantMessage string) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, wantStatus, appErr.StatusCode())
	assert.Equal(t, wantMessage, appErr.Message)
}

// ────────────────────────────────────────────────
// Book
// ────────────────────────────────────────────────

func TestBook_Success(t *testing.T) {
	pub := &recordingPublisher{}
	var created *model.Booking
	repo := &mockBookingRepository{
		createIfHouseIdleFunc: func(ctx context.Context, b *model.Booking) error {
			created = b
			return nil
		},
	}
	svc := newService(repo, referenceStore(), pub)

	confirmation, err := svc.Book(context.Background(), request("1", now.Add(10*time.Minute), now.Add(60*time.Minute)))
	require.NoError(t, err)

	assert.Equal(t, &model.BookingConfirmation{
		Message:             MsgBooked,
		LaundryRoomID:       "1",
		LaundryRoomName:     "Basement",
		BookingStartTimeUTC: "2024-01-15T09:10:00Z",
		BookingEndTimeUTC:   "2024-01-15T10:00:00Z",
	}, confirmation)

	require.NotNil(t, created)
	assert.Equal(t, model.BookingStatusActive, created.BookingStatus)
	assert.Equal(t, model.HouseID(1), created.HouseID)
	assert.Equal(t, now, created.CreatedAt)
	_, err = model.ParseBookingID(created.ID.String())
	assert.NoError(t, err)

	require.Len(t, pub.created, 1)
	assert.Equal(t, created.ID, pub.created[0].ID)
}

func TestBook_Failures(t *testing.T) {
	existingStart := time.Date(2024, 1, 16, 12, 30, 0, 0, time.UTC)
	boom := errors.New("server selection error")

	tests := []struct {
		name        string
		repo        *mockBookingRepository
		req         *model.BookingRequest
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation failure",
			repo:        &mockBookingRepository{},
			req:         request("1", now.Add(90*time.Minute), now.Add(60*time.Minute)),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Booking start time cannot be greater than end time",
		},
		{
			name:        "unknown house",
			repo:        &mockBookingRepository{},
			req:         request("99", now.Add(10*time.Minute), now.Add(60*time.Minute)),
			wantStatus:  http.StatusBadRequest,
			wantMessage: validator.MsgInvalidHouseID,
		},
		{
			name: "house already has an active booking",
			repo: &mockBookingRepository{
				findActiveForHouseFunc: func(ctx context.Context, houseID model.HouseID) (*model.Booking, error) {
					return &model.Booking{HouseID: houseID, BookingStartTimeUTC: existingStart}, nil
				},
			},
			req:         request("1", now.Add(10*time.Minute), now.Add(60*time.Minute)),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "You already have an active booking starting 2024-01-16T12:30:00Z",
		},
		{
			name: "exact slot taken",
			repo: &mockBookingRepository{
				findActiveForRoomAndSlotFunc: func(ctx context.Context, roomID model.LaundryRoomID, start, end time.Time) (*model.Booking, error) {
					return &model.Booking{LaundryRoomID: roomID}, nil
				},
			},
			req:         request("1", now.Add(10*time.Minute), now.Add(60*time.Minute)),
			wantStatus:  http.StatusBadRequest,
			wantMessage: MsgSlotAlreadyBooked,
		},
		{
			name: "slot taken concurrently",
			repo: &mockBookingRepository{
				createIfHouseIdleFunc: func(ctx context.Context, b *model.Booking) error {
					return bookingserrors.ErrSlotAlreadyBooked
				},
			},
			req:         request("1", now.Add(10*time.Minute), now.Add(60*time.Minute)),
			wantStatus:  http.StatusBadRequest,
			wantMessage: MsgSlotAlreadyBooked,
		},
		{
			name: "house won a concurrent race",
			repo: func() *mockBookingRepository {
				calls := 0
				return &mockBookingRepository{
					findActiveForHouseFunc: func(ctx context.Context, houseID model.HouseID) (*model.Booking, error) {
						calls++
						if calls == 1 {
							return nil, bookingserrors.ErrNotFound
						}
						return &model.Booking{BookingStartTimeUTC: existingStart}, nil
					},
					createIfHouseIdleFunc: func(ctx context.Context, b *model.Booking) error {
						return bookingserrors.ErrHouseHasActiveBooking
					},
				}
			}(),
			req:         request("1", now.Add(10*time.Minute), now.Add(60*time.Minute)),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "You already have an active booking starting 2024-01-16T12:30:00Z",
		},
		{
			name: "race winner already gone",
			repo: &mockBookingRepository{
				createIfHouseIdleFunc: func(ctx context.Context, b *model.Booking) error {
					return bookingserrors.ErrHouseHasActiveBooking
				},
			},
			req:         request("1", now.Add(10*time.Minute), now.Add(60*time.Minute)),
			wantStatus:  http.StatusBadRequest,
			wantMessage: MsgHouseBusy,
		},
		{
			name: "store failure on house lookup",
			repo: &mockBookingRepository{
				findActiveForHouseFunc: func(ctx context.Context, houseID model.HouseID) (*model.Booking, error) {
					return nil, boom
				},
			},
			req:         request("1", now.Add(10*time.Minute), now.Add(60*time.Minute)),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: apperrors.InternalMessage,
		},
		{
			name: "store failure on create",
			repo: &mockBookingRepository{
				createIfHouseIdleFunc: func(ctx context.Context, b *model.Booking) error { return boom },
			},
			req:         request("1", now.Add(10*time.Minute), now.Add(60*time.Minute)),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: apperrors.InternalMessage,
		},
		{
			name: "unparseable instant is internal",
			repo: &mockBookingRepository{},
			req: &model.BookingRequest{
				LaundryRoomID:       "1",
				HouseID:             "1",
				BookingStartTimeUTC: "next tuesday",
				BookingEndTimeUTC:   "2024-01-15T10:00:00Z",
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: apperrors.InternalMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &recordingPublisher{}
			svc := newService(tt.repo, referenceStore(), pub)

			confirmation, err := svc.Book(context.Background(), tt.req)
			assert.Nil(t, confirmation)
			requireAppError(t, err, tt.wantStatus, tt.wantMessage)
			assert.Empty(t, pub.created)
		})
	}
}

func TestBook_InternalErrorKeepsCause(t *testing.T) {
	boom := errors.New("socket closed")
	repo := &mockBookingRepository{
		createIfHouseIdleFunc: func(ctx context.Context, b *model.Booking) error { return boom },
	}
	svc := newService(repo, referenceStore(), &recordingPublisher{})

	_, err := svc.Book(context.Background(), request("1", now.Add(10*time.Minute), now.Add(60*time.Minute)))
	assert.ErrorIs(t, err, boom)
	assert.NotContains(t, apperrors.AsAppError(err).Message, "socket")
}

func TestBook_PublishFailureDoesNotFailBooking(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := newService(&mockBookingRepository{}, referenceStore(), pub)

	confirmation, err := svc.Book(context.Background(), request("1", now.Add(10*time.Minute), now.Add(60*time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, MsgBooked, confirmation.Message)
	assert.Len(t, pub.created, 1)
}

// ────────────────────────────────────────────────
// ListBookedTimes
// ────────────────────────────────────────────────

func TestListBookedTimes(t *testing.T) {
	var gotFrom, gotTo time.Time
	repo := &mockBookingRepository{
		findActiveInRangeFunc: func(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
			gotFrom, gotTo = from, to
			return []*model.Booking{
				{LaundryRoomID: 1, BookingStartTimeUTC: now.Add(time.Hour), BookingEndTimeUTC: now.Add(2 * time.Hour)},
				{LaundryRoomID: 2, BookingStartTimeUTC: now.Add(3 * time.Hour), BookingEndTimeUTC: now.Add(3*time.Hour + 500*time.Millisecond)},
			}, nil
		},
	}
	svc := newService(repo, referenceStore(), &recordingPublisher{})

	got, err := svc.ListBookedTimes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, now, gotFrom)
	assert.Equal(t, now.Add(30*24*time.Hour), gotTo)
	assert.Equal(t, []model.BookedTime{
		{BookingStartTime: "2024-01-15T10:00:00Z", BookingEndTime: "2024-01-15T11:00:00Z", LaundryRoom: "1"},
		{BookingStartTime: "2024-01-15T12:00:00Z", BookingEndTime: "2024-01-15T12:00:00.500Z", LaundryRoom: "2"},
	}, got)
}

func TestListBookedTimes_Empty(t *testing.T) {
	repo := &mockBookingRepository{
		findActiveInRangeFunc: func(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
			return nil, nil
		},
	}
	svc := newService(repo, referenceStore(), &recordingPublisher{})

	got, err := svc.ListBookedTimes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListBookedTimes_StoreFailure(t *testing.T) {
	repo := &mockBookingRepository{
		findActiveInRangeFunc: func(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
			return nil, errors.New("cursor killed")
		},
	}
	svc := newService(repo, referenceStore(), &recordingPublisher{})

	_, err := svc.ListBookedTimes(context.Background())
	requireAppError(t, err, http.StatusInternalServerError, apperrors.InternalMessage)
}

// ────────────────────────────────────────────────
// CancelBooking
// ────────────────────────────────────────────────

const bookingID = "0b3e2b3c-6a0e-4c3f-9b52-1d1d6f0e9a11"

func TestCancelBooking(t *testing.T) {
	boom := errors.New("write concern error")

	tests := []struct {
		name        string
		bookingID   string
		houseID     string
		repo        *mockBookingRepository
		wantStatus  int
		wantMessage string
	}{
		{
			name:      "cancels an active booking",
			bookingID: bookingID,
			houseID:   "1",
			repo: &mockBookingRepository{
				findActiveFunc: func(ctx context.Context, id model.BookingID, houseID model.HouseID) (*model.Booking, error) {
					return &model.Booking{ID: id, HouseID: houseID, BookingStatus: model.BookingStatusActive}, nil
				},
				updateStatusFunc: func(ctx context.Context, id model.BookingID, from, to model.BookingStatus) error {
					if from != model.BookingStatusActive || to != model.BookingStatusCancelled {
						return errors.New("unexpected transition")
					}
					return nil
				},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:        "unknown or inactive booking",
			bookingID:   bookingID,
			houseID:     "1",
			repo:        &mockBookingRepository{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: MsgInvalidBooking,
		},
		{
			name:        "malformed booking id",
			bookingID:   "not-a-uuid",
			houseID:     "1",
			repo:        &mockBookingRepository{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: MsgInvalidBooking,
		},
		{
			name:        "malformed house id",
			bookingID:   bookingID,
			houseID:     "house-1",
			repo:        &mockBookingRepository{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: MsgInvalidBooking,
		},
		{
			name:      "cancelled concurrently",
			bookingID: bookingID,
			houseID:   "1",
			repo: &mockBookingRepository{
				findActiveFunc: func(ctx context.Context, id model.BookingID, houseID model.HouseID) (*model.Booking, error) {
					return &model.Booking{ID: id, HouseID: houseID}, nil
				},
				updateStatusFunc: func(ctx context.Context, id model.BookingID, from, to model.BookingStatus) error {
					return bookingserrors.ErrNotFound
				},
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: MsgInvalidBooking,
		},
		{
			name:      "store failure on lookup",
			bookingID: bookingID,
			houseID:   "1",
			repo: &mockBookingRepository{
				findActiveFunc: func(ctx context.Context, id model.BookingID, houseID model.HouseID) (*model.Booking, error) {
					return nil, boom
				},
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: apperrors.InternalMessage,
		},
		{
			name:      "store failure on update",
			bookingID: bookingID,
			houseID:   "1",
			repo: &mockBookingRepository{
				findActiveFunc: func(ctx context.Context, id model.BookingID, houseID model.HouseID) (*model.Booking, error) {
					return &model.Booking{ID: id, HouseID: houseID}, nil
				},
				updateStatusFunc: func(ctx context.Context, id model.BookingID, from, to model.BookingStatus) error {
					return boom
				},
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: apperrors.InternalMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &recordingPublisher{}
			svc := newService(tt.repo, referenceStore(), pub)

			msg, err := svc.CancelBooking(context.Background(), tt.bookingID, tt.houseID)
			if tt.wantStatus == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, MsgCancelled, msg)
				require.Len(t, pub.cancelled, 1)
				assert.Equal(t, model.BookingStatusCancelled, pub.cancelled[0].BookingStatus)
				return
			}
			assert.Empty(t, msg)
			requireAppError(t, err, tt.wantStatus, tt.wantMessage)
			assert.Empty(t, pub.cancelled)
		})
	}
}

// ────────────────────────────────────────────────
// End to end against the in-memory store
// ────────────────────────────────────────────────

func TestBookingLifecycle_MemoryStore(t *testing.T) {
	store := referenceStore()
	pub := &recordingPublisher{}
	svc := newService(store, store, pub)
	ctx := context.Background()

	req := &model.BookingRequest{
		LaundryRoomID:       "1",
		HouseID:             "1",
		BookingStartTimeUTC: "2024-01-15T09:10:00.250Z",
		BookingEndTimeUTC:   "2024-01-15T10:00:00Z",
	}
	confirmation, err := svc.Book(ctx, req)
	require.NoError(t, err)

	listed, err := svc.ListBookedTimes(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, req.BookingStartTimeUTC, listed[0].BookingStartTime)
	assert.Equal(t, req.BookingEndTimeUTC, listed[0].BookingEndTime)
	assert.Equal(t, confirmation.BookingStartTimeUTC, listed[0].BookingStartTime)
	assert.Equal(t, "1", listed[0].LaundryRoom)

	_, err = svc.Book(ctx, request("1", now.Add(2*time.Hour), now.Add(3*time.Hour)))
	requireAppError(t, err, http.StatusBadRequest, "You already have an active booking starting 2024-01-15T09:10:00.250Z")

	_, err = svc.Book(ctx, withHouse(req, "2"))
	requireAppError(t, err, http.StatusBadRequest, MsgSlotAlreadyBooked)

	id := pub.created[0].ID.String()

	_, err = svc.CancelBooking(ctx, id, "2")
	requireAppError(t, err, http.StatusBadRequest, MsgInvalidBooking)

	msg, err := svc.CancelBooking(ctx, id, "1")
	require.NoError(t, err)
	assert.Equal(t, MsgCancelled, msg)

	_, err = svc.CancelBooking(ctx, id, "1")
	requireAppError(t, err, http.StatusBadRequest, MsgInvalidBooking)

	listed, err = svc.ListBookedTimes(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = svc.Book(ctx, withHouse(req, "2"))
	assert.NoError(t, err, "cancelled slot is free again")
}
