package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/model"
)

// ReservationClient talks to the reservations HTTP API and turns error
// responses back into *apperrors.AppError.
type ReservationClient struct {
	http *HttpClient
}

func NewReservationClient(baseURL string) *ReservationClient {
	return &ReservationClient{http: NewHttpClient(baseURL)}
}

// WithAdmin sets basic auth credentials for the report endpoints.
func (c *ReservationClient) WithAdmin(user, password string) *ReservationClient {
	c.http.Headers["Authorization"] = "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
	return c
}

func (c *ReservationClient) HTTP() *HttpClient {
	return c.http
}

type ReportSummary struct {
	Total          int     `json:"total"`
	ConfirmedCount int     `json:"confirmed_count"`
	CancelledCount int     `json:"cancelled_count"`
	TotalRevenue   float64 `json:"total_revenue"`
	AverageValue   float64 `json:"average_value"`
}

type ReportExport struct {
	Name     string        `json:"name"`
	Location string        `json:"location"`
	Summary  ReportSummary `json:"summary"`
}

func (c *ReservationClient) Create(ctx context.Context, req *model.ReservationRequest) (*model.Booking, error) {
	resp, err := c.http.POST(ctx, "/api/v1/reservations", req)
	if err != nil {
		return nil, err
	}
	var booking model.Booking
	if err := decodeData(resp, http.StatusCreated, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *ReservationClient) Get(ctx context.Context, code string, includeCancelled bool) (*model.Booking, error) {
	path := "/api/v1/reservations/code/" + url.PathEscape(code)
	if includeCancelled {
		path += "?include_cancelled=true"
	}
	resp, err := c.http.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	var booking model.Booking
	if err := decodeData(resp, http.StatusOK, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *ReservationClient) Modify(ctx context.Context, code string, req *model.ReservationRequest) (*model.Booking, error) {
	resp, err := c.http.PUT(ctx, "/api/v1/reservations/code/"+url.PathEscape(code), req)
	if err != nil {
		return nil, err
	}
	var booking model.Booking
	if err := decodeData(resp, http.StatusOK, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *ReservationClient) Cancel(ctx context.Context, code string) (*model.Booking, error) {
	resp, err := c.http.DELETE(ctx, "/api/v1/reservations/code/"+url.PathEscape(code))
	if err != nil {
		return nil, err
	}
	var booking model.Booking
	if err := decodeData(resp, http.StatusOK, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *ReservationClient) List(ctx context.Context) ([]model.Booking, error) {
	resp, err := c.http.GET(ctx, "/api/v1/reservations")
	if err != nil {
		return nil, err
	}
	var bookings []model.Booking
	if err := decodeData(resp, http.StatusOK, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *ReservationClient) Rooms(ctx context.Context) ([]model.Room, error) {
	resp, err := c.http.GET(ctx, "/api/v1/rooms")
	if err != nil {
		return nil, err
	}
	var rooms []model.Room
	if err := decodeData(resp, http.StatusOK, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *ReservationClient) AvailableRooms(ctx context.Context, search *model.RoomSearch) ([]model.Room, error) {
	query := url.Values{}
	query.Set("check_in", search.CheckIn)
	query.Set("check_out", search.CheckOut)
	if search.Guests > 0 {
		query.Set("guests", strconv.Itoa(search.Guests))
	}
	if search.Beds > 0 {
		query.Set("beds", strconv.Itoa(search.Beds))
	}
	if len(search.Amenities) > 0 {
		query.Set("amenities", strings.Join(search.Amenities, ","))
	}

	resp, err := c.http.GET(ctx, "/api/v1/rooms/available?"+query.Encode())
	if err != nil {
		return nil, err
	}
	var rooms []model.Room
	if err := decodeData(resp, http.StatusOK, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *ReservationClient) ReportSummary(ctx context.Context, from, to string) (*ReportSummary, error) {
	resp, err := c.http.GET(ctx, "/api/v1/reports/summary"+periodQuery(from, to))
	if err != nil {
		return nil, err
	}
	var summary ReportSummary
	if err := decodeData(resp, http.StatusOK, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *ReservationClient) ExportReport(ctx context.Context, from, to string) (*ReportExport, error) {
	resp, err := c.http.POST(ctx, "/api/v1/reports/export"+periodQuery(from, to), nil)
	if err != nil {
		return nil, err
	}
	var export ReportExport
	if err := decodeData(resp, http.StatusCreated, &export); err != nil {
		return nil, err
	}
	return &export, nil
}

func periodQuery(from, to string) string {
	if from == "" && to == "" {
		return ""
	}
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)
	return "?" + query.Encode()
}

// decodeData unwraps the {"data": ...} envelope on the expected status and
// rebuilds the AppError otherwise.
func decodeData(resp *Response, wantStatus int, target any) error {
	if resp.StatusCode != wantStatus {
		return responseError(resp)
	}
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := resp.DecodeJSON(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

func responseError(resp *Response) error {
	var body struct {
		Error   string         `json:"error"`
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	if err := resp.DecodeJSON(&body); err != nil || body.Code == "" {
		return apperrors.New(apperrors.CodeInternal, fmt.Sprintf("unexpected status %d", resp.StatusCode), resp.StatusCode)
	}
	appErr := apperrors.New(body.Code, body.Error, resp.StatusCode)
	if len(body.Details) > 0 {
		appErr = appErr.WithDetails(body.Details)
	}
	return appErr
}
