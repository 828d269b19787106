// Package transport is the device-side HTTP client of the sync API.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"mirror/internal/delivery/api/dto"
	"mirror/internal/domain/entity"
	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/errors"
)

const (
	defaultTimeout = 30 * time.Second
	busPath        = "/api/v1/bus"
)

// APIError is a 4xx answer whose code has no domain error counterpart.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// Client calls the sync API on behalf of one device.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the server at baseURL. A nil httpClient uses a
// client with a 30s timeout.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid server url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("unsupported server url scheme %q", u.Scheme)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{baseURL: u, httpClient: httpClient}, nil
}

// SetToken sets the device token sent with authenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
}

// Token returns the current device token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

// CreateGroup creates a group with the calling device as master.
func (c *Client) CreateGroup(ctx context.Context, identity entity.DeviceIdentity) (*dto.PairingResponse, error) {
	var out dto.PairingResponse
	if err := c.do(ctx, "create group", http.MethodPost, "/api/v1/groups", nil, toDeviceRequest(identity), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// JoinGroup adds the calling device to groupID.
func (c *Client) JoinGroup(ctx context.Context, groupID string, identity entity.DeviceIdentity) (*dto.PairingResponse, error) {
	var out dto.PairingResponse
	path := "/api/v1/groups/" + url.PathEscape(groupID) + "/join"
	if err := c.do(ctx, "join group", http.MethodPost, path, nil, toDeviceRequest(identity), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// RecoverGroup finds the group deviceID belongs to.
func (c *Client) RecoverGroup(ctx context.Context, deviceID string) (*dto.PairingResponse, error) {
	var out dto.PairingResponse
	if err := c.do(ctx, "recover group", http.MethodPost, "/api/v1/groups/recover", nil, dto.RecoverRequest{DeviceID: deviceID}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// LeaveGroup removes deviceID, or the caller when deviceID is empty.
func (c *Client) LeaveGroup(ctx context.Context, deviceID string) error {
	return c.do(ctx, "leave group", http.MethodPost, "/api/v1/group/leave", nil, dto.LeaveRequest{DeviceID: deviceID}, nil)
}

// GroupInfo returns the caller's group.
func (c *Client) GroupInfo(ctx context.Context) (*entity.GroupInfo, error) {
	var out entity.GroupInfo
	if err := c.do(ctx, "group info", http.MethodGet, "/api/v1/group", nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdatePlan changes the caller's group plan.
func (c *Client) UpdatePlan(ctx context.Context, plan entity.Plan) (*entity.GroupInfo, error) {
	var out entity.GroupInfo
	if err := c.do(ctx, "update plan", http.MethodPut, "/api/v1/group/plan", nil, dto.UpdatePlanRequest{Plan: plan}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GroupHistory lists membership events of the caller's group.
func (c *Client) GroupHistory(ctx context.Context) ([]*entity.HistoryEvent, error) {
	var out []*entity.HistoryEvent
	if err := c.do(ctx, "group history", http.MethodGet, "/api/v1/group/history", nil, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// RegisterPushToken stores the device's wake push token.
func (c *Client) RegisterPushToken(ctx context.Context, token string) error {
	return c.do(ctx, "register push token", http.MethodPut, "/api/v1/group/push-token", nil, dto.PushTokenRequest{Token: token}, nil)
}

// PairingQR fetches the PNG QR code of the caller's group.
func (c *Client) PairingQR(ctx context.Context) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/group/qr", nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domainerrors.TransportError{Op: "pairing qr", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError("pairing qr", resp)
	}

	png, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domainerrors.TransportError{Op: "pairing qr", Err: err}
	}

	return png, nil
}

// Pull fetches one page of records after cursor.
func (c *Client) Pull(ctx context.Context, dataType entity.DataType, cursor entity.Cursor, limit int) (*entity.PullResult, error) {
	query := url.Values{}
	query.Set(dto.QuerySince, strconv.FormatInt(cursor.Timestamp, 10))
	if cursor.RecordID != "" {
		query.Set(dto.QueryAfterID, cursor.RecordID)
	}
	if limit > 0 {
		query.Set(dto.QueryLimit, strconv.Itoa(limit))
	}

	var out dto.PullResponse
	if err := c.do(ctx, "pull", http.MethodGet, "/api/v1/sync/"+url.PathEscape(string(dataType)), query, nil, &out); err != nil {
		return nil, err
	}

	return &entity.PullResult{Records: out.Records, NextCursor: out.NextCursor, HasMore: out.HasMore}, nil
}

// PutRecord upserts a record and reports whether it was added or changed.
func (c *Client) PutRecord(ctx context.Context, dataType entity.DataType, record entity.RawRecord) (entity.DeltaKind, error) {
	var out dto.PutRecordResponse
	path := "/api/v1/sync/" + url.PathEscape(string(dataType)) + "/records"
	if err := c.do(ctx, "put record", http.MethodPut, path, nil, record, &out); err != nil {
		return "", err
	}

	return out.Kind, nil
}

// DeleteRecord removes a record.
func (c *Client) DeleteRecord(ctx context.Context, dataType entity.DataType, recordID string) error {
	path := "/api/v1/sync/" + url.PathEscape(string(dataType)) + "/records/" + url.PathEscape(recordID)

	return c.do(ctx, "delete record", http.MethodDelete, path, nil, nil, nil)
}

// BusEndpoint returns the websocket URL of the change bus and the headers
// authenticating the upgrade.
func (c *Client) BusEndpoint() (string, http.Header) {
	u := *c.baseURL
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + busPath

	header := http.Header{}
	if token := c.Token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	return u.String(), header
}

func toDeviceRequest(identity entity.DeviceIdentity) dto.DeviceRequest {
	return dto.DeviceRequest{DeviceID: identity.DeviceID, DeviceType: identity.DeviceType, DeviceName: identity.DeviceName}
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	// path arrives with its segments escaped.
	u := *c.baseURL
	u.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + path
	unescaped, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return nil, errors.Wrap(err, "invalid request path")
	}
	u.Path = unescaped
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domainerrors.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(op, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &domainerrors.TransportError{Op: op, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "decode response")}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrapf(err, "%s: decode response data", op)
	}

	return nil
}

// decodeError maps a non-2xx answer to a domain error. Server errors stay
// transient; client errors map back by error code.
func decodeError(op string, resp *http.Response) error {
	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode >= http.StatusInternalServerError || decodeErr != nil || env.Error == nil {
		message := http.StatusText(resp.StatusCode)
		if decodeErr == nil && env.Error != nil {
			message = env.Error.Message
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return &domainerrors.TransportError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(message)}
		}

		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	var details map[string]any
	if len(env.Error.Details) > 0 {
		_ = json.Unmarshal(env.Error.Details, &details)
	}
	if mapped := domainerrors.FromCode(env.Error.Code, details); mapped != nil {
		return errors.WithMessage(mapped, op)
	}

	return &APIError{StatusCode: resp.StatusCode, Code: env.Error.Code, Message: env.Error.Message}
}
