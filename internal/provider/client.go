package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/wellywell/safetap/internal/types"
)

const defaultRetryAfter = 60

type Client struct {
	client *resty.Client
}

// PaymentStatus is what the payment provider knows about one bank transfer or card charge.
type PaymentStatus struct {
	Reference string              `json:"reference"`
	Status    types.PaymentStatus `json:"status"`
}

var (
	ErrUnknown          = errors.New("unknown server error")
	ErrPaymentNotExists = errors.New("payment not exists")
)

type ErrThrottle struct {
	RetryAfter int
}

func (e *ErrThrottle) Error() string {
	return fmt.Sprintf("too many requests, retry after %d seconds", e.RetryAfter)
}

func NewClient(address string) *Client {
	return &Client{client: resty.New().SetBaseURL(address)}
}

func (c *Client) GetPaymentStatus(ctx context.Context, reference string) (*PaymentStatus, error) {

	response, err := c.client.R().
		SetContext(ctx).
		SetPathParam("reference", reference).
		Get("/api/payments/{reference}")
	if err != nil {
		return nil, err
	}

	switch response.StatusCode() {
	case http.StatusOK:
		var status PaymentStatus
		err = json.Unmarshal(response.Body(), &status)
		if err != nil {
			return nil, fmt.Errorf("json parsing error %w", err)
		}
		if !status.Status.IsValid() {
			return nil, fmt.Errorf("unexpected payment status %q", status.Status)
		}
		return &status, nil
	case http.StatusNoContent, http.StatusNotFound:
		return nil, fmt.Errorf("%w", ErrPaymentNotExists)
	case http.StatusTooManyRequests:
		retry, err := strconv.Atoi(response.Header().Get("Retry-After"))
		if err != nil || retry <= 0 {
			retry = defaultRetryAfter
		}
		return nil, fmt.Errorf("%w", &ErrThrottle{RetryAfter: retry})
	case http.StatusInternalServerError:
		return nil, fmt.Errorf("%w", ErrUnknown)
	default:
		return nil, fmt.Errorf("Unexpected status %d", response.StatusCode())
	}
}
