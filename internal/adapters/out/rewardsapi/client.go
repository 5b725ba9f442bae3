// Package rewardsapi is the REST client for the platform's loyalty and
// referral services. Both are called only from isolated post-delivery side
// effects, so every error here is logged and swallowed by the caller.
package rewardsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/order"
	"laundryops/internal/core/ports"

	"github.com/shopspring/decimal"
)

const defaultTimeout = 10 * time.Second

// Client talks to the rewards platform API and implements both the
// LoyaltyService and ReferralService ports.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a rewards API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

type awardPointsRequest struct {
	CustomerID string `json:"customerId"`
	OrderID    string `json:"orderId"`
	TenantID   string `json:"tenantId"`
	Total      string `json:"total"`
}

// AwardPointsForOrder credits loyalty points for a delivered order.
func (c *Client) AwardPointsForOrder(
	ctx context.Context,
	customerID kernel.UUID,
	aggregate *order.Order,
) error {
	body := awardPointsRequest{
		CustomerID: customerID.String(),
		OrderID:    aggregate.ID().String(),
		TenantID:   aggregate.TenantID().String(),
		Total:      aggregate.Total().String(),
	}
	return c.post(ctx, "/loyalty/points", body)
}

type referralCodeResponse struct {
	Code          string `json:"code"`
	MinOrderTotal string `json:"minOrderTotal"`
}

// UnclaimedCode returns the customer's unclaimed referral code, or nil when
// the customer holds none (the service answers 404).
func (c *Client) UnclaimedCode(ctx context.Context, customerID kernel.UUID) (*ports.ReferralCode, error) {
	endpoint := c.baseURL + "/referrals/unclaimed?customerId=" + url.QueryEscape(customerID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus(resp)
	}

	var payload referralCodeResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	minTotal, err := decimal.NewFromString(payload.MinOrderTotal)
	if err != nil {
		return nil, fmt.Errorf("referral service returned bad minimum total: %w", err)
	}

	return &ports.ReferralCode{
		Code:          payload.Code,
		MinOrderTotal: minTotal,
	}, nil
}

type referralActionRequest struct {
	Code       string `json:"code"`
	CustomerID string `json:"customerId"`
	OrderID    string `json:"orderId,omitempty"`
}

// GrantReward records the conversion and pays out both sides of the
// referral.
func (c *Client) GrantReward(ctx context.Context, code string, customerID, orderID kernel.UUID) error {
	return c.post(ctx, "/referrals/grant", referralActionRequest{
		Code:       code,
		CustomerID: customerID.String(),
		OrderID:    orderID.String(),
	})
}

// MarkClaimed marks the code claimed for the customer.
func (c *Client) MarkClaimed(ctx context.Context, code string, customerID kernel.UUID) error {
	return c.post(ctx, "/referrals/claim", referralActionRequest{
		Code:       code,
		CustomerID: customerID.String(),
	})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return unexpectedStatus(resp)
	}

	return nil
}

func unexpectedStatus(resp *http.Response) error {
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("rewards API returned %d: %s", resp.StatusCode, string(detail))
}
