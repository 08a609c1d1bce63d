// Package backend is the typed client of the upstream REST backend that owns
// promotions and sales.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/vinodrajapaksha/ttms-api/internal/config"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
)

type Client interface {
	ListPromotions(ctx context.Context) ([]*domain.Promotion, error)
	ListActivePromotions(ctx context.Context) ([]*domain.Promotion, error)
	GetPromotion(ctx context.Context, id domain.PromotionID) (*domain.Promotion, error)
	CreatePromotion(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error)
	UpdatePromotion(ctx context.Context, id domain.PromotionID, promotion *domain.Promotion) (*domain.Promotion, error)
	DeletePromotion(ctx context.Context, id domain.PromotionID) error
	SalesReport(ctx context.Context, tab domain.ReportTab, count int) ([]domain.SalesSummary, error)
}

type tokenKey struct{}

// WithToken makes calls made with ctx forward the caller's bearer token
// instead of the configured service token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the token set by WithToken, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type APIClient struct {
	httpClient *resty.Client
	token      string
}

func NewClient(cfg *config.Config) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(cfg.Backend.URL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Backend.Timeout).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &APIClient{
		httpClient: restyClient,
		token:      cfg.Backend.Token,
	}
}

func (c *APIClient) request(ctx context.Context) *resty.Request {
	req := c.httpClient.R().SetContext(ctx)

	token := TokenFromContext(ctx)
	if token == "" {
		token = c.token
	}
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// do runs the request and returns the decoded payload.
func (c *APIClient) do(op string, req *resty.Request, method, url string) (Payload, error) {
	resp, err := req.Execute(method, url)
	if err != nil {
		return Payload{}, &FetchError{Op: op, Err: err}
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		fetchErr := &FetchError{Op: op, Status: resp.StatusCode(), Message: http.StatusText(resp.StatusCode())}
		var env envelope
		if json.Unmarshal(resp.Body(), &env) == nil {
			switch {
			case env.Error != nil && *env.Error != "":
				fetchErr.Message = *env.Error
			case env.Message != "":
				fetchErr.Message = env.Message
			}
		}
		return Payload{}, fetchErr
	}

	payload, err := DecodePayload(resp.Body())
	if err != nil {
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			fetchErr.Op = op
			fetchErr.Status = resp.StatusCode()
			return Payload{}, fetchErr
		}
		return Payload{}, &FetchError{Op: op, Status: resp.StatusCode(), Err: err}
	}
	return payload, nil
}

func (c *APIClient) ListPromotions(ctx context.Context) ([]*domain.Promotion, error) {
	return c.listPromotions(ctx, "list promotions", "/promotions")
}

func (c *APIClient) ListActivePromotions(ctx context.Context) ([]*domain.Promotion, error) {
	return c.listPromotions(ctx, "list active promotions", "/promotions/active")
}

func (c *APIClient) listPromotions(ctx context.Context, op, url string) ([]*domain.Promotion, error) {
	payload, err := c.do(op, c.request(ctx), http.MethodGet, url)
	if err != nil {
		return nil, err
	}

	promotions, err := decodeItems[*domain.Promotion](payload)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	return promotions, nil
}

func (c *APIClient) GetPromotion(ctx context.Context, id domain.PromotionID) (*domain.Promotion, error) {
	op := fmt.Sprintf("get promotion %s", id)
	req := c.request(ctx).SetPathParam("id", id.String())

	payload, err := c.do(op, req, http.MethodGet, "/promotions/{id}")
	if err != nil {
		return nil, err
	}
	return singlePromotion(op, payload)
}

func (c *APIClient) CreatePromotion(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error) {
	payload, err := c.do("create promotion", c.request(ctx).SetBody(promotion), http.MethodPost, "/promotions")
	if err != nil {
		return nil, err
	}
	return singlePromotion("create promotion", payload)
}

func (c *APIClient) UpdatePromotion(ctx context.Context, id domain.PromotionID, promotion *domain.Promotion) (*domain.Promotion, error) {
	op := fmt.Sprintf("update promotion %s", id)
	req := c.request(ctx).
		SetPathParam("id", id.String()).
		SetBody(promotion)

	payload, err := c.do(op, req, http.MethodPut, "/promotions/{id}")
	if err != nil {
		return nil, err
	}
	return singlePromotion(op, payload)
}

func (c *APIClient) DeletePromotion(ctx context.Context, id domain.PromotionID) error {
	op := fmt.Sprintf("delete promotion %s", id)
	_, err := c.do(op, c.request(ctx).SetPathParam("id", id.String()), http.MethodDelete, "/promotions/{id}")
	return err
}

// singlePromotion reads the first item of a mutation response. An empty body
// yields nil so callers can fall back to what they sent.
func singlePromotion(op string, payload Payload) (*domain.Promotion, error) {
	promotions, err := decodeItems[*domain.Promotion](payload)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	if len(promotions) == 0 {
		return nil, nil
	}
	return promotions[0], nil
}

var reportParams = map[domain.ReportTab]string{
	domain.ReportDaily:   "days",
	domain.ReportWeekly:  "weeks",
	domain.ReportMonthly: "months",
}

// SalesReport fetches the upstream summary rows of the last count days, weeks
// or months.
func (c *APIClient) SalesReport(ctx context.Context, tab domain.ReportTab, count int) ([]domain.SalesSummary, error) {
	param, ok := reportParams[tab]
	if !ok {
		return nil, fmt.Errorf("unknown report tab %q", tab)
	}
	if count < 1 {
		count = 1
	}

	op := fmt.Sprintf("%s report", tab)
	req := c.request(ctx).SetQueryParam(param, strconv.Itoa(count))

	payload, err := c.do(op, req, http.MethodGet, "/reports/"+string(tab))
	if err != nil {
		return nil, err
	}

	rows, err := decodeItems[domain.SalesSummary](payload)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	return rows, nil
}
