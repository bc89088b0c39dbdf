package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Processor is the payment-gateway surface the services depend on. The tests
// substitute a fake; production uses the HTTP Gateway below.
type Processor interface {
	CreateCustomer(ctx context.Context, email, cardToken string) (*Customer, error)
	ListCards(ctx context.Context, customerID string) ([]Card, error)
	CreateCharge(ctx context.Context, req *ChargeRequest) (*Charge, error)
}

// Gateway talks to the hosted payment processor over its REST API. Every
// request body is signed with an HMAC of the merchant secret so the processor
// can authenticate the merchant without a handshake.
type Gateway struct {
	baseURL    string
	merchantID string
	secretKey  string
	httpClient *http.Client
}

type Config struct {
	BaseURL    string
	MerchantID string
	SecretKey  string
}

func NewGateway(cfg Config) *Gateway {
	return &Gateway{
		baseURL:    cfg.BaseURL,
		merchantID: cfg.MerchantID,
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *Gateway) CreateCustomer(ctx context.Context, email, cardToken string) (*Customer, error) {
	body := map[string]string{
		"email":      email,
		"card_token": cardToken,
	}

	var customer Customer
	if err := g.do(ctx, http.MethodPost, "/v1/customers", "", body, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (g *Gateway) ListCards(ctx context.Context, customerID string) ([]Card, error) {
	var response struct {
		Cards []Card `json:"cards"`
	}
	path := fmt.Sprintf("/v1/customers/%s/cards", customerID)
	if err := g.do(ctx, http.MethodGet, path, "", nil, &response); err != nil {
		return nil, err
	}
	return response.Cards, nil
}

func (g *Gateway) CreateCharge(ctx context.Context, req *ChargeRequest) (*Charge, error) {
	var charge Charge
	if err := g.do(ctx, http.MethodPost, "/v1/charges", req.IdempotencyKey, req, &charge); err != nil {
		return nil, err
	}
	return &charge, nil
}

func (g *Gateway) do(ctx context.Context, method, path, idempotencyKey string, body, out interface{}) error {
	var payload []byte
	var reqBody io.Reader
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Merchant-ID", g.merchantID)
	req.Header.Set("X-Signature", g.sign(payload))
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	res, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("processor request failed: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read processor response: %w", err)
	}

	if res.StatusCode >= 400 {
		var procErr ProcessorError
		if err := json.Unmarshal(resBody, &procErr); err != nil || procErr.Code == "" {
			return fmt.Errorf("processor returned status %d: %s", res.StatusCode, string(resBody))
		}
		procErr.Status = res.StatusCode
		return &procErr
	}

	if out != nil {
		if err := json.Unmarshal(resBody, out); err != nil {
			return fmt.Errorf("failed to decode processor response: %w", err)
		}
	}
	return nil
}

// sign computes the hex HMAC-SHA256 of the request body under the merchant
// secret. GET requests sign the empty body.
func (g *Gateway) sign(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(g.secretKey))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
