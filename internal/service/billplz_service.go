package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	config "github.com/hafiz27/billflow/configs"
	"github.com/hafiz27/billflow/internal/models"
	"github.com/hafiz27/billflow/internal/repository"
	"github.com/hafiz27/billflow/internal/transfer"
	"github.com/hafiz27/billflow/pkg/apperrors"
	"github.com/hafiz27/billflow/pkg/utils"
)

const billplzBillsPath = "/api/v3/bills"

type BillplzService interface {
	CreateBill(ctx context.Context, req *transfer.CreateBillRequest) (*transfer.CheckoutSession, error)
	VerifyCallback(data *transfer.BillplzCallback) bool
}

type billplzService struct {
	cfg config.Config
	s   repository.SubscriptionRepository
	p   repository.PaymentRepository
}

func NewBillplzService(cfg config.Config, s repository.SubscriptionRepository, p repository.PaymentRepository) BillplzService {
	return &billplzService{
		cfg: cfg,
		s:   s,
		p:   p,
	}
}

func (b *billplzService) CreateBill(ctx context.Context, req *transfer.CreateBillRequest) (*transfer.CheckoutSession, error) {
	if req.UserID == 0 || req.PlanID == 0 || req.Amount <= 0 || req.CustomerEmail == "" || req.CustomerName == "" {
		err := errors.New("missing required fields for bill creation")
		slog.Info(err.Error())
		return nil, apperrors.ErrInvalidRequest("Missing required fields")
	}

	if b.cfg.Billplz.APIKey == "" || b.cfg.Billplz.CollectionID == "" {
		return nil, apperrors.ErrGatewayMisconfigured("Billplz credentials are not configured")
	}

	subscriptionID, err := b.ensureSubscription(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	billReq := transfer.BillplzBillRequest{
		CollectionID:    b.cfg.Billplz.CollectionID,
		Email:           req.CustomerEmail,
		Name:            req.CustomerName,
		Amount:          utils.ToMinorUnits(req.Amount),
		Description:     req.Description,
		CallbackURL:     b.cfg.AppURL + "/api/billplz/callback",
		RedirectURL:     b.cfg.FrontendURL + "/thank-you",
		Reference1:      fmt.Sprintf("%d", req.UserID),
		Reference1Label: "user_id",
		Reference2:      fmt.Sprintf("%d", req.PlanID),
		Reference2Label: "plan_id",
	}

	bill, err := b.postBill(ctx, &billReq)
	if err != nil {
		return nil, err
	}

	metadata, err := json.Marshal(map[string]any{
		"plan_id":               req.PlanID,
		"billplz_collection_id": bill.CollectionID,
		"billplz_state":         bill.State,
		"idempotency_key":       req.IdempotencyKey,
	})
	if err != nil {
		slog.Info(err.Error())
		metadata = []byte("{}")
	}

	currency := req.Currency
	if currency == "" {
		currency = "MYR"
	}

	payment := &models.Payment{
		UserID:         req.UserID,
		SubscriptionID: &subscriptionID,
		Amount:         req.Amount,
		Currency:       currency,
		Status:         models.PaymentStatusPending,
		PaymentMethod:  "billplz",
		BillplzBillID:  bill.ID,
		BillplzURL:     bill.URL,
		Metadata:       string(metadata),
	}

	_, err = b.p.Create(ctx, payment)
	if err != nil {
		return nil, apperrors.ErrStoreUnavailable(err)
	}

	return &transfer.CheckoutSession{
		BillID:     bill.ID,
		PaymentURL: bill.URL,
	}, nil
}

func (b *billplzService) ensureSubscription(ctx context.Context, userID int64) (int64, error) {
	sub, isExist, err := b.s.GetCurrentByUserID(ctx, userID)
	if err != nil {
		return 0, apperrors.ErrStoreUnavailable(err)
	}

	if isExist {
		return sub.ID, nil
	}

	id, err := b.s.CreateTrial(ctx, userID)
	if err != nil {
		return 0, apperrors.ErrStoreUnavailable(err)
	}
	return id, nil
}

func (b *billplzService) postBill(ctx context.Context, billReq *transfer.BillplzBillRequest) (*transfer.BillplzBillResponse, error) {
	jsonData, err := json.Marshal(billReq)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", b.cfg.Billplz.BaseURL+billplzBillsPath, bytes.NewBuffer(jsonData))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(b.cfg.Billplz.APIKey, "")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, apperrors.ErrGatewayUnreachable(err, "Payment gateway is unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		slog.Info(fmt.Sprintf("Billplz API error: status=%d body=%s", resp.StatusCode, string(body)))

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, apperrors.ErrGatewayMisconfigured("Billplz rejected the configured credentials")
		case resp.StatusCode == http.StatusNotFound:
			return nil, apperrors.ErrNotDeployed("Payment gateway endpoint is not deployed")
		default:
			return nil, apperrors.ErrGatewayRejected(
				fmt.Errorf("billplz returned status %d", resp.StatusCode),
				fmt.Sprintf("Payment gateway rejected the request (status %d)", resp.StatusCode))
		}
	}

	var bill transfer.BillplzBillResponse
	if err := json.NewDecoder(resp.Body).Decode(&bill); err != nil {
		slog.Info(err.Error())
		return nil, apperrors.ErrGatewayRejected(err, "Payment gateway returned an unreadable response")
	}

	return &bill, nil
}

// VerifyCallback checks the X-Signature Billplz attaches to its
// server-to-server callback: HMAC-SHA256 over the "<key><value>" pairs
// of every posted field except x_signature, sorted and pipe-joined.
func (b *billplzService) VerifyCallback(data *transfer.BillplzCallback) bool {
	if b.cfg.Billplz.XSignatureKey == "" {
		slog.Info("Billplz X-Signature key is not configured, skipping callback verification")
		return true
	}

	pairs := []string{
		"amount" + data.Amount,
		"collection_id" + data.CollectionID,
		"due_at" + data.DueAt,
		"email" + data.Email,
		"id" + data.ID,
		"mobile" + data.Mobile,
		"name" + data.Name,
		"paid" + data.Paid,
		"paid_amount" + data.PaidAmount,
		"paid_at" + data.PaidAt,
		"state" + data.State,
		"transaction_id" + data.TransactionID,
		"transaction_status" + data.TransactionStatus,
		"url" + data.URL,
	}
	sort.Strings(pairs)

	mac := hmac.New(sha256.New, []byte(b.cfg.Billplz.XSignatureKey))
	mac.Write([]byte(strings.Join(pairs, "|")))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(data.XSignature)))
}
