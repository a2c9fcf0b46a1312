package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	config "github.com/hafiz27/billflow/configs"
	"github.com/hafiz27/billflow/internal/models"
	"github.com/hafiz27/billflow/internal/transfer"
	"github.com/hafiz27/billflow/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billplzConfig(baseURL string) config.Config {
	return config.Config{
		AppURL:      "https://api.example.com",
		FrontendURL: "https://app.example.com",
		Billplz: config.Billplz{
			APIKey:       "test-key",
			CollectionID: "col123",
			BaseURL:      baseURL,
		},
	}
}

func validBillRequest() *transfer.CreateBillRequest {
	return &transfer.CreateBillRequest{
		UserID:        10,
		PlanID:        3,
		Amount:        1.00,
		Currency:      "MYR",
		Description:   "Pro Plan subscription",
		CustomerEmail: "amira@example.com",
		CustomerName:  "Amira",
	}
}

func existingTrialRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{
		getCurrent: func(ctx context.Context, userID int64) (*models.UserSubscription, bool, error) {
			return &models.UserSubscription{ID: 55, UserID: userID, Status: models.SubscriptionStatusTrial}, true, nil
		},
	}
}

func TestCreateBill_Success(t *testing.T) {
	var gotBill transfer.BillplzBillRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/api/v3/bills", r.URL.Path)

		username, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "test-key", username)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBill))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transfer.BillplzBillResponse{
			ID:           "bill123",
			CollectionID: "col123",
			State:        "due",
			Amount:       100,
			URL:          "https://pay/bill123",
		})
	}))
	defer server.Close()

	var savedPayment *models.Payment
	payRepo := &fakePaymentRepo{
		create: func(ctx context.Context, payment *models.Payment) (int64, error) {
			savedPayment = payment
			return 77, nil
		},
	}

	s := NewBillplzService(billplzConfig(server.URL), existingTrialRepo(), payRepo)

	session, err := s.CreateBill(context.Background(), validBillRequest())
	require.NoError(t, err)
	assert.Equal(t, "bill123", session.BillID)
	assert.Equal(t, "https://pay/bill123", session.PaymentURL)

	// Gateway receives the amount in minor units plus the reference tags
	// needed to match the callback to this user and plan.
	assert.Equal(t, int64(100), gotBill.Amount)
	assert.Equal(t, "col123", gotBill.CollectionID)
	assert.Equal(t, "10", gotBill.Reference1)
	assert.Equal(t, "user_id", gotBill.Reference1Label)
	assert.Equal(t, "3", gotBill.Reference2)
	assert.Equal(t, "plan_id", gotBill.Reference2Label)
	assert.Equal(t, "https://api.example.com/api/billplz/callback", gotBill.CallbackURL)
	assert.Equal(t, "https://app.example.com/thank-you", gotBill.RedirectURL)

	require.NotNil(t, savedPayment)
	assert.Equal(t, models.PaymentStatusPending, savedPayment.Status)
	assert.Equal(t, "bill123", savedPayment.BillplzBillID)
	assert.Equal(t, "https://pay/bill123", savedPayment.BillplzURL)
	assert.Equal(t, "billplz", savedPayment.PaymentMethod)
	require.NotNil(t, savedPayment.SubscriptionID)
	assert.Equal(t, int64(55), *savedPayment.SubscriptionID)
}

func TestCreateBill_ProvisionsTrialWhenMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(transfer.BillplzBillResponse{ID: "bill456", URL: "https://pay/bill456"})
	}))
	defer server.Close()

	trialCreated := false
	subRepo := &fakeSubscriptionRepo{
		getCurrent: func(ctx context.Context, userID int64) (*models.UserSubscription, bool, error) {
			return nil, false, nil
		},
		createTrial: func(ctx context.Context, userID int64) (int64, error) {
			trialCreated = true
			return 99, nil
		},
	}

	var savedPayment *models.Payment
	payRepo := &fakePaymentRepo{
		create: func(ctx context.Context, payment *models.Payment) (int64, error) {
			savedPayment = payment
			return 1, nil
		},
	}

	s := NewBillplzService(billplzConfig(server.URL), subRepo, payRepo)

	_, err := s.CreateBill(context.Background(), validBillRequest())
	require.NoError(t, err)
	assert.True(t, trialCreated)
	require.NotNil(t, savedPayment.SubscriptionID)
	assert.Equal(t, int64(99), *savedPayment.SubscriptionID)
}

func TestCreateBill_MissingFields(t *testing.T) {
	s := NewBillplzService(billplzConfig("http://unused"), existingTrialRepo(), &fakePaymentRepo{})

	req := validBillRequest()
	req.CustomerEmail = ""

	_, err := s.CreateBill(context.Background(), req)
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidRequest, appErr.Code)
}

func TestCreateBill_MissingCredentials(t *testing.T) {
	cfg := billplzConfig("http://unused")
	cfg.Billplz.APIKey = ""

	s := NewBillplzService(cfg, existingTrialRepo(), &fakePaymentRepo{})

	_, err := s.CreateBill(context.Background(), validBillRequest())
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeGatewayMisconfigured, appErr.Code)
}

func TestCreateBill_GatewayStatuses(t *testing.T) {
	tests := []struct {
		status int
		code   apperrors.ErrorCode
	}{
		{http.StatusUnauthorized, apperrors.CodeGatewayMisconfigured},
		{http.StatusForbidden, apperrors.CodeGatewayMisconfigured},
		{http.StatusNotFound, apperrors.CodeNotDeployed},
		{http.StatusUnprocessableEntity, apperrors.CodeGatewayRejected},
		{http.StatusInternalServerError, apperrors.CodeGatewayRejected},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		s := NewBillplzService(billplzConfig(server.URL), existingTrialRepo(), &fakePaymentRepo{})
		_, err := s.CreateBill(context.Background(), validBillRequest())
		server.Close()

		require.Error(t, err, "status %d", tt.status)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, tt.code, appErr.Code, "status %d", tt.status)
	}
}

func TestCreateBill_GatewayUnreachable(t *testing.T) {
	s := NewBillplzService(billplzConfig("http://127.0.0.1:1"), existingTrialRepo(), &fakePaymentRepo{})

	_, err := s.CreateBill(context.Background(), validBillRequest())
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeGatewayUnreachable, appErr.Code)
}

func signCallback(key string, data *transfer.BillplzCallback) string {
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

	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(strings.Join(pairs, "|")))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyCallback(t *testing.T) {
	cfg := billplzConfig("http://unused")
	cfg.Billplz.XSignatureKey = "sig-key"

	s := NewBillplzService(cfg, existingTrialRepo(), &fakePaymentRepo{})

	data := &transfer.BillplzCallback{
		ID:           "bill123",
		CollectionID: "col123",
		Paid:         "true",
		State:        "paid",
		Amount:       "100",
		PaidAmount:   "100",
		Email:        "amira@example.com",
		Name:         "Amira",
	}
	data.XSignature = signCallback("sig-key", data)

	assert.True(t, s.VerifyCallback(data))

	data.Paid = "false" // tampered after signing
	assert.False(t, s.VerifyCallback(data))
}

func TestVerifyCallback_NoKeyConfigured(t *testing.T) {
	s := NewBillplzService(billplzConfig("http://unused"), existingTrialRepo(), &fakePaymentRepo{})

	assert.True(t, s.VerifyCallback(&transfer.BillplzCallback{ID: "bill123"}))
}
