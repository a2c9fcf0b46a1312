package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/hafiz27/billflow/configs"
	"github.com/hafiz27/billflow/internal/models"
)

// ReceiptService archives a JSON snapshot of each confirmed payment to
// Cloudflare R2. Archival is best effort and never blocks settlement.
type ReceiptService struct {
	config cfg.Config
}

func NewReceiptService(cfg cfg.Config) *ReceiptService {
	return &ReceiptService{config: cfg}
}

func (r *ReceiptService) r2Client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.R2.AccessKey, r.config.R2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.R2.AccountID))
	}), nil
}

func (r *ReceiptService) Archive(ctx context.Context, payment *models.Payment, plan *models.SubscriptionPlan) error {
	receipt := map[string]any{
		"payment":     payment,
		"plan":        plan,
		"archived_at": time.Now().UTC(),
	}

	body, err := json.Marshal(receipt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	client, err := r.r2Client(ctx)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("receipts/%d/%s.json", payment.UserID, payment.BillplzBillID)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}

	_, err = client.PutObject(ctx, input)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
