// Package service implements the emission use cases on top of the
// boleto core: single and batch bill rendering, remittance file
// generation and inbound barcode validation.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/viacerta/boleto-cnab-go/internal/boleto"
	"github.com/viacerta/boleto-cnab-go/internal/boleto/bank"
	"github.com/viacerta/boleto-cnab-go/internal/domain"
	"github.com/viacerta/boleto-cnab-go/internal/infra/observability"
	"github.com/viacerta/boleto-cnab-go/internal/port"
)

var tracer = otel.Tracer("emission")

// Emission orchestrates bill rendering and CNAB generation.
type Emission struct {
	logger  *zap.Logger
	metrics *observability.Metrics
	cache   port.Cache[domain.BillPayload]
	clock   port.Clock

	maxConcurrency int
	maxBatchSize   int
}

// NewEmission wires the emission service. cache may be nil to disable
// render caching; clock may be nil to use wall time.
func NewEmission(logger *zap.Logger, metrics *observability.Metrics, cache port.Cache[domain.BillPayload], clock port.Clock, maxConcurrency, maxBatchSize int) *Emission {
	if clock == nil {
		clock = port.ClockFunc(time.Now)
	}
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Emission{
		logger:         logger,
		metrics:        metrics,
		cache:          cache,
		clock:          clock,
		maxConcurrency: maxConcurrency,
		maxBatchSize:   maxBatchSize,
	}
}

// RenderBill computes the printable payload of a single payment.
func (s *Emission) RenderBill(ctx context.Context, req *domain.RenderRequest) (*domain.BillPayload, error) {
	_, span := tracer.Start(ctx, "Emission.RenderBill")
	defer span.End()
	span.SetAttributes(attribute.Int("bank", req.Account.BankNumber))

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("render_bill", time.Since(start)) }()

	key := renderCacheKey(req.Payment, req.Account)
	if s.cache != nil && len(req.Instrucoes) == 0 {
		if payload, ok := s.cache.Get(key); ok {
			s.metrics.IncrCacheHit("render")
			return &payload, nil
		}
		s.metrics.IncrCacheMiss("render")
	}

	payload, err := boleto.RenderBill(req.Payment, req.Account, req.Branch, req.Instrucoes, s.clock.Now())
	if err != nil {
		s.metrics.IncrRequest("error")
		return nil, err
	}
	if s.cache != nil && len(req.Instrucoes) == 0 {
		s.cache.Set(key, payload)
	}

	s.metrics.IncrBillsRendered(bankLabel(payload.BankNumber), 1)
	s.metrics.IncrRequest("success")
	s.logger.Info("bill rendered",
		zap.Int("bank", payload.BankNumber),
		zap.Int64("payment", req.Payment.Identifier),
		zap.String("barcode", payload.Barcode),
	)
	return &payload, nil
}

// RenderBatch renders every payment of the batch concurrently,
// preserving input order. The first failing payment aborts the batch.
func (s *Emission) RenderBatch(ctx context.Context, req *domain.RenderBatchRequest) (*domain.RenderBatchResponse, error) {
	ctx, span := tracer.Start(ctx, "Emission.RenderBatch")
	defer span.End()
	span.SetAttributes(
		attribute.Int("bank", req.Account.BankNumber),
		attribute.Int("payments", len(req.Payments)),
	)

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("render_batch", time.Since(start)) }()

	if len(req.Payments) == 0 {
		return nil, &domain.ErrValidation{Field: "payments", Message: "at least one payment is required"}
	}
	if s.maxBatchSize > 0 && len(req.Payments) > s.maxBatchSize {
		return nil, &domain.ErrValidation{
			Field:   "payments",
			Message: fmt.Sprintf("batch has %d payments, limit is %d", len(req.Payments), s.maxBatchSize),
		}
	}

	now := s.clock.Now()
	bills := make([]domain.BillPayload, len(req.Payments))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, p := range req.Payments {
		i, p := i, p
		g.Go(func() error {
			payload, err := boleto.RenderBill(p, req.Account, req.Branch, req.Instrucoes, now)
			if err != nil {
				return fmt.Errorf("payment %d: %w", p.Identifier, err)
			}
			bills[i] = payload
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.metrics.IncrRequest("error")
		return nil, err
	}

	s.metrics.IncrBillsRendered(bankLabel(req.Account.BankNumber), len(bills))
	s.metrics.IncrRequest("success")
	s.logger.Info("batch rendered",
		zap.Int("bank", req.Account.BankNumber),
		zap.Int("bills", len(bills)),
	)
	return &domain.RenderBatchResponse{Bills: bills}, nil
}

// GenerateRemessa builds the CNAB remittance file of a payment batch.
func (s *Emission) GenerateRemessa(ctx context.Context, req *domain.RemessaRequest) (*domain.RemessaResponse, error) {
	_, span := tracer.Start(ctx, "Emission.GenerateRemessa")
	defer span.End()
	span.SetAttributes(
		attribute.Int("bank", req.Account.BankNumber),
		attribute.Int("payments", len(req.Payments)),
	)

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("generate_remessa", time.Since(start)) }()

	remessa, err := boleto.GenerateRemessa(req.Payments, req.Account, req.Branch, s.clock.Now())
	if err != nil {
		s.metrics.IncrRequest("error")
		return nil, err
	}

	s.metrics.IncrRemessa(bankLabel(remessa.BankNumber), remessa.RecordCount)
	s.metrics.IncrRequest("success")
	s.logger.Info("remessa generated",
		zap.Int("bank", remessa.BankNumber),
		zap.Int("records", remessa.RecordCount),
		zap.Int("record_size", remessa.RecordSize),
	)
	return &domain.RemessaResponse{
		RemessaID:   uuid.New().String(),
		BankNumber:  remessa.BankNumber,
		RecordCount: remessa.RecordCount,
		RecordSize:  remessa.RecordSize,
		Content:     string(remessa.Content),
	}, nil
}

// ListBanks returns the supported bank registry.
func (s *Emission) ListBanks(ctx context.Context) []domain.RegisteredBank {
	_, span := tracer.Start(ctx, "Emission.ListBanks")
	defer span.End()
	return bank.Registered()
}

func renderCacheKey(p domain.Payment, acc domain.BankAccount) string {
	return fmt.Sprintf("%d|%s|%s|%d|%s|%s",
		acc.BankNumber, acc.BankBranch, acc.BankAccountNumber,
		p.Identifier, p.Value.String(), p.DueDate.Format("20060102"),
	)
}

func bankLabel(number int) string {
	return fmt.Sprintf("%03d", number)
}
