package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"
)

// approvalRate mirrors the gateway simulator: 90% of payments are
// approved, the rest declined to exercise the failure path.
const approvalRate = 0.9

// PaymentSimulator stands in for the Webpay gateway: an artificial
// processing delay followed by a random approve/decline outcome. The
// rand source and wait function are injectable so tests run
// deterministically and instantly.
type PaymentSimulator struct {
	rng  *rand.Rand
	wait func(ctx context.Context, d time.Duration) error
}

// waitOrCancel blocks for d, or until the context is cancelled.
func waitOrCancel(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NewPaymentSimulator creates a simulator with real timing and a
// time-seeded source.
func NewPaymentSimulator() *PaymentSimulator {
	return &PaymentSimulator{
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		wait: waitOrCancel,
	}
}

// NewPaymentSimulatorForTest pins the rand source and removes the delay.
func NewPaymentSimulatorForTest(seed int64) *PaymentSimulator {
	return &PaymentSimulator{
		rng:  rand.New(rand.NewSource(seed)),
		wait: func(ctx context.Context, _ time.Duration) error { return ctx.Err() },
	}
}

// SimulatedPayment is the gateway's verdict for one token.
type SimulatedPayment struct {
	Approved          bool
	AuthorizationCode string
	Method            string
	ProcessedAt       time.Time
}

// Process simulates processing the payment behind the token: waits
// 3-5 seconds, then approves with the configured probability.
func (p *PaymentSimulator) Process(ctx context.Context, token string) (SimulatedPayment, error) {
	if token == "" {
		return SimulatedPayment{}, fmt.Errorf("payment token is required")
	}

	delay := 3*time.Second + time.Duration(p.rng.Int63n(int64(2*time.Second)))
	log.Printf("💳 Process: Simulating payment for token %.8s… (%v)", token, delay)

	if err := p.wait(ctx, delay); err != nil {
		return SimulatedPayment{}, err
	}

	approved := p.rng.Float64() < approvalRate
	result := SimulatedPayment{
		Approved:    approved,
		Method:      "webpay-simulado",
		ProcessedAt: time.Now(),
	}
	if approved {
		result.AuthorizationCode = fmt.Sprintf("AUTH-%06d", p.rng.Intn(1000000))
		log.Printf("✅ Process: Payment approved, auth=%s", result.AuthorizationCode)
	} else {
		log.Printf("❌ Process: Payment declined for token %.8s…", token)
	}
	return result, nil
}
