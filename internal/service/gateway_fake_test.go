package service

import (
	"errors"
	"fmt"
)

// fakeGateway stands in for Stripe. Holds live in a map keyed by id;
// status strings follow the processor's vocabulary.
type fakeGateway struct {
	holds      map[string]*Hold
	nextID     int
	failNext   error
	captureLog []int64
	refundLog  []int64
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{holds: map[string]*Hold{}}
}

func (g *fakeGateway) CreateHold(params HoldParams) (*Hold, error) {
	if g.failNext != nil {
		err := g.failNext
		g.failNext = nil
		return nil, err
	}
	g.nextID++
	h := &Hold{
		ID:           fmt.Sprintf("pi_fake_%03d", g.nextID),
		ClientSecret: fmt.Sprintf("pi_fake_%03d_secret", g.nextID),
		AmountCents:  params.AmountCents,
		Status:       HoldReady,
	}
	g.holds[h.ID] = h
	return h, nil
}

func (g *fakeGateway) GetHold(id string) (*Hold, error) {
	h, ok := g.holds[id]
	if !ok {
		return nil, errors.New("no such payment_intent: " + id)
	}
	copied := *h
	return &copied, nil
}

func (g *fakeGateway) Capture(id string, amountCents int64, idempotencyKey string) (string, error) {
	if g.failNext != nil {
		err := g.failNext
		g.failNext = nil
		return "", err
	}
	if h, ok := g.holds[id]; ok {
		h.Status = "succeeded"
		h.AmountCents = amountCents
	}
	g.captureLog = append(g.captureLog, amountCents)
	return id, nil
}

func (g *fakeGateway) Refund(id string, amountCents int64, idempotencyKey string) (string, error) {
	if g.failNext != nil {
		err := g.failNext
		g.failNext = nil
		return "", err
	}
	g.refundLog = append(g.refundLog, amountCents)
	return fmt.Sprintf("re_fake_%s_%d", id, len(g.refundLog)), nil
}

func (g *fakeGateway) Cancel(id string) (string, error) {
	if h, ok := g.holds[id]; ok {
		h.Status = "canceled"
	}
	return id, nil
}

// setHoldStatus lets tests simulate processor-side state changes.
func (g *fakeGateway) setHoldStatus(id, status string) {
	if h, ok := g.holds[id]; ok {
		h.Status = status
	}
}
