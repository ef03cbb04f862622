// Package statemachine defines the legal order status transitions.
package statemachine

import (
	"fmt"
	"strings"

	"restaurant-api/restaurant-svc/internal/domain"
)

type Transition struct {
	From domain.OrderStatus
	To   domain.OrderStatus
}

var validTransitions = []Transition{
	{From: domain.OrderStatusPending, To: domain.OrderStatusConfirmed},
	{From: domain.OrderStatusPending, To: domain.OrderStatusCancelled},
	{From: domain.OrderStatusConfirmed, To: domain.OrderStatusPreparing},
	{From: domain.OrderStatusConfirmed, To: domain.OrderStatusCancelled},
	{From: domain.OrderStatusPreparing, To: domain.OrderStatusReady},
	{From: domain.OrderStatusPreparing, To: domain.OrderStatusCancelled},
	{From: domain.OrderStatusReady, To: domain.OrderStatusDelivered},
}

var transitionSet = func() map[Transition]bool {
	m := make(map[Transition]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

var knownStatuses = map[domain.OrderStatus]bool{
	domain.OrderStatusPending:   true,
	domain.OrderStatusConfirmed: true,
	domain.OrderStatusPreparing: true,
	domain.OrderStatusReady:     true,
	domain.OrderStatusDelivered: true,
	domain.OrderStatusCancelled: true,
}

// Parse normalises raw input and rejects unknown statuses.
func Parse(raw string) (domain.OrderStatus, error) {
	status := domain.OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !knownStatuses[status] {
		return "", fmt.Errorf("unknown order status %q: %w", raw, domain.ErrInvalidArgument)
	}
	return status, nil
}

// IsInitial reports whether a new order may be created in this status.
func IsInitial(status domain.OrderStatus) bool {
	return status == domain.OrderStatusPending || status == domain.OrderStatusConfirmed
}

func ValidTransitionsFrom(status domain.OrderStatus) []domain.OrderStatus {
	var next []domain.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			next = append(next, t.To)
		}
	}
	return next
}

// CanTransition allows every edge of the table plus re-setting the current status.
func CanTransition(from, to domain.OrderStatus) error {
	if from == to || transitionSet[Transition{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("%s -> %s, valid transitions from %s: %s: %w",
		from, to, from, describe(ValidTransitionsFrom(from)), domain.ErrInvalidTransition)
}

func describe(statuses []domain.OrderStatus) string {
	if len(statuses) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
