// Package notify delivers booking notifications to customers and staff.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// BookingSummary is what every notification channel renders.
type BookingSummary struct {
	BookingID     string
	Reference     string
	ItemName      string
	BookingType   string
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	Rooms         int
	Total         string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CheckoutURL   string
}

// OpsNotifier alerts staff about new bookings.
type OpsNotifier interface {
	OpsBookingAlert(ctx context.Context, b BookingSummary) error
}

// CustomerNotifier confirms a booking to the customer.
type CustomerNotifier interface {
	BookingConfirmation(ctx context.Context, b BookingSummary) error
}

// Notifier is everything the booking flow sends after a booking is created.
type Notifier interface {
	CustomerNotifier
	OpsNotifier
}

// Dispatcher routes customer mail and staff alerts to separate channels.
type Dispatcher struct {
	Customer CustomerNotifier
	Ops      OpsNotifier
}

func (d Dispatcher) BookingConfirmation(ctx context.Context, b BookingSummary) error {
	if d.Customer == nil {
		return nil
	}
	return d.Customer.BookingConfirmation(ctx, b)
}

func (d Dispatcher) OpsBookingAlert(ctx context.Context, b BookingSummary) error {
	if d.Ops == nil {
		return nil
	}
	return d.Ops.OpsBookingAlert(ctx, b)
}

// Multi fans an ops alert out to every channel and joins the failures.
type Multi []OpsNotifier

func (m Multi) OpsBookingAlert(ctx context.Context, b BookingSummary) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.OpsBookingAlert(ctx, b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func dates(b BookingSummary) string {
	return fmt.Sprintf("%s → %s", b.CheckIn.Format("02 Jan 2006"), b.CheckOut.Format("02 Jan 2006"))
}

func opsText(b BookingSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "New %s booking %s\n", strings.ToLower(b.BookingType), b.Reference)
	fmt.Fprintf(&sb, "Item: %s\n", b.ItemName)
	fmt.Fprintf(&sb, "Dates: %s\n", dates(b))
	fmt.Fprintf(&sb, "Guests: %d, rooms: %d\n", b.Guests, b.Rooms)
	fmt.Fprintf(&sb, "Total: %s\n", b.Total)
	fmt.Fprintf(&sb, "Customer: %s <%s>", b.CustomerName, b.CustomerEmail)
	if b.CustomerPhone != "" {
		fmt.Fprintf(&sb, ", %s", b.CustomerPhone)
	}
	return sb.String()
}
