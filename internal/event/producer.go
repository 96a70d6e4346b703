// Package event publishes storefront notifications.
package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/comicverse/hub/pkg/kafka"
	"github.com/comicverse/hub/pkg/logger"
)

// Kafka topics for badge updates.
var (
	TopicCartBadge     = pkgkafka.Topic("cart", "badge")
	TopicWishlistBadge = pkgkafka.Topic("wishlist", "badge")
)

const (
	SourceStorefront = "storefront"

	EventCartBadgeUpdated     = "cart.badge.updated"
	EventWishlistBadgeUpdated = "wishlist.badge.updated"
)

// BadgeNotifier receives the item counts shown in the storefront header.
type BadgeNotifier interface {
	CartChanged(ctx context.Context, itemCount int) error
	WishlistChanged(ctx context.Context, count int) error
}

// BadgeData is the payload of a badge event.
type BadgeData struct {
	Profile string `json:"profile"`
	Count   int    `json:"count"`
}

// Publisher is the part of *pkgkafka.Producer the notifier uses.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes badge updates to Kafka for one profile.
type Producer struct {
	publisher Publisher
	profile   string
	logger    *slog.Logger
}

// NewProducer creates a badge notifier for profile.
func NewProducer(publisher Publisher, profile string, logger *slog.Logger) *Producer {
	return &Producer{
		publisher: publisher,
		profile:   profile,
		logger:    logger,
	}
}

// CartChanged publishes the cart's total quantity.
func (p *Producer) CartChanged(ctx context.Context, itemCount int) error {
	return p.publish(ctx, TopicCartBadge, EventCartBadgeUpdated, itemCount)
}

// WishlistChanged publishes the wishlist size.
func (p *Producer) WishlistChanged(ctx context.Context, count int) error {
	return p.publish(ctx, TopicWishlistBadge, EventWishlistBadgeUpdated, count)
}

func (p *Producer) publish(ctx context.Context, topic, eventType string, count int) error {
	evt, err := pkgkafka.NewEvent(eventType, p.profile, SourceStorefront,
		BadgeData{Profile: p.profile, Count: count})
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.publisher.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published badge event",
		slog.String("event_type", eventType),
		slog.Int("count", count),
	)
	return nil
}

// Nop discards badge updates. Used when no broker is configured.
type Nop struct{}

func (Nop) CartChanged(context.Context, int) error     { return nil }
func (Nop) WishlistChanged(context.Context, int) error { return nil }
