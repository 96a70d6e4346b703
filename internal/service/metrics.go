package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comicverse_cart_mutations_total",
			Help: "Cart changes by operation.",
		},
		[]string{"operation"},
	)

	wishlistMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comicverse_wishlist_mutations_total",
			Help: "Wishlist changes by operation.",
		},
		[]string{"operation"},
	)

	checkoutsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "comicverse_demo_checkouts_total",
			Help: "Demonstration checkouts completed.",
		},
	)
)
