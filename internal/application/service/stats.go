package service

import "time"

// Source tags where an order came from in logs and metrics.
type Source string

const (
	SourceAPI  Source = "api"
	SourceFeed Source = "feed"
)

type CoffeeStats struct {
	NumOrders    int
	AveragePrice float64
}

func convertToMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
