package models

import "time"

// Candle represents a daily OHLCV record for an instrument.
type Candle struct {
	Day    time.Time
	Code   string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Quote represents a live trade tick from the market stream.
type Quote struct {
	Code      string
	Price     float64
	Volume    float64
	Timestamp time.Time
}
