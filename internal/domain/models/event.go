package models

import "time"

// AnalysisEvent is the pipeline output published to Kafka and archived.
type AnalysisEvent struct {
	Code           string         `json:"code"`
	Kind           InstrumentKind `json:"kind"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Price          float64        `json:"price"`
	TechnicalScore int            `json:"technical_score"`
	MacroScore     *int           `json:"macro_score,omitempty"` // nil for stock instruments
	NewsScore      *int           `json:"news_score,omitempty"`
	FinalScore     int            `json:"final_score"`
	Signal         Signal         `json:"signal"`
	Report         string         `json:"report"` // rendered markdown
}
