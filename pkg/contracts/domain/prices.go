package domain

import "time"

// PricePoint is a single daily Brent settlement price.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// Event is a dated historical event from the events dataset.
type Event struct {
	Date        time.Time `json:"date"`
	Description string    `json:"event_description"`
}

// PriceDescription is the descriptive summary of a price series.
type PriceDescription struct {
	Count                  int       `json:"count"`
	Start                  time.Time `json:"start"`
	End                    time.Time `json:"end"`
	Min                    float64   `json:"min"`
	Max                    float64   `json:"max"`
	Mean                   float64   `json:"mean"`
	Std                    float64   `json:"std"`
	Median                 float64   `json:"median"`
	CoefficientOfVariation float64   `json:"coefficient_of_variation"`
}

// ReturnDescription summarizes a derived log-return series.
type ReturnDescription struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
}

// ReturnObservation is the log return ending on Date.
type ReturnObservation struct {
	Date      time.Time `json:"date"`
	LogReturn float64   `json:"log_return"`
}
