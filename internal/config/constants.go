package config

import "time"

// Application constants
const (
	AppName    = "Brent Returns Statistics"
	AppVersion = "0.3.0"

	// Environment
	EnvPrefix     = "BRENT"
	EnvConfigFile = "BRENT_CONFIG"

	// Server
	DefaultPort           = 5000
	DefaultRequestTimeout = 10 * time.Second

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Dataset
	DefaultReturnsFile = "data/log_returns.npy"
	DefaultChangePoint = 8357

	// Explorer inputs and outputs
	DefaultPricesFile = "data/BrentOilPrices.csv"
	DefaultEventsFile = "events_dataset.csv"
	DefaultPlotFile   = "initial_analysis.png"

	// Figure geometry in inches
	DefaultPlotWidth     = 15.0
	DefaultPlotHeight    = 10.0
	DefaultPlotDPI       = 300
	DefaultHistogramBins = 50

	// PriceDateLayout is the day-abbreviated-month-two-digit-year layout of the price file
	PriceDateLayout = "02-Jan-06"
)
