package ssdps_config

const (
	OddsRatioThreshold = float64(1)
	RiskRatioThreshold = float64(1)
	AbsRiskThreshold   = float64(0)
	MinCasePct         = float64(0)
	MaxControlPct      = float64(100)
	MinCaseOut         = 0
	PValue             = float64(0)
	ItThreshold        = IterationUnit
	RatchetOR          = true
	RatchetStep        = 0.1
	Method             = Exhaustive

	// MaxRequestRows rows accepted inline by the HTTP service
	MaxRequestRows = 1 << 20
)

// logger defaults, max age in days, rotation time in hours, rotation size in MB
const (
	LogLevel        = "info"
	LogPath         = "./logs"
	LogMaxAge       = 7
	LogRotationTime = 24
	LogRotationSize = 1024
)
