package ssdps_config

const GinPort = "19123"

const MetricsPath = "/metrics"

const MinePath = "/ssdps"

// DataDir root of the matrix files the service may open
const DataDir = "./data"

// ProjectName prefix of log files
const ProjectName = "ssdps"

// search methods
const (
	Exhaustive = "exhaustive"
	Heuristic  = "heuristic"
)

// IterationUnit one unit of the --iteration flag
const IterationUnit = 1000000
