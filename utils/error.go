package utils

import (
	"fmt"
)

type ServiceError struct {
	Code uint32
	Msg  string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ServiceError: code=%d, msg=%s", e.Code, e.Msg)
}

var (
	// business error code: [500000, 600000)
	ErrOpenMatrix    = &ServiceError{500001, "open matrix file error"}
	ErrReadMatrix    = &ServiceError{500002, "read matrix file error"}
	ErrMatrixHeader  = &ServiceError{500003, "invalid matrix header"}
	ErrRowLength     = &ServiceError{500004, "row length differs from sample size"}
	ErrRowSymbol     = &ServiceError{500005, "row contains a symbol other than 0 or 1"}
	ErrParameter     = &ServiceError{500006, "invalid parameter"}
	ErrFilterExpr    = &ServiceError{500008, "invalid output filter expression"}
	ErrWriteSummary  = &ServiceError{500009, "write summary error"}
	ErrUnknownMethod = &ServiceError{500010, "unknown search method"}
	ErrDataPath      = &ServiceError{500011, "matrix path outside the data directory"}
)
