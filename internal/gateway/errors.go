package gateway

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindTransportFailure ErrorKind = "TRANSPORT_FAILURE"
	KindSchemaError      ErrorKind = "SCHEMA_ERROR"
)

// GatewayError is returned by structured operations when the generative call
// did not complete or its output did not match the expected shape.
type GatewayError struct {
	Op        Operation
	Kind      ErrorKind
	Retryable bool
	Err       error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("GatewayError[%s] %s: %v", e.Kind, e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func IsTransportFailure(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Kind == KindTransportFailure
}

func IsSchemaError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Kind == KindSchemaError
}
