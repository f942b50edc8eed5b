// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package errs lists the conditions reported by the symmetrization engine and
// its collaborators. Operations wrap these values with fmt.Errorf and %w, so
// callers should test them with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidNetworkKind is returned when a network is not a combinational
	// and-inverter graph.
	ErrInvalidNetworkKind = errors.New("network is not a combinational AIG")

	// ErrMissingDiagrams is returned when an operation needs decision diagrams
	// that were never built or loaded.
	ErrMissingDiagrams = errors.New("decision diagrams not set for network")

	// ErrDiagramsAlreadyPresent is returned when diagrams would overwrite an
	// existing set.
	ErrDiagramsAlreadyPresent = errors.New("decision diagrams already set for network")

	// ErrDimensionMismatch covers inconsistent input counts, array lengths and
	// root counts.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrMalformedTable is returned for truth tables that cannot be realized.
	ErrMalformedTable = errors.New("malformed truth table")

	ErrUndefinedLogarithm = errors.New("logarithm undefined")

	// ErrCrossManagerOperation is returned when diagrams from two managers are
	// combined without a transfer.
	ErrCrossManagerOperation = errors.New("diagrams belong to different managers")

	// ErrPostconditionViolated signals a broken network after a rewrite. It
	// indicates a bug, never a user error.
	ErrPostconditionViolated = errors.New("postcondition violated")
)
