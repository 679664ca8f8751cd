package service

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/OntriDS/thegame-sub002/internal/auth"
	"github.com/OntriDS/thegame-sub002/internal/calculator"
	"github.com/OntriDS/thegame-sub002/internal/currency"
	"github.com/OntriDS/thegame-sub002/internal/storage"
)

var errAuthRequired = errors.New("authentication required")

// toConnectError maps domain and storage errors onto Connect codes.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	var inputErr *calculator.InputError
	switch {
	case errors.As(err, &inputErr), errors.Is(err, currency.ErrInvalidRate):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidEmail):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(format string, args ...any) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}
