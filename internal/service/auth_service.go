package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/OntriDS/thegame-sub002/internal/auth"
	"github.com/OntriDS/thegame-sub002/internal/middleware"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	operators     auth.OperatorStorage
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, operators auth.OperatorStorage, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		operators:     operators,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Register creates a new operator account.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	if req.Msg.Email == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidEmail)
	}

	operator, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		s.logger.Error("Registration failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(operator)
	if err != nil {
		s.logger.Error("Failed to generate token", "operator_id", operator.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Operator registered successfully", "operator_id", operator.ID, "email", operator.Email)
	return connect.NewResponse(&RegisterResponse{Operator: operator, Token: token}), nil
}

// Login authenticates an operator and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	operator, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(operator)
	if err != nil {
		s.logger.Error("Failed to generate token", "operator_id", operator.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Operator logged in successfully", "operator_id", operator.ID, "email", operator.Email)
	return connect.NewResponse(&LoginResponse{Operator: operator, Token: token}), nil
}

// GetCurrentOperator returns the authenticated operator's account.
func (s *AuthService) GetCurrentOperator(ctx context.Context, req *connect.Request[GetCurrentOperatorRequest]) (*connect.Response[GetCurrentOperatorResponse], error) {
	operatorID := middleware.GetOperatorID(ctx)
	if operatorID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	operator, err := s.operators.GetOperatorByID(ctx, operatorID)
	if err != nil {
		s.logger.Error("GetCurrentOperator failed", "operator_id", operatorID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if operator == nil {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("operator no longer exists"))
	}

	return connect.NewResponse(&GetCurrentOperatorResponse{Operator: operator}), nil
}
