package service

import (
	"context"
	"strings"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/auth"
	"ecommerce-api/internal/models"
	"ecommerce-api/internal/util"

	"go.uber.org/zap"
)

// ClientStore is the storage surface account management needs.
type ClientStore interface {
	CreateClient(ctx context.Context, c *models.Client) error
	GetClientByID(ctx context.Context, id int64) (*models.Client, error)
	GetClientByEmail(ctx context.Context, email string) (*models.Client, error)
	GetClients(ctx context.Context) ([]models.Client, error)
	UpdateClient(ctx context.Context, c *models.Client) error
	DeleteClient(ctx context.Context, id int64) error
}

// ClientService handles account registration, login and profiles.
type ClientService struct {
	store      ClientStore
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(store ClientStore, tokens *auth.TokenManager, bcryptCost int) *ClientService {
	return &ClientService{
		store:      store,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     util.NamedLogger("clients"),
	}
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ShippingAddress models.Address
	BillingAddress  models.Address
	Role            string
}

// Register creates an account and returns a signed token for it.
func (s *ClientService) Register(ctx context.Context, in RegisterInput) (string, error) {
	ctx, span := util.StartSpan(ctx, "ClientService.Register")
	defer span.End()

	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" || in.Name == "" {
		return "", apperr.New(apperr.InvalidArgument, "Name, email and password are required")
	}

	existing, err := s.store.GetClientByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apperr.New(apperr.InvalidArgument, "Client already exists")
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return "", err
	}

	role := in.Role
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	client := &models.Client{
		Name:            in.Name,
		Email:           email,
		PasswordHash:    hash,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.BillingAddress,
		Role:            role,
	}
	if err := s.store.CreateClient(ctx, client); err != nil {
		return "", err
	}

	s.logger.Info("Client registered", zap.Int64("client_id", client.ID))
	return s.tokens.Issue(client.ID, client.Role)
}

// Login checks credentials and returns a signed token.
func (s *ClientService) Login(ctx context.Context, email, password string) (string, error) {
	ctx, span := util.StartSpan(ctx, "ClientService.Login")
	defer span.End()

	client, err := s.store.GetClientByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return "", err
	}
	if client == nil || !auth.CheckPassword(client.PasswordHash, password) {
		return "", apperr.New(apperr.InvalidArgument, "Invalid credentials")
	}

	return s.tokens.Issue(client.ID, client.Role)
}

// GetClient returns a profile to its owner or an admin.
func (s *ClientService) GetClient(ctx context.Context, principal auth.Principal, clientID int64) (*models.Client, error) {
	if !principal.CanAccess(clientID) {
		return nil, apperr.New(apperr.Forbidden, "Authorization denied")
	}
	return s.store.GetClientByID(ctx, clientID)
}

// ListClients returns all accounts. Admin-only.
func (s *ClientService) ListClients(ctx context.Context, principal auth.Principal) ([]models.Client, error) {
	if !principal.IsAdmin() {
		return nil, apperr.New(apperr.Forbidden, "Authorization denied")
	}
	return s.store.GetClients(ctx)
}

// UpdateInput carries profile fields to change; empty fields are kept.
type UpdateInput struct {
	Name            string
	Email           string
	ShippingAddress *models.Address
	BillingAddress  *models.Address
}

// UpdateClient edits a profile. Owner or admin only.
func (s *ClientService) UpdateClient(ctx context.Context, principal auth.Principal, clientID int64, in UpdateInput) (*models.Client, error) {
	if !principal.CanAccess(clientID) {
		return nil, apperr.New(apperr.Forbidden, "Authorization denied")
	}

	client, err := s.store.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		client.Name = in.Name
	}
	if in.Email != "" {
		client.Email = strings.TrimSpace(strings.ToLower(in.Email))
	}
	if in.ShippingAddress != nil {
		client.ShippingAddress = *in.ShippingAddress
	}
	if in.BillingAddress != nil {
		client.BillingAddress = *in.BillingAddress
	}

	if err := s.store.UpdateClient(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// DeleteClient removes an account. Admin-only.
func (s *ClientService) DeleteClient(ctx context.Context, principal auth.Principal, clientID int64) error {
	if !principal.IsAdmin() {
		return apperr.New(apperr.Forbidden, "Authorization denied")
	}
	return s.store.DeleteClient(ctx, clientID)
}
