package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/repository"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/util"
)

// ErrInvalidCredentials is returned on a failed login without revealing
// whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService registers workers and issues JWTs.
type AuthService struct {
	workers   WorkerStore
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthService(workers WorkerStore, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{workers: workers, jwtSecret: jwtSecret, logger: logger}
}

type RegisterInput struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Role       string   `json:"role,omitempty"`
	Employment string   `json:"employment,omitempty"`
	Salary     *float64 `json:"monthly_salary,omitempty"`
}

// Register creates a worker account. Role defaults to DEVELOPER and
// employment to IN_HOUSE when not provided.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.Worker, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	if _, err := s.workers.FindByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrInvalidInput)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := model.Role(in.Role)
	switch role {
	case model.RoleAdmin, model.RoleProjectManager, model.RoleDeveloper, model.RoleDesigner, model.RoleQC:
	case "":
		role = model.RoleDeveloper
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}

	employment := model.EmploymentKind(in.Employment)
	switch employment {
	case model.EmploymentInHouse, model.EmploymentFreelancer:
	case "":
		employment = model.EmploymentInHouse
	default:
		return nil, fmt.Errorf("%w: unknown employment kind %q", ErrInvalidInput, in.Employment)
	}

	w := &model.Worker{
		Name:          in.Name,
		Email:         in.Email,
		PasswordHash:  hash,
		Role:          role,
		Employment:    employment,
		MonthlySalary: in.Salary,
		Active:        true,
	}
	if err := s.workers.Create(ctx, w); err != nil {
		return nil, err
	}

	s.logger.Info("Worker registered",
		zap.Int64("worker_id", w.ID),
		zap.String("role", string(w.Role)),
	)
	return w, nil
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.Worker, error) {
	w, err := s.workers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !util.CheckPassword(password, w.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(w.ID, string(w.Role), s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, w, nil
}
