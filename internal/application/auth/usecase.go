package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bazaartech/inventory-ledger/internal/application/dto"
	"github.com/bazaartech/inventory-ledger/internal/domain"
	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
	"github.com/bazaartech/inventory-ledger/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// ActivityRecorder puerto mínimo para auditar eventos de auth.
type ActivityRecorder interface {
	Record(ctx context.Context, actor, action, module string, details entity.ActivityDetails)
}

// AuthUseCase casos de uso de autenticación: registro, login y logout.
type AuthUseCase struct {
	userRepo repository.UserRepository
	activity ActivityRecorder
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, activity ActivityRecorder, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, activity: activity, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleStaff
	}
	if role != entity.RoleAdmin && role != entity.RoleStaff {
		return nil, domain.NewValidationError("role", "debe ser admin o staff")
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		PhoneNumber:  in.PhoneNumber,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	if uc.activity != nil {
		uc.activity.Record(ctx, user.ID, "register", entity.ActivityModuleAuth, entity.ActivityDetails{Kind: entity.DetailKindAuth})
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if uc.activity != nil {
		uc.activity.Record(ctx, user.ID, "login", entity.ActivityModuleAuth, entity.ActivityDetails{Kind: entity.DetailKindAuth})
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Logout solo audita: el token JWT es stateless y expira solo.
func (uc *AuthUseCase) Logout(ctx context.Context, userID string) {
	if uc.activity != nil {
		uc.activity.Record(ctx, userID, "logout", entity.ActivityModuleAuth, entity.ActivityDetails{Kind: entity.DetailKindAuth})
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
