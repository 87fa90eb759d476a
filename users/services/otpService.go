package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/users/repositories"

	"github.com/pquerna/otp/totp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// OtpService manages authenticator (TOTP) setup and verification. Pending
// setups live in Redis; a confirmed secret is persisted on the user row.
type OtpService interface {
	GenerateTOTPSecret(user *models.User) (*TOTPSetup, error)
	ConfirmTOTPSetup(user *models.User, code string) error
	ValidateTOTPCode(user *models.User, code string) bool
	DisableTOTP(user *models.User) error
}

type TOTPSetup struct {
	Secret    string `json:"secret"`
	QRCodeURL string `json:"qr_code_url"`
	ManualKey string `json:"manual_key"`
}

type pendingSetup struct {
	Secret    string    `json:"secret"`
	CreatedAt time.Time `json:"created_at"`
}

type otpService struct {
	redisClient *redis.Client
	userRepo    repositories.UserRepository
	ctx         context.Context
}

func NewOtpService(redisClient *redis.Client, userRepo repositories.UserRepository, ctx context.Context) OtpService {
	return &otpService{redisClient: redisClient, userRepo: userRepo, ctx: ctx}
}

func pendingKey(userID string) string {
	return "totp_setup:" + userID
}

func (os *otpService) GenerateTOTPSecret(user *models.User) (*TOTPSetup, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "SignOps",
		AccountName: user.Email,
		SecretSize:  32,
	})
	if err != nil {
		config.Logger.Error("Failed to generate TOTP secret", zap.Error(err))
		return nil, err
	}

	pending := pendingSetup{Secret: key.Secret(), CreatedAt: time.Now()}
	jsonData, err := json.Marshal(pending)
	if err != nil {
		return nil, err
	}

	// Ten minutes to scan the QR code and confirm
	if err := os.redisClient.Set(os.ctx, pendingKey(user.ID.String()), string(jsonData), 10*time.Minute).Err(); err != nil {
		config.Logger.Error("Failed to store pending TOTP setup", zap.Error(err))
		return nil, err
	}

	return &TOTPSetup{
		Secret:    key.Secret(),
		QRCodeURL: key.URL(),
		ManualKey: key.Secret(),
	}, nil
}

// ConfirmTOTPSetup verifies a code against the pending secret and, on
// success, persists the secret and switches the user to authenticator login.
func (os *otpService) ConfirmTOTPSetup(user *models.User, code string) error {
	data := os.redisClient.Get(os.ctx, pendingKey(user.ID.String())).Val()
	if data == "" {
		return fmt.Errorf("no pending authenticator setup, or it has expired")
	}

	var pending pendingSetup
	if err := json.Unmarshal([]byte(data), &pending); err != nil {
		return err
	}

	if !totp.Validate(code, pending.Secret) {
		return fmt.Errorf("invalid authenticator code")
	}

	user.TOTPSecret = pending.Secret
	user.AuthMethod = models.AuthMethodAuthenticator
	if _, err := os.userRepo.UpdateUser(user); err != nil {
		return fmt.Errorf("failed to persist authenticator secret: %w", err)
	}

	os.redisClient.Del(os.ctx, pendingKey(user.ID.String()))
	config.Logger.Info("Authenticator enabled for user", zap.String("user_id", user.ID.String()))
	return nil
}

func (os *otpService) ValidateTOTPCode(user *models.User, code string) bool {
	if user.TOTPSecret == "" {
		return false
	}
	valid := totp.Validate(code, user.TOTPSecret)
	if !valid {
		config.Logger.Warn("Invalid authenticator code", zap.String("user_id", user.ID.String()))
	}
	return valid
}

func (os *otpService) DisableTOTP(user *models.User) error {
	user.TOTPSecret = ""
	user.AuthMethod = models.AuthMethodPassword
	if _, err := os.userRepo.UpdateUser(user); err != nil {
		return fmt.Errorf("failed to disable authenticator: %w", err)
	}
	config.Logger.Info("Authenticator disabled for user", zap.String("user_id", user.ID.String()))
	return nil
}
