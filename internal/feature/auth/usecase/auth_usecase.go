// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"shop_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	minUsernameLength = 3
	maxUsernameLength = 30
)

// usernamePattern は英数字とアンダースコアのみを許可します。
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスまたはユーザー名が既に存在する場合、エラーを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	// ユーザー名は大文字小文字を区別して照合します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update は既存ユーザーの変更を永続化します。
	Update(ctx context.Context, user *entity.User) error

	// FindAll は登録済みの全ユーザーを取得します（管理者用）。
	FindAll(ctx context.Context) ([]entity.User, error)
}

// TokenGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, role entity.Role) (string, error)
}

// authUsecase は認証・アカウント管理のビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenGenerator) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
	}
}

// validatePassword はパスワードが強度要件（8文字以上、大文字・小文字・数字を含む）を
// 満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, minPasswordLength)
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("%w: must contain upper case, lower case and a digit", ErrWeakPassword)
	}
	return nil
}

// validateUsername はユーザー名が形式要件を満たしているかチェックします。
func validateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return ErrInvalidUsername
	}
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// normalizeEmail はメールアドレスを小文字に正規化します。
// メールアドレスの一意性は大文字小文字を区別しません。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録します。
// メールアドレスとユーザー名の重複は事前チェックと、競合時はアダプター側の
// ユニーク制約マッピングの両方で検出されます。
func (u *authUsecase) Signup(ctx context.Context, name, email, username, password string) (*entity.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	email = normalizeEmail(email)

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}
	if _, err := u.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:     name,
		Email:    email,
		Username: username,
		Password: string(hashed),
		Role:     entity.RoleUser,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// identifierにはメールアドレス（大文字小文字を区別しない）または
// ユーザー名（大文字小文字を区別する）を指定できます。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, identifier, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(identifier))
	if err != nil {
		user, err = u.users.FindByUsername(ctx, identifier)
	}

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.GenerateToken(user.ID, user.Role)
	if tokenErr != nil {
		return "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return token, nil
}

// GetProfile は指定されたIDのユーザーを取得します。
func (u *authUsecase) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfile は表示名を更新します。
func (u *authUsecase) UpdateProfile(ctx context.Context, userID uint, name string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword は現在のパスワードを検証した上で新しいパスワードに更新し、
// PasswordChangedAtを更新します。これにより過去に発行されたトークンは
// すべて無効になります（platform/jwtのミドルウェア参照）。
func (u *authUsecase) ChangePassword(ctx context.Context, userID uint, current, newPassword string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	now := time.Now()
	user.Password = string(hashed)
	user.PasswordChangedAt = &now
	return u.users.Update(ctx, user)
}

// ListUsers は全ユーザーを返します。管理者専用のエンドポイントから呼ばれます。
func (u *authUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	return u.users.FindAll(ctx)
}
