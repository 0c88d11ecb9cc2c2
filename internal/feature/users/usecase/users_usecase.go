package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"gobarber/internal/feature/users/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します（サインアップフォームと同じ）。
	minPasswordLength = 6
	// maxPasswordBytes はbcryptが扱えるパスワードの最大バイト数です。
	maxPasswordBytes = 72
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// usersUsecase はユーザー作成のビジネスロジックを実装します。
type usersUsecase struct {
	users UserRepository
	cost  int
}

// NewUsersUsecase はusersUsecaseの新しいインスタンスを生成します。
// costはbcryptのコストで、0以下の場合はbcrypt.DefaultCostを使用します。
func NewUsersUsecase(users UserRepository, cost int) *usersUsecase {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &usersUsecase{users: users, cost: cost}
}

// CreateUser はハッシュ化されたパスワードで新規ユーザーを登録します。
// メールアドレスは前後の空白を除去し小文字に正規化します。
func (u *usersUsecase) CreateUser(ctx context.Context, name, email, password string) (*entity.User, error) {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: must be at least %d characters long", ErrPasswordTooShort, minPasswordLength)
	}
	// 72文字以内でもマルチバイト文字で72バイトを超える場合がある
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: must be at most %d bytes long", ErrPasswordTooLong, maxPasswordBytes)
	}
	email = strings.ToLower(strings.TrimSpace(email))

	// 重複の事前チェック（最終的な一意性はDBのユニークインデックスで保証）
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Name: strings.TrimSpace(name), Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
