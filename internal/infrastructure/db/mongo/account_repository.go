package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/deviolabs/accounts-api/internal/core/domain"
	"github.com/deviolabs/accounts-api/internal/core/ports"
)

const accountCollection = "accounts"

// AccountRepository implements ports.CredentialStore over a MongoDB
// collection, with failed-attempt accounting delegated to a LockoutTracker.
type AccountRepository struct {
	coll        *mongo.Collection
	lockout     ports.LockoutTracker
	maxAttempts int64
}

func NewAccountRepository(db *mongo.Database, lockout ports.LockoutTracker, maxAttempts int) *AccountRepository {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &AccountRepository{
		coll:        db.Collection(accountCollection),
		lockout:     lockout,
		maxAttempts: int64(maxAttempts),
	}
}

type claimDoc struct {
	Type  string `bson:"type"`
	Value string `bson:"value"`
}

type accountDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Claims       []claimDoc         `bson:"claims,omitempty"`
	Roles        []string           `bson:"roles,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

// EnsureIndexes creates the unique email index the duplicate-account check
// relies on. Call once at startup.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *AccountRepository) CreateAccount(ctx context.Context, email, password string) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	doc := accountDoc{
		Email:        normaliseEmail(email),
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleUser},
		CreatedAt:    now.Unix(),
		UpdatedAt:    now.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	// fetch back to get ID
	return r.FindByEmail(ctx, email)
}

func (r *AccountRepository) CheckPassword(ctx context.Context, email, password string, lockoutOnFailure bool) (domain.SignInResult, error) {
	account, err := r.FindByEmail(ctx, email)
	if err != nil {
		return domain.SignInResult{}, err
	}

	failures, err := r.lockout.Failures(ctx, account.Email)
	if err != nil {
		return domain.SignInResult{}, err
	}
	if failures >= r.maxAttempts {
		return domain.SignInResult{IsLockedOut: true}, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		if !lockoutOnFailure {
			return domain.SignInResult{}, nil
		}
		n, err := r.lockout.RecordFailure(ctx, account.Email)
		if err != nil {
			return domain.SignInResult{}, err
		}
		if n >= r.maxAttempts {
			return domain.SignInResult{IsLockedOut: true}, nil
		}
		return domain.SignInResult{}, nil
	}

	if err := r.lockout.Reset(ctx, account.Email); err != nil {
		return domain.SignInResult{}, err
	}
	return domain.SignInResult{Succeeded: true}, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": normaliseEmail(email)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	claims := make([]domain.Claim, 0, len(doc.Claims))
	for _, c := range doc.Claims {
		claims = append(claims, domain.Claim{Type: c.Type, Value: c.Value})
	}

	return &domain.Account{
		ID:           doc.ID.Hex(),
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Claims:       claims,
		Roles:        doc.Roles,
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}, nil
}

func (r *AccountRepository) Claims(_ context.Context, account *domain.Account) ([]domain.Claim, error) {
	if account == nil {
		return nil, domain.ErrIdentityNotFound
	}
	return account.Claims, nil
}

func (r *AccountRepository) Roles(_ context.Context, account *domain.Account) ([]string, error) {
	if account == nil {
		return nil, domain.ErrIdentityNotFound
	}
	return account.Roles, nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
