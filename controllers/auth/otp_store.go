package authControllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTP actions: a code is bound to the flow that requested it.
const (
	OTPActionLogin  = "login"
	OTPActionSignup = "signup"
)

// OTPValidity is how long a code stays usable after issuance.
const OTPValidity = 300 * time.Second

// PendingOTP is the single active code for a phone number, plus the signup
// context captured when it was requested.
type PendingOTP struct {
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	Action   string    `json:"action"`
	IssuedAt time.Time `json:"issued_at"`
}

func (p PendingOTP) Expired() bool {
	return time.Since(p.IssuedAt) > OTPValidity
}

// OTPStore holds pending codes keyed by phone. Backed by Redis when
// REDIS_URL is set, an in-process map otherwise.
type OTPStore interface {
	Put(ctx context.Context, phone string, otp PendingOTP) error
	Get(ctx context.Context, phone string) (PendingOTP, bool, error)
	Delete(ctx context.Context, phone string) error
}

// GenerateOTP returns a numeric code of the given length.
func GenerateOTP(length int) string {
	digits := "0123456789"
	var otp strings.Builder
	for i := 0; i < length; i++ {
		otp.WriteByte(digits[rand.Intn(len(digits))])
	}
	return otp.String()
}

// NewOTPStoreFromEnv picks the Redis store when REDIS_URL is configured,
// falling back to the in-memory store.
func NewOTPStoreFromEnv() OTPStore {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return NewMemoryOTPStore()
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("⚠️ Invalid REDIS_URL, using in-memory OTP store: %v", err)
		return NewMemoryOTPStore()
	}
	return &redisOTPStore{client: redis.NewClient(opts)}
}

type memoryOTPStore struct {
	mu      sync.Mutex
	pending map[string]PendingOTP
}

func NewMemoryOTPStore() OTPStore {
	return &memoryOTPStore{pending: make(map[string]PendingOTP)}
}

func (s *memoryOTPStore) Put(_ context.Context, phone string, otp PendingOTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[phone] = otp
	return nil
}

func (s *memoryOTPStore) Get(_ context.Context, phone string) (PendingOTP, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	otp, ok := s.pending[phone]
	if !ok {
		return PendingOTP{}, false, nil
	}
	if otp.Expired() {
		delete(s.pending, phone)
		return PendingOTP{}, false, nil
	}
	return otp, true, nil
}

func (s *memoryOTPStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, phone)
	return nil
}

type redisOTPStore struct {
	client *redis.Client
}

func otpKey(phone string) string { return "otp:" + phone }

func (s *redisOTPStore) Put(ctx context.Context, phone string, otp PendingOTP) error {
	data, err := json.Marshal(otp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, otpKey(phone), data, OTPValidity).Err()
}

func (s *redisOTPStore) Get(ctx context.Context, phone string) (PendingOTP, bool, error) {
	val, err := s.client.Get(ctx, otpKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return PendingOTP{}, false, nil
	}
	if err != nil {
		return PendingOTP{}, false, err
	}
	var otp PendingOTP
	if err := json.Unmarshal([]byte(val), &otp); err != nil {
		// Corrupted entry: discard rather than surface a fatal error.
		s.client.Del(ctx, otpKey(phone))
		return PendingOTP{}, false, nil
	}
	if otp.Expired() {
		s.client.Del(ctx, otpKey(phone))
		return PendingOTP{}, false, nil
	}
	return otp, true, nil
}

func (s *redisOTPStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, otpKey(phone)).Err()
}
