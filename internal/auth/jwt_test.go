package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)

	t.Run("generated token validates", func(t *testing.T) {
		token, err := m.Generate("u-1", "Alice")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != "u-1" || claims.DisplayName != "Alice" {
			t.Errorf("claims = %+v", claims)
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		other := NewJWTManager("another-secret", time.Hour)
		token, _ := other.Generate("u-1", "Alice")
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := NewJWTManager("test-secret-key-32-bytes-long!!!", -time.Minute)
		token, _ := expired.Generate("u-1", "Alice")
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{UserID: "u-1"})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := m.Validate(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("HS512 token: error = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_RequiresUserID(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	signed, err := m.Generate("", "Nobody")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := m.Validate(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}
