package service

import (
	"context"
	"errors"
	"testing"

	"reflect360-be/internal/config"
	"reflect360-be/internal/dto"
	"reflect360-be/internal/repository/specification"

	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(factory *fakeUowFactory, mail *fakeMailer) IAuthService {
	return NewAuthService(factory, mail, nil, config.AuthConfig{
		JwtSecret:        "test-secret",
		RegistrationCode: "LETMEIN",
	}, false)
}

func TestRegisterWithWrongCodeCreatesNoUser(t *testing.T) {
	factory := newFakeUowFactory()
	svc := newTestAuthService(factory, &fakeMailer{})

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Dana",
		Email:    "dana@example.com",
		Password: "password123",
		Code:     "WRONG",
	})
	if !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("err = %v, want ErrInvalidCode", err)
	}

	count, _ := factory.uow.users.Count(context.Background())
	if count != 0 {
		t.Errorf("a wrong code must not create a user record, count = %d", count)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	factory := newFakeUowFactory()
	svc := newTestAuthService(factory, &fakeMailer{})

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Dana",
		Email:    "dana@example.com",
		Password: "password123",
		Code:     "LETMEIN",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.Token == "" {
		t.Error("register must return a session token")
	}

	// Stored hash is bcrypt, never the plaintext.
	stored, _ := factory.uow.users.FindOne(context.Background(), specification.ByEmail{Email: "dana@example.com"})
	if stored == nil {
		t.Fatal("user not stored")
	}
	if stored.PasswordHash == "password123" {
		t.Error("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")) != nil {
		t.Error("stored hash does not match the password")
	}

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "dana@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.Email != "dana@example.com" {
		t.Errorf("login user = %+v", login.User)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	factory := newFakeUowFactory()
	svc := newTestAuthService(factory, &fakeMailer{})

	req := &dto.RegisterRequest{FullName: "Dana", Email: "dana@example.com", Password: "password123", Code: "LETMEIN"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestLoginFoldsUnknownEmailAndBadPassword(t *testing.T) {
	factory := newFakeUowFactory()
	svc := newTestAuthService(factory, &fakeMailer{})

	svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Dana", Email: "dana@example.com", Password: "password123", Code: "LETMEIN",
	})

	_, errUnknown := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "x"})
	_, errBadPass := svc.Login(context.Background(), &dto.LoginRequest{Email: "dana@example.com", Password: "wrong"})

	if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errBadPass, ErrInvalidCredentials) {
		t.Errorf("both cases must yield ErrInvalidCredentials, got %v / %v", errUnknown, errBadPass)
	}
}

func TestResetPasswordRequiresCode(t *testing.T) {
	factory := newFakeUowFactory()
	mail := &fakeMailer{}
	svc := newTestAuthService(factory, mail)

	svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Dana", Email: "dana@example.com", Password: "password123", Code: "LETMEIN",
	})

	err := svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Email: "dana@example.com", Code: "WRONG", NewPassword: "newpassword1",
	})
	if !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("err = %v, want ErrInvalidCode", err)
	}

	if err := svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Email: "dana@example.com", Code: "LETMEIN", NewPassword: "newpassword1",
	}); err != nil {
		t.Fatalf("reset with right code: %v", err)
	}

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "dana@example.com", Password: "newpassword1",
	}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}

func TestAuthOfflineMode(t *testing.T) {
	svc := NewAuthService(newFakeUowFactory(), &fakeMailer{}, nil, config.AuthConfig{
		JwtSecret: "s", RegistrationCode: "LETMEIN",
	}, true)

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "a@b.c", Password: "x"}); !errors.Is(err, ErrCloudDisabled) {
		t.Errorf("offline login err = %v, want ErrCloudDisabled", err)
	}
	if _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "A", Email: "a@b.c", Password: "password123", Code: "LETMEIN",
	}); !errors.Is(err, ErrCloudDisabled) {
		t.Errorf("offline register err = %v, want ErrCloudDisabled", err)
	}
}
