package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/dto"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/model"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/repository"
)

func setupTestUserService() (UserService, *repository.Repository) {
	repo := newTestRepo()
	return NewUserService(repo, zap.NewNop()), repo
}

func userCreateRequest(email, role string) *dto.CreateUserRequest {
	return &dto.CreateUserRequest{
		Name:            "Maria",
		PaternalSurname: "Gomez",
		Email:           email,
		Password:        "secret123",
		Role:            role,
		Area:            "library",
	}
}

func TestCreateUser_Success(t *testing.T) {
	svc, repo := setupTestUserService()

	result, err := svc.Create(context.Background(), userCreateRequest("maria@test.com", "guard"))
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if result.Role != "guard" {
		t.Errorf("expected role guard, got %s", result.Role)
	}

	// The stored hash must verify against the plain password.
	stored, err := repo.User.GetByID(context.Background(), result.ID)
	if err != nil {
		t.Fatal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")) != nil {
		t.Error("the stored password hash should match the submitted password")
	}
}

func TestCreateUser_UnknownRole(t *testing.T) {
	svc, _ := setupTestUserService()

	_, err := svc.Create(context.Background(), userCreateRequest("maria@test.com", "superuser"))
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got: %v", err)
	}
}

func TestCreateUser_WeakPassword(t *testing.T) {
	svc, _ := setupTestUserService()

	req := userCreateRequest("maria@test.com", "guard")
	req.Password = "short"
	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got: %v", err)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, _ := setupTestUserService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, userCreateRequest("maria@test.com", "guard")); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Create(ctx, userCreateRequest("maria@test.com", "user"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got: %v", err)
	}
}

func TestListUsers_RoleFilter(t *testing.T) {
	svc, _ := setupTestUserService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, userCreateRequest("guard1@test.com", "guard")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, userCreateRequest("coord1@test.com", "school_admin")); err != nil {
		t.Fatal(err)
	}

	guards, err := svc.List(ctx, "guard", "")
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if len(guards) != 1 {
		t.Errorf("expected 1 guard, got %d", len(guards))
	}

	all, err := svc.List(ctx, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 users, got %d", len(all))
	}

	if _, err := svc.List(ctx, "superuser", ""); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("an unknown role filter should be rejected, got: %v", err)
	}
}

func TestListUsers_AreaFilter(t *testing.T) {
	svc, _ := setupTestUserService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, userCreateRequest("coord1@test.com", "school_admin")); err != nil {
		t.Fatal(err)
	}
	other := userCreateRequest("coord2@test.com", "school_admin")
	other.Area = "gym"
	if _, err := svc.Create(ctx, other); err != nil {
		t.Fatal(err)
	}

	inGym, err := svc.List(ctx, "", "gym")
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if len(inGym) != 1 {
		t.Errorf("expected 1 user in gym, got %d", len(inGym))
	}
	if len(inGym) == 1 && inGym[0].Email != "coord2@test.com" {
		t.Errorf("expected coord2, got %s", inGym[0].Email)
	}
}

func TestGetUserByName(t *testing.T) {
	svc, _ := setupTestUserService()
	ctx := context.Background()

	created, err := svc.Create(ctx, userCreateRequest("maria@test.com", "guard"))
	if err != nil {
		t.Fatal(err)
	}

	found, err := svc.GetByName(ctx, "Maria", "Gomez", "")
	if err != nil {
		t.Fatalf("GetByName should succeed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("expected %s, got %s", created.ID, found.ID)
	}

	if _, err := svc.GetByName(ctx, "Nadie", "Gomez", ""); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestUpdateUser_RoleChangeValidated(t *testing.T) {
	svc, _ := setupTestUserService()
	ctx := context.Background()

	created, err := svc.Create(ctx, userCreateRequest("maria@test.com", "guard"))
	if err != nil {
		t.Fatal(err)
	}

	good := string(model.RoleSchoolAdmin)
	result, err := svc.Update(ctx, created.ID, &dto.UpdateUserRequest{Role: &good})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if result.Role != good {
		t.Errorf("expected role %s, got %s", good, result.Role)
	}

	bad := "superuser"
	if _, err := svc.Update(ctx, created.ID, &dto.UpdateUserRequest{Role: &bad}); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got: %v", err)
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc, _ := setupTestUserService()

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}
