package auth

import (
	"context"
	"errors"
	"strings"

	"visitor-admission/internal/domain/employee"

	"golang.org/x/crypto/bcrypt"
)

// AccessSigner mints employee access tokens.
type AccessSigner interface {
	SignAccess(employeeID uint64, email string) (string, error)
}

type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type EmployeeDTO struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Email      string `json:"email"`
}

type Usecase struct {
	employees employee.Repository
	tokens    AccessSigner
	cost      int
}

func NewUsecase(employees employee.Repository, tokens AccessSigner) *Usecase {
	return &Usecase{employees: employees, tokens: tokens, cost: bcrypt.DefaultCost}
}

func (u *Usecase) Login(ctx context.Context, email, password string) (*TokenDTO, error) {
	e, err := u.employees.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, employee.ErrNotFound):
		return nil, employee.ErrInvalidCredentials
	case err != nil:
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)) != nil {
		return nil, employee.ErrInvalidCredentials
	}
	tok, err := u.tokens.SignAccess(e.ID, e.Email)
	if err != nil {
		return nil, err
	}
	return &TokenDTO{AccessToken: tok, TokenType: "bearer"}, nil
}

func (u *Usecase) Profile(ctx context.Context, employeeID uint64) (*EmployeeDTO, error) {
	e, err := u.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toDTO(e), nil
}

// CreateEmployee stores a new employee with a bcrypt-hashed password.
func (u *Usecase) CreateEmployee(ctx context.Context, name, department, email, password string) (*EmployeeDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return nil, err
	}
	e := &employee.Employee{
		Name:         strings.TrimSpace(name),
		Department:   strings.TrimSpace(department),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
	}
	if err := u.employees.Create(ctx, e); err != nil {
		return nil, err
	}
	return toDTO(e), nil
}

func toDTO(e *employee.Employee) *EmployeeDTO {
	return &EmployeeDTO{ID: e.ID, Name: e.Name, Department: e.Department, Email: e.Email}
}
