package dto

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/inventory-ims/internal/domain"
)

// MaxPasswordBytes límite de bcrypt para la contraseña.
const MaxPasswordBytes = 72

// RegisterRequest entrada para registro.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate username de 3 a 50 caracteres y password de al menos 6 caracteres y como máximo 72 bytes.
func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if n := utf8.RuneCountInString(r.Username); n < 3 || n > 50 {
		return fmt.Errorf("%w: username debe tener entre 3 y 50 caracteres", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(r.Password) < 6 {
		return fmt.Errorf("%w: password debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	if len(r.Password) > MaxPasswordBytes {
		return fmt.Errorf("%w: password no puede superar %d bytes", domain.ErrInvalidInput, MaxPasswordBytes)
	}
	return nil
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate exige ambos campos.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" || r.Password == "" {
		return fmt.Errorf("%w: username y password son requeridos", domain.ErrInvalidInput)
	}
	return nil
}

// AuthResponse salida de registro y login.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
