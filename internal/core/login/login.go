package login

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Mode selects how the login form is handled.
type Mode string

const (
	// MODE_SERVER accepts any credentials and stores the user in the session.
	MODE_SERVER Mode = "server"
	// MODE_LOCAL only validates the form shape and never creates a session.
	MODE_LOCAL Mode = "local"
)

const (
	REMEMBER_COOKIE = "rememberedUser"
	SESSION_NAME    = "caec_session"
	SESSION_USER    = "user"
	DASHBOARD_ROUTE = "/inicio"
	LOGIN_ROUTE     = "/login"
)

var (
	ErrMissingFields = errors.New("Por favor, completa todos los campos")
	ErrInvalidEmail  = errors.New("Por favor, ingresa un correo electrónico válido")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case MODE_SERVER, MODE_LOCAL:
		return Mode(value), nil
	case "":
		return MODE_SERVER, nil
	}
	return "", fmt.Errorf("invalid login mode: %s", value)
}

type Credentials struct {
	Email    string
	Password string
	Remember bool
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Validate checks presence of both fields and the email shape.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return ErrMissingFields
	}
	if !IsValidEmail(c.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// Result is the outcome of a login attempt.
type Result struct {
	User     string
	Redirect string
	// session is created only in server mode
	CreateSession bool
	Error         error
}

func Authenticate(mode Mode, c Credentials) Result {
	switch mode {
	case MODE_LOCAL:
		if err := c.Validate(); err != nil {
			return Result{Error: err}
		}
		return Result{User: c.Email, Redirect: DASHBOARD_ROUTE}
	default:
		return Result{User: c.Email, Redirect: DASHBOARD_ROUTE, CreateSession: true}
	}
}

// RememberedEmail is the cookie value to store, empty to clear it.
func RememberedEmail(c Credentials) string {
	if c.Remember {
		return c.Email
	}
	return ""
}

// Step of the animated "syncing" checklist shown before redirecting.
type Step struct {
	Id       string
	Label    string
	Duration time.Duration
}

const SYNC_FINAL_PAUSE = 300 * time.Millisecond

func SyncSteps() []Step {
	return []Step{
		{Id: "loginStep1", Label: "Verificando credenciales", Duration: 600 * time.Millisecond},
		{Id: "loginStep2", Label: "Conectando con el sistema CAEC", Duration: 800 * time.Millisecond},
		{Id: "loginStep3", Label: "Sincronizando sensores", Duration: 700 * time.Millisecond},
		{Id: "loginStep4", Label: "Cargando panel de control", Duration: 600 * time.Millisecond},
	}
}

// SyncDuration is the total time of the checklist including the final pause.
func SyncDuration() time.Duration {
	total := SYNC_FINAL_PAUSE
	for _, s := range SyncSteps() {
		total += s.Duration
	}
	return total
}
