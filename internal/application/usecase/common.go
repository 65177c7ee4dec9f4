package usecase

import (
	"net/mail"
	"strconv"
	"strings"

	"github.com/jhoicas/wegesa-api/internal/domain"
)

// parseActive interpreta el filtro ?active=; vacío no filtra.
func parseActive(s string) (*bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, domain.Invalid("active debe ser true o false")
	}
	return &v, nil
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// validEmail acepta vacío si optional.
func validEmail(email string, optional bool) error {
	if email == "" && optional {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.Invalid("email inválido %q", email)
	}
	return nil
}
