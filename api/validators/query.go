package validators

import (
	"net/http"
	"strconv"

	pkgerrors "github.com/ayakevin/shopledger-backend/pkg/errors"
)

// QueryInt parses an optional non-negative integer query parameter, returning
// the fallback when the parameter is absent.
func QueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	if value < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, name+" cannot be negative")
	}
	return value, nil
}
