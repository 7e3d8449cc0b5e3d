package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// businessStatus maps the error taxonomy onto HTTP statuses. Codes not
// listed here are treated as plain bad requests.
var businessStatus = map[string]int{
	"unauthorized":     http.StatusUnauthorized,
	"forbidden":        http.StatusForbidden,
	"not_found":        http.StatusNotFound,
	"already_claimed":  http.StatusBadRequest,
	"invalid_argument": http.StatusBadRequest,
	"conflict":         http.StatusConflict,
}

var businessMessage = map[string]string{
	"unauthorized":     "Authentication required.",
	"forbidden":        "You do not have permission to perform this action.",
	"not_found":        "The requested resource was not found.",
	"already_claimed":  "This salon has already been claimed or assigned.",
	"invalid_argument": "Invalid request data.",
	"conflict":         "The operation conflicts with existing data.",
}

// WriteBusiness translates a BusinessError into its HTTP response and
// reports whether it handled the error. Non-business errors are left to
// the caller.
func WriteBusiness(c *gin.Context, err error) bool {
	var be BusinessError
	if !errors.As(err, &be) {
		return false
	}

	status, ok := businessStatus[be.Code]
	if !ok {
		status = http.StatusBadRequest
	}
	msg, ok := businessMessage[be.Code]
	if !ok {
		msg = "Request could not be processed."
	}

	Write(c, status, be.Code, msg)
	return true
}
