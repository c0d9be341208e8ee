package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mbolis/survey-box/log"
)

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, code string, err error) {
	log.Errorf("%s: %s", code, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Will log an error code at the given level, and send
// an HTTP response with status and default text
func LogStatus(w http.ResponseWriter, status int, level log.Level, code string) {
	log.Log(level, code)
	http.Error(w, http.StatusText(status), status)
}

// Will log an error code and message at the given level,
// and send an HTTP response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	http.Error(w, errMsg, status)
}

// Will log a debug message, and redirect the client to location with status 302
func LogRedirect(w http.ResponseWriter, r *http.Request, code string, location string) {
	log.Debugf("%s: redirect to %s", code, location)
	http.Redirect(w, r, location, http.StatusFound)
}

// Will parse the request form, and on failure log the code at DEBUG level and
// send status 413 for an oversized body or 400 otherwise. Reports whether
// the form was parsed.
func ParseForm(w http.ResponseWriter, r *http.Request, code string) bool {
	err := r.ParseForm()
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "too large") {
		LogStatus(w, http.StatusRequestEntityTooLarge, log.DebugLevel, code+": "+err.Error())
	} else {
		LogStatus(w, http.StatusBadRequest, log.DebugLevel, code+": "+err.Error())
	}
	return false
}
