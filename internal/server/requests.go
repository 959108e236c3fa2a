package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"quoridor-history/internal/domain"
)

const maxBodyBytes = 1 << 20

var errBodyTooLarge = errors.New("request body too large")

// rawFields holds a decoded JSON object keyed by the exact wire names. Lookups
// are case-sensitive, unlike struct decoding.
type rawFields map[string]json.RawMessage

// requireString reads a non-empty string field. Absent and null are both
// reported as missing.
func (f rawFields) requireString(field string) (string, *domain.FieldError) {
	var v *string
	if raw, ok := f[field]; ok {
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", &domain.FieldError{
				Field:   field,
				Message: "str type expected",
				Type:    domain.ErrTypeNotString,
			}
		}
	}
	if fe := domain.RequireString(field, v); fe != nil {
		return "", fe
	}
	return *v, nil
}

type createStatusCheckRequest struct {
	ClientName string
}

func bindCreateStatusCheck(fields rawFields) (createStatusCheckRequest, error) {
	var req createStatusCheckRequest
	var nameErr *domain.FieldError
	req.ClientName, nameErr = fields.requireString("client_name")
	return req, domain.Collect(nameErr)
}

type createGameResultRequest struct {
	WinnerName string
	GameMode   string
}

func bindCreateGameResult(fields rawFields) (createGameResultRequest, error) {
	var req createGameResultRequest
	var winnerErr, modeErr *domain.FieldError
	req.WinnerName, winnerErr = fields.requireString("winner_name")
	req.GameMode, modeErr = fields.requireString("game_mode")
	return req, domain.Collect(winnerErr, modeErr)
}

// decodeBody reads exactly one JSON object from the body. Unknown fields are
// ignored; anything after the object is rejected.
func decodeBody(w http.ResponseWriter, r *http.Request) (rawFields, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	var fields rawFields
	err := dec.Decode(&fields)
	if err == nil {
		err = dec.Decode(&struct{}{})
		if err == io.EOF {
			return fields, nil
		}
		if err == nil {
			err = errors.New("trailing data after JSON body")
		}
		return nil, bodyError(err, "invalid JSON body")
	}

	if errors.Is(err, io.EOF) {
		return nil, bodyError(err, "request body is empty")
	}
	return nil, bodyError(err, "invalid JSON body")
}

func bodyError(err error, msg string) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errBodyTooLarge
	}
	return domain.NewValidationError(domain.FieldError{
		Message: msg,
		Type:    domain.ErrTypeJSONDecode,
	})
}
