package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// recommendRequest mirrors the engine's POST /api/recommend body. MovieName
// is a pointer so a missing field can be told apart from an empty one.
type recommendRequest struct {
	MovieName        *string `json:"movie_name" validate:"required"`
	NRecommendations int     `json:"n_recommendations" validate:"omitempty,min=1,max=50"`
}

// searchRequest is the body of POST /api/search.
type searchRequest struct {
	Query string `json:"query" validate:"max=200"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// decodeJSON reads a bounded JSON body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return fmt.Errorf("decode body: %w", err)
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, translateError(fe))
	}
	return &validationError{fields: verrs, msg: strings.Join(msgs, "; ")}
}

type validationError struct {
	fields validator.ValidationErrors
	msg    string
}

func (e *validationError) Error() string { return e.msg }

// missing reports whether field failed its required rule.
func (e *validationError) missing(field string) bool {
	for _, fe := range e.fields {
		if fe.Field() == field && fe.Tag() == "required" {
			return true
		}
	}
	return false
}

func translateError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
