package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/adapter/remotestore"
	"github.com/YelzhanWeb/storefront/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type ErrorResponse struct {
	Error  string                   `json:"error"`
	Errors []domain.ValidationError `json:"errors,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// поля называем как в JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and runs its validate tags
func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.ValidationErrors{{Field: "body", Message: "invalid JSON body"}}
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		out := make(domain.ValidationErrors, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, domain.ValidationError{Field: fe.Field(), Message: describe(fe)})
		}
		return out
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must not exceed " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func pathInt(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, domain.ValidationErrors{{Field: name, Message: "must be an integer"}}
	}
	return id, nil
}

func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// respondError maps domain and remote errors onto status codes
func respondError(w http.ResponseWriter, lgr logger.Logger, r *http.Request, err error) {
	var verrs domain.ValidationErrors

	switch {
	case errors.As(err, &verrs):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Errors: verrs})

	case errors.Is(err, domain.ErrEmptyUpdate):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrInvalidOrderID),
		errors.Is(err, remotestore.ErrInvalidPath):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  err.Error(),
			Errors: domain.ValidationErrors{{Field: "id", Message: "id contains characters not allowed in a key"}},
		})

	case errors.Is(err, domain.ErrMenuItemNotFound),
		errors.Is(err, domain.ErrCartItemNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})

	default:
		lgr.Error("request_failed", fmt.Sprintf("%s %s failed", r.Method, r.URL.Path), requestID(r), nil, err)
		respondJSON(w, http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	}
}
