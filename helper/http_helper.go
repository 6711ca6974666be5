package helper

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"task-management-api/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// HTTPHelper shapes every response body the API emits. Errors follow the
// {"error": ..., "details": {...}} convention; validation failures carry
// per-field messages in details.
type HTTPHelper struct {
	Translator ut.Translator
}

// NewHTTPHelper wires an English translator into gin's binding validator and
// makes field errors report JSON/form names instead of struct field names.
func NewHTTPHelper() *HTTPHelper {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			}
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
		_ = entranslations.RegisterDefaultTranslations(v, translator)
	}

	return &HTTPHelper{Translator: translator}
}

// GetStatusCode maps domain errors to HTTP statuses.
func (u *HTTPHelper) GetStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, models.ErrTaskNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// SendValidationError renders a binding failure as a 422 with translated
// per-field messages.
func (u *HTTPHelper) SendValidationError(c *gin.Context, err error) {
	details := u.EmptyDetails()

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		translated := validationErrors.Translate(u.Translator)
		for _, fieldErr := range validationErrors {
			details[fieldErr.Field()] = translated[fieldErr.Namespace()]
		}
	} else {
		details["body"] = err.Error()
	}

	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "Validation Failed",
		"details": details,
	})
}

// SendFieldError reports a single-field validation failure detected outside
// the binding layer (e.g. a due date in the past).
func (u *HTTPHelper) SendFieldError(c *gin.Context, field, message string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "Validation Failed",
		"details": gin.H{field: message},
	})
}

func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   message,
		"details": u.EmptyDetails(),
	})
}

func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":   message,
		"details": u.EmptyDetails(),
	})
}

// SendDomainError picks the status from the error and renders the standard
// error body.
func (u *HTTPHelper) SendDomainError(c *gin.Context, err error) {
	status := u.GetStatusCode(err)
	message := err.Error()
	if status == http.StatusNotFound {
		message = "Task not found"
	}
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	c.JSON(status, gin.H{
		"error":   message,
		"details": u.EmptyDetails(),
	})
}

func (u *HTTPHelper) EmptyDetails() map[string]interface{} {
	return make(map[string]interface{})
}
