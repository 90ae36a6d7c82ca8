package utils

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openscribe/blogapi/models"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,20}$`)
	titlePattern    = regexp.MustCompile(`^[a-zA-Z0-9 ]{1,100}$`)

	registerOnce sync.Once
)

// RegisterValidators installs the application's custom binding rules on gin's
// validator engine. Safe to call more than once; the router and tests both
// call it.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		// Report failures under the wire field name, not the Go field name.
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				if name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]; name != "" && name != "-" {
					return name
				}
			}
			return field.Name
		})

		_ = v.RegisterValidation("usernamefmt", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("posttitle", func(fl validator.FieldLevel) bool {
			return titlePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
			return strongPassword(fl.Field().String())
		})
		_ = v.RegisterValidation("blogcategory", func(fl validator.FieldLevel) bool {
			return models.ValidCategory(fl.Field().String())
		})
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return primitive.IsValidObjectID(fl.Field().String())
		})
		_ = v.RegisterValidation("sortdir", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "asc" || s == "desc"
		})
	})
}

// strongPassword requires at least 8 characters with one lowercase letter,
// one uppercase letter, one digit and one symbol.
func strongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// BindingError converts a gin binding failure into the API's validation
// response: every failing field aggregated into one field->message map. Bodies
// that fail to parse at all get a generic 400.
func BindingError(ctx *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		FieldErrors(ctx, fields)
		return
	}
	Error(ctx, http.StatusBadRequest, "Invalid request payload")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "Invalid E-Mail address"
	case "usernamefmt":
		return "Username can only contain letters and numbers and must be between 3 and 20 characters long"
	case "strongpwd":
		return "Password must be at least 8 characters long and contain at least one lowercase letter, one uppercase letter, one number, and one symbol"
	case "posttitle":
		return "Title can only contain letters and numbers and must be less than 100 characters long"
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s characters", capitalize(fe.Field()), fe.Param())
	case "blogcategory":
		return "Invalid blog category"
	case "objectid":
		if fe.Field() == "author" {
			return "Invalid author id"
		}
		return "Invalid post id"
	case "sortdir":
		return "Sort direction must be asc or desc"
	case "required", "min":
		if fe.Field() == "page" {
			return "Page must be a positive integer"
		}
		return fmt.Sprintf("%s cannot be empty", capitalize(fe.Field()))
	default:
		return "Invalid value"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
