package http

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotelops-api/pkg/password"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// los mensajes usan el nombre del campo JSON
		validate.RegisterTagNameFunc(jsonFieldName)
		_ = validate.RegisterValidation("bcrypt", bcryptLength)
	})
	return validate
}

// bindJSON parsea el cuerpo y valida los tags del DTO antes de cualquier I/O.
// Si falla ya escribió la respuesta 400 y devuelve false.
func bindJSON(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, fail(c, fiber.StatusBadRequest, "INVALID_BODY", "Datos inválidos", "cuerpo inválido")
	}
	return checkStruct(c, out)
}

// bindQuery igual que bindJSON para parámetros de query.
func bindQuery(c *fiber.Ctx, out any) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, fail(c, fiber.StatusBadRequest, "INVALID_QUERY", "Datos inválidos", "parámetros inválidos")
	}
	return checkStruct(c, out)
}

func checkStruct(c *fiber.Ctx, out any) (bool, error) {
	if err := requestValidator().Struct(out); err != nil {
		return false, fail(c, fiber.StatusBadRequest, "VALIDATION", "Datos inválidos", validationMessage(err))
	}
	return true, nil
}

// bcryptLength bcrypt rechaza más de 72 bytes; max= cuenta caracteres.
func bcryptLength(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= password.MaxBytes
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "entrada inválida"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " es requerido"
	case "email":
		return f + " debe ser un email válido"
	case "e164":
		return f + " debe estar en formato internacional (+573001234567)"
	case "alphanum":
		return f + " solo admite letras y números"
	case "min":
		return f + " debe tener al menos " + fe.Param()
	case "max":
		return f + " admite como máximo " + fe.Param()
	case "bcrypt":
		return f + " admite como máximo " + strconv.Itoa(password.MaxBytes) + " bytes"
	case "oneof":
		return f + " debe ser uno de: " + fe.Param()
	default:
		return f + " es inválido"
	}
}
