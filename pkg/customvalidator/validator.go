package customvalidator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"solicitation-system/pkg/constants"
	apperrors "solicitation-system/pkg/errors"
)

// DateLayout é o formato dos campos de data dos formulários.
const DateLayout = "2006-01-02"

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterCustomValidations registra as regras do domínio no validador.
func RegisterCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"email":               isGoodEmailFormat,
		"urgency":             isUrgency,
		"service_category":    isServiceCategory,
		"solicitation_status": isSolicitationStatus,
		"date_ymd":            isDate,
		"not_blank":           isNotBlank,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}

	// Mensagens usam o nome JSON do campo, que é o que o formulário mostra.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return nil
}

// New devolve um validador já com as regras do domínio.
func New() *validator.Validate {
	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		panic(err)
	}
	return v
}

// Struct valida s e converte as falhas em *apperrors.ValidationError.
func Struct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return &apperrors.ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "not_blank":
		return "campo obrigatório"
	case "email":
		return "e-mail inválido"
	case "min":
		return fmt.Sprintf("mínimo de %s caracteres", fe.Param())
	case "oneof":
		return fmt.Sprintf("deve ser um de: %s", fe.Param())
	case "urgency":
		return "urgência desconhecida"
	case "service_category":
		return "tipo de serviço desconhecido"
	case "solicitation_status":
		return "status desconhecido"
	case "date_ymd":
		return "data inválida, use AAAA-MM-DD"
	}
	return fmt.Sprintf("inválido (%s)", fe.Tag())
}

func stringValue(fl validator.FieldLevel) (string, bool) {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return field.String(), true
	case reflect.Ptr:
		if field.IsNil() {
			return "", false
		}
		return field.Elem().String(), true
	}
	return "", false
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func isNotBlank(fl validator.FieldLevel) bool {
	s, ok := stringValue(fl)
	return ok && strings.TrimSpace(s) != ""
}

func isUrgency(fl validator.FieldLevel) bool {
	s, ok := stringValue(fl)
	if !ok {
		return true
	}
	_, known := constants.ParseUrgency(s)
	return known
}

func isServiceCategory(fl validator.FieldLevel) bool {
	s, ok := stringValue(fl)
	if !ok {
		return true
	}
	_, known := constants.ParseServiceCategory(s)
	return known
}

// O status é um enum aberto no backend; aqui só aceitamos os conhecidos.
func isSolicitationStatus(fl validator.FieldLevel) bool {
	s, ok := stringValue(fl)
	if !ok {
		return true
	}
	for _, known := range constants.KnownStatuses {
		if strings.EqualFold(strings.TrimSpace(s), known) {
			return true
		}
	}
	return constants.IsFinalStatus(s)
}

func isDate(fl validator.FieldLevel) bool {
	s, ok := stringValue(fl)
	if !ok || s == "" {
		return true
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
