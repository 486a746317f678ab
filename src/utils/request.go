package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sgformer-backend/src/apperror"
)

const MsgInvalidBody = "Invalid request body"

var validate = validator.New()

// ParseBody decodes the JSON body into out, rejecting unknown fields, then
// runs the struct's validate tags.
func ParseBody(c *fiber.Ctx, out interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Validation(MsgInvalidBody, "request body is empty")
		}
		return apperror.Validation(MsgInvalidBody, err.Error())
	}
	if dec.More() {
		return apperror.Validation(MsgInvalidBody, "unexpected data after JSON body")
	}
	return Validate(out)
}

// Validate runs validate tags and turns failures into itemized messages.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation(MsgInvalidBody, err.Error())
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldMessage(fe))
	}
	return apperror.Validation("Validation errors", details...)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}

// ParamID reads an ObjectID route parameter. A malformed id reads as a
// missing resource.
func ParamID(c *fiber.Ctx, name, notFound string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, apperror.NotFound(notFound)
	}
	return id, nil
}
