package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Quality grade of processed waste (reward multiplier input)
	validate.RegisterValidation("quality_grade", oneOfValidator("A", "B", "C", "D"))

	// Participant kind
	validate.RegisterValidation("account_kind", oneOfValidator("citizen", "bulk_generator"))

	// Redemption reward type
	validate.RegisterValidation("reward_type", oneOfValidator("cash", "voucher", "product", "service"))

	// Segregation violation type
	validate.RegisterValidation("violation_type", oneOfValidator(
		"mixed_waste", "illegal_dumping", "missed_segregation", "pickup_rejection", "overflow"))

	// Violation severity
	validate.RegisterValidation("severity", oneOfValidator("low", "medium", "high", "critical"))

	// Pickup quality feedback
	validate.RegisterValidation("pickup_quality", oneOfValidator("excellent", "good", "poor", "rejected"))

	// Staff role
	validate.RegisterValidation("staff_role", oneOfValidator("collector", "supervisor", "admin"))
}

func oneOfValidator(allowed ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, a := range allowed {
			if value == a {
				return true
			}
		}
		return false
	}
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "quality_grade":
			errors[field] = "Invalid quality grade. Must be: A, B, C, or D"
		case "account_kind":
			errors[field] = "Invalid account kind. Must be: citizen or bulk_generator"
		case "reward_type":
			errors[field] = "Invalid reward type. Must be: cash, voucher, product, or service"
		case "violation_type":
			errors[field] = "Invalid violation type"
		case "severity":
			errors[field] = "Invalid severity. Must be: low, medium, high, or critical"
		case "pickup_quality":
			errors[field] = "Invalid pickup quality. Must be: excellent, good, poor, or rejected"
		case "staff_role":
			errors[field] = "Invalid role. Must be: collector, supervisor, or admin"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
