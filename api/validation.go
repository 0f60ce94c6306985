package api

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"seatquote/core/catalog"
	"seatquote/core/referral"
	"seatquote/core/types"
)

// Validator wraps the go-playground validator with catalog-aware rules.
type Validator struct {
	validate *validator.Validate
	catalog  *catalog.Catalog
}

// ValidationError represents a single field validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

// NewValidator creates a Validator whose plan_key and seats rules follow c.
func NewValidator(c *catalog.Catalog) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	val := &Validator{validate: v, catalog: c}
	_ = v.RegisterValidation("plan_key", val.validatePlanKey)
	_ = v.RegisterValidation("seats", val.validateSeats)
	_ = v.RegisterValidation("billing_cycle", validateBillingCycle)
	_ = v.RegisterValidation("affiliate_code", validateAffiliateCode)
	return val
}

// Validate validates a struct and returns ValidationErrors if validation fails.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) {
		return err
	}

	result := make(ValidationErrors, 0, len(fieldErrors))
	for _, e := range fieldErrors {
		result = append(result, ValidationError{
			Field:   e.Field(),
			Message: v.message(e),
		})
	}
	return result
}

func (v *Validator) validatePlanKey(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let 'required' handle empty values
	}
	_, err := v.catalog.Plan(types.PlanKey(value))
	return err == nil
}

func (v *Validator) validateSeats(fl validator.FieldLevel) bool {
	n := int(fl.Field().Int())
	return n >= v.catalog.MinSeats() && n <= v.catalog.MaxSeats()
}

func validateBillingCycle(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return types.BillingCycle(value).Valid()
}

func validateAffiliateCode(fl validator.FieldLevel) bool {
	value := referral.Normalize(fl.Field().String())
	if value == "" {
		return true
	}
	return referral.Valid(value)
}

func (v *Validator) message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "plan_key":
		return "must be one of: " + v.planKeys()
	case "seats":
		return fmt.Sprintf("must be between %d and %d", v.catalog.MinSeats(), v.catalog.MaxSeats())
	case "affiliate_code":
		return fmt.Sprintf("must be at most %d letters, digits, '_' or '-'", referral.MaxLength)
	case "billing_cycle":
		return fmt.Sprintf("must be one of: %s, %s", types.BillingMonthly, types.BillingAnnual)
	default:
		return "is invalid"
	}
}

func (v *Validator) planKeys() string {
	plans := v.catalog.Plans()
	keys := make([]string, len(plans))
	for i, p := range plans {
		keys[i] = string(p.Key)
	}
	return strings.Join(keys, ", ")
}

// jsonFieldName reports fields by their JSON name
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
