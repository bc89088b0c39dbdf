package validator

import (
	"homepro_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain status/role rules. Empty values pass
// here; 'required' handles presence.
func registerCustomRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"is-user-role":      validateUserRole,
		"is-job-status":     validateJobStatus,
		"is-quote-decision": validateQuoteDecision,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	// Admin accounts are seeded, never registered through the API.
	role := models.UserRole(value)
	return role == models.UserRoleClient || role == models.UserRoleProfessional
}

func validateJobStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, ok := models.ParseJobStatus(value)
	return ok
}

func validateQuoteDecision(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, ok := models.ParseQuoteStatus(value)
	return ok
}
