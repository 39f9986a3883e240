package identity

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/elimu/core"
)

var (
	allRolesTag  = "allroles"
	allRolesText = "invalid role"

	secretMaxSim      = .7
	secretAttrSimTag  = "pwdtoosim"
	secretAttrSimText = "password cannot be similar to user attributes"
)

// Credentials is a login attempt. The caller asserts a role; it must
// match the stored role of the matched Identity.
type Credentials struct {
	Email  string `json:"email" validate:"required,email"`
	Secret string `json:"password" validate:"required"`
	Role   string `json:"role" validate:"required,allroles"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	c.Role = core.CleanString(c.Role, true /* lower */)
	return validate.Struct(c)
}

// Registration contains information needed to register a new account.
type Registration struct {
	Name          string `json:"name" validate:"required,alphanum_"`
	Email         string `json:"email" validate:"required,email"`
	Secret        string `json:"password" validate:"required"`
	SecretConfirm string `json:"password_confirm" validate:"required,eqfield=Secret"`
}

func (r *Registration) Validate(validate *validator.Validate) error {
	r.Name = core.CleanString(r.Name)
	r.Email = core.CleanString(r.Email, true /* lower */)
	return validate.Struct(r)
}

// InitValidators registers identity validators & translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(allRolesTag, allRolesValidation)
	core.RegisterCustomTranslation(validate, translator, allRolesTag, allRolesText)

	validate.RegisterStructValidation(registrationStructValidation, Registration{})
	core.RegisterCustomTranslation(validate, translator, secretAttrSimTag, secretAttrSimText)
}

// Custom Validators

// allRolesValidation checks that the provided role is in AllRoles.
func allRolesValidation(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	for _, r := range AllRoles {
		if role == r {
			return true
		}
	}
	return false
}

// registrationStructValidation rejects secrets too similar to the
// registrant's name or email.
func registrationStructValidation(sl validator.StructLevel) {
	reg, ok := sl.Current().Interface().(Registration)
	if !ok || reg.Secret == "" {
		return
	}

	getRatio := func(secret, attr string) float64 {
		if attr == "" {
			return 0
		}
		return difflib.NewMatcher(strings.Split(secret, ""), strings.Split(attr, "")).QuickRatio()
	}
	if getRatio(reg.Secret, reg.Name) >= secretMaxSim ||
		getRatio(reg.Secret, reg.Email) >= secretMaxSim {
		sl.ReportError(reg.Secret, "password", "Secret", secretAttrSimTag, "")
	}
}
