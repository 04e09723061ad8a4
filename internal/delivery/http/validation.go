package http

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lumatch/lumatch-backend/internal/domain"
)

// registerValidations teaches the binding layer the domain enums so bad
// values fail at bind time with a field-level message.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("identity", func(fl validator.FieldLevel) bool {
		return domain.Identity(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("audience", func(fl validator.FieldLevel) bool {
		return domain.Audience(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("reportreason", func(fl validator.FieldLevel) bool {
		return domain.ReportReason(fl.Field().String()).Valid()
	})
}
