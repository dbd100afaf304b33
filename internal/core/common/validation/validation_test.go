package validation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/common/validation"
)

var _ = Describe("ValidationBuilder", func() {
	It("passes when every rule holds", func() {
		v := validation.NewValidator()
		v.Field("username", "ana").Required().MinLength(3)
		v.Field("email", "ana@example.com").Email()
		v.Field("weekly_hours", "").OptionalDigits()
		v.Field("role", "RRHH").OneOf(errors.ErrCodeInvalidRole, "EMPLOYEE", "RRHH")
		Expect(v.Validate()).To(BeNil())
	})

	It("collects one entry per failing rule", func() {
		v := validation.NewValidator()
		v.Field("username", "").Required().MinLength(3)
		v.Field("email", "not-an-email").Email()

		err := v.Validate()
		Expect(err).NotTo(BeNil())
		Expect(err.Type).To(Equal(errors.ErrorTypeValidation))

		details, ok := err.Details.(errors.ValidationErrors)
		Expect(ok).To(BeTrue())
		Expect(details.Errors).To(HaveLen(3))
		Expect(err.FieldErrors()).To(HaveKeyWithValue("username", "username is required"))
		Expect(err.FieldErrors()).To(HaveKeyWithValue("email", "invalid email address"))
	})

	It("rejects non-digit optional numbers", func() {
		v := validation.NewValidator()
		v.Field("initial_vacation_days", "12a").OptionalDigits()
		Expect(v.Validate().FieldErrors()).To(HaveKey("initial_vacation_days"))
	})

	It("reports mismatches on the confirming field", func() {
		v := validation.NewValidator()
		v.Field("confirm_password", "secret2").Matches("secret1", "passwords do not match")

		err := v.Validate()
		Expect(err.FieldErrors()).To(Equal(map[string]string{"confirm_password": "passwords do not match"}))
	})

	It("validates dates and their order", func() {
		v := validation.NewValidator()
		v.Field("start_date", "2024-02-30").Date()
		v.Field("end_date", "2024-03-01").Date().NotBefore("2024-03-05", "end date must not be before start date")

		fields := v.Validate().FieldErrors()
		Expect(fields).To(HaveKey("start_date"))
		Expect(fields).To(HaveKeyWithValue("end_date", "end date must not be before start date"))
	})

	It("counts characters rather than bytes", func() {
		v := validation.NewValidator()
		v.Field("full_name", "Jo").MinLength(2)
		v.Field("username", "Ñú").MinLength(3)

		fields := v.Validate().FieldErrors()
		Expect(fields).NotTo(HaveKey("full_name"))
		Expect(fields).To(HaveKey("username"))
	})
})

var _ = Describe("NonNegativeNumber", func() {
	DescribeTable("accepts or rejects",
		func(input string, ok bool) {
			v := validation.NewValidator()
			v.Field("remaining_days", input).NonNegativeNumber()
			if ok {
				Expect(v.Validate()).To(BeNil())
			} else {
				Expect(v.Validate().FieldErrors()).To(HaveKey("remaining_days"))
			}
		},
		Entry("empty", "", true),
		Entry("integer", "12", true),
		Entry("decimal", "1.5", true),
		Entry("negative", "-1", false),
		Entry("text", "many", false),
		Entry("nan", "NaN", false),
	)
})
