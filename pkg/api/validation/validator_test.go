package validation_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"aaaas/sequence-api/pkg/api/apierror"
	"aaaas/sequence-api/pkg/api/model"
	"aaaas/sequence-api/pkg/api/validation"
)

func decode(body string) interface{} {
	var out interface{}
	Expect(json.Unmarshal([]byte(body), &out)).To(Succeed())
	return out
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"duration":   float64(30),
		"difficulty": "beginner",
		"style":      "vinyasa",
		"focus":      "core",
	}
}

var _ = Describe("Validator", func() {
	var v *validation.Validator

	BeforeEach(func() {
		v = validation.NewValidator()
	})

	Context("with the structured schema", func() {
		It("accepts every combination of enums at the duration bounds", func() {
			for _, duration := range []float64{5, 42.5, 90} {
				for _, d := range model.Difficulties {
					for _, s := range model.Styles {
						for _, f := range model.Focuses {
							body := map[string]interface{}{
								"duration":   duration,
								"difficulty": string(d),
								"style":      string(s),
								"focus":      string(f),
							}
							params, errs := v.Validate(validation.StructuredSchema, body)
							Expect(errs).To(BeEmpty())
							Expect(params).To(Equal(model.SequenceRequestParams{
								Duration:   duration,
								Difficulty: d,
								Style:      s,
								Focus:      f,
							}))
						}
					}
				}
			}
		})

		It("rejects a duration of 4 and of 91 at the duration path", func() {
			for _, duration := range []float64{4, 91} {
				body := validBody()
				body["duration"] = duration
				_, errs := v.Validate(validation.StructuredSchema, body)
				Expect(errs.Paths()).To(Equal([]string{"duration"}))
			}
			body := validBody()
			body["duration"] = float64(4)
			_, errs := v.Validate(validation.StructuredSchema, body)
			msg, _ := errs.Get("duration")
			Expect(msg).To(Equal("Duration must be at least 5 minutes"))
		})

		It("rejects a difficulty outside the enum", func() {
			body := validBody()
			body["difficulty"] = "expert"
			_, errs := v.Validate(validation.StructuredSchema, body)
			Expect(errs.Paths()).To(Equal([]string{"difficulty"}))
			msg, _ := errs.Get("difficulty")
			Expect(msg).To(ContainSubstring("beginner, intermediate, advanced"))
		})

		It("does not fold case on enums", func() {
			body := validBody()
			body["style"] = "Vinyasa"
			_, errs := v.Validate(validation.StructuredSchema, body)
			Expect(errs.Paths()).To(Equal([]string{"style"}))
		})

		It("reports every invalid field in declaration order", func() {
			body := map[string]interface{}{
				"focus":      "toes",
				"difficulty": "expert",
				"duration":   "thirty",
			}
			_, errs := v.Validate(validation.StructuredSchema, body)
			Expect(errs.Paths()).To(Equal([]string{"duration", "difficulty", "style", "focus"}))

			msg, _ := errs.Get("duration")
			Expect(msg).To(Equal("Duration must be a number"))
			msg, _ = errs.Get("style")
			Expect(msg).To(Equal("Style is required"))
		})

		It("treats null like a missing field", func() {
			_, errs := v.Validate(validation.StructuredSchema, decode(`{"duration":null,"difficulty":"beginner","style":"yin","focus":"core"}`))
			Expect(errs.Paths()).To(Equal([]string{"duration"}))
		})

		It("rejects a body that is not an object", func() {
			for _, body := range []string{`[]`, `"hello"`, `42`, `null`} {
				_, errs := v.Validate(validation.StructuredSchema, decode(body))
				Expect(errs.Paths()).To(Equal([]string{"(root)"}))
			}
		})

		It("keeps the additional notes and the peak pose", func() {
			params, errs := v.Validate(validation.StructuredSchema, decode(`{
				"duration": 60, "difficulty": "advanced", "style": "power", "focus": "balance",
				"additionalNotes": "gentle on the wrists",
				"peakPose": {"id": "crow", "name": "Crow Pose", "sanskrit_name": "Bakasana"}
			}`))
			Expect(errs).To(BeEmpty())
			Expect(params.AdditionalNotes).To(Equal("gentle on the wrists"))
			Expect(params.PeakPose).To(Equal(&model.PoseRef{ID: "crow", Name: "Crow Pose", SanskritName: "Bakasana"}))
		})

		It("checks the fields of the peak pose", func() {
			_, errs := v.Validate(validation.StructuredSchema, decode(`{
				"duration": 60, "difficulty": "advanced", "style": "power", "focus": "balance",
				"peakPose": {"id": "", "sanskrit_name": 7}
			}`))
			Expect(errs.Paths()).To(Equal([]string{"peakPose.id", "peakPose.name", "peakPose.sanskrit_name"}))
		})

		It("does not look inside a peak pose that is not an object", func() {
			body := validBody()
			body["peakPose"] = "crow"
			_, errs := v.Validate(validation.StructuredSchema, body)
			Expect(errs.Paths()).To(Equal([]string{"peakPose"}))
		})

		It("wraps failures as validation errors", func() {
			body := validBody()
			body["duration"] = float64(91)
			_, err := v.ValidateRequest(validation.StructuredSchema, body)
			Expect(apierror.IsKind(err, apierror.KindValidation)).To(BeTrue())
			Expect(apierror.From(err).Details.Paths()).To(Equal([]string{"duration"}))
		})
	})

	Context("with the simple schema", func() {
		It("accepts durations below five minutes", func() {
			body := validBody()
			body["duration"] = 2.5
			params, errs := v.Validate(validation.SimpleSchema, body)
			Expect(errs).To(BeEmpty())
			Expect(params.Duration).To(Equal(2.5))
		})

		It("rejects zero and anything over ninety", func() {
			for _, duration := range []float64{0, -3, 90.5} {
				body := validBody()
				body["duration"] = duration
				_, errs := v.Validate(validation.SimpleSchema, body)
				Expect(errs.Paths()).To(Equal([]string{"duration"}))
			}
		})

		It("drops the peak pose", func() {
			body := validBody()
			body["peakPose"] = map[string]interface{}{"id": "crow", "name": "Crow Pose"}
			params, errs := v.Validate(validation.SimpleSchema, body)
			Expect(errs).To(BeEmpty())
			Expect(params.PeakPose).To(BeNil())
		})
	})

	It("describes the form options of a schema", func() {
		opts := validation.StructuredSchema.FormOptions()
		Expect(opts.Duration).To(Equal(model.DurationBounds{Min: 5, Max: 90}))
		Expect(opts.Focuses).To(HaveLen(6))
		Expect(validation.SimpleSchema.FormOptions().Duration.MinExclusive).To(BeTrue())
	})
})
