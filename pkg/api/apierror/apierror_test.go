package apierror_test

import (
	"encoding/json"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"aaaas/sequence-api/pkg/api/apierror"
)

var _ = Describe("APIError", func() {
	It("maps every kind onto a status", func() {
		Expect(apierror.StatusCode(apierror.KindBadRequest)).To(Equal(http.StatusBadRequest))
		Expect(apierror.StatusCode(apierror.KindValidation)).To(Equal(http.StatusBadRequest))
		Expect(apierror.StatusCode(apierror.KindAuthorization)).To(Equal(http.StatusUnauthorized))
		Expect(apierror.StatusCode(apierror.KindGenerationFailure)).To(Equal(http.StatusInternalServerError))
		Expect(apierror.StatusCode(apierror.KindUnknown)).To(Equal(http.StatusInternalServerError))
	})

	It("marshals field errors as an object in declaration order", func() {
		details := apierror.FieldErrors{
			{Path: "style", Message: "Style is required"},
			{Path: "duration", Message: "Duration must be a number"},
		}
		raw, err := json.Marshal(details)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(Equal(`{"style":"Style is required","duration":"Duration must be a number"}`))

		raw, err = json.Marshal(apierror.FieldErrors{})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(Equal(`{}`))
	})

	It("reads field errors back in the order they were sent", func() {
		var details apierror.FieldErrors
		Expect(json.Unmarshal([]byte(`{"style":"bad","duration":"worse"}`), &details)).To(Succeed())
		Expect(details.Paths()).To(Equal([]string{"style", "duration"}))

		Expect(json.Unmarshal([]byte(`["style"]`), &details)).NotTo(Succeed())
	})

	It("finds classified errors through wrapping", func() {
		inner := apierror.GenerationFailure(errors.New("model timed out"), "Failed to generate sequence")
		wrapped := errors.WithMessage(inner, "handler")

		Expect(apierror.IsKind(wrapped, apierror.KindGenerationFailure)).To(BeTrue())
		Expect(apierror.From(wrapped).CauseMessage()).To(Equal("model timed out"))
	})

	It("classifies anything else as unknown", func() {
		err := apierror.From(errors.New("boom"))
		Expect(err.Kind).To(Equal(apierror.KindUnknown))
		Expect(err.RootCause()).To(MatchError("boom"))
		Expect(apierror.From(nil)).To(BeNil())
	})
})
