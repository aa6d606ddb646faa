package generation_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"aaaas/sequence-api/pkg/api/generation"
	"aaaas/sequence-api/pkg/api/model"
)

var _ = Describe("HTTPBackend", func() {
	var (
		srv        *httptest.Server
		gotPath    string
		gotAuth    string
		gotBody    generation.BackendRequest
		statusCode int
		response   string
	)

	req := generation.BackendRequest{Duration: 30, Difficulty: model.DifficultyBeginner, Style: model.StyleYin, Focus: model.FocusCore}

	BeforeEach(func() {
		statusCode = http.StatusOK
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotBody)
			w.WriteHeader(statusCode)
			_, _ = w.Write([]byte(response))
		}))
		DeferCleanup(srv.Close)
	})

	It("posts the request and unwraps the sequence", func() {
		response = `{"sequence":{"id":"seq-1","name":"Evening Yin","phases":[{"name":"Closing","phase_type":"closing","position":0}]}}`
		backend := generation.NewHTTPBackend(srv.URL, "secret", time.Second)

		seq, err := backend.Generate(context.Background(), req)
		Expect(err).NotTo(HaveOccurred())
		Expect(seq.ID).To(Equal("seq-1"))
		Expect(seq.Phases[0].PhaseType).To(Equal(model.PhaseClosing))
		Expect(gotPath).To(Equal("/v1/sequences"))
		Expect(gotAuth).To(Equal("Bearer secret"))
		Expect(gotBody.StructureOnly).To(BeFalse())
	})

	It("asks the structure endpoint for skeletons", func() {
		response = `{"structure":[{"name":"Warm Up","phase_type":"warm_up","position":0}]}`
		sreq := req
		sreq.StructureOnly = true
		phases, err := generation.NewHTTPBackend(srv.URL, "", 0).GenerateStructure(context.Background(), sreq)
		Expect(err).NotTo(HaveOccurred())
		Expect(phases).To(HaveLen(1))
		Expect(gotPath).To(Equal("/v1/sequences/structure"))
		Expect(gotBody.StructureOnly).To(BeTrue())
		Expect(gotAuth).To(BeEmpty())
	})

	It("flags rejected credentials as unauthorized", func() {
		statusCode = http.StatusUnauthorized
		response = `{"error":"bad key"}`
		_, err := generation.NewHTTPBackend(srv.URL, "wrong", 0).Generate(context.Background(), req)
		Expect(errors.Is(err, generation.ErrUnauthorized)).To(BeTrue())
	})

	It("reports service failures with the body", func() {
		statusCode = http.StatusInternalServerError
		response = `model exploded`
		_, err := generation.NewHTTPBackend(srv.URL, "", 0).Generate(context.Background(), req)
		Expect(err).To(MatchError(ContainSubstring("model exploded")))
		Expect(errors.Is(err, generation.ErrUnauthorized)).To(BeFalse())
	})

	It("treats a missing sequence as a failure", func() {
		response = `{}`
		_, err := generation.NewHTTPBackend(srv.URL, "", 0).Generate(context.Background(), req)
		Expect(err).To(MatchError(ContainSubstring("no sequence")))
	})
})
