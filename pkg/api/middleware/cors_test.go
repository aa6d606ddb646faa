package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"aaaas/sequence-api/pkg/api/middleware"
)

func corsRouter(origins ...string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORSMiddleware(origins))
	r.GET("/api/session", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": "user-1"})
	})
	return r
}

func fromOrigin(r *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/session", nil)
	req.Header.Set("Origin", origin)
	if method == http.MethodOptions {
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var _ = Describe("CORSMiddleware", func() {
	It("is switched off without usable origins", func() {
		Expect(middleware.CORSMiddleware(nil)).To(BeNil())
		Expect(middleware.CORSMiddleware([]string{"", "  ", "*", "app.example.test"})).To(BeNil())
	})

	It("allows listed origins with credentials", func() {
		w := fromOrigin(corsRouter("https://app.example.test/"), http.MethodGet, "https://app.example.test")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://app.example.test"))
		Expect(w.Header().Get("Access-Control-Allow-Credentials")).To(Equal("true"))
	})

	It("answers preflights from listed origins", func() {
		w := fromOrigin(corsRouter("https://app.example.test"), http.MethodOptions, "https://app.example.test")
		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Header().Get("Access-Control-Allow-Methods")).To(ContainSubstring("POST"))
	})

	It("gives unlisted origins nothing to read", func() {
		w := fromOrigin(corsRouter("https://app.example.test"), http.MethodGet, "https://evil.example")
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
		Expect(w.Header().Get("Access-Control-Allow-Credentials")).To(BeEmpty())
		Expect(w.Body.String()).NotTo(ContainSubstring("user-1"))
	})
})
