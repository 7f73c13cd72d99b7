package scanning

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = Describe("Ollama", func() {
	var (
		server  *ghttp.Server
		scanner *Ollama
		text    string
		err     error
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		var newErr error
		scanner, newErr = NewOllama(server.URL()+"/", "test-model")
		Expect(newErr).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	JustBeforeEach(func() {
		text, err = scanner.Recognize(context.Background(), []byte("png bytes"), "image/png", "tur+eng")
	})

	When("the model answers", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, "/api/chat"),
				ghttp.VerifyContentType("application/json"),
				func(w http.ResponseWriter, r *http.Request) {
					var req ollamaChatRequest
					Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
					Expect(req.Model).To(Equal("test-model"))
					Expect(req.Stream).To(BeFalse())
					Expect(req.Messages).To(HaveLen(2))
					Expect(req.Messages[1].Content).To(ContainSubstring("Turkish and English"))
					Expect(req.Messages[1].Images).To(ConsistOf(base64.StdEncoding.EncodeToString([]byte("png bytes"))))
				},
				ghttp.RespondWithJSONEncoded(http.StatusOK, ollamaChatResponse{
					Message: ollamaMessage{Role: "assistant", Content: "```\nMIGROS\nTOPLAM: 45,90\n```"},
					Done:    true,
				}),
			))
		})

		It("returns the cleaned transcription", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("MIGROS\nTOPLAM: 45,90"))
		})
	})

	When("the server fails", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusInternalServerError, "model not loaded"))
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring("status 500")))
			Expect(err).To(MatchError(ContainSubstring("model not loaded")))
		})
	})

	When("the response is not JSON", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusOK, "<html>"))
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring("decoding response")))
		})
	})
})
