package receipt_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/efekanoption-hub/FisTaray-c/internal/export"
	"github.com/efekanoption-hub/FisTaray-c/internal/extraction"
	"github.com/efekanoption-hub/FisTaray-c/internal/receipt"
)

// fakeScanner returns a fixed transcript
type fakeScanner struct {
	text string
}

func (f *fakeScanner) Recognize(ctx context.Context, imageData []byte, contentType string, languages string) (string, error) {
	return f.text, nil
}

func (f *fakeScanner) Close() error {
	return nil
}

var _ = Describe("Integration", func() {
	var (
		db       *receipt.BoltDB
		scanner  *fakeScanner
		service  *receipt.Service
		server   *receipt.Server
		ghServer *ghttp.Server
	)

	BeforeEach(func() {
		var err error
		db, err = receipt.NewBoltDB(filepath.Join(GinkgoT().TempDir(), "camfis.db"))
		Expect(err).NotTo(HaveOccurred())

		istanbul := time.FixedZone("TRT", 3*60*60)
		scanner = &fakeScanner{
			text: strings.Join([]string{
				"A1",
				"MIGROS TICARET A.S.",
				"Bagdat Cad. No:12 Kadikoy",
				"KDV %10",
				"TOPLAM: 125,50",
			}, "\n"),
		}
		service = receipt.NewService(db, scanner, extraction.NewAssembler(istanbul), "")
		server = receipt.NewServer(service, receipt.Config{CSVDelimiter: ';'})

		ghServer = ghttp.NewServer()
	})

	AfterEach(func() {
		if ghServer != nil {
			ghServer.Close()
		}
		if db != nil {
			db.Close()
		}
	})

	It("should scan a receipt photo, store it, and export it", func() {
		ghServer.AppendHandlers(
			server.ServeHTTP, // upload
			server.ServeHTTP, // list
			server.ServeHTTP, // export
		)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("file", "fis.jpg")
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write([]byte("fake jpeg"))
		Expect(err).NotTo(HaveOccurred())
		Expect(writer.Close()).To(Succeed())

		receiptsURL := fmt.Sprintf("%s/api/profiles/%s/receipts", ghServer.URL(), receipt.DefaultProfileID)
		resp, err := http.Post(receiptsURL, writer.FormDataContentType(), body)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))

		var scanned extraction.Receipt
		respBody, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(json.Unmarshal(respBody, &scanned)).To(Succeed())

		Expect(scanned.Name).To(Equal("MIGROS TICARET A.S."))
		Expect(scanned.Amount.StringFixed(2)).To(Equal("125.50"))
		Expect(scanned.VATRate).To(Equal(10))
		Expect(scanned.VATAmount.StringFixed(2)).To(Equal("12.55"))
		Expect(scanned.Category).To(Equal(extraction.CategoryMarket))

		// The receipt is persisted and listed
		listResp, err := http.Get(receiptsURL)
		Expect(err).NotTo(HaveOccurred())
		defer listResp.Body.Close()
		var listed []extraction.Receipt
		listBody, err := io.ReadAll(listResp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(json.Unmarshal(listBody, &listed)).To(Succeed())
		Expect(listed).To(HaveLen(1))
		Expect(listed[0].ID).To(Equal(scanned.ID))

		// And exported as a spreadsheet row
		exportResp, err := http.Get(fmt.Sprintf("%s/api/profiles/%s/export", ghServer.URL(), receipt.DefaultProfileID))
		Expect(err).NotTo(HaveOccurred())
		defer exportResp.Body.Close()
		rows, err := export.NewWriter(';').ReadReceipts(exportResp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(1))
		Expect(rows[0].Category).To(Equal("Market"))
		Expect(rows[0].Total).To(Equal("125.50"))
		Expect(rows[0].VATPercent).To(Equal("%10"))
	})

	It("should keep profile histories independent and drop them on delete", func() {
		profile, err := service.CreateProfile("Ayşe")
		Expect(err).NotTo(HaveOccurred())

		_, err = service.RecordText(profile.ID, "ECZANE DENIZ\nKDV %10\nTOPLAM 40,00")
		Expect(err).NotTo(HaveOccurred())
		_, err = service.RecordText(receipt.DefaultProfileID, "SHELL\nTOPLAM 900,00")
		Expect(err).NotTo(HaveOccurred())

		summary, err := service.Summary(profile.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.ReceiptCount).To(Equal(1))
		Expect(summary.Categories).To(HaveLen(1))
		Expect(summary.Categories[0].Category).To(Equal(extraction.CategoryHealth))

		Expect(service.DeleteProfile(profile.ID)).To(Succeed())
		_, err = service.ListReceipts(profile.ID)
		Expect(err).To(MatchError(receipt.ErrProfileNotFound))

		defaults, err := service.ListReceipts(receipt.DefaultProfileID)
		Expect(err).NotTo(HaveOccurred())
		Expect(defaults).To(HaveLen(1))
		Expect(defaults[0].Category).To(Equal(extraction.CategoryAutomotive))
	})
})
