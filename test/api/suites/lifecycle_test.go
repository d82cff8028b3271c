//nolint:testpackage,revive // test package in suites is standard for these tests
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/poster-conformance/test/api"
)

// End-to-end pass through the whole documented lifecycle:
// upload -> trigger -> poll to completed -> download.
var _ = Describe("Processing Lifecycle", func() {
	Context("When driving a record from upload to download", func() {
		It("should produce a downloadable poster from a fresh upload", func() {
			upload, err := client.UploadImage(ctx, api.NewJPEGUpload())
			Expect(err).NotTo(HaveOccurred())
			Expect(upload.StatusCode).To(Equal(http.StatusCreated),
				"upload should return 201 but got %d, body: %s", upload.StatusCode, string(upload.Body))

			var record api.ImageRecord

			Expect(upload.DecodeJSON(&record)).To(Succeed())
			Expect(record.Status).To(Equal(api.StatusPending))

			trigger, err := client.TriggerProcessing(ctx, record.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(trigger.StatusCode).To(BeElementOf(http.StatusOK, http.StatusAccepted),
				"trigger should be accepted but got %d, body: %s", trigger.StatusCode, string(trigger.Body))

			api.WaitForStatus(client, ctx, config, record.ID, api.StatusCompleted)

			download, err := client.DownloadImage(ctx, record.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(download.StatusCode).To(Equal(http.StatusOK),
				"completed record should be downloadable but got %d, body: %s", download.StatusCode, string(download.Body))
			Expect(download.Body).NotTo(BeEmpty())
			Expect(api.SniffImageFormat(download.Body)).NotTo(BeEmpty(),
				"downloaded poster should match an image format signature")

			_, err = api.DecodeImage(download.Body)
			Expect(err).NotTo(HaveOccurred(), "downloaded poster should decode as an image")
		})
	})
})
