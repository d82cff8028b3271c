/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:testpackage,revive // test package in suites is standard for these tests
package suites

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/poster-conformance/test/api"
)

var _ = Describe("Process Trigger", func() {
	Context("When triggering processing on a fresh upload", func() {
		It("should accept the trigger and move the record to processing", func() {
			uploadedImageID := api.UploadedImageFixture(client, ctx)

			resp, err := client.TriggerProcessing(ctx, uploadedImageID)
			Expect(err).NotTo(HaveOccurred())
			// 200 is tolerated alongside 202 per the documented contract.
			Expect(resp.StatusCode).To(BeElementOf(http.StatusOK, http.StatusAccepted),
				"first trigger on %s should be accepted but got %d, body: %s", uploadedImageID, resp.StatusCode, string(resp.Body))

			var record api.ImageRecord

			Expect(resp.DecodeJSON(&record)).To(Succeed())
			Expect(record.ID).To(Equal(uploadedImageID))
			Expect(record.Status).To(Equal(api.StatusProcessing),
				"record should be processing after the trigger but got %q", record.Status)
			Expect(api.ValidateAgainstSchema("ImageRecord", resp.Body)).To(Succeed())
		})
	})

	Context("When triggering processing twice on the same record", func() {
		It("should reject the second trigger with a conflict", func() {
			uploadedImageID := api.UploadedImageFixture(client, ctx)

			first, err := client.TriggerProcessing(ctx, uploadedImageID)
			Expect(err).NotTo(HaveOccurred())
			Expect(first.StatusCode).To(BeElementOf(http.StatusOK, http.StatusAccepted),
				"first trigger should be accepted but got %d, body: %s", first.StatusCode, string(first.Body))

			second, err := client.TriggerProcessing(ctx, uploadedImageID)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.StatusCode).To(Equal(http.StatusConflict),
				"second trigger must be rejected with 409, not silently accepted, but got %d, body: %s", second.StatusCode, string(second.Body))
			Expect(api.ValidateAgainstSchema("ErrorResponse", second.Body)).To(Succeed())

			message := strings.ToLower(second.ErrorMessage())
			Expect(message).To(SatisfyAll(ContainSubstring("already"), ContainSubstring("processing")),
				"conflict message should mention the record already processing but got %q", second.ErrorMessage())
		})
	})

	Context("When triggering with bad identifiers", func() {
		It("should return 400 for a malformed UUID", func() {
			resp, err := client.TriggerProcessing(ctx, "not-a-valid-uuid")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest),
				"malformed UUID should return 400 but got %d, body: %s", resp.StatusCode, string(resp.Body))
			Expect(strings.ToLower(resp.ErrorMessage())).To(ContainSubstring("uuid"),
				"error message should mention UUID validation but got %q", resp.ErrorMessage())
		})

		It("should return 404 for a record that does not exist", func() {
			resp, err := client.TriggerProcessing(ctx, uuid.NewString())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound),
				"unknown record should return 404 but got %d, body: %s", resp.StatusCode, string(resp.Body))
			Expect(strings.ToLower(resp.ErrorMessage())).To(ContainSubstring("not found"),
				"error message should mention the record not being found but got %q", resp.ErrorMessage())
		})
	})
})
