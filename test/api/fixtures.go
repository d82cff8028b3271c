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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// UploadedImageFixture uploads a fresh JPEG and returns its record ID. A
// failure here aborts only the spec that asked for the fixture.
func UploadedImageFixture(client *APIClient, ctx context.Context) string {
	resp, err := client.UploadImage(ctx, NewJPEGUpload())
	Expect(err).NotTo(HaveOccurred(), "could not reach POST /images to create fixture image")
	Expect(resp.StatusCode).To(Equal(http.StatusCreated),
		"could not upload fixture image: status %d, body: %s", resp.StatusCode, string(resp.Body))

	var record ImageRecord

	Expect(resp.DecodeJSON(&record)).To(Succeed())
	Expect(record.ID).NotTo(BeEmpty(), "upload response carried no record ID: %s", string(resp.Body))

	GinkgoWriter.Printf("Uploaded fixture image with ID: %s\n", record.ID)

	return record.ID
}

// ProcessingImageFixture uploads an image and triggers processing on it,
// returning a record ID that is at least queued for processing. A 409 means
// processing was already running, which is fine for a fixture.
func ProcessingImageFixture(client *APIClient, ctx context.Context) string {
	imageID := UploadedImageFixture(client, ctx)

	resp, err := client.TriggerProcessing(ctx, imageID)
	Expect(err).NotTo(HaveOccurred(), "could not reach POST /images/%s/process for fixture", imageID)
	Expect(resp.StatusCode).To(BeElementOf(http.StatusOK, http.StatusAccepted, http.StatusConflict),
		"could not trigger processing for fixture image %s: status %d, body: %s", imageID, resp.StatusCode, string(resp.Body))

	return imageID
}

// CompletedImageFixture returns the ID of a record in completed status. It
// reuses an existing completed record when the listing offers one, and
// otherwise creates one and waits for the background worker to finish.
func CompletedImageFixture(client *APIClient, ctx context.Context, config *TestConfig) string {
	resp, err := client.ListImages(ctx, NewListImagesQuery().WithStatus(StatusCompleted).WithLimit(1))
	if err == nil && resp.StatusCode == http.StatusOK {
		var records []ImageRecord

		if decodeErr := resp.DecodeJSON(&records); decodeErr == nil && len(records) > 0 {
			GinkgoWriter.Printf("Reusing completed image with ID: %s\n", records[0].ID)
			return records[0].ID
		}
	}

	imageID := ProcessingImageFixture(client, ctx)
	WaitForStatus(client, ctx, config, imageID, StatusCompleted)

	return imageID
}

// WaitForTerminalStatus polls the status endpoint with the configured
// interval until the record reaches completed or failed, returning the final
// status. Running out of the poll timeout is a deterministic failure, never
// a hang.
func WaitForTerminalStatus(client *APIClient, ctx context.Context, config *TestConfig, imageID string) string {
	var lastStatus string

	Eventually(func() bool {
		lastStatus = fetchStatus(client, ctx, imageID)
		return IsTerminalStatus(lastStatus)
	}).WithTimeout(config.PollTimeout).WithPolling(config.PollInterval).Should(BeTrue(),
		"image %s did not reach a terminal status within %s, last status: %q", imageID, config.PollTimeout, lastStatus)

	return lastStatus
}

// WaitForStatus polls until the record reaches the wanted status. Reaching
// failed while waiting for completed is reported immediately instead of
// burning the rest of the timeout.
func WaitForStatus(client *APIClient, ctx context.Context, config *TestConfig, imageID, want string) {
	Eventually(func() string {
		status := fetchStatus(client, ctx, imageID)
		if status == StatusFailed && want != StatusFailed {
			Fail(fmt.Sprintf("image %s entered failed status while waiting for %q", imageID, want))
		}

		return status
	}).WithTimeout(config.PollTimeout).WithPolling(config.PollInterval).Should(Equal(want),
		"image %s did not reach status %q within %s", imageID, want, config.PollTimeout)
}

// fetchStatus reads the current status of a record, mapping transport
// errors and unexpected responses to sentinel values the pollers retry on.
func fetchStatus(client *APIClient, ctx context.Context, imageID string) string {
	resp, err := client.GetImageStatus(ctx, imageID)
	if err != nil {
		GinkgoWriter.Printf("status poll for %s failed: %v\n", imageID, err)
		return "transport-error"
	}

	if resp.StatusCode != http.StatusOK {
		GinkgoWriter.Printf("status poll for %s returned %d: %s\n", imageID, resp.StatusCode, string(resp.Body))
		return fmt.Sprintf("http-%d", resp.StatusCode)
	}

	var record ImageRecord
	if err := resp.DecodeJSON(&record); err != nil {
		return "undecodable"
	}

	return record.Status
}
