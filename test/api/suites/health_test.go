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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/poster-conformance/test/api"
)

var _ = Describe("Health Check", func() {
	Context("When probing the liveness endpoint", func() {
		It("should return 200 with the documented JSON body", func() {
			resp, err := client.Health(ctx)
			Expect(err).NotTo(HaveOccurred(), "GET /health should be reachable")
			Expect(resp.StatusCode).To(Equal(http.StatusOK),
				"GET /health should return 200 but got %d, body: %s", resp.StatusCode, string(resp.Body))
			Expect(resp.ContentType()).To(HavePrefix("application/json"),
				"GET /health should return a JSON content type but got %q", resp.ContentType())

			var health api.HealthResponse

			Expect(resp.DecodeJSON(&health)).To(Succeed())
			Expect(health.Status).To(Equal("OK"),
				"GET /health should report status OK but got %q", health.Status)
			Expect(api.ValidateAgainstSchema("HealthResponse", resp.Body)).To(Succeed())
		})
	})
})
