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

package api

// Processing statuses an image record moves through. Completed and failed
// are terminal.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ValidStatuses lists every status value the API may report.
func ValidStatuses() []string {
	return []string{StatusPending, StatusProcessing, StatusCompleted, StatusFailed}
}

// IsTerminalStatus reports whether a record will not transition any further.
func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ImageRecord is the representation of an image returned by the upload,
// status, process and list endpoints. ProcessedAt is null until processing
// finishes.
type ImageRecord struct {
	ID          string  `json:"id"`
	Filename    string  `json:"filename,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	ProcessedAt *string `json:"processedAt,omitempty"`
}

// ErrorResponse is the error envelope every 4xx response carries.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SignedURLResponse is the body of GET /images/:id/signed-url.
type SignedURLResponse struct {
	URL string `json:"url"`
}
