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

import (
	"fmt"
	"net/url"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Health and metadata endpoints.
func (e *Endpoints) Health() string {
	return "/health"
}

// Image lifecycle endpoints.
func (e *Endpoints) UploadImage() string {
	return "/images"
}

func (e *Endpoints) ListImages() string {
	return "/images"
}

func (e *Endpoints) ImageStatus(imageID string) string {
	return fmt.Sprintf("/images/%s/status", url.PathEscape(imageID))
}

func (e *Endpoints) DownloadImage(imageID string) string {
	return fmt.Sprintf("/images/%s/download", url.PathEscape(imageID))
}

func (e *Endpoints) ProcessImage(imageID string) string {
	return fmt.Sprintf("/images/%s/process", url.PathEscape(imageID))
}

func (e *Endpoints) SignedURL(imageID string) string {
	return fmt.Sprintf("/images/%s/signed-url", url.PathEscape(imageID))
}
