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

// Package api drives the wanted poster generator API for black-box
// conformance testing.
//
// # Separate Client Implementation
//
// This package intentionally maintains a hand-written HTTP client
// (APIClient) instead of a generated one. An independent client is a form of
// triangulation on API correctness: any legitimate change to the documented
// contract needs a compensating change here, making API evolution explicit
// and reviewable.
//
// The client is also tailored for conformance testing:
//   - W3C trace context propagation for request correlation
//   - transport failures returned as errors, HTTP responses returned raw so
//     suites can assert exact status codes and bodies
//   - optional request/response logging to the Ginkgo writer
//   - response validation against the embedded OpenAPI contract document
//
// Fixture helpers produce the preconditions the scenario groups need (an
// uploaded record, a record with processing triggered, a completed record)
// and fail only the dependent spec when the remote system cannot provide
// them.
package api
