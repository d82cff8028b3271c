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
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var contractDocument []byte

var (
	contractOnce sync.Once //nolint:gochecknoglobals
	contractDoc  *openapi3.T
	contractErr  error
)

// contract parses and validates the embedded OpenAPI document once per
// process.
func contract() (*openapi3.T, error) {
	contractOnce.Do(func() {
		loader := openapi3.NewLoader()

		doc, err := loader.LoadFromData(contractDocument)
		if err != nil {
			contractErr = fmt.Errorf("loading contract document: %w", err)
			return
		}

		if err := doc.Validate(context.Background()); err != nil {
			contractErr = fmt.Errorf("contract document is invalid: %w", err)
			return
		}

		contractDoc = doc
	})

	return contractDoc, contractErr
}

// ValidateAgainstSchema checks a JSON response body against a named
// component schema of the embedded contract document, so shape drift is
// reported with schema-level detail rather than a field-by-field diff.
func ValidateAgainstSchema(schemaName string, body []byte) error {
	doc, err := contract()
	if err != nil {
		return err
	}

	if doc.Components == nil {
		return fmt.Errorf("contract document has no component schemas")
	}

	ref, ok := doc.Components.Schemas[schemaName]
	if !ok {
		return fmt.Errorf("schema %q not present in contract document", schemaName)
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("response body %q is not valid JSON: %w", string(body), err)
	}

	if err := ref.Value.VisitJSON(value); err != nil {
		return fmt.Errorf("response does not match schema %q: %w", schemaName, err)
	}

	return nil
}
