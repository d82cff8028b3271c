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

// poster-preflight probes a wanted poster API deployment before the
// conformance suite runs against it. CI gates the suite on this binary
// exiting zero so a dead or half-booted target fails fast with a clear
// message instead of producing a wall of connection-refused specs.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/nscaledev/poster-conformance/test/api"
)

func main() {
	config := api.LoadTestConfig()

	var (
		wait    time.Duration
		verbose bool
	)

	pflag.StringVar(&config.BaseURL, "base-url", config.BaseURL, "Base URL of the API under test.")
	pflag.DurationVar(&config.RequestTimeout, "timeout", config.RequestTimeout, "Per request timeout.")
	pflag.DurationVar(&wait, "wait", 0, "Keep retrying the health probe for up to this long before giving up.")
	pflag.BoolVar(&verbose, "verbose", false, "Enable debug logging.")

	pflag.Parse()

	logConfig := zap.NewProductionConfig()
	if verbose {
		logConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := logConfig.Build()
	if err != nil {
		os.Exit(1)
	}

	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("probing target", zap.String("baseURL", config.BaseURL), zap.Duration("timeout", config.RequestTimeout))

	client := api.NewAPIClientWithConfig(config)

	if err := probe(ctx, logger, client, wait); err != nil {
		logger.Error("target is not ready", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("target is ready")
}

// probe hits the health endpoint until it answers 200 with a healthy
// status, or the wait budget runs out. A zero wait means a single attempt.
func probe(ctx context.Context, logger *zap.Logger, client *api.APIClient, wait time.Duration) error {
	deadline := time.Now().Add(wait)

	for {
		err := healthy(ctx, client)
		if err == nil {
			return nil
		}

		if time.Now().After(deadline) {
			return err
		}

		logger.Debug("health probe failed, retrying", zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}

func healthy(ctx context.Context, client *api.APIClient) error {
	response, err := client.Health(ctx)
	if err != nil {
		return err
	}

	if response.StatusCode != http.StatusOK {
		return &unhealthyError{statusCode: response.StatusCode}
	}

	var health api.HealthResponse
	if err := response.DecodeJSON(&health); err != nil {
		return err
	}

	if health.Status != "OK" {
		return &unhealthyError{statusCode: response.StatusCode, status: health.Status}
	}

	return nil
}

type unhealthyError struct {
	statusCode int
	status     string
}

func (e *unhealthyError) Error() string {
	if e.status != "" {
		return fmt.Sprintf("health endpoint reported status %q", e.status)
	}

	return fmt.Sprintf("health endpoint returned HTTP %d", e.statusCode)
}
