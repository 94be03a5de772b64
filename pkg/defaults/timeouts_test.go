/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		{"VCSQueryTimeout", VCSQueryTimeout, 1 * time.Second, 30 * time.Second},
		{"ValidateTimeout", ValidateTimeout, 5 * time.Second, 2 * time.Minute},
		{"AnalyzeTimeout", AnalyzeTimeout, 1 * time.Minute, 30 * time.Minute},
		{"OCIPushTimeout", OCIPushTimeout, 30 * time.Second, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestValidateTimeoutLessThanAnalyze(t *testing.T) {
	// A single folder validation must fit well inside a repository-wide
	// analysis window.
	if ValidateTimeout >= AnalyzeTimeout {
		t.Errorf("ValidateTimeout (%v) should be less than AnalyzeTimeout (%v)",
			ValidateTimeout, AnalyzeTimeout)
	}
}

func TestAnalyzeConcurrencyPositive(t *testing.T) {
	if AnalyzeConcurrency < 1 {
		t.Errorf("AnalyzeConcurrency = %d, want at least 1", AnalyzeConcurrency)
	}
}
