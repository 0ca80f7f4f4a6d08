// SPDX-License-Identifier: Apache-2.0

package detect

import (
	"github.com/rs/zerolog"
)

// osManager implements OSManager interface
type osManager struct {
	logger   *zerolog.Logger
	detector OSDetector
}

// OSManagerOption allows setting various option for osManager
type OSManagerOption = func(om *osManager)

// WithOSManagerLogger allows injecting a logger instance for OS manager
func WithOSManagerLogger(logger *zerolog.Logger) OSManagerOption {
	return func(om *osManager) {
		if logger != nil {
			om.logger = logger
		}
	}
}

// WithOSDetector allows injecting an OSDetector instance for OS manager
func WithOSDetector(detector OSDetector) OSManagerOption {
	return func(om *osManager) {
		if detector != nil {
			om.detector = detector
		}
	}
}

// NewOSManager returns an instance of OSManager
func NewOSManager(opts ...OSManagerOption) OSManager {
	om := &osManager{
		logger:   &nolog,
		detector: NewOSDetector(),
	}

	for _, opt := range opts {
		opt(om)
	}

	return om
}

func (om *osManager) GetOSInfo() (*OSInfo, error) {
	info, err := om.detector.ScanOS()
	if err != nil {
		om.logger.Debug().Err(err).Msg("failed to detect operating system")
		return info, err
	}

	om.logger.Debug().
		Str(logFields.osType, info.Type).
		Str(logFields.osVersion, info.Version).
		Str(logFields.osFlavor, info.Flavor).
		Str(logFields.osCodename, info.CodeName).
		Str(logFields.osArch, info.Architecture).
		Str(logFields.osDescription, info.Description).
		Msg("detected operating system")

	return info, nil
}
