package config

import (
	"fmt"
	"io"
	"os"
)

// EnsureEnvFile copies templatePath to envPath when envPath does not exist.
// An existing env file is never touched, so local overrides survive repeated
// bootstrap runs.
func EnsureEnvFile(envPath, templatePath string) (created bool, err error) {
	if _, err := os.Stat(envPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat %s: %w", envPath, err)
	}

	src, err := os.Open(templatePath)
	if err != nil {
		return false, fmt.Errorf("failed to open env template %s: %w", templatePath, err)
	}
	defer src.Close()

	// O_EXCL guards against a concurrent bootstrap creating the file between
	// the stat above and this open.
	dst, err := os.OpenFile(envPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create %s: %w", envPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return false, fmt.Errorf("failed to copy env template: %w", err)
	}

	return true, nil
}
