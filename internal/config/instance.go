package config

import (
	"os"

	"github.com/google/uuid"

	"github.com/eartrumpet-io/eartrumpet/internal/models"
)

// LoadInstanceInfo loads the running instance from instance.yaml.
// Returns nil if the file doesn't exist.
func LoadInstanceInfo() (*models.InstanceInfo, error) {
	path, err := GlobalInstanceFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.InstanceInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ClaimInstance records the current process as the running instance.
func ClaimInstance() (*models.InstanceInfo, error) {
	if err := EnsureGlobalDir(); err != nil {
		return nil, err
	}

	path, err := GlobalInstanceFile()
	if err != nil {
		return nil, err
	}
	info := models.NewInstanceInfo(os.Getpid(), uuid.NewString())
	if err := SaveYAML(path, info); err != nil {
		return nil, err
	}
	return info, nil
}

// ReleaseInstance removes instance.yaml if it still belongs to info.
func ReleaseInstance(info *models.InstanceInfo) error {
	current, err := LoadInstanceInfo()
	if err != nil || current == nil {
		return err
	}
	if current.SessionID != info.SessionID {
		return nil
	}

	path, err := GlobalInstanceFile()
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// IsInstanceRunning checks if another tray process is still running.
// Returns true if instance.yaml exists and its PID is alive. A stale file is
// removed.
func IsInstanceRunning() (bool, *models.InstanceInfo, error) {
	info, err := LoadInstanceInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	if info.PID == os.Getpid() {
		return false, info, nil
	}
	if !processAlive(info.PID) {
		if path, err := GlobalInstanceFile(); err == nil {
			_ = os.Remove(path)
		}
		return false, info, nil
	}
	return true, info, nil
}
