package models

import "time"

// InstanceInfo identifies the running tray process.
// This corresponds to ~/.eartrumpet/instance.yaml.
type InstanceInfo struct {
	Version   int       `yaml:"version"`
	PID       int       `yaml:"pid"`
	SessionID string    `yaml:"session_id"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewInstanceInfo creates instance info for the given process.
func NewInstanceInfo(pid int, sessionID string) *InstanceInfo {
	return &InstanceInfo{
		Version:   1,
		PID:       pid,
		SessionID: sessionID,
		StartedAt: time.Now().UTC(),
	}
}
