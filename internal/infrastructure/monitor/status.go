package monitor

import "time"

type Status struct {
	Storage     bool      `json:"storage"`
	StorageKeys int       `json:"storage_keys"`
	Tasks       int       `json:"tasks"`
	LastError   string    `json:"last_error,omitempty"`
	LastCheck   time.Time `json:"last_check"`
}
