package models

const SnapshotVersion = 1

// Snapshot is the persisted form of the in-memory store.
type Snapshot struct {
	Version      int             `json:"version"`
	Groups       []*Group        `json:"groups"`
	Members      []*Member       `json:"members"`
	Availability []*Availability `json:"availability"`
}
