// Package handoff builds the meeting summary the meeting-room page reads on
// load and writes it to shared storage.
package handoff

import (
	"context"
	"encoding/json"
	"fmt"

	"secretary-cli/internal/format"
	"secretary-cli/internal/model"
)

const (
	// StorageKey is the shared-storage key the meeting-room page reads.
	StorageKey = "meetingInfo"

	// NavigationTarget is resolved relative to the web base URL.
	NavigationTarget = "meeting-room.html"
)

// MeetingInfo is the handoff record. Times are display-formatted, not wire
// formatted, because the receiving page only shows them.
type MeetingInfo struct {
	MeetingID     int64  `json:"meetingId"`
	MeetingCode   string `json:"meetingCode"`
	MeetingName   string `json:"meetingName"`
	Department    string `json:"department"`
	Room          string `json:"room"`
	HostName      string `json:"hostName"`
	SecretaryName string `json:"secretaryName"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Description   string `json:"description"`
}

// Storage is the subset of local storage the handoff needs.
type Storage interface {
	SetItem(ctx context.Context, key, value string) error
	GetItem(ctx context.Context, key string) (string, bool, error)
}

func MeetingCode(id int64) string {
	return fmt.Sprintf("MTG-%d", id)
}

func Build(m model.Meeting) MeetingInfo {
	return MeetingInfo{
		MeetingID:     m.ID,
		MeetingCode:   MeetingCode(m.ID),
		MeetingName:   m.Title,
		Department:    m.Department,
		Room:          m.Room,
		HostName:      m.Chairman,
		SecretaryName: m.Secretary,
		StartTime:     format.DateTime(m.StartTime),
		EndTime:       format.DateTime(m.EndTime),
		Description:   m.Description,
	}
}

// Write overwrites any previous record.
func Write(ctx context.Context, s Storage, info MeetingInfo) error {
	b, err := json.Marshal(info)
	if err != nil {
		return err
	}
	if err := s.SetItem(ctx, StorageKey, string(b)); err != nil {
		return fmt.Errorf("store %s: %w", StorageKey, err)
	}
	return nil
}

// Read returns ok=false when no record has been written yet.
func Read(ctx context.Context, s Storage) (MeetingInfo, bool, error) {
	raw, ok, err := s.GetItem(ctx, StorageKey)
	if err != nil || !ok {
		return MeetingInfo{}, false, err
	}
	var info MeetingInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return MeetingInfo{}, false, fmt.Errorf("decode %s: %w", StorageKey, err)
	}
	return info, true, nil
}
