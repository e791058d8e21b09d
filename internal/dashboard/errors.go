package dashboard

import (
	"errors"
	"fmt"

	"secretary-cli/internal/api"
)

// ErrNotFound matches every lookup miss via errors.Is.
var ErrNotFound = errors.New("not found")

type Kind string

const (
	KindDepartment Kind = "department"
	KindRoom       Kind = "room"
	KindMeeting    Kind = "meeting"
)

// NotFoundError is a cache lookup miss. Its message is user facing.
type NotFoundError struct {
	Kind Kind
	ID   int64
}

func (e *NotFoundError) Error() string {
	switch e.Kind {
	case KindMeeting:
		return MsgMeetingNotFound
	case KindDepartment:
		return "Không tìm thấy thông tin phòng ban"
	case KindRoom:
		return "Không tìm thấy thông tin phòng họp"
	default:
		return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
	}
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func errNotFound(kind Kind, id int64) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// UserMessage is the text a failed action shows: the server's message for
// API errors, otherwise the error text itself.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return api.GenericMessage
}
