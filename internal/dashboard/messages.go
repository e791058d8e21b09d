package dashboard

import (
	"fmt"

	"secretary-cli/internal/model"
)

// Toast titles.
const (
	TitleSuccess = "Thành công"
	TitleError   = "Lỗi"
)

const (
	MsgLoadFailed      = "Không thể tải dữ liệu. Vui lòng kiểm tra kết nối server."
	MsgMeetingNotFound = "Không tìm thấy thông tin cuộc họp"

	MsgDepartmentCreated = "Thêm phòng ban thành công"
	MsgDepartmentUpdated = "Cập nhật phòng ban thành công"
	MsgDepartmentDeleted = "Xóa phòng ban thành công"

	MsgRoomCreated = "Thêm phòng họp thành công"
	MsgRoomUpdated = "Cập nhật phòng họp thành công"
	MsgRoomDeleted = "Xóa phòng họp thành công"

	MsgMeetingCreated = "Thêm cuộc họp thành công"
	MsgMeetingUpdated = "Cập nhật cuộc họp thành công"
	MsgMeetingDeleted = "Xóa cuộc họp thành công"
)

// Confirmation prompts shown before a delete is sent.
const (
	ConfirmDeleteDepartment = "Bạn có chắc chắn muốn xóa phòng ban này?"
	ConfirmDeleteRoom       = "Bạn có chắc chắn muốn xóa phòng họp này?"
	ConfirmDeleteMeeting    = "Bạn có chắc chắn muốn xóa cuộc họp này?"
)

func MsgStatusChanged(s model.Status) string {
	return fmt.Sprintf("Đã chuyển trạng thái sang \"%s\"", s.Label())
}
