package models

import (
	"time"
)

// Leave request statuses. A request starts in Pending Staff and only ever
// moves forward through the pipeline or into one of the terminal states.
const (
	StatusPendingStaff        = "Pending Staff"
	StatusPendingHOD          = "Pending HOD"
	StatusPendingPrincipal    = "Pending Principal"
	StatusApproved            = "Approved"
	StatusRejectedByStaff     = "Rejected by Staff"
	StatusRejectedByHOD       = "Rejected by HOD"
	StatusRejectedByPrincipal = "Rejected by Principal"
)

// Leave types accepted on submission.
const (
	LeaveTypeMedical = "Medical"
	LeaveTypeOD      = "OD"
	LeaveTypeCasual  = "Casual"
)

// IsTerminalStatus reports whether no further transition may act on a request.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusApproved, StatusRejectedByStaff, StatusRejectedByHOD, StatusRejectedByPrincipal:
		return true
	}
	return false
}

// LeaveRequest is the system of record for one leave/on-duty application.
// StudentSection is fixed at submission time and decides which staff see the
// request. Each comment column is written only by the matching role's
// transition.
type LeaveRequest struct {
	RequestID        uint       `gorm:"primaryKey;column:request_id" json:"request_id"`
	StudentUsername  string     `gorm:"column:student_username;index" json:"student_username"`
	StudentName      string     `gorm:"column:student_name" json:"student_name"`
	StudentSection   string     `gorm:"column:student_section;index" json:"student_section"`
	LeaveType        string     `gorm:"column:leave_type" json:"leave_type"`
	LeaveDates       string     `gorm:"column:leave_dates" json:"leave_dates"`
	Reason           string     `gorm:"column:reason;type:text" json:"reason"`
	FileURL          string     `gorm:"column:file_url" json:"file_url,omitempty"`
	Status           string     `gorm:"column:status;index" json:"status"`
	StaffComment     string     `gorm:"column:staff_comment;type:text" json:"staff_comment,omitempty"`
	HodComment       string     `gorm:"column:hod_comment;type:text" json:"hod_comment,omitempty"`
	PrincipalComment string     `gorm:"column:principal_comment;type:text" json:"principal_comment,omitempty"`
	DateRequested    time.Time  `gorm:"column:date_requested;autoCreateTime" json:"date_requested"`
	UpdateAt         *time.Time `gorm:"column:update_at;autoUpdateTime" json:"update_at,omitempty"`
}

func (LeaveRequest) TableName() string { return "leave_requests" }
