package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"leave-management-api/models"
)

// Transition actions.
const (
	ActionForward = "forward"
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Actor is the authenticated caller of an engine operation, built from the
// session claims and passed explicitly into every call.
type Actor struct {
	Username string
	Name     string
	Role     string
	Section  string
}

type transitionKey struct {
	status string
	role   string
	action string
}

// transitionTable holds every legal (status, role, action) -> next status
// move. Anything not listed here is an invalid transition.
var transitionTable = map[transitionKey]string{
	{models.StatusPendingStaff, models.RoleStaff, ActionForward}:         models.StatusPendingHOD,
	{models.StatusPendingStaff, models.RoleStaff, ActionReject}:          models.StatusRejectedByStaff,
	{models.StatusPendingHOD, models.RoleHOD, ActionApprove}:             models.StatusApproved,
	{models.StatusPendingHOD, models.RoleHOD, ActionForward}:             models.StatusPendingPrincipal,
	{models.StatusPendingHOD, models.RoleHOD, ActionReject}:              models.StatusRejectedByHOD,
	{models.StatusPendingPrincipal, models.RolePrincipal, ActionApprove}: models.StatusApproved,
	{models.StatusPendingPrincipal, models.RolePrincipal, ActionReject}:  models.StatusRejectedByPrincipal,
}

// commentColumns maps each acting role to the one comment column it may write.
var commentColumns = map[string]string{
	models.RoleStaff:     "staff_comment",
	models.RoleHOD:       "hod_comment",
	models.RolePrincipal: "principal_comment",
}

// actionableStatus maps each approver role to the one status it acts on.
// Staff queues are additionally scoped to the staff member's own section;
// hod and principal act school-wide.
var actionableStatus = map[string]string{
	models.RoleStaff:     models.StatusPendingStaff,
	models.RoleHOD:       models.StatusPendingHOD,
	models.RolePrincipal: models.StatusPendingPrincipal,
}

var terminalStatuses = []string{
	models.StatusApproved,
	models.StatusRejectedByStaff,
	models.StatusRejectedByHOD,
	models.StatusRejectedByPrincipal,
}

var leaveTypes = map[string]bool{
	models.LeaveTypeMedical: true,
	models.LeaveTypeOD:      true,
	models.LeaveTypeCasual:  true,
}

// WorkflowService runs the approval pipeline: it validates submissions,
// applies status transitions through a conditional store write, and decides
// which notifications each move triggers. Notification delivery is handed to
// the dispatcher and never affects the outcome of an operation.
type WorkflowService struct {
	store      RequestStore
	directory  DirectoryLookup
	dispatcher Dispatcher
}

func NewWorkflowService(store RequestStore, directory DirectoryLookup, dispatcher Dispatcher) *WorkflowService {
	return &WorkflowService{store: store, directory: directory, dispatcher: dispatcher}
}

// Submit creates a new request in Pending Staff and notifies the staff
// roster of the student's section.
func (s *WorkflowService) Submit(actor Actor, leaveType, leaveDates, reason, fileURL string) (*models.LeaveRequest, error) {
	reason = strings.TrimSpace(reason)
	leaveDates = strings.TrimSpace(leaveDates)

	if reason == "" {
		return nil, newValidationError("reason", "a reason is required")
	}
	if leaveDates == "" {
		return nil, newValidationError("leave_dates", "a date or date range is required")
	}
	if !leaveTypes[leaveType] {
		return nil, newValidationError("leave_type", "must be one of Medical, OD, Casual")
	}
	if actor.Section == "" {
		return nil, newValidationError("section", "submitting account has no section assigned")
	}

	req := &models.LeaveRequest{
		StudentUsername: actor.Username,
		StudentName:     actor.Name,
		StudentSection:  actor.Section,
		LeaveType:       leaveType,
		LeaveDates:      leaveDates,
		Reason:          reason,
		FileURL:         fileURL,
		Status:          models.StatusPendingStaff,
	}
	if err := s.store.Create(req); err != nil {
		return nil, err
	}

	s.notifySectionStaff(req)
	return req, nil
}

// Transition moves a request through the table above. The status write is
// conditional on the status the actor saw, so a racing transition loses with
// ErrInvalidTransition instead of silently double-processing.
func (s *WorkflowService) Transition(requestID uint, actor Actor, action, comment string) (*models.LeaveRequest, error) {
	req, err := s.store.GetByID(requestID)
	if err != nil {
		return nil, err
	}

	if models.IsTerminalStatus(req.Status) {
		return nil, ErrInvalidTransition
	}

	next, ok := transitionTable[transitionKey{status: req.Status, role: actor.Role, action: action}]
	if !ok {
		return nil, ErrInvalidTransition
	}

	comment = strings.TrimSpace(comment)
	updates := map[string]interface{}{"status": next}
	if comment != "" {
		updates[commentColumns[actor.Role]] = comment
	}

	applied, err := s.store.CompareAndSetStatus(requestID, req.Status, updates)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrInvalidTransition
	}

	req.Status = next
	switch actor.Role {
	case models.RoleStaff:
		if comment != "" {
			req.StaffComment = comment
		}
	case models.RoleHOD:
		if comment != "" {
			req.HodComment = comment
		}
	case models.RolePrincipal:
		if comment != "" {
			req.PrincipalComment = comment
		}
	}

	s.notifyTransition(req, actor.Role, comment)
	return req, nil
}

// PendingForActor returns the requests the actor may act on right now.
func (s *WorkflowService) PendingForActor(actor Actor) ([]models.LeaveRequest, error) {
	status, ok := actionableStatus[actor.Role]
	if !ok {
		return nil, fmt.Errorf("role %s has no approval queue", actor.Role)
	}

	filter := RequestFilter{Statuses: []string{status}}
	if actor.Role == models.RoleStaff {
		filter.Section = actor.Section
	}
	return s.store.Query(filter)
}

// HistoryForActor returns requests outside the actor's actionable status:
// everything a student submitted, or everything an approver is done with.
func (s *WorkflowService) HistoryForActor(actor Actor) ([]models.LeaveRequest, error) {
	switch actor.Role {
	case models.RoleStudent:
		return s.store.Query(RequestFilter{StudentUsername: actor.Username})
	case models.RoleStaff:
		return s.store.Query(RequestFilter{
			ExcludeStatuses: []string{models.StatusPendingStaff},
			Section:         actor.Section,
		})
	case models.RoleHOD:
		return s.store.Query(RequestFilter{ExcludeStatuses: []string{models.StatusPendingHOD}})
	case models.RolePrincipal:
		return s.store.Query(RequestFilter{ExcludeStatuses: []string{models.StatusPendingPrincipal}})
	}
	return nil, fmt.Errorf("role %s has no history view", actor.Role)
}

// ReportTerminal lists settled requests for the admin report, optionally
// filtered by section and an inclusive submission date range.
func (s *WorkflowService) ReportTerminal(section string, from, to *time.Time) ([]models.LeaveRequest, error) {
	return s.store.Query(RequestFilter{
		Statuses:      terminalStatuses,
		Section:       section,
		SubmittedFrom: from,
		SubmittedTo:   to,
	})
}

func (s *WorkflowService) notifySectionStaff(req *models.LeaveRequest) {
	emails, err := s.directory.EmailsForSectionStaff(req.StudentSection)
	if err != nil {
		log.Printf("failed to resolve staff roster for section %s: %v", req.StudentSection, err)
		return
	}

	subject := fmt.Sprintf("New leave request from %s", req.StudentName)
	body := fmt.Sprintf("%s (%s) has applied for %s leave on %s.<br>Reason: %s",
		req.StudentName, req.StudentSection, req.LeaveType, req.LeaveDates, req.Reason)
	for _, to := range emails {
		s.dispatcher.Send(to, subject, body)
	}
}

func (s *WorkflowService) notifyTransition(req *models.LeaveRequest, actorRole, comment string) {
	// Student always hears about the new status, if reachable.
	if student, err := s.directory.ResolveUser(req.StudentUsername); err == nil && student.Email != "" {
		subject := fmt.Sprintf("Leave request update: %s", req.Status)
		body := fmt.Sprintf("Your %s leave request for %s is now: %s.", req.LeaveType, req.LeaveDates, req.Status)
		if comment != "" {
			body += fmt.Sprintf("<br>Comment from %s: %s", actorRole, comment)
		}
		s.dispatcher.Send(student.Email, subject, body)
	}

	// Forwards additionally alert the next stage's role holder.
	switch req.Status {
	case models.StatusPendingHOD:
		s.notifyRoleHolder(models.RoleHOD, req, req.StaffComment)
	case models.StatusPendingPrincipal:
		s.notifyRoleHolder(models.RolePrincipal, req, req.HodComment)
	}
}

func (s *WorkflowService) notifyRoleHolder(role string, req *models.LeaveRequest, priorComment string) {
	email, err := s.directory.EmailForRole(role)
	if err != nil {
		log.Printf("failed to resolve %s mailbox: %v", role, err)
		return
	}
	if email == "" {
		return
	}

	subject := fmt.Sprintf("Leave request awaiting your review: %s", req.StudentName)
	body := fmt.Sprintf("%s (%s) has a %s leave request for %s awaiting your decision.<br>Reason: %s",
		req.StudentName, req.StudentSection, req.LeaveType, req.LeaveDates, req.Reason)
	if priorComment != "" {
		body += fmt.Sprintf("<br>Comment from the previous stage: %s", priorComment)
	}
	s.dispatcher.Send(email, subject, body)
}
