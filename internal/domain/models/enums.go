// internal/domain/models/enums.go
package models

import "fmt"

// Role is a user's system-wide role.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleLead   Role = "LEAD"
	RoleMember Role = "MEMBER"
)

// ParseRole validates a role string at the API boundary. Unrecognized
// values are rejected rather than cast through.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleLead, RoleMember:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// TaskStatus is the task workflow state. Transitions are unconstrained:
// any status may be set from any other.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case StatusTodo, StatusInProgress, StatusDone:
		return TaskStatus(s), nil
	}
	return "", fmt.Errorf("invalid task status %q", s)
}

// Priority is the task priority level.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", fmt.Errorf("invalid priority %q", s)
}
