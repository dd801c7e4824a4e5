package generator

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned by Generate before the gateway has completed its handshake.
var ErrNotReady = errors.New("discord session is not ready: call Generate after the Ready event")

// Sentinels matched by RemoteError through errors.Is.
var (
	ErrRemoteFetch  = errors.New("remote fetch failed")
	ErrRemoteCreate = errors.New("remote create failed")
	ErrRemoteDelete = errors.New("remote delete failed")
	ErrRemoteUpdate = errors.New("remote update failed")
)

// MissingCapabilityError is returned by NewManager when the session lacks a mandatory intent.
type MissingCapabilityError struct {
	Capability string
}

func (e *MissingCapabilityError) Error() string {
	return fmt.Sprintf("missing required gateway intent %s", e.Capability)
}

// IsMissingCapability checks if an error indicates a missing mandatory intent
func IsMissingCapability(err error) bool {
	var target *MissingCapabilityError
	return errors.As(err, &target)
}

// InsufficientAuthorityError means the bot's highest role is not the guild's highest role.
type InsufficientAuthorityError struct {
	GuildID       string
	BotRoleID     string
	HighestRoleID string
}

func (e *InsufficientAuthorityError) Error() string {
	return fmt.Sprintf("bot role %q must be the highest role in guild %s (highest is %q)",
		e.BotRoleID, e.GuildID, e.HighestRoleID)
}

// IsInsufficientAuthority checks if an error indicates the bot is outranked
func IsInsufficientAuthority(err error) bool {
	var target *InsufficientAuthorityError
	return errors.As(err, &target)
}

// InvalidLayoutError wraps a layout that failed validation. No remote call was made.
type InvalidLayoutError struct {
	Err error
}

func (e *InvalidLayoutError) Error() string {
	return fmt.Sprintf("invalid guild layout: %v", e.Err)
}

func (e *InvalidLayoutError) Unwrap() error {
	return e.Err
}

// IsInvalidLayout checks if an error indicates a rejected layout
func IsInvalidLayout(err error) bool {
	var target *InvalidLayoutError
	return errors.As(err, &target)
}

// Action is the kind of remote call that failed.
type Action string

const (
	ActionFetch  Action = "fetch"
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
	ActionUpdate Action = "update"
)

// RemoteError is a failed Discord API call. It aborts the run.
type RemoteError struct {
	Action Action
	Entity string
	Name   string
	ID     string
	Err    error
}

func (e *RemoteError) Error() string {
	target := e.Entity
	switch {
	case e.Name != "":
		target = fmt.Sprintf("%s %q", e.Entity, e.Name)
	case e.ID != "":
		target = fmt.Sprintf("%s %s", e.Entity, e.ID)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Action, target, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is matches the ErrRemote* sentinel for the error's action.
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrRemoteFetch:
		return e.Action == ActionFetch
	case ErrRemoteCreate:
		return e.Action == ActionCreate
	case ErrRemoteDelete:
		return e.Action == ActionDelete
	case ErrRemoteUpdate:
		return e.Action == ActionUpdate
	}
	return false
}

// Helper functions for creating error instances

func NewRemoteError(action Action, entity, name, id string, err error) *RemoteError {
	return &RemoteError{Action: action, Entity: entity, Name: name, ID: id, Err: err}
}

func newFetchError(entity string, err error) *RemoteError {
	return NewRemoteError(ActionFetch, entity, "", "", err)
}
