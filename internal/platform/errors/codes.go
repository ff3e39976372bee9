// Package errors provides structured domain errors with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeNotFound indicates a referenced identifier resolved to no record.
	CodeNotFound Code = "NOT_FOUND"

	// CodeBadValues indicates malformed or missing required input.
	CodeBadValues Code = "BAD_VALUES"

	// User errors
	CodeUserNotFound  Code = "USER_NOT_FOUND"
	CodeUsernameEmpty Code = "USERNAME_EMPTY"
	CodeUsernameTaken Code = "USERNAME_TAKEN"

	// Event errors
	CodeEventNotFound        Code = "EVENT_NOT_FOUND"
	CodeEventAuthorMismatch  Code = "EVENT_AUTHOR_MISMATCH"
	CodeEventAlreadyAttendee Code = "EVENT_ALREADY_ATTENDEE"

	// Invite errors
	CodeInviteAlreadyExists Code = "INVITE_ALREADY_EXISTS"
	CodeInviteNotFound      Code = "INVITE_NOT_FOUND"

	// Post errors
	CodePostNotFound       Code = "POST_NOT_FOUND"
	CodePostAuthorMismatch Code = "POST_AUTHOR_MISMATCH"

	// Video errors
	CodeVideoNotFound       Code = "VIDEO_NOT_FOUND"
	CodeVideoAuthorMismatch Code = "VIDEO_AUTHOR_MISMATCH"

	// Organization errors
	CodeOrgNotFound       Code = "ORG_NOT_FOUND"
	CodeOrgAuthorMismatch Code = "ORG_AUTHOR_MISMATCH"
	CodeOrgMemberMissing  Code = "ORG_MEMBER_MISSING"

	// Map errors
	CodeMapNotFound Code = "MAP_NOT_FOUND"
	CodePinNotFound Code = "PIN_NOT_FOUND"

	// Friend errors
	CodeFriendRequestAlreadyExists Code = "FRIEND_REQUEST_ALREADY_EXISTS"
	CodeFriendRequestNotFound      Code = "FRIEND_REQUEST_NOT_FOUND"
	CodeFriendNotFound             Code = "FRIEND_NOT_FOUND"
	CodeAlreadyFriends             Code = "ALREADY_FRIENDS"
)

// HTTPStatus maps an error code to the status the transport boundary returns.
// Ownership violations and state conflicts are distinguished so that clients
// can retry conflicts without re-authenticating.
func HTTPStatus(code Code) int {
	switch code {
	case CodeNotFound, CodeUserNotFound, CodeEventNotFound, CodeInviteNotFound,
		CodePostNotFound, CodeVideoNotFound, CodeOrgNotFound, CodeOrgMemberMissing,
		CodeMapNotFound, CodePinNotFound, CodeFriendRequestNotFound,
		CodeFriendNotFound:
		return http.StatusNotFound
	case CodeEventAuthorMismatch, CodePostAuthorMismatch, CodeVideoAuthorMismatch,
		CodeOrgAuthorMismatch:
		return http.StatusForbidden
	case CodeInviteAlreadyExists, CodeEventAlreadyAttendee, CodeUsernameTaken,
		CodeFriendRequestAlreadyExists, CodeAlreadyFriends:
		return http.StatusConflict
	case CodeBadValues, CodeUsernameEmpty:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
