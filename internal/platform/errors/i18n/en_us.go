package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeNotFound  = "NOT_FOUND"
	CodeBadValues = "BAD_VALUES"

	CodeUserNotFound  = "USER_NOT_FOUND"
	CodeUsernameEmpty = "USERNAME_EMPTY"
	CodeUsernameTaken = "USERNAME_TAKEN"

	CodeEventNotFound        = "EVENT_NOT_FOUND"
	CodeEventAuthorMismatch  = "EVENT_AUTHOR_MISMATCH"
	CodeEventAlreadyAttendee = "EVENT_ALREADY_ATTENDEE"

	CodeInviteAlreadyExists = "INVITE_ALREADY_EXISTS"
	CodeInviteNotFound      = "INVITE_NOT_FOUND"

	CodePostNotFound       = "POST_NOT_FOUND"
	CodePostAuthorMismatch = "POST_AUTHOR_MISMATCH"

	CodeVideoNotFound       = "VIDEO_NOT_FOUND"
	CodeVideoAuthorMismatch = "VIDEO_AUTHOR_MISMATCH"

	CodeOrgNotFound       = "ORG_NOT_FOUND"
	CodeOrgAuthorMismatch = "ORG_AUTHOR_MISMATCH"
	CodeOrgMemberMissing  = "ORG_MEMBER_MISSING"

	CodeMapNotFound = "MAP_NOT_FOUND"
	CodePinNotFound = "PIN_NOT_FOUND"

	CodeFriendRequestAlreadyExists = "FRIEND_REQUEST_ALREADY_EXISTS"
	CodeFriendRequestNotFound      = "FRIEND_REQUEST_NOT_FOUND"
	CodeFriendNotFound             = "FRIEND_NOT_FOUND"
	CodeAlreadyFriends             = "ALREADY_FRIENDS"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeNotFound:  "The requested resource was not found",
		CodeBadValues: "The request contains missing or malformed values",

		// User errors
		CodeUserNotFound:  "User not found",
		CodeUsernameEmpty: "Username cannot be empty",
		CodeUsernameTaken: "Username {{.Username}} is already taken",

		// Event errors
		CodeEventNotFound:        "Event not found",
		CodeEventAuthorMismatch:  "{{.User}} is not the author of event {{.Event}}",
		CodeEventAlreadyAttendee: "{{.User}} is already attending event {{.Event}}",

		// Invite errors
		CodeInviteAlreadyExists: "An invite from {{.From}} to {{.To}} for this event already exists",
		CodeInviteNotFound:      "No pending invite from {{.From}} to {{.To}} exists for this event",

		// Post errors
		CodePostNotFound:       "Post not found",
		CodePostAuthorMismatch: "{{.User}} is not the author of post {{.Post}}",

		// Video errors
		CodeVideoNotFound:       "Video not found",
		CodeVideoAuthorMismatch: "{{.User}} is not the author of video {{.Video}}",

		// Organization errors
		CodeOrgNotFound:       "Organization not found",
		CodeOrgAuthorMismatch: "{{.User}} is not the author of organization {{.Org}}",
		CodeOrgMemberMissing:  "{{.Member}} is not in the members list",

		// Map errors
		CodeMapNotFound: "Map not found",
		CodePinNotFound: "Pin not found",

		// Friend errors
		CodeFriendRequestAlreadyExists: "Friend request between {{.From}} and {{.To}} already exists",
		CodeFriendRequestNotFound:      "Friend request from {{.From}} to {{.To}} does not exist",
		CodeFriendNotFound:             "Friendship between {{.User}} and {{.Friend}} does not exist",
		CodeAlreadyFriends:             "{{.User}} and {{.Friend}} are already friends",
	},
}
