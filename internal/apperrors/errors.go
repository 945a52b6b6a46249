package apperrors

import (
	"errors"
	"net/http"
)

// Error is a domain error with a fixed HTTP status and detail string.
// Services return these; handlers map them onto the response without
// inspecting error text.
type Error struct {
	Status int    `json:"-"`
	Detail string `json:"detail"`
}

func (e *Error) Error() string {
	return e.Detail
}

func New(status int, detail string) *Error {
	return &Error{Status: status, Detail: detail}
}

func BadRequest(detail string) *Error {
	return New(http.StatusBadRequest, detail)
}

func NotFound(detail string) *Error {
	return New(http.StatusNotFound, detail)
}

func PermissionDenied(detail string) *Error {
	return New(http.StatusForbidden, detail)
}

func NotAuthenticated(detail string) *Error {
	return New(http.StatusUnauthorized, detail)
}

var (
	// Users
	ErrEmailTaken         = BadRequest("Email already exists.")
	ErrUsernameTaken      = BadRequest("Username already exists.")
	ErrUserNotFound       = NotFound("User Not Found")
	ErrInvalidVerifyToken = NotAuthenticated("Invalid Verification Token")
	ErrVerifyLinkExpired  = New(http.StatusGone, "Verification Link Expired")
	ErrInvalidCredentials = NotAuthenticated("Invalid Credentials")
	ErrInvalidAccessToken = NotAuthenticated("Could not validate credentials")

	// Follow
	ErrSelfFollow   = BadRequest("Cannot follow/unfollow yourself")
	ErrFollowExists = BadRequest("User is already followed")
	ErrNotFollowing = BadRequest("User is not followed")

	// Tweets
	ErrTweetNotFound  = NotFound("Tweet was not found.")
	ErrEmptyTweet     = BadRequest("Tweet content cannot be empty")
	ErrTweetOverflow  = BadRequest("Tweet content exceeds maximum length of 280 characters")
	ErrInvalidParent  = BadRequest("Parent tweet does not exist.")
	ErrNonOwnerDelete = PermissionDenied("Unauthorized action.")

	// Likes / Retweets
	ErrAlreadyLiked     = BadRequest("Tweet has already been liked.")
	ErrLikeNotFound     = NotFound("Like does not exist.")
	ErrAlreadyRetweeted = BadRequest("Tweet has already been retweeted.")
	ErrRetweetNotFound  = NotFound("Retweet does not exist.")

	// Comments
	ErrCommentNotFound      = NotFound("Comment was not found.")
	ErrEmptyComment         = BadRequest("Comment text cannot be empty")
	ErrCommentOverflow      = BadRequest("Comment text exceeds maximum length of 500 characters")
	ErrInvalidParentComment = BadRequest("Parent comment does not exist.")
)

// FromError extracts a domain error, if the chain carries one.
func FromError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
