package services

import "errors"

var (
	ErrEmptyID          = errors.New("id is empty")
	ErrTitleRequired    = errors.New("title is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrQueryRequired    = errors.New("query is required")
	ErrTextRequired     = errors.New("text is required")
	ErrTopicRequired    = errors.New("topic is required")
	ErrNotAnImage       = errors.New("please select an image file")
	ErrImageTooLarge    = errors.New("image size must be less than 5MB")
	ErrPasswordMismatch = errors.New("new passwords do not match")
	ErrBadCaptchaImage  = errors.New("captcha image is not a data URL")
)
