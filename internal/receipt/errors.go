package receipt

import "errors"

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrReceiptNotFound  = errors.New("receipt not found")
	ErrDefaultProfile   = errors.New("the default profile cannot be deleted")
	ErrEmptyProfileName = errors.New("profile name is required")
	ErrInvalidReceiptID = errors.New("invalid receipt id")
	ErrRecognition      = errors.New("receipt text could not be recognized")
)
