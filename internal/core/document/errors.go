package document

import "errors"

var (
	ErrInvalidID          = errors.New("document: invalid id")
	ErrInvalidClass       = errors.New("document: invalid class")
	ErrInvalidOwner       = errors.New("document: invalid owner")
	ErrInvalidType        = errors.New("document: invalid type")
	ErrInvalidStatus      = errors.New("document: invalid status")
	ErrDocumentNotFound   = errors.New("document: not found")
	ErrOwnerNotFound      = errors.New("document: owner not found")
	ErrDocumentKeyExists  = errors.New("document: already submitted")
	ErrVersionMismatch    = errors.New("document: version mismatch")
	ErrObservationMissing = errors.New("document: observation is required")
)
