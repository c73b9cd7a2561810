package wire

import (
	"errors"
	"fmt"
)

// Common service fault codes. The service may emit codes outside this list;
// callers should branch on Code, not on message text.
const (
	FaultAuthRequired = "service.AUTH_REQUIRED"
	FaultAuthExpired  = "service.AUTH_EXPIRED"
	FaultNoSuchItem   = "mail.NO_SUCH_ITEM"
	FaultNoSuchFolder = "mail.NO_SUCH_FOLDER"
	FaultPermDenied   = "service.PERM_DENIED"
)

// Fault is an item-level failure returned by the service for one request.
// It implements error so demultiplexed outcomes surface directly to callers.
type Fault struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Message == "" {
		return f.Code
	}
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// IsFault reports whether err is (or wraps) a service Fault with the given
// code. An empty code matches any Fault.
func IsFault(err error, code string) bool {
	f, ok := AsFault(err)
	if !ok {
		return false
	}
	return code == "" || f.Code == code
}

// AsFault unwraps err to a *Fault if one is present in its chain.
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	ok := errors.As(err, &f)
	return f, ok
}
