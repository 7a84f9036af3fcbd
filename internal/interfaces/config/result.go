// Package config
package config

type validType int

const (
	PASS validType = iota
	FAIL
)

// ValidResult is the outcome of a config section check. Sections repair
// what they can in place and fail only on what cannot be defaulted, so
// a FAIL always means the file needs a human.
type ValidResult struct {
	validType validType
	err       error
	originErr error
}

func ValidPass() *ValidResult {
	return &ValidResult{validType: PASS, err: nil, originErr: nil}
}

func ValidFail(err error) *ValidResult {
	return &ValidResult{validType: FAIL, err: err}
}

// ValidFailWith keeps the underlying cause next to the reported error,
// for checks that wrap a parse or dial failure.
func ValidFailWith(err error, originErr error) *ValidResult {
	return &ValidResult{validType: FAIL, err: err, originErr: originErr}
}

func (r *ValidResult) IsFail() bool {
	return r.validType == FAIL
}

func (r *ValidResult) Error() error {
	return r.err
}

func (r *ValidResult) OriginErr() error { return r.originErr }
