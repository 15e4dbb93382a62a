package error

import "net/http"

// PartialSyncError reports that some entries of a reconciliation snapshot were
// malformed and skipped. The remaining valid entries are still applied, so this
// is informational, never fatal.
type PartialSyncError string

func (err PartialSyncError) Error() string {
	return string(err)
}

func (err PartialSyncError) ErrCode() string {
	return "PARTIAL_SYNC_ERROR"
}

func (err PartialSyncError) StatusCode() int {
	return http.StatusMultiStatus
}
