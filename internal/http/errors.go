package http

import (
	"fmt"

	"storefront-analytics/internal/shared/svcerrors"
)

const (
	codeAdminTokenRejected = "ANL_1000"

	codeInternalStreamingUnsupported = "ANL_9000"
	codeInternalSnapshotEncodeFailed = "ANL_9001"
)

// errAdminTokenRejected returns the generic 401 for the analytics
// endpoints. The client only ever sees "unauthorized"; no cause is
// attached because the verifier does not report what failed.
func errAdminTokenRejected() *svcerrors.ServiceError {
	return svcerrors.NewUnauthorizedError(codeAdminTokenRejected, nil)
}

// errInternalStreamingUnsupported returns an error when the response writer cannot stream.
func errInternalStreamingUnsupported() *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStreamingUnsupported, fmt.Errorf("response writer does not support flushing"))
}
