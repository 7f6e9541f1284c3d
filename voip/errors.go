// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package voip

import "errors"

// ErrOperationFailed is returned when the engine rejects an operation
// without failure detail, e.g. [Call.Hold] on a call that is not
// connected.
var ErrOperationFailed = errors.New("voip: call operation failed")
