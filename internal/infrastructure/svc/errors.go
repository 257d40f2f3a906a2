package svc

import "errors"

// ErrStorageInitFailed: journal/state storage could not be initialized.
var ErrStorageInitFailed = errors.New("storage initialization failed")

// ErrQueueInitFailed: manual-sell queue backend could not be initialized.
var ErrQueueInitFailed = errors.New("sell queue initialization failed")
