package i18n

import "errors"

var errNotInitialized = errors.New("i18n: bundle not initialized")
