// Package diagnostic collects the notices an editing session wants the user
// to see: settings fallbacks, missing analysis data, rejected bindings and
// mapping-file problems.
//
// Nothing here is fatal. A front-end decides how to present the collected
// notices (dialog, stderr, log line).
package diagnostic
