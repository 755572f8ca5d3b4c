package pipeline

// IsFingerprinted exposes isFingerprinted for tests.
var IsFingerprinted = isFingerprinted
