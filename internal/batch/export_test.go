package batch

// WriteFileAtomic exports writeFileAtomic for testing.
var WriteFileAtomic = writeFileAtomic
