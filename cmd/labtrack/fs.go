package main

import "github.com/davetashner/labtrack/internal/testable"

// cmdFS is the file system implementation used by CLI commands for import
// and export files. Override in tests with a testable.MockFileSystem.
var cmdFS testable.FileSystem = testable.DefaultFS
